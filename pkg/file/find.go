package file

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindBySuffix walks dir recursively and returns every regular file whose
// name ends with suffix, sorted so repeated runs enumerate identically.
func FindBySuffix(dir, suffix string) ([]string, error) {
	var matches []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo,
		err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && strings.HasSuffix(info.Name(), suffix) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
