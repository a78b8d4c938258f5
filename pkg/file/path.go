package file

import (
	"os"
	"path/filepath"
	"strings"
)

// ReplaceSuffix swaps a known filename suffix for another one, keeping the
// directory. The path must actually end with oldSuffix; ok reports whether
// the replacement happened.
func ReplaceSuffix(path, oldSuffix, newSuffix string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, oldSuffix) {
		return path, false
	}
	return filepath.Join(filepath.Dir(path), strings.TrimSuffix(base, oldSuffix)+newSuffix), true
}

// ReplaceExt swaps the extension of path for ext, adding a leading dot to
// ext when missing.
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}

	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	lastDot := strings.LastIndex(filename, ".")
	if lastDot <= 0 {
		return filepath.Join(dir, filename+ext)
	}

	return filepath.Join(dir, filename[:lastDot]+ext)
}

// Exists reports whether path exists as a regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
