// Package library discovers the source subtitle files a run will translate.
package library

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"

	"subtrans/internal/subtitle"
	"subtrans/pkg/file"
	"subtrans/pkg/log"
)

// Scanner finds source-language subtitle files under the configured
// directories. Matching is purely by filename suffix; the optional language
// sanity check only warns.
type Scanner struct {
	dirs       []string
	sourceLang string
	checkLang  bool
}

func NewScanner(dirs []string, sourceLang string, checkLang bool) *Scanner {
	return &Scanner{
		dirs:       dirs,
		sourceLang: sourceLang,
		checkLang:  checkLang,
	}
}

// SourceSuffix returns the filename suffix that marks a source file, e.g.
// ".en.srt".
func (s *Scanner) SourceSuffix() string {
	return "." + s.sourceLang + ".srt"
}

// Scan walks every configured directory and returns the matching files in
// deterministic order. Directories that do not exist fail the scan; an
// empty result is not an error here, the caller decides what it means.
func (s *Scanner) Scan() ([]string, error) {
	suffix := s.SourceSuffix()
	var found []string

	for _, dir := range s.dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("input directory unavailable: %s", dir)
		}

		matches, err := file.FindBySuffix(dir, suffix)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
		found = append(found, matches...)
	}

	if s.checkLang {
		for _, path := range found {
			s.warnOnLanguageMismatch(path)
		}
	}

	return found, nil
}

// warnOnLanguageMismatch parses the file and compares the detected language
// against the configured source language. Detection is heuristic, so a
// mismatch is only logged.
func (s *Scanner) warnOnLanguageMismatch(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Could not read %s for language check: %v", path, err)
		return
	}

	doc, err := subtitle.Parse(string(raw))
	if err != nil {
		log.Warn("Could not parse %s for language check: %v", path, err)
		return
	}

	detected := subtitle.DetectLanguage(doc)
	if detected == language.Und {
		return
	}

	want, err := language.Parse(s.sourceLang)
	if err != nil {
		return
	}

	detectedBase, _ := detected.Base()
	wantBase, _ := want.Base()
	if detectedBase != wantBase {
		log.Warn("File %s looks like %q, expected source language %q",
			path, strings.ToLower(detectedBase.String()), s.sourceLang)
	}
}
