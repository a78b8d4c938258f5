// Package langs resolves language codes to canonical tags and
// human-readable names. The prompt backend addresses languages by English
// name ("French"), the REST API by code ("fr"); both come from here.
package langs

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize canonicalizes a language code ("FR" -> "fr", "zh-hans" ->
// "zh-Hans"). Unparseable codes fail.
func Normalize(code string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return tag.String(), nil
}

// NormalizeAll canonicalizes a list of codes, dropping duplicates while
// keeping first-seen order.
func NormalizeAll(codes []string) ([]string, error) {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		normalized, err := Normalize(code)
		if err != nil {
			return nil, err
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out, nil
}

// Name returns the English display name for a language code, falling back
// to the code itself when no name is known.
func Name(code string) string {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
