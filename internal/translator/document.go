package translator

import (
	"context"
	"fmt"
	"os"
	"strings"

	"subtrans/internal/subtitle"
)

// TranslateFile reads and parses one subtitle file, runs it through the
// backend and returns the serialized target document. The output always has
// the same line count as the input; the scheduler re-checks that after
// writing.
func TranslateFile(ctx context.Context, backend Backend, path, targetLang string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}

	doc, err := subtitle.Parse(string(raw))
	if err != nil {
		return "", err
	}

	out, err := backend.TranslateDocument(ctx, doc, targetLang)
	if err != nil {
		return "", err
	}

	if got, want := countLines(out), doc.LineCount(); got != want {
		return "", fmt.Errorf("translated document has %d lines, source has %d", got, want)
	}

	return out, nil
}

func countLines(s string) int {
	return len(strings.Split(s, "\n"))
}
