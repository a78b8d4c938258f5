package translator

import (
	"context"
	"errors"

	"subtrans/internal/subtitle"
)

var (
	// ErrBackendUnavailable covers transport failures and non-2xx
	// responses. The whole document is aborted; no partial output.
	ErrBackendUnavailable = errors.New("translation backend unavailable")

	// ErrEmptyResponse means the backend answered but produced no usable
	// translated payload.
	ErrEmptyResponse = errors.New("translation backend returned no usable payload")
)

// Backend turns a parsed document into serialized target-language bytes
// with the same line count as the source.
type Backend interface {
	Name() string
	TranslateDocument(ctx context.Context, doc *subtitle.Document, targetLang string) (string, error)
}

// Completer is the opaque prompt-driven capability the prompt backend sits
// on: instruction in, reformatted text out. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
