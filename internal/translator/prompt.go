package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subtrans/internal/langs"
	"subtrans/internal/subtitle"
	"subtrans/pkg/log"
)

// DefaultBatchBlocks is the number of cue blocks sent per prompt call.
const DefaultBatchBlocks = 25

// PromptBackend drives an opaque instruction-following model. Unlike the
// REST backend it batches whole blocks, round-tripping each batch as a
// structurally intact mini-document so the model can be told to keep index
// and timecode lines verbatim.
type PromptBackend struct {
	completer   Completer
	batchBlocks int
	mode        subtitle.ReconstructMode
}

func NewPromptBackend(completer Completer, batchBlocks int, mode subtitle.ReconstructMode) *PromptBackend {
	if batchBlocks <= 0 {
		batchBlocks = DefaultBatchBlocks
	}
	return &PromptBackend{
		completer:   completer,
		batchBlocks: batchBlocks,
		mode:        mode,
	}
}

func (b *PromptBackend) Name() string {
	return "prompt"
}

func (b *PromptBackend) TranslateDocument(ctx context.Context, doc *subtitle.Document, targetLang string) (string, error) {
	blocks := doc.Blocks
	systemPrompt := b.buildPrompt(targetLang)

	translated := make([]string, 0, doc.TextSlotCount())
	for start := 0; start < len(blocks); start += b.batchBlocks {
		end := min(start+b.batchBlocks, len(blocks))
		batch := blocks[start:end]

		log.Debug("Translating blocks %d-%d of %d to %s", start+1, end, len(blocks), targetLang)

		lines, err := b.translateBatch(ctx, systemPrompt, batch)
		if err != nil {
			return "", fmt.Errorf("blocks %d-%d: %w", start+1, end, err)
		}
		translated = append(translated, lines...)
	}

	return doc.Reconstruct(translated, b.mode)
}

// translateBatch sends one mini-document and parses the reply back into
// blocks, returning only its text lines in order.
func (b *PromptBackend) translateBatch(ctx context.Context, systemPrompt string, batch []subtitle.Block) ([]string, error) {
	want := 0
	for _, block := range batch {
		want += len(block.TextLines)
	}

	reply, err := b.completer.Complete(ctx, systemPrompt, subtitle.FormatBlocks(batch))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if strings.TrimSpace(reply) == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrEmptyResponse)
	}

	parsed, err := subtitle.Parse(stripFences(reply))
	if err != nil {
		if errors.Is(err, subtitle.ErrMalformedDocument) {
			return nil, fmt.Errorf("%w: reply is not cue-structured", ErrEmptyResponse)
		}
		return nil, err
	}

	lines := parsed.ExtractText()
	if len(lines) != want {
		return nil, fmt.Errorf("%w: got %d text lines for %d slots",
			ErrEmptyResponse, len(lines), want)
	}
	return lines, nil
}

func (b *PromptBackend) buildPrompt(targetLang string) string {
	name := langs.Name(targetLang)

	var prompt strings.Builder
	prompt.WriteString("You are a professional subtitle translator. Translate the subtitle text into " + name + ".\n\n")
	prompt.WriteString("The input is a numbered sequence of SRT cue blocks. Rules:\n")
	prompt.WriteString("1. Keep every index line and every timecode line exactly as given.\n")
	prompt.WriteString("2. Translate only the subtitle text lines.\n")
	prompt.WriteString("3. Keep the number of text lines in each block unchanged; never merge or split lines.\n")
	prompt.WriteString("4. Keep the blank line between blocks.\n")
	prompt.WriteString("5. Return only the reformatted blocks, with no explanations or extra text.\n")
	return prompt.String()
}

// stripFences removes a wrapping markdown code fence some models insist on.
func stripFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return reply
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed) + "\n"
}
