package subtitle

import (
	"fmt"
	"strings"
)

// ReconstructMode controls what Reconstruct does when it runs out of
// translated lines before all text slots are filled.
type ReconstructMode int

const (
	// Lenient keeps the original text in any unfilled slot.
	Lenient ReconstructMode = iota
	// Strict fails with ErrReconstructionUnderflow instead.
	Strict
)

// ExtractText returns the flattened sequence of translatable text lines
// across all blocks, in document order. The Nth translated line handed to
// Reconstruct fills the Nth slot of this sequence.
func (d *Document) ExtractText() []string {
	lines := make([]string, 0, len(d.textSlots))
	for _, slot := range d.textSlots {
		lines = append(lines, strings.TrimSpace(d.rawLines[slot]))
	}
	return lines
}

// Reconstruct re-walks the original raw line stream and substitutes each
// text slot, in order, with the next translated line. Index lines, time
// lines, blank separators and any stray content are emitted byte for byte,
// so the result always has the same line count as the source.
//
// In Lenient mode a shortfall of translated lines leaves the remaining
// slots holding their original text; Strict mode returns
// ErrReconstructionUnderflow. Surplus translated lines are ignored either
// way.
func (d *Document) Reconstruct(translated []string, mode ReconstructMode) (string, error) {
	if mode == Strict && len(translated) < len(d.textSlots) {
		return "", fmt.Errorf("%w: got %d lines for %d slots",
			ErrReconstructionUnderflow, len(translated), len(d.textSlots))
	}

	out := make([]string, len(d.rawLines))
	copy(out, d.rawLines)

	for i, slot := range d.textSlots {
		if i >= len(translated) {
			break
		}
		out[slot] = translated[i]
	}

	return strings.Join(out, "\n"), nil
}

// FormatBlocks serializes a run of blocks back into cue text, one blank
// line between blocks. Used to round-trip structurally intact batches
// through the prompt backend.
func FormatBlocks(blocks []Block) string {
	var sb strings.Builder
	for _, block := range blocks {
		fmt.Fprintf(&sb, "%d\n%s\n", block.Index, block.TimeRange)
		for _, line := range block.TextLines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
