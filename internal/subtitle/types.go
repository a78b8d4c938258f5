package subtitle

import (
	"errors"
	"time"
)

// ErrMalformedDocument is returned by Parse when the input contains no
// recognizable cue blocks at all. Anything less broken than that is
// tolerated line by line.
var ErrMalformedDocument = errors.New("malformed subtitle document: no cue blocks found")

// ErrReconstructionUnderflow is returned by Reconstruct in strict mode when
// fewer translated lines than text slots were supplied.
var ErrReconstructionUnderflow = errors.New("reconstruction underflow: fewer translated lines than text slots")

// Block is one caption unit: an index line, a time-range line and one or
// more text lines.
type Block struct {
	Index     int
	Start     time.Duration
	End       time.Duration
	TimeRange string // the raw "HH:MM:SS,mmm --> HH:MM:SS,mmm" line
	TextLines []string
}

// Document is a parsed subtitle file. It keeps the original line stream
// alongside the block structure so reconstruction can substitute text lines
// in place and leave every other byte of the file alone.
type Document struct {
	Blocks []Block

	rawLines  []string
	textSlots []int // indices into rawLines that hold translatable text
}

// BlockCount returns the number of cue blocks.
func (d *Document) BlockCount() int {
	return len(d.Blocks)
}

// LineCount returns the number of lines in the original raw stream.
func (d *Document) LineCount() int {
	return len(d.rawLines)
}

// TextSlotCount returns the number of translatable text-line slots.
func (d *Document) TextSlotCount() int {
	return len(d.textSlots)
}
