// Package chunker groups translatable lines into size-bounded batches so a
// request never exceeds the translation API's payload limit. Boundaries
// always fall between whole lines.
package chunker

// Chunk is an order-preserving run of consecutive lines.
type Chunk []string

// Split greedily packs lines into chunks whose joined size, counting one
// separator per line, stays within maxBytes. A single line larger than the
// budget still becomes its own oversized chunk; no line is ever dropped or
// reordered.
func Split(lines []string, maxBytes int) []Chunk {
	if len(lines) == 0 {
		return nil
	}

	var chunks []Chunk
	var current Chunk
	size := 0

	for _, line := range lines {
		lineSize := len(line) + 1 // line plus its separator

		if len(current) > 0 && size+lineSize > maxBytes {
			chunks = append(chunks, current)
			current = nil
			size = 0
		}

		current = append(current, line)
		size += lineSize
	}

	if len(current) > 0 {
		chunks = append(chunks, current)
	}

	return chunks
}

// JoinedSize returns the byte size of lines when joined with one separator
// per line, the same accounting Split uses against its budget.
func JoinedSize(lines []string) int {
	size := 0
	for _, line := range lines {
		size += len(line) + 1
	}
	return size
}
