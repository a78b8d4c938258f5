package subtitle

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	indexPattern = regexp.MustCompile(`^\d+$`)
	timePattern  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3}) --> (\d{2}):(\d{2}):(\d{2}),(\d{3})$`)
)

// Parse scans raw SRT text line by line into a Document.
//
// Classification rules, in order:
//   - a line of only digits starts a new block, but only when no block is open
//   - a time-range line while a block is open becomes the block's time range
//   - a blank line while a block is open closes and emits the block
//   - any other non-empty line while a block is open is a text line
//
// Lines outside any block are kept verbatim in the raw stream and never
// touched again; malformed input is not rejected line by line. Only a
// document with zero blocks fails, with ErrMalformedDocument. If the input
// ends while a block is still open, that block is flushed as the final one.
func Parse(raw string) (*Document, error) {
	doc := &Document{
		rawLines: strings.Split(raw, "\n"),
	}

	var current Block
	open := false

	flush := func() {
		doc.Blocks = append(doc.Blocks, current)
		current = Block{}
		open = false
	}

	for i, rawLine := range doc.rawLines {
		line := strings.TrimSpace(rawLine)

		switch {
		case !open && indexPattern.MatchString(line):
			index, err := strconv.Atoi(line)
			if err != nil {
				// Digits-only but out of int range; treat as stray content.
				continue
			}
			current = Block{Index: index}
			open = true

		case open && current.TimeRange == "" && timePattern.MatchString(line):
			start, end, err := parseTimeRange(line)
			if err == nil {
				current.Start = start
				current.End = end
			}
			current.TimeRange = line

		case open && line == "":
			flush()

		case open:
			current.TextLines = append(current.TextLines, line)
			doc.textSlots = append(doc.textSlots, i)

		default:
			// Stray line outside any block: preserved via rawLines only.
		}
	}

	if open {
		flush()
	}

	if len(doc.Blocks) == 0 {
		return nil, ErrMalformedDocument
	}

	return doc, nil
}

// parseTimeRange parses an SRT time-range line such as
// "00:02:16,612 --> 00:02:19,376".
func parseTimeRange(line string) (time.Duration, time.Duration, error) {
	matches := timePattern.FindStringSubmatch(line)
	if len(matches) != 9 {
		return 0, 0, ErrMalformedDocument
	}

	parse := func(hours, minutes, seconds, milliseconds string) time.Duration {
		h, _ := strconv.Atoi(hours)
		m, _ := strconv.Atoi(minutes)
		s, _ := strconv.Atoi(seconds)
		ms, _ := strconv.Atoi(milliseconds)

		return time.Duration(h)*time.Hour +
			time.Duration(m)*time.Minute +
			time.Duration(s)*time.Second +
			time.Duration(ms)*time.Millisecond
	}

	start := parse(matches[1], matches[2], matches[3], matches[4])
	end := parse(matches[5], matches[6], matches[7], matches[8])
	return start, end, nil
}
