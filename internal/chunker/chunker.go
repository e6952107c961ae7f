// Package chunker splits outbound reply text into segments that fit a
// platform's hard message-size ceiling.
package chunker

import "strings"

// DefaultMaxLength is the usual platform message ceiling.
const DefaultMaxLength = 2000

// Split breaks text into ordered segments of at most maxLength runes.
// Line boundaries are preserved: lines are accumulated greedily and the
// buffer is flushed whenever the next line (plus its newline separator)
// would overflow. A single line longer than maxLength is hard-split
// into fixed-size rune slices instead. Joining the segments, with the
// newlines consumed between adjacent lines reinserted, reproduces the
// input exactly.
//
// Text already within the limit comes back as the sole segment, so
// empty input yields one empty segment.
func Split(text string, maxLength int) []string {
	if len([]rune(text)) <= maxLength {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	for _, line := range strings.Split(text, "\n") {
		lineLen := len([]rune(line))

		if currentLen+lineLen+1 > maxLength {
			if currentLen > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
				currentLen = 0
			}

			if lineLen > maxLength {
				chunks = append(chunks, splitLongLine(line, maxLength)...)
				continue
			}

			current.WriteString(line)
			currentLen = lineLen
			continue
		}

		if currentLen > 0 {
			current.WriteByte('\n')
			currentLen++
		}
		current.WriteString(line)
		currentLen += lineLen
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitLongLine hard-splits one oversized line into maxLength-rune
// slices. No attempt is made to respect word boundaries here.
func splitLongLine(line string, maxLength int) []string {
	runes := []rune(line)
	var out []string
	for i := 0; i < len(runes); i += maxLength {
		end := i + maxLength
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[i:end]))
	}
	return out
}
