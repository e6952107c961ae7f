package chunker

import (
	"strings"
	"testing"
)

func TestSplit_WithinLimit(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
	}{
		{name: "short text", text: "hello world", max: 2000},
		{name: "empty text", text: "", max: 2000},
		{name: "exactly at limit", text: strings.Repeat("a", 10), max: 10},
		{name: "multiline within limit", text: "line one\nline two\nline three", max: 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Split(tt.text, tt.max)
			if len(chunks) != 1 {
				t.Fatalf("expected 1 chunk, got %d", len(chunks))
			}
			if chunks[0] != tt.text {
				t.Errorf("chunk differs from input: %q", chunks[0])
			}
		})
	}
}

func TestSplit_PreservesLines(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, strings.Repeat("x", 90))
	}
	text := strings.Join(lines, "\n")

	chunks := Split(text, 500)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if got := len([]rune(c)); got > 500 {
			t.Errorf("chunk %d exceeds limit: %d runes", i, got)
		}
		// No line that fits the limit may be broken across chunks.
		for _, line := range strings.Split(c, "\n") {
			if line != strings.Repeat("x", 90) {
				t.Errorf("chunk %d contains a broken line: %q", i, line)
			}
		}
	}
	if joined := strings.Join(chunks, "\n"); joined != text {
		t.Error("joining chunks does not reproduce the input")
	}
}

func TestSplit_OversizedLine(t *testing.T) {
	const max = 100
	line := strings.Repeat("a", 2*max)

	chunks := Split(line, max)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) != max {
			t.Errorf("chunk %d has %d runes, want %d", i, len([]rune(c)), max)
		}
	}
	if chunks[0]+chunks[1] != line {
		t.Error("concatenated chunks do not reproduce the line")
	}
}

func TestSplit_OversizedLineRemainder(t *testing.T) {
	const max = 100
	line := strings.Repeat("b", max+30)

	chunks := Split(line, max)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got := len([]rune(chunks[1])); got != 30 {
		t.Errorf("remainder chunk has %d runes, want 30", got)
	}
}

func TestSplit_RuneLengths(t *testing.T) {
	// Multibyte runes count as one unit each, not per byte.
	const max = 10
	text := strings.Repeat("é", 2*max)

	chunks := Split(text, max)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if got := len([]rune(c)); got != max {
			t.Errorf("chunk %d has %d runes, want %d", i, got, max)
		}
	}
}

func TestSplit_MixedContent(t *testing.T) {
	const max = 50
	parts := []string{
		strings.Repeat("a", 30),
		strings.Repeat("b", 30),
		strings.Repeat("c", 120),
		"tail",
	}
	text := strings.Join(parts, "\n")

	chunks := Split(text, max)

	for i, c := range chunks {
		if got := len([]rune(c)); got > max {
			t.Errorf("chunk %d exceeds limit: %d runes", i, got)
		}
	}

	// Every input character survives in order.
	joined := strings.Join(chunks, "")
	stripped := strings.ReplaceAll(text, "\n", "")
	if got := strings.ReplaceAll(joined, "\n", ""); got != stripped {
		t.Error("chunks lost or reordered content")
	}
}

func TestSplit_FlushBoundary(t *testing.T) {
	// Two lines that fit individually but not together with the
	// separator must land in separate chunks.
	const max = 20
	text := strings.Repeat("a", 12) + "\n" + strings.Repeat("b", 12)

	chunks := Split(text, max)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != strings.Repeat("a", 12) || chunks[1] != strings.Repeat("b", 12) {
		t.Errorf("unexpected chunks: %q", chunks)
	}
}
