package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{
			name:       "short text stays single chunk",
			text:       "hello",
			chunkSize:  100,
			overlap:    10,
			wantChunks: 1,
		},
		{
			name:       "exact size stays single chunk",
			text:       strings.Repeat("a", 20),
			chunkSize:  20,
			overlap:    5,
			wantChunks: 1,
		},
		{
			name:       "long text splits with overlap",
			text:       strings.Repeat("a", 45),
			chunkSize:  20,
			overlap:    5,
			wantChunks: 3,
		},
		{
			name:       "overlap larger than chunk falls back to step",
			text:       strings.Repeat("a", 30),
			chunkSize:  10,
			overlap:    15,
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("chunks = %d, want %d", len(chunks), tt.wantChunks)
			}
		})
	}
}

func TestSplitTextOverlapSharesBoundary(t *testing.T) {
	text := "abcdefghijklmnopqrst"
	chunks := SplitText(text, 10, 4)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// The tail of each chunk reappears at the head of the next.
	first, second := chunks[0], chunks[1]
	if !strings.HasPrefix(second, first[len(first)-4:]) {
		t.Errorf("chunk boundary lost: %q does not start with %q", second, first[len(first)-4:])
	}
}

func TestSplitTextPreservesAllContent(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog repeatedly."
	chunks := SplitText(text, 15, 3)

	joined := strings.Join(chunks, "")
	for _, word := range strings.Fields(text) {
		if !strings.Contains(joined, word) {
			t.Errorf("word %q missing from chunks", word)
		}
	}
}

func TestSplitTextHandlesMultibyteRunes(t *testing.T) {
	text := strings.Repeat("héllo wörld ", 10)
	chunks := SplitText(text, 20, 5)

	for i, c := range chunks {
		if !strings.ContainsAny(c, "héllowörld ") {
			t.Errorf("chunk %d malformed: %q", i, c)
		}
		if len([]rune(c)) > 20 {
			t.Errorf("chunk %d exceeds size: %d runes", i, len([]rune(c)))
		}
	}
}
