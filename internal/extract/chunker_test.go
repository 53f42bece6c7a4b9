package extract

import (
	"strings"
	"testing"
)

func TestSplitContentShort(t *testing.T) {
	chunks := SplitContent("short content")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "short content" {
		t.Errorf("chunk = %q, want original content", chunks[0])
	}
}

func TestSplitContentExactBoundary(t *testing.T) {
	content := strings.Repeat("a", chunkSize)
	chunks := SplitContent(content)
	if len(chunks) != 1 {
		t.Errorf("got %d chunks for content at the size limit, want 1", len(chunks))
	}
}

func TestSplitContentOverlap(t *testing.T) {
	content := strings.Repeat("a", chunkSize+5000)
	chunks := SplitContent(content)

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[0]) != chunkSize {
		t.Errorf("first chunk is %d chars, want %d", len(chunks[0]), chunkSize)
	}
	// The second chunk starts a step before the first ends
	wantSecond := len(content) - (chunkSize - chunkOverlap)
	if len(chunks[1]) != wantSecond {
		t.Errorf("second chunk is %d chars, want %d", len(chunks[1]), wantSecond)
	}
}

func TestSplitContentCoversEverything(t *testing.T) {
	content := strings.Repeat("abcdefghij", 10000) // 100k chars
	chunks := SplitContent(content)

	var rebuilt strings.Builder
	step := chunkSize - chunkOverlap
	for i, chunk := range chunks {
		if i == 0 {
			rebuilt.WriteString(chunk)
			continue
		}
		// Drop the overlap each chunk shares with its predecessor
		rebuilt.WriteString(chunk[chunkOverlap:])
	}
	if rebuilt.String() != content {
		t.Error("reassembled chunks do not reproduce the original content")
	}

	for i, chunk := range chunks[:len(chunks)-1] {
		if len(chunk) != chunkSize {
			t.Errorf("chunk %d is %d chars, want %d", i, len(chunk), chunkSize)
		}
	}

	wantChunks := 1 + (len(content)-chunkSize+step-1)/step
	if len(chunks) != wantChunks {
		t.Errorf("got %d chunks, want %d", len(chunks), wantChunks)
	}
}
