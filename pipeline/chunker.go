package pipeline

import "strings"

// Default chunking geometry for embedding generation.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 64
)

// ChunkWords splits text into overlapping word windows of at most size
// words, each window starting size-overlap words after the previous one.
// Chunks that are empty after trimming are dropped. An overlap that is
// not smaller than size falls back to disjoint windows.
func ChunkWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.TrimSpace(strings.Join(words[start:end], " "))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Segment is a contiguous piece of a larger text with its rune offset.
type Segment struct {
	Text   string
	Offset int // rune offset of Text within the original
}

// SegmentRunes splits text into contiguous non-overlapping segments of at
// most maxLen runes. Offsets let callers map positions inside a segment
// back to whole-document coordinates.
func SegmentRunes(text string, maxLen int) []Segment {
	if text == "" {
		return nil
	}
	if maxLen <= 0 {
		return []Segment{{Text: text}}
	}

	runes := []rune(text)
	var segments []Segment
	for i := 0; i < len(runes); i += maxLen {
		end := i + maxLen
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, Segment{Text: string(runes[i:end]), Offset: i})
	}
	return segments
}
