package mock

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/inquest/ai"
)

// MockEntityRecognizer is a test double for ai.EntityRecognizer.
// It allows custom behavior injection via function fields.
type MockEntityRecognizer struct {
	// RecognizeFunc is called by Recognize if set.
	// If nil, uses default capitalized-word heuristics.
	RecognizeFunc func(ctx context.Context, text string) ([]ai.RecognizedEntity, error)

	// MaxInput overrides the reported input limit. Defaults to 100000.
	MaxInput int

	callCount int
}

// NewMockEntityRecognizer creates a mock recognizer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockRecognizer().
func NewMockEntityRecognizer() *MockEntityRecognizer {
	return &MockEntityRecognizer{}
}

// MaxInputLength returns the configured input limit in runes.
func (m *MockEntityRecognizer) MaxInputLength() int {
	if m.MaxInput > 0 {
		return m.MaxInput
	}
	return 100000
}

// Recognize identifies mock entities in text.
// Default behavior: runs of capitalized words become person entities, so
// "Jane Doe met John Smith" yields two entities with correct offsets.
func (m *MockEntityRecognizer) Recognize(ctx context.Context, text string) ([]ai.RecognizedEntity, error) {
	m.callCount++

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, text)
	}

	var entities []ai.RecognizedEntity
	runes := []rune(text)

	i := 0
	for i < len(runes) {
		if !unicode.IsUpper(runes[i]) {
			i++
			continue
		}

		// Consume a run of capitalized words
		start := i
		end := i
		for {
			// Consume one word
			j := end
			for j < len(runes) && (unicode.IsLetter(runes[j]) || runes[j] == '.') {
				j++
			}
			end = j

			// Peek past a single space for another capitalized word
			if j < len(runes) && runes[j] == ' ' && j+1 < len(runes) && unicode.IsUpper(runes[j+1]) {
				end = j + 1
				continue
			}
			break
		}

		surface := strings.TrimRight(string(runes[start:end]), ".")
		if utf8.RuneCountInString(surface) >= 2 {
			entities = append(entities, ai.RecognizedEntity{
				Text:       surface,
				Label:      "person",
				Start:      start,
				End:        start + utf8.RuneCountInString(surface),
				Confidence: 1.0,
			})
		}
		i = end + 1
	}

	return entities, nil
}

// CallCount returns the number of times Recognize was called.
func (m *MockEntityRecognizer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockEntityRecognizer) Reset() {
	m.callCount = 0
	m.RecognizeFunc = nil
}
