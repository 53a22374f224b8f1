// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/inquest/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EntityRecognizer implements ai.EntityRecognizer using OpenAI-compatible chat APIs.
//
// The model returns entity surface forms and labels only; offsets are
// recovered afterwards with a forward scan over the input, so the model
// never has to count characters.
type EntityRecognizer struct {
	client   llms.Model
	maxInput int
	logger   *slog.Logger
}

// entity is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// recognition is the wrapper structure for the LLM's JSON response.
type recognition struct {
	Entities []entity `json:"entities"`
}

// newEntityRecognizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEntityRecognizer(config *ai.Config) (*EntityRecognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.RecognizerHost),
		openai.WithToken("none"),
		openai.WithModel(config.RecognizerModel),
	)
	if err != nil {
		return nil, err
	}

	return &EntityRecognizer{
		client:   client,
		maxInput: config.RecognizerMaxInput,
		logger:   slog.Default().With("component", "openai-recognizer"),
	}, nil
}

// NewEntityRecognizer creates a new entity recognizer using the provided configuration.
//
// Returns ai.EntityRecognizer interface to enforce abstraction.
func NewEntityRecognizer(config *ai.Config) (ai.EntityRecognizer, error) {
	return newEntityRecognizer(config)
}

// MaxInputLength returns the per-call input limit in runes.
func (e *EntityRecognizer) MaxInputLength() int {
	return e.maxInput
}

// Recognize identifies named entities in text using an LLM.
func (e *EntityRecognizer) Recognize(ctx context.Context, text string) ([]ai.RecognizedEntity, error) {
	systemPrompt := buildRecognizerPrompt()
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result recognition
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			e.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			e.logger.Debug("no choices returned from model")
			return []ai.RecognizedEntity{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			e.logger.Warn("error parsing recognizer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		e.logger.Error("failed to parse recognizer response after retries", "err", lastErr)
		return nil, lastErr
	}

	recognized := locateEntities(text, result.Entities)

	e.logger.Debug("recognized entities",
		"returned", len(result.Entities),
		"located", len(recognized))

	return recognized, nil
}

// locateEntities recovers rune offsets for the model's surface forms with a
// forward scan over the input. Repeated mentions resolve to successive
// occurrences; surface forms the input doesn't contain are dropped.
func locateEntities(text string, entities []entity) []ai.RecognizedEntity {
	recognized := make([]ai.RecognizedEntity, 0, len(entities))
	cursor := 0 // byte offset

	for _, ent := range entities {
		surface := strings.TrimSpace(ent.Text)
		if surface == "" {
			continue
		}

		byteIdx := strings.Index(text[cursor:], surface)
		if byteIdx >= 0 {
			byteIdx += cursor
		} else {
			// Wrap around for out-of-order model output
			byteIdx = strings.Index(text, surface)
		}
		if byteIdx < 0 {
			continue
		}

		start := utf8.RuneCountInString(text[:byteIdx])
		length := utf8.RuneCountInString(surface)
		recognized = append(recognized, ai.RecognizedEntity{
			Text:       surface,
			Label:      strings.ToLower(strings.TrimSpace(ent.Label)),
			Start:      start,
			End:        start + length,
			Confidence: 1.0,
		})
		cursor = byteIdx + len(surface)
	}

	return recognized
}
