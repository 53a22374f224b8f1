package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/inquest/ai"
)

const recognitionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "text": {
            "type": "string"
          },
          "label": {
            "type": "string"
          }
        },
        "required": ["text", "label"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities"],
  "additionalProperties": false
}`

const recognitionPromptTemplate = `Identify every named entity in the given text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- The "text" field must reproduce the entity EXACTLY as it appears in the input, character for character,
  including capitalization. Do not paraphrase, expand, or correct it.
- The "label" field must be exactly one of: %s.
  person = people; org = companies, agencies, institutions; gpe = countries, cities, states;
  fac = buildings, airports, highways, bridges; norp = nationalities, religious or political groups;
  event = named hurricanes, battles, wars, sports events; date = absolute or relative dates or periods.
- List entities in the order they first appear in the text.
- List an entity once per occurrence; a name appearing three times yields three array items.
- If no entities can be identified, return "entities": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "Jane Doe met John Smith in Paris on January 5, 2019. Jane Doe later testified before the FBI."
Output:
{
  "entities": [
    {"text":"Jane Doe","label":"person"},
    {"text":"John Smith","label":"person"},
    {"text":"Paris","label":"gpe"},
    {"text":"January 5, 2019","label":"date"},
    {"text":"Jane Doe","label":"person"},
    {"text":"FBI","label":"org"}
  ]
}

Example (no entities):
Input: "the quick brown fox jumps over the lazy dog"
Output:
{
  "entities": []
}`

// buildRecognizerPrompt creates the system prompt with entity labels embedded.
func buildRecognizerPrompt() string {
	return fmt.Sprintf(recognitionPromptTemplate,
		recognitionResponseSchema,
		strings.Join(ai.EntityTypeList, ", "))
}
