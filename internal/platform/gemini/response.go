package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/generation"
	"google.golang.org/genai"
)

type exampleSchema struct {
	ID      string `json:"id"`
	Example string `json:"example"`
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// parseExamples decodes the model output and keeps only examples for records
// that were asked for. Later duplicates of an ID are dropped.
func parseExamples(text string, records []domain.Vocabulary) ([]generation.Example, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var items []exampleSchema
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	requested := make(map[uuid.UUID]bool, len(records))
	for _, r := range records {
		requested[r.ID] = true
	}

	examples := make([]generation.Example, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil || !requested[id] {
			continue
		}
		sentence := strings.TrimSpace(item.Example)
		if sentence == "" {
			continue
		}
		requested[id] = false
		examples = append(examples, generation.Example{VocabularyID: id, Sentence: sentence})
	}
	return examples, nil
}
