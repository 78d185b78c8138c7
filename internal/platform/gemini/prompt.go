package gemini

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

//go:embed prompt.tmpl
var defaultPrompt string

var promptTemplate = template.Must(template.New("examples").Parse(defaultPrompt))

type promptEntry struct {
	ID         string
	Term       string
	Definition string
}

type promptData struct {
	Entries []promptEntry
}

// buildPrompt renders the prompt for records.
func buildPrompt(records []domain.Vocabulary) (string, error) {
	if len(records) == 0 {
		return "", ErrEmptyBatch
	}

	data := promptData{Entries: make([]promptEntry, 0, len(records))}
	for _, r := range records {
		data.Entries = append(data.Entries, promptEntry{
			ID:         r.ID.String(),
			Term:       r.Term,
			Definition: r.Definition,
		})
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
