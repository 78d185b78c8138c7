package generation

import (
	"context"

	"github.com/google/uuid"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
)

// MaxBatchSize is the largest number of records sent to a generator in one call.
const MaxBatchSize = 25

// Example is a generated example sentence for one vocabulary record.
type Example struct {
	VocabularyID uuid.UUID `json:"id"`
	Sentence     string    `json:"example"`
}

// ExampleGenerator writes example sentences for vocabulary records.
type ExampleGenerator interface {
	// GenerateExamples returns at most one example per record. Records the
	// model skipped are simply absent from the result. Callers pass at most
	// MaxBatchSize records.
	GenerateExamples(ctx context.Context, records []domain.Vocabulary) ([]Example, error)
}

// ExampleGeneratorFunc adapts a function to ExampleGenerator.
type ExampleGeneratorFunc func(ctx context.Context, records []domain.Vocabulary) ([]Example, error)

// GenerateExamples calls f.
func (f ExampleGeneratorFunc) GenerateExamples(ctx context.Context, records []domain.Vocabulary) ([]Example, error) {
	return f(ctx, records)
}
