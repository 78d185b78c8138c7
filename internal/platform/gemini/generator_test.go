package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vocabdeck/vocabdeck-api/internal/config"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/generation"
	"google.golang.org/genai"
)

type fakeModels struct {
	calls      atomic.Int32
	GenerateFn func(ctx context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error)
}

func (f *fakeModels) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	_ *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	f.calls.Add(1)
	return f.GenerateFn(ctx, model, contents)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testRecords() []domain.Vocabulary {
	return []domain.Vocabulary{
		{ID: uuid.New(), Term: "gato", Definition: "cat"},
		{ID: uuid.New(), Term: "perro", Definition: "dog"},
	}
}

func testGenerator(models contentGenerator, clock clockwork.Clock, retries int) *Generator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newGenerator(models, logger, config.LLMConfig{
		ModelName:         "gemini-test",
		MaxRetries:        retries,
		RetryDelaySeconds: 1,
	}, clock)
}

func TestBuildPrompt(t *testing.T) {
	records := testRecords()

	prompt, err := buildPrompt(records)
	require.NoError(t, err)
	for _, r := range records {
		assert.Contains(t, prompt, "id: "+r.ID.String())
		assert.Contains(t, prompt, "term: "+r.Term)
		assert.Contains(t, prompt, "definition: "+r.Definition)
	}

	_, err = buildPrompt(nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestParseExamples(t *testing.T) {
	records := testRecords()
	gato, perro := records[0].ID, records[1].ID

	tests := []struct {
		name    string
		text    string
		want    []generation.Example
		wantErr error
	}{
		{
			name: "all records",
			text: fmt.Sprintf(`[{"id":%q,"example":"El gato duerme."},{"id":%q,"example":" El perro corre. "}]`, gato, perro),
			want: []generation.Example{
				{VocabularyID: gato, Sentence: "El gato duerme."},
				{VocabularyID: perro, Sentence: "El perro corre."},
			},
		},
		{
			name: "code fence is stripped",
			text: fmt.Sprintf("```json\n[{\"id\":%q,\"example\":\"El gato duerme.\"}]\n```", gato),
			want: []generation.Example{{VocabularyID: gato, Sentence: "El gato duerme."}},
		},
		{
			name: "unknown, malformed, blank and duplicate ids are dropped",
			text: fmt.Sprintf(`[{"id":%q,"example":"x"},{"id":"nope","example":"y"},{"id":%q,"example":"  "},{"id":%q,"example":"first"},{"id":%q,"example":"second"}]`,
				uuid.New(), gato, perro, perro),
			want: []generation.Example{{VocabularyID: perro, Sentence: "first"}},
		},
		{
			name:    "not json",
			text:    "Sure! Here are your sentences.",
			wantErr: generation.ErrInvalidResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExamples(tt.text, records)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResponseText(t *testing.T) {
	t.Run("joins parts", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "[1,"}, {Text: "2]"}}},
		}}}
		text, err := responseText(resp)
		require.NoError(t, err)
		assert.Equal(t, "[1,2]", text)
	})

	t.Run("safety block", func(t *testing.T) {
		resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonSafety,
		}}}
		_, err := responseText(resp)
		assert.ErrorIs(t, err, generation.ErrContentBlocked)
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := responseText(&genai.GenerateContentResponse{})
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})

	t.Run("nil response", func(t *testing.T) {
		_, err := responseText(nil)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
	})
}

func TestGenerateExamples(t *testing.T) {
	ctx := context.Background()
	records := testRecords()

	t.Run("success", func(t *testing.T) {
		models := &fakeModels{GenerateFn: func(_ context.Context, model string, contents []*genai.Content) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, "gemini-test", model)
			require.Len(t, contents, 1)
			assert.True(t, strings.Contains(contents[0].Parts[0].Text, records[0].Term))
			return textResponse(fmt.Sprintf(`[{"id":%q,"example":"El gato duerme."}]`, records[0].ID)), nil
		}}
		g := testGenerator(models, clockwork.NewFakeClock(), 2)

		examples, err := g.GenerateExamples(ctx, records)
		require.NoError(t, err)
		assert.Equal(t, []generation.Example{{VocabularyID: records[0].ID, Sentence: "El gato duerme."}}, examples)
		assert.EqualValues(t, 1, models.calls.Load())
	})

	t.Run("invalid response is not retried", func(t *testing.T) {
		models := &fakeModels{GenerateFn: func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
			return textResponse("not json"), nil
		}}
		g := testGenerator(models, clockwork.NewFakeClock(), 3)

		_, err := g.GenerateExamples(ctx, records)
		assert.ErrorIs(t, err, generation.ErrInvalidResponse)
		assert.EqualValues(t, 1, models.calls.Load())
	})

	t.Run("api errors are retried with backoff", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		models := &fakeModels{}
		models.GenerateFn = func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
			if models.calls.Load() == 1 {
				return nil, errors.New("503 unavailable")
			}
			return textResponse("[]"), nil
		}
		g := testGenerator(models, clock, 2)

		done := make(chan error, 1)
		go func() {
			_, err := g.GenerateExamples(ctx, records)
			done <- err
		}()

		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
		clock.Advance(time.Second)

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("generator did not return after backoff")
		}
		assert.EqualValues(t, 2, models.calls.Load())
	})

	t.Run("retries exhausted", func(t *testing.T) {
		models := &fakeModels{GenerateFn: func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("503 unavailable")
		}}
		g := testGenerator(models, clockwork.NewFakeClock(), 0)

		_, err := g.GenerateExamples(ctx, records)
		assert.ErrorIs(t, err, generation.ErrTransientFailure)
		assert.EqualValues(t, 1, models.calls.Load())
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		models := &fakeModels{GenerateFn: func(context.Context, string, []*genai.Content) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("503 unavailable")
		}}
		g := testGenerator(models, clock, 5)

		callCtx, cancelCall := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			_, err := g.GenerateExamples(callCtx, records)
			done <- err
		}()

		waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
		cancelCall()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, generation.ErrTransientFailure)
		case <-time.After(5 * time.Second):
			t.Fatal("generator ignored cancellation")
		}
	})

	t.Run("oversized batch", func(t *testing.T) {
		g := testGenerator(&fakeModels{}, clockwork.NewFakeClock(), 0)
		_, err := g.GenerateExamples(ctx, make([]domain.Vocabulary, generation.MaxBatchSize+1))
		assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	})

	t.Run("empty batch", func(t *testing.T) {
		g := testGenerator(&fakeModels{}, clockwork.NewFakeClock(), 0)
		_, err := g.GenerateExamples(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyBatch)
	})
}

func TestNewGeneratorValidatesConfig(t *testing.T) {
	_, err := NewGenerator(context.Background(), nil, config.LLMConfig{ModelName: "m"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGenerator(context.Background(), nil, config.LLMConfig{GeminiAPIKey: "key"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
