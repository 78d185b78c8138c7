package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vocabdeck/vocabdeck-api/internal/config"
	"github.com/vocabdeck/vocabdeck-api/internal/domain"
	"github.com/vocabdeck/vocabdeck-api/internal/generation"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// contentGenerator is the subset of *genai.Models the generator calls.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.ExampleGenerator using the Gemini API.
type Generator struct {
	logger     *slog.Logger
	models     contentGenerator
	model      string
	maxRetries int
	baseDelay  time.Duration
	clock      clockwork.Clock
}

var _ generation.ExampleGenerator = (*Generator)(nil)

// NewGenerator creates a Gemini client from cfg. The API key and model name
// are required.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(client.Models, logger, cfg, clockwork.NewRealClock()), nil
}

func newGenerator(models contentGenerator, logger *slog.Logger, cfg config.LLMConfig, clock clockwork.Clock) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}
	delaySeconds := cfg.RetryDelaySeconds
	if delaySeconds < 1 {
		delaySeconds = defaultRetryDelaySeconds
	}

	return &Generator{
		logger:     logger.With(slog.String("component", "gemini_generator")),
		models:     models,
		model:      cfg.ModelName,
		maxRetries: maxRetries,
		baseDelay:  time.Duration(delaySeconds) * time.Second,
		clock:      clock,
	}
}

// GenerateExamples implements generation.ExampleGenerator.
func (g *Generator) GenerateExamples(ctx context.Context, records []domain.Vocabulary) ([]generation.Example, error) {
	if len(records) > generation.MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds limit of %d",
			generation.ErrGenerationFailed, len(records), generation.MaxBatchSize)
	}

	prompt, err := buildPrompt(records)
	if err != nil {
		return nil, err
	}

	text, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	examples, err := parseExamples(text, records)
	if err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generated example sentences",
		slog.Int("requested", len(records)),
		slog.Int("received", len(examples)))
	return examples, nil
}

// callWithRetry calls the model up to maxRetries+1 times. Only API errors are
// retried; blocked or malformed responses are returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	for attempt := 0; ; attempt++ {
		g.logger.DebugContext(ctx, "calling Gemini API",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", g.maxRetries+1))

		resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err == nil {
			return responseText(resp)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctxErr)
		}

		g.logger.WarnContext(ctx, "Gemini API call failed",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %w",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		select {
		case <-g.clock.After(g.backoff(attempt)):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// backoff is baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1).
func (g *Generator) backoff(attempt int) time.Duration {
	d := float64(g.baseDelay) * math.Pow(2, float64(attempt))
	return time.Duration(d * (0.5 + rand.Float64()*0.5))
}
