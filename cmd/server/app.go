package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/vocabdeck/vocabdeck-api/internal/config"
	"github.com/vocabdeck/vocabdeck-api/internal/events"
	"github.com/vocabdeck/vocabdeck-api/internal/generation"
	"github.com/vocabdeck/vocabdeck-api/internal/platform/gemini"
	"github.com/vocabdeck/vocabdeck-api/internal/platform/postgres"
	"github.com/vocabdeck/vocabdeck-api/internal/service"
	"github.com/vocabdeck/vocabdeck-api/internal/service/auth"
	"github.com/vocabdeck/vocabdeck-api/internal/service/studysession"
	"github.com/vocabdeck/vocabdeck-api/internal/task"
)

// application holds the shared dependencies of the server and releases them
// on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	clock  clockwork.Clock

	jwtService      auth.JWTService
	userService     service.UserService
	folderService   service.FolderService
	studySetService service.StudySetService
	sessions        *studysession.Manager

	emitter    *events.InMemoryEventEmitter
	taskRunner *task.TaskRunner
}

// newApplication wires stores, services and background processing. Example
// generation is only enabled when a Gemini API key is configured. A nil
// clock uses the real clock.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	clock clockwork.Clock,
) (*application, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		clock:  clock,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	userStore := postgres.NewPostgresUserStore(db, logger)
	folderStore := postgres.NewPostgresFolderStore(db, logger)
	studySetStore := postgres.NewPostgresStudySetStore(db, logger)
	vocabularyStore := postgres.NewPostgresVocabularyStore(db, logger)

	var emitter events.EventEmitter
	if cfg.LLM.GeminiAPIKey != "" {
		generator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize example generator: %w", err)
		}
		if err := app.setupExampleGeneration(ctx, vocabularyStore, generator); err != nil {
			return nil, err
		}
		emitter = app.emitter
	} else {
		logger.Warn("gemini API key not configured, example generation disabled")
	}

	app.userService = service.NewUserService(userStore, auth.NewBcryptHasher(cfg.Auth.BCryptCost), db, logger)
	app.folderService = service.NewFolderService(folderStore, studySetStore, db, logger)
	app.studySetService = service.NewStudySetService(studySetStore, vocabularyStore, folderStore, emitter, db, logger)
	app.sessions = studysession.NewManager(app.studySetService, cfg.Study, clock, logger)

	logger.Info("application initialized")
	return app, nil
}

// setupExampleGeneration starts the task runner, requeues unfinished tasks
// and routes example requests from the emitter to the runner.
func (app *application) setupExampleGeneration(
	ctx context.Context,
	examples task.ExampleStore,
	generator generation.ExampleGenerator,
) error {
	factory, err := task.NewExampleGenerationTaskFactory(examples, generator, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create example task factory: %w", err)
	}
	registry := task.NewRegistry(factory)

	runnerCfg := task.DefaultTaskRunnerConfig()
	runnerCfg.WorkerCount = app.config.Task.WorkerCount
	runnerCfg.QueueSize = app.config.Task.QueueSize
	runnerCfg.StuckTaskAge = app.config.Task.StuckTaskAge()

	taskStore := postgres.NewPostgresTaskStore(app.db, app.logger)
	app.taskRunner = task.NewTaskRunner(taskStore, registry, runnerCfg, app.clock, app.logger)
	if err := app.taskRunner.Start(); err != nil {
		return fmt.Errorf("failed to start task runner: %w", err)
	}
	if err := app.taskRunner.Recover(ctx); err != nil {
		app.taskRunner.Stop()
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	app.emitter = events.NewInMemoryEventEmitter(app.logger)
	task.NewTaskFactoryEventHandler(registry, app.taskRunner, app.logger).Subscribe(app.emitter)
	return nil
}

// Run serves HTTP until ctx is cancelled, then cleans up.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops background work and closes the database.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
