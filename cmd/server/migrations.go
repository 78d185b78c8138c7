package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/vocabdeck/vocabdeck-api/internal/platform/postgres/migrations"
)

// ErrUnknownMigrationCommand is returned for commands runMigrations does not support.
var ErrUnknownMigrationCommand = errors.New("unknown migration command")

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It does not exit; the failing call
// returns its error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// newMigrationProvider builds a goose provider over the embedded migrations.
func newMigrationProvider(db *sql.DB, logger *slog.Logger) (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS,
		goose.WithLogger(&slogGooseLogger{logger: logger}))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// runMigrations executes one of up, down, status or version.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command))

	switch command {
	case "up", "down", "status", "version":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMigrationCommand, command)
	}

	provider, err := newMigrationProvider(db, log)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		for _, res := range results {
			logResult(log, res)
		}
		if err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Info("migrations applied", slog.Int("count", len(results)))
	case "down":
		res, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		logResult(log, res)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		for _, s := range statuses {
			log.Info("migration status",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)))
		}
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to get database version: %w", err)
		}
		log.Info("database version", slog.Int64("version", version))
	}
	return nil
}

func logResult(log *slog.Logger, res *goose.MigrationResult) {
	if res == nil || res.Source == nil {
		return
	}
	attrs := []any{
		slog.Int64("version", res.Source.Version),
		slog.String("direction", res.Direction),
		slog.Int64("duration_ms", res.Duration.Milliseconds()),
	}
	if res.Error != nil {
		log.Error("migration failed", append(attrs, slog.String("error", res.Error.Error()))...)
		return
	}
	log.Info("migration applied", attrs...)
}
