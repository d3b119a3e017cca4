package database

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Migrator is the subset of a pool that RunMigrations needs.
type Migrator interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RunMigrations applies every *.up.sql file at the root of migrations in
// lexical order, recording each in schema_migrations. Each file runs in its
// own transaction. Connection errors are retried; SQL errors are not.
func RunMigrations(ctx context.Context, db Migrator, migrations fs.FS, logger *slog.Logger) error {
	var err error
	for attempt := 0; attempt < defaultRetryAttempts; attempt++ {
		if err = applyMigrations(ctx, db, migrations, logger); err == nil || !isConnectionError(err) {
			return err
		}
		if attempt == defaultRetryAttempts-1 {
			break
		}
		wait := retryBackoff(attempt)
		logger.Warn("migration failed due to connection error, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("run migrations: %w", ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("run migrations after %d attempts: %w", defaultRetryAttempts, err)
}

// PendingMigrations lists *.up.sql file names in the order they apply.
func PendingMigrations(migrations fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func applyMigrations(ctx context.Context, db Migrator, migrations fs.FS, logger *slog.Logger) error {
	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	names, err := PendingMigrations(migrations)
	if err != nil {
		return err
	}

	for _, name := range names {
		var applied bool
		if err := db.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied {
			logger.Debug("migration already applied", slog.String("version", name))
			continue
		}

		content, err := fs.ReadFile(migrations, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := applyOne(ctx, db, name, string(content)); err != nil {
			return err
		}
		logger.Info("migration applied", slog.String("version", name))
	}
	return nil
}

func applyOne(ctx context.Context, db Migrator, name, sql string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx for migration %s: %w", name, err)
	}

	if _, err := tx.Exec(ctx, sql); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("execute migration %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", name); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}
