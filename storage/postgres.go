package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AlirezaBelal/linkedin-connection-remover/config"
	"github.com/AlirezaBelal/linkedin-connection-remover/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore mirrors run results into a results table. The table is
// append-only like the CSV log: every run inserts fresh rows tagged with the
// run's ID, nothing is deduplicated against prior runs.
type PostgresStore struct {
	db    *sql.DB
	runID string
}

func NewPostgresStore(cfg config.Config, runID string) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{db: db, runID: runID}
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := store.ensureSchema(schemaCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveResult inserts one result row. Called per processed profile so that a
// crash mid-run loses at most the entry being processed.
func (s *PostgresStore) SaveResult(ctx context.Context, res models.RunResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (run_id, url, status, detail, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.runID,
		res.URL,
		string(res.Status),
		res.Detail,
		res.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert result %q: %w", res.URL, err)
	}
	return nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS results (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL,
			url TEXT NOT NULL,
			status TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			recorded_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
		CREATE INDEX IF NOT EXISTS idx_results_url ON results(url);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
