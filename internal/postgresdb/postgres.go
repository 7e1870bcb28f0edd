package postgresdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careerai/internal/models"
	"careerai/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id            UUID PRIMARY KEY,
	job_status    TEXT NOT NULL DEFAULT 'queued',
	file_name     TEXT NOT NULL,
	object_key    TEXT NOT NULL,
	model         TEXT NOT NULL,
	language      TEXT NOT NULL,
	scanned_text  TEXT,
	analysis      TEXT,
	error_message TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Store, error) {
	if connString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// Migrate creates the jobs table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate jobs table: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, job *models.Job) error {
	sql := `
		INSERT INTO jobs (id, job_status, file_name, object_key, model, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		`

	_, err := s.Pool.Exec(ctx, sql,
		job.ID,
		job.Status.String(),
		job.FileName,
		job.ObjectKey,
		job.Model,
		job.Language,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert job %s: %w", job.ID, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	var statusString string

	sql := `
		SELECT id, job_status, file_name, object_key, model, language,
		       scanned_text, analysis, error_message, created_at, updated_at
		FROM jobs
		WHERE id = $1
		`

	err := s.Pool.QueryRow(ctx, sql, jobID).Scan(
		&job.ID,
		&statusString,
		&job.FileName,
		&job.ObjectKey,
		&job.Model,
		&job.Language,
		&job.ScannedText,
		&job.Analysis,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("job %s: %w", jobID, storage.ErrJobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve job %s: %w", jobID, err)
	}

	job.Status, err = models.ParseStatus(statusString)
	if err != nil {
		return nil, fmt.Errorf("database contains invalid job status: %w", err)
	}

	return &job, nil
}

func (s *Store) MarkProcessing(ctx context.Context, jobID uuid.UUID) error {
	sql := `UPDATE jobs SET job_status = $1, updated_at = NOW() WHERE id = $2`
	return s.update(ctx, jobID, sql, models.StatusProcessing.String(), jobID)
}

func (s *Store) Complete(ctx context.Context, jobID uuid.UUID, scannedText, analysis string) error {
	sql := `
		UPDATE jobs
		SET job_status = $1, scanned_text = $2, analysis = $3, error_message = NULL, updated_at = NOW()
		WHERE id = $4
		`
	return s.update(ctx, jobID, sql, models.StatusCompleted.String(), scannedText, analysis, jobID)
}

func (s *Store) Fail(ctx context.Context, jobID uuid.UUID, reason string) error {
	sql := `UPDATE jobs SET job_status = $1, error_message = $2, updated_at = NOW() WHERE id = $3`
	return s.update(ctx, jobID, sql, models.StatusFailed.String(), reason, jobID)
}

func (s *Store) update(ctx context.Context, jobID uuid.UUID, sql string, args ...any) error {
	tag, err := s.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", jobID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", jobID, storage.ErrJobNotFound)
	}
	return nil
}
