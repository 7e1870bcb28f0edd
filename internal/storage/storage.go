package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"careerai/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobCreator interface {
	Create(ctx context.Context, job *models.Job) error
}

type JobReader interface {
	Get(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
}

type JobUpdater interface {
	MarkProcessing(ctx context.Context, jobID uuid.UUID) error
	Complete(ctx context.Context, jobID uuid.UUID, scannedText, analysis string) error
	Fail(ctx context.Context, jobID uuid.UUID, reason string) error
}

type JobStore interface {
	JobCreator
	JobReader
	JobUpdater
}
