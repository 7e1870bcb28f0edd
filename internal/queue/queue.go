package queue

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrEmpty is returned by Consume when no job arrived within the poll window.
var ErrEmpty = errors.New("queue is empty")

type Producer interface {
	Produce(ctx context.Context, jobID uuid.UUID) error
}

type Consumer interface {
	Consume(ctx context.Context) (uuid.UUID, error)
}
