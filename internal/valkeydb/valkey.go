package valkeydb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"careerai/internal/queue"
)

const (
	queueKey = "review-queue"

	// seconds BRPOP waits before the consumer re-checks its context
	popTimeout = 5
)

type ValkeyClient struct {
	Client valkey.Client
}

func New(ctx context.Context, address string, password string) (*ValkeyClient, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &ValkeyClient{Client: client}, nil
}

func (v *ValkeyClient) Close() {
	v.Client.Close()
}

// Produce pushes a review job onto the queue.
func (v *ValkeyClient) Produce(ctx context.Context, jobID uuid.UUID) error {
	cmd := v.Client.B().Lpush().
		Key(queueKey).
		Element(jobID.String()).
		Build()

	if err := v.Client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to add job (%s) to the queue: %w", jobID, err)
	}

	return nil
}

// Consume blocks for up to popTimeout seconds waiting for the oldest job.
func (v *ValkeyClient) Consume(ctx context.Context) (uuid.UUID, error) {
	cmd := v.Client.B().Brpop().
		Key(queueKey).
		Timeout(popTimeout).
		Build()

	arr, err := v.Client.Do(ctx, cmd).AsStrSlice()
	if valkey.IsValkeyNil(err) {
		return uuid.Nil, queue.ErrEmpty
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to pop job from queue: %w", err)
	}
	if len(arr) != 2 {
		return uuid.Nil, fmt.Errorf("unexpected blocking pop reply: %v", arr)
	}

	jobID, err := uuid.Parse(arr[1])
	if err != nil {
		return uuid.Nil, fmt.Errorf("queue held invalid job id %q: %w", arr[1], err)
	}

	return jobID, nil
}
