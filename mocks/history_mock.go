package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careerai/internal/models"
)

type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Load(ctx context.Context, sessionID string) ([]models.Message, error) {
	args := m.Called(ctx, sessionID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockHistoryStore) Append(ctx context.Context, sessionID string, msgs ...models.Message) ([]models.Message, error) {
	args := m.Called(ctx, sessionID, msgs)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Message), args.Error(1)
}
