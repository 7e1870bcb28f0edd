package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careerai/internal/completion"
)

type MockCompleter struct {
	mock.Mock
}

func (m *MockCompleter) Complete(ctx context.Context, req completion.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
