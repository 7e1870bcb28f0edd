package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careerai/internal/models"
)

type MockReviewer struct {
	mock.Mock
}

func (m *MockReviewer) ReviewDocument(ctx context.Context, data []byte, model, language string) (*models.Report, error) {
	args := m.Called(ctx, data, model, language)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Report), args.Error(1)
}
