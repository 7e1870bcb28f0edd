package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"careerai/internal/models"
)

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Ask(ctx context.Context, question, systemPrompt string) (string, error) {
	args := m.Called(ctx, question, systemPrompt)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) Chat(ctx context.Context, conversation []models.Message) (string, error) {
	args := m.Called(ctx, conversation)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) Prompt(ctx context.Context, content, model string) (string, error) {
	args := m.Called(ctx, content, model)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) Scan(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) ReviewResume(ctx context.Context, path, model, language string) (*models.Report, error) {
	args := m.Called(ctx, path, model, language)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Report), args.Error(1)
}
