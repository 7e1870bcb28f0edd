package mocks

import (
	"github.com/stretchr/testify/mock"
)

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractFile(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func (m *MockTextExtractor) ExtractBytes(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}
