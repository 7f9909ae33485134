package testhelpers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockObjectStore is a mock implementation of the service.ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	args := m.Called(ctx, key, r, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
