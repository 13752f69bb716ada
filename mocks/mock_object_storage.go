package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"apkdownloader/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockObjectStorage) MakePublic(ctx context.Context, object *port.UploadOutput) (string, error) {
	args := m.Called(ctx, object)
	return args.String(0), args.Error(1)
}
