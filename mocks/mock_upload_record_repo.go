package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"apkdownloader/internal/domain"
)

// MockUploadRecordRepo is a mock implementation of port.UploadRecordRepository.
type MockUploadRecordRepo struct {
	mock.Mock
}

func (m *MockUploadRecordRepo) Create(ctx context.Context, record *domain.UploadRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockUploadRecordRepo) List(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadRecord), args.Error(1)
}

func (m *MockUploadRecordRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
