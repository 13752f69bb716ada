package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"apkdownloader/internal/domain"
)

// MockListingService is a mock implementation of service.ListingService.
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context) ([]domain.UploadListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UploadListing), args.Error(1)
}

func (m *MockListingService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}
