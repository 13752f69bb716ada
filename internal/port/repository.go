package port

import (
	"context"

	"apkdownloader/internal/domain"
)

// UploadRecordRepository defines the contract for upload record persistence.
// Records are append-only.
type UploadRecordRepository interface {
	Create(ctx context.Context, record *domain.UploadRecord) error
	// List returns at most limit records in insertion order.
	List(ctx context.Context, limit int) ([]domain.UploadRecord, error)
	Ping(ctx context.Context) error
}
