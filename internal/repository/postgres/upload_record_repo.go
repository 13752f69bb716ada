package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"apkdownloader/internal/domain"
	"apkdownloader/internal/port"
)

type uploadRecordRepo struct {
	db *sqlx.DB
}

// NewUploadRecordRepo creates a new PostgreSQL-backed UploadRecordRepository.
func NewUploadRecordRepo(db *sqlx.DB) port.UploadRecordRepository {
	return &uploadRecordRepo{db: db}
}

func (r *uploadRecordRepo) Create(ctx context.Context, record *domain.UploadRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now().UTC()

	query := `INSERT INTO upload_records (id, apk_url, ipa_url, image_urls, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.APKURL, record.IPAURL, record.ImageURLs, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("uploadRecordRepo.Create: %w", err)
	}
	return nil
}

func (r *uploadRecordRepo) List(ctx context.Context, limit int) ([]domain.UploadRecord, error) {
	var records []domain.UploadRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT id, apk_url, ipa_url, image_urls, created_at
		 FROM upload_records
		 ORDER BY seq ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("uploadRecordRepo.List: %w", err)
	}
	return records, nil
}

func (r *uploadRecordRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
