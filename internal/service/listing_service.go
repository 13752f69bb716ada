package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"apkdownloader/internal/csvexport"
	"apkdownloader/internal/domain"
	"apkdownloader/internal/port"
	"apkdownloader/internal/xlsxexport"
)

// ListingService defines the read side over persisted upload records.
type ListingService interface {
	List(ctx context.Context) ([]domain.UploadListing, error)
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error
}

type listingService struct {
	recordRepo port.UploadRecordRepository
	limit      int
}

// NewListingService creates a new ListingService that reads at most limit records.
// Limits outside (0, MaxListedRecords] fall back to MaxListedRecords.
func NewListingService(recordRepo port.UploadRecordRepository, limit int) ListingService {
	if limit <= 0 || limit > domain.MaxListedRecords {
		limit = domain.MaxListedRecords
	}
	return &listingService{recordRepo: recordRepo, limit: limit}
}

func (s *listingService) fetch(ctx context.Context) ([]domain.UploadRecord, error) {
	records, err := s.recordRepo.List(ctx, s.limit)
	if err != nil {
		log.Printf("listingService.fetch: %v", err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrNotFound
	}
	if len(records) > s.limit {
		records = records[:s.limit]
	}
	return records, nil
}

func (s *listingService) List(ctx context.Context) ([]domain.UploadListing, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UploadListing, 0, len(records))
	for i := range records {
		out = append(out, records[i].ToListing())
	}
	return out, nil
}

func (s *listingService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	records, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	switch format {
	case domain.ExportCSV:
		return csvexport.WriteAll(w, records)
	case domain.ExportXLSX:
		return xlsxexport.WriteRecords(w, records)
	default:
		return fmt.Errorf("listingService.Export: unsupported format %q", format)
	}
}
