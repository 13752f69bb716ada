package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"apkdownloader/internal/config"
	"apkdownloader/internal/domain"
	"apkdownloader/internal/metrics"
	"apkdownloader/internal/port"
)

// UploadInput is the DTO for artifact upload requests. APK is optional; a nil
// IPA means the field was not submitted.
type UploadInput struct {
	APK    *domain.FilePart
	IPA    *domain.FilePart
	Images []domain.FilePart
}

// UploadService defines the artifact upload contract.
type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.UploadRecord, error)
}

type uploadService struct {
	recordRepo port.UploadRecordRepository
	storage    port.ObjectStorage
	cfg        *config.StorageConfig
	observer   metrics.Observer
}

// NewUploadService creates a new UploadService implementation.
func NewUploadService(
	recordRepo port.UploadRecordRepository,
	storage port.ObjectStorage,
	cfg *config.StorageConfig,
	observer metrics.Observer,
) UploadService {
	if observer == nil {
		observer = metrics.NopObserver{}
	}
	return &uploadService{
		recordRepo: recordRepo,
		storage:    storage,
		cfg:        cfg,
		observer:   observer,
	}
}

// partState classifies one submitted file field.
type partState int

const (
	partAbsent partState = iota
	partValid
	partInvalid
)

func classifyPackage(p *domain.FilePart, ext string) partState {
	if p == nil {
		return partAbsent
	}
	if !strings.HasSuffix(p.Filename, ext) {
		return partInvalid
	}
	return partValid
}

func classifyImage(p *domain.FilePart) partState {
	if !strings.HasPrefix(p.ContentType, domain.ImageContentTypePrefix) {
		return partInvalid
	}
	return partValid
}

// uploadPlan lists the parts that passed validation, in upload order.
type uploadPlan struct {
	apk    *domain.FilePart
	ipa    *domain.FilePart
	images []*domain.FilePart
}

// planUpload applies the validation rules in order and returns the first failure.
// An apk with the wrong extension is dropped rather than rejected.
func planUpload(input UploadInput) (*uploadPlan, error) {
	if classifyPackage(input.IPA, domain.IPAExtension) == partAbsent {
		return nil, domain.ErrIPARequired
	}
	if len(input.Images) == 0 {
		return nil, domain.ErrImagesRequired
	}

	plan := &uploadPlan{}
	if classifyPackage(input.APK, domain.APKExtension) == partValid {
		plan.apk = input.APK
	}

	if classifyPackage(input.IPA, domain.IPAExtension) == partInvalid {
		return nil, domain.ErrIPAInvalidType
	}
	plan.ipa = input.IPA

	plan.images = make([]*domain.FilePart, 0, len(input.Images))
	for i := range input.Images {
		if classifyImage(&input.Images[i]) == partInvalid {
			return nil, domain.ErrImageInvalidType
		}
		plan.images = append(plan.images, &input.Images[i])
	}
	return plan, nil
}

func (s *uploadService) Upload(ctx context.Context, input UploadInput) (*domain.UploadRecord, error) {
	plan, err := planUpload(input)
	if err != nil {
		return nil, err
	}

	record := &domain.UploadRecord{
		ImageURLs: make(domain.URLList, 0, len(plan.images)),
	}

	if plan.apk != nil {
		url, err := s.publish(ctx, domain.CategoryAndroid, plan.apk)
		if err != nil {
			return nil, err
		}
		record.APKURL = &url
	} else if input.APK != nil {
		log.Printf("uploadService.Upload: skipping apk %q without %s extension", input.APK.Filename, domain.APKExtension)
	}

	record.IPAURL, err = s.publish(ctx, domain.CategoryIOS, plan.ipa)
	if err != nil {
		return nil, err
	}

	for _, img := range plan.images {
		url, err := s.publish(ctx, domain.CategoryImage, img)
		if err != nil {
			return nil, err
		}
		record.ImageURLs = append(record.ImageURLs, url)
	}

	start := time.Now()
	err = s.recordRepo.Create(ctx, record)
	s.observer.RecordPersist(time.Since(start), err)
	if err != nil {
		log.Printf("uploadService.Upload: failed to persist record: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	log.Printf("uploadService.Upload: stored record %s (apk=%t, images=%d)",
		record.ID, record.APKURL != nil, len(record.ImageURLs))
	return record, nil
}

// publish uploads one part under {category}/{filename} and returns its public URL.
func (s *uploadService) publish(ctx context.Context, category domain.ArtifactCategory, part *domain.FilePart) (string, error) {
	key := category.String() + "/" + part.Filename

	log.Printf("uploadService.publish: uploading %s (%s, %d bytes)", key, part.ContentType, part.Size)

	start := time.Now()
	url, err := s.uploadPublic(ctx, key, part)
	s.observer.RecordUpload(category.String(), time.Since(start), part.Size, err)
	if err != nil {
		log.Printf("uploadService.publish: storage failure for %s: %v", key, err)
		return "", fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	return url, nil
}

func (s *uploadService) uploadPublic(ctx context.Context, key string, part *domain.FilePart) (string, error) {
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        part.Body,
		ContentType: part.ContentType,
		Size:        part.Size,
	})
	if err != nil {
		return "", err
	}
	return s.storage.MakePublic(ctx, out)
}
