package port

import (
	"context"
	"io"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// UploadOutput identifies an uploaded object.
type UploadOutput struct {
	Bucket   string
	Key      string
	Location string
	ETag     string
}

// ObjectStorage abstracts cloud object storage operations.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	// MakePublic grants anonymous read access to the object and returns its public URL.
	MakePublic(ctx context.Context, object *UploadOutput) (string, error)
}
