package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrMissingRequiredFile = errors.New("missing required file")
	ErrInvalidFileType     = errors.New("invalid file type")
	ErrUploadFailed        = errors.New("file upload failed")
)

// FileError is a validation failure on a single multipart field.
// Error returns the client-facing detail; Unwrap exposes the sentinel kind.
type FileError struct {
	Kind   error
	Field  string
	Detail string
}

func (e *FileError) Error() string {
	return e.Detail
}

func (e *FileError) Unwrap() error {
	return e.Kind
}

// Validation failures reported to clients.
var (
	ErrIPARequired = &FileError{
		Kind:   ErrMissingRequiredFile,
		Field:  "ipa",
		Detail: "IPA file is required.",
	}
	ErrImagesRequired = &FileError{
		Kind:   ErrMissingRequiredFile,
		Field:  "images",
		Detail: "At least one image is required.",
	}
	ErrIPAInvalidType = &FileError{
		Kind:   ErrInvalidFileType,
		Field:  "ipa",
		Detail: "Only IPA files are allowed for the IPA input.",
	}
	ErrImageInvalidType = &FileError{
		Kind:   ErrInvalidFileType,
		Field:  "images",
		Detail: "Only image files are allowed for the Images input.",
	}
)
