package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// UploadRecord is the persisted set of public URLs produced by one upload request.
type UploadRecord struct {
	ID        uuid.UUID `db:"id" json:"-"`
	APKURL    *string   `db:"apk_url" json:"apk_url"`
	IPAURL    string    `db:"ipa_url" json:"ipa_url"`
	ImageURLs URLList   `db:"image_urls" json:"image_urls"`
	CreatedAt time.Time `db:"created_at" json:"-"`
}

// URLList is an ordered list of URLs stored as a JSONB array.
type URLList []string

// Value implements driver.Valuer. A nil list is stored as an empty array.
func (l URLList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner.
func (l *URLList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("URLList.Scan: unsupported type %T", src)
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return fmt.Errorf("URLList.Scan: %w", err)
	}
	*l = urls
	return nil
}

// FilePart is one file field of an upload request.
type FilePart struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// UploadListing is the presentation form of an UploadRecord. Missing URLs are
// replaced by NotAvailable and a missing image list by an empty one.
type UploadListing struct {
	APKURL    string   `json:"apk_url"`
	IPAURL    string   `json:"ipa_url"`
	ImageURLs []string `json:"image_urls"`
}

// ToListing reshapes the record for listing responses.
func (r *UploadRecord) ToListing() UploadListing {
	out := UploadListing{
		APKURL:    NotAvailable,
		IPAURL:    NotAvailable,
		ImageURLs: []string{},
	}
	if r.APKURL != nil && *r.APKURL != "" {
		out.APKURL = *r.APKURL
	}
	if r.IPAURL != "" {
		out.IPAURL = r.IPAURL
	}
	if r.ImageURLs != nil {
		out.ImageURLs = append(out.ImageURLs, r.ImageURLs...)
	}
	return out
}
