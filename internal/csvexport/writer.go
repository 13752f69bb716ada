// Package csvexport renders upload records as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"apkdownloader/internal/domain"
)

// ContentType is the MIME type of the produced file.
const ContentType = "text/csv; charset=utf-8"

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row; it matches the xlsx export.
var columns = []string{
	"APK URL",
	"IPA URL",
	"Image Count",
	"Image URLs",
	"Uploaded At",
}

// imageSeparator joins image URLs inside a single cell.
const imageSeparator = " "

// Writer wraps csv.Writer for exporting upload records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.UploadRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteAll writes the BOM, the header and every record, then flushes.
func WriteAll(out io.Writer, records []domain.UploadRecord) error {
	if _, err := out.Write(BOM); err != nil {
		return fmt.Errorf("csvexport: bom: %w", err)
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return fmt.Errorf("csvexport: header: %w", err)
	}
	if err := w.WriteRecords(records); err != nil {
		return fmt.Errorf("csvexport: rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvexport: flush: %w", err)
	}
	return nil
}

// recordToRow applies the listing substitutions before formatting.
func recordToRow(r *domain.UploadRecord) []string {
	l := r.ToListing()
	return []string{
		l.APKURL,
		l.IPAURL,
		strconv.Itoa(len(l.ImageURLs)),
		strings.Join(l.ImageURLs, imageSeparator),
		formatTime(r.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "export"
	}
	return s
}

// BuildFilename returns a sanitized attachment name.
// Format: {sanitized_base}_{YYYY-MM-DD}.{ext}
func BuildFilename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), now.UTC().Format("2006-01-02"), ext)
}
