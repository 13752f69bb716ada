// Package xlsxexport renders upload records as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"apkdownloader/internal/domain"
)

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the name of the single worksheet.
const SheetName = "Uploads"

// columns defines the header row.
var columns = []string{
	"APK URL",
	"IPA URL",
	"Image Count",
	"Image URLs",
	"Uploaded At",
}

// WriteRecords writes one row per record to w as an xlsx workbook.
// URL substitution follows UploadRecord.ToListing.
func WriteRecords(w io.Writer, records []domain.UploadRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("xlsxexport: header: %w", err)
	}

	for i := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsxexport: row %d: %w", i, err)
		}
		row := recordToRow(&records[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsxexport: row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: write: %w", err)
	}
	return nil
}

func recordToRow(r *domain.UploadRecord) []interface{} {
	l := r.ToListing()
	uploadedAt := ""
	if !r.CreatedAt.IsZero() {
		uploadedAt = r.CreatedAt.UTC().Format(time.RFC3339)
	}
	return []interface{}{
		l.APKURL,
		l.IPAURL,
		len(l.ImageURLs),
		strings.Join(l.ImageURLs, "\n"),
		uploadedAt,
	}
}
