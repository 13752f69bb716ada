package domain

// ArtifactCategory groups uploaded blobs under a logical storage prefix.
type ArtifactCategory string

const (
	CategoryAndroid ArtifactCategory = "APP"
	CategoryIOS     ArtifactCategory = "IOS"
	CategoryImage   ArtifactCategory = "IMAGES"
)

// String returns the storage prefix for the category.
func (c ArtifactCategory) String() string {
	return string(c)
}

const (
	// APKExtension is the required filename suffix for Android packages.
	APKExtension = ".apk"
	// IPAExtension is the required filename suffix for iOS packages.
	IPAExtension = ".ipa"
	// ImageContentTypePrefix is the required content-type prefix for screenshots.
	ImageContentTypePrefix = "image/"

	// NotAvailable replaces missing URLs in listing output.
	NotAvailable = "not available"

	// MaxListedRecords caps how many records a listing returns.
	MaxListedRecords = 100
)

// ExportFormat selects the file type produced by a record export.
type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat maps a query value to an ExportFormat. Empty means xlsx.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch ExportFormat(s) {
	case "", ExportXLSX:
		return ExportXLSX, true
	case ExportCSV:
		return ExportCSV, true
	default:
		return "", false
	}
}
