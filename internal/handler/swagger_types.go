package handler

import "apkdownloader/internal/domain"

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// UploadResponse is returned by POST /upload/.
type UploadResponse struct {
	Message   string   `json:"message" example:"Files uploaded successfully"`
	APKURL    *string  `json:"apk_url" example:"https://storage.example.com/APP/app.apk"`
	IPAURL    string   `json:"ipa_url" example:"https://storage.example.com/IOS/app.ipa"`
	ImageURLs []string `json:"image_urls"`
}

// ListResponse is returned by GET /files/.
type ListResponse struct {
	Message string                 `json:"message" example:"Files fetched successfully"`
	Files   []domain.UploadListing `json:"files"`
}

// IndexResponse is returned by GET /.
type IndexResponse struct {
	Message string `json:"Message" example:"APK Downloader"`
}

// StatusResponse is returned by the health probes.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
