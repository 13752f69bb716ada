package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"apkdownloader/internal/domain"
	"apkdownloader/internal/handler"
	"apkdownloader/internal/service"
	"apkdownloader/mocks"
)

func TestUploadHandler_Upload_Success(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	record := &domain.UploadRecord{
		IPAURL:    "https://cdn/IOS/app.ipa",
		ImageURLs: domain.URLList{"https://cdn/IMAGES/a.png", "https://cdn/IMAGES/b.jpg"},
	}
	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		if in.APK != nil || in.IPA == nil || len(in.Images) != 2 {
			return false
		}
		return in.IPA.Filename == "app.ipa" &&
			in.IPA.Size == int64(len("ipa-bytes")) &&
			in.Images[0].Filename == "a.png" && in.Images[0].ContentType == "image/png" &&
			in.Images[1].Filename == "b.jpg" && in.Images[1].ContentType == "image/jpeg"
	})).Return(record, nil)

	c, w := newUploadContext(t,
		formFile{"ipa", "app.ipa", "application/octet-stream", "ipa-bytes"},
		formFile{"images", "a.png", "image/png", "a"},
		formFile{"images", "b.jpg", "image/jpeg", "b"},
	)

	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Files uploaded successfully", resp["message"])
	assert.Contains(t, resp, "apk_url")
	assert.Nil(t, resp["apk_url"])
	assert.Equal(t, "https://cdn/IOS/app.ipa", resp["ipa_url"])
	assert.Equal(t, []interface{}{"https://cdn/IMAGES/a.png", "https://cdn/IMAGES/b.jpg"}, resp["image_urls"])
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_Upload_PassesAPK(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	apk := "https://cdn/APP/app.apk"
	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.APK != nil && in.APK.Filename == "app.apk"
	})).Return(&domain.UploadRecord{APKURL: &apk, IPAURL: "https://cdn/IOS/app.ipa"}, nil)

	c, w := newUploadContext(t,
		formFile{"apk", "app.apk", "application/vnd.android.package-archive", "apk"},
		formFile{"ipa", "app.ipa", "application/octet-stream", "ipa"},
		formFile{"images", "a.png", "image/png", "a"},
	)

	h.Upload(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.APKURL)
	assert.Equal(t, apk, *resp.APKURL)
	assert.NotNil(t, resp.ImageURLs)
}

func TestUploadHandler_Upload_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		detail string
	}{
		{"missing ipa", domain.ErrIPARequired, "IPA file is required."},
		{"missing images", domain.ErrImagesRequired, "At least one image is required."},
		{"invalid ipa", domain.ErrIPAInvalidType, "Only IPA files are allowed for the IPA input."},
		{"invalid image", domain.ErrImageInvalidType, "Only image files are allowed for the Images input."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockUploadService)
			h := handler.NewUploadHandler(mockSvc)
			mockSvc.On("Upload", mock.Anything, mock.Anything).Return(nil, tt.err)

			c, w := newUploadContext(t, formFile{"ipa", "app.ipa", "application/octet-stream", "ipa"})

			h.Upload(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp handler.ErrorResponseBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.detail, resp.Detail)
		})
	}
}

func TestUploadHandler_Upload_NoBodyMeansNoFields(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.APK == nil && in.IPA == nil && len(in.Images) == 0
	})).Return(nil, domain.ErrIPARequired)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/upload/", nil)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "IPA file is required")
	mockSvc.AssertExpectations(t)
}

func TestUploadHandler_Upload_MalformedMultipart(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/upload/", nil)
	c.Request.Header.Set("Content-Type", "multipart/form-data")

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestUploadHandler_Upload_StorageFailure(t *testing.T) {
	mockSvc := new(mocks.MockUploadService)
	h := handler.NewUploadHandler(mockSvc)

	mockSvc.On("Upload", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, "s3 upload: SlowDown"))

	c, w := newUploadContext(t,
		formFile{"ipa", "app.ipa", "application/octet-stream", "ipa"},
		formFile{"images", "a.png", "image/png", "a"},
	)

	h.Upload(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.ErrorResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Detail, "SlowDown")
}
