package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"apkdownloader/internal/domain"
	"apkdownloader/internal/service"
)

// UploadHandler handles artifact upload endpoints.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /upload/
// @Summary Upload build artifacts
// @Description Upload an optional APK, a required IPA and one or more screenshots. Each file is stored publicly and the resulting URLs are recorded.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param apk formData file false "Android package (.apk); other extensions are ignored"
// @Param ipa formData file true "iOS package (.ipa)"
// @Param images formData file true "Screenshots (image/*), repeat the field for several files"
// @Success 200 {object} UploadResponse "Files uploaded"
// @Failure 400 {object} ErrorResponseBody "Missing IPA or invalid file type"
// @Failure 500 {object} ErrorResponseBody "Storage or database failure"
// @Router /upload/ [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	var files map[string][]*multipart.FileHeader
	form, err := c.MultipartForm()
	switch {
	case err == nil:
		files = form.File
	case errors.Is(err, http.ErrNotMultipart):
		// No form at all reads as every field missing.
	default:
		RespondError(c, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	open := func(fh *multipart.FileHeader) (*domain.FilePart, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		return &domain.FilePart{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}, nil
	}

	var input service.UploadInput
	if headers := files["apk"]; len(headers) > 0 {
		if input.APK, err = open(headers[0]); err != nil {
			RespondError(c, http.StatusBadRequest, "unable to read apk file")
			return
		}
	}
	if headers := files["ipa"]; len(headers) > 0 {
		if input.IPA, err = open(headers[0]); err != nil {
			RespondError(c, http.StatusBadRequest, "unable to read ipa file")
			return
		}
	}
	for _, fh := range files["images"] {
		part, err := open(fh)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "unable to read image file")
			return
		}
		input.Images = append(input.Images, *part)
	}

	record, err := h.uploadService.Upload(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	imageURLs := []string(record.ImageURLs)
	if imageURLs == nil {
		imageURLs = []string{}
	}
	c.JSON(http.StatusOK, UploadResponse{
		Message:   "Files uploaded successfully",
		APKURL:    record.APKURL,
		IPAURL:    record.IPAURL,
		ImageURLs: imageURLs,
	})
}
