package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"apkdownloader/internal/csvexport"
	"apkdownloader/internal/domain"
	"apkdownloader/internal/service"
	"apkdownloader/internal/xlsxexport"
)

// FilesHandler serves the recorded upload URLs.
type FilesHandler struct {
	listingService service.ListingService
}

// NewFilesHandler creates a new FilesHandler.
func NewFilesHandler(listingService service.ListingService) *FilesHandler {
	return &FilesHandler{listingService: listingService}
}

// List handles GET /files/
// @Summary List uploads
// @Description List up to 100 recorded uploads in insertion order. Missing URLs read "not available".
// @Tags files
// @Produce json
// @Success 200 {object} ListResponse "Recorded uploads"
// @Failure 404 {object} ErrorResponseBody "No files found"
// @Failure 500 {object} ErrorResponseBody "Read failure"
// @Router /files/ [get]
func (h *FilesHandler) List(c *gin.Context) {
	listings, err := h.listingService.List(c.Request.Context())
	if err != nil {
		h.respondListError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Message: "Files fetched successfully",
		Files:   listings,
	})
}

// Export handles GET /files/export
// @Summary Export uploads
// @Description Download the listed uploads as an Excel workbook or, with format=csv, as CSV.
// @Tags files
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 404 {object} ErrorResponseBody "No files found"
// @Failure 500 {object} ErrorResponseBody "Read failure"
// @Router /files/export [get]
func (h *FilesHandler) Export(c *gin.Context) {
	format, ok := domain.ParseExportFormat(c.Query("format"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "Unsupported export format: "+c.Query("format"))
		return
	}

	var buf bytes.Buffer
	if err := h.listingService.Export(c.Request.Context(), format, &buf); err != nil {
		h.respondListError(c, err)
		return
	}

	contentType := xlsxexport.ContentType
	if format == domain.ExportCSV {
		contentType = csvexport.ContentType
	}
	filename := csvexport.BuildFilename("uploads", string(format), time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *FilesHandler) respondListError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		HandleError(c, err)
		return
	}
	requestID, _ := c.Get("request_id")
	log.Printf("[%s] filesHandler: %v", requestID, err)
	RespondError(c, http.StatusInternalServerError, "Error fetching files: "+err.Error())
}
