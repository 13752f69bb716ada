package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"apkdownloader/internal/domain"
)

// ErrorResponseBody is the body of every error response.
type ErrorResponseBody struct {
	Detail string `json:"detail" example:"IPA file is required."`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorResponseBody{Detail: detail})
}

// MapDomainError translates domain errors to HTTP status codes and client details.
func MapDomainError(err error) (status int, detail string) {
	switch {
	case errors.Is(err, domain.ErrMissingRequiredFile):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidFileType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "No files found"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, detail := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, detail)
}
