package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "birthday-backend/internal/common/errors"
)

// Envelope is the uniform response body: {success, data?, error?}.
// Every endpoint, success or failure, answers in this shape so the
// admin panel can handle both uniformly.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	URL     string      `json:"url,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// CreatedURL answers an upload with the retrieval URL of the stored asset.
func CreatedURL(c *gin.Context, url string) {
	c.JSON(http.StatusOK, Envelope{Success: true, URL: url})
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Error: message})
}

// Error maps an application error onto its HTTP status and failure
// envelope. Unknown error types come back as 500.
func Error(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		Fail(c, statusCode(appErr), appErr.Message)
		return
	}
	Fail(c, http.StatusInternalServerError, err.Error())
}

func statusCode(appErr *apperrors.AppError) int {
	switch {
	case appErr.IsValidation():
		return http.StatusBadRequest
	case appErr.IsNotFound():
		return http.StatusNotFound
	case appErr.IsUnauthorized():
		return http.StatusUnauthorized
	case appErr.Code == apperrors.ErrCodeUploadError, appErr.Code == apperrors.ErrCodeExternalAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
