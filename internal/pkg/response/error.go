package response

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shareit/internal/pkg/apperror"
)

// errorTimeFormat matches the envelope format existing clients parse.
const errorTimeFormat = "2006-01-02 15:04:05.000"

// ErrorResponse is the JSON envelope for every failed request:
// the HTTP status name, a message and the server timestamp.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

func newErrorResponse(code int, message string) ErrorResponse {
	return ErrorResponse{
		Status:  statusName(code),
		Message: message,
		Time:    time.Now().Format(errorTimeFormat),
	}
}

// Error sends a JSON error envelope.
// It checks if the error is an AppError to determine the status code.
// Anything else is logged in full and surfaced as a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			log.Debug().Err(appErr.Err).Int("code", appErr.Code).Msg(appErr.Message)
		}
		c.JSON(appErr.Code, newErrorResponse(appErr.Code, appErr.Message))
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError,
		newErrorResponse(http.StatusInternalServerError, "internal server error"))
}

// statusName renders an HTTP status code the way existing clients expect it,
// e.g. 404 -> "NOT_FOUND".
func statusName(code int) string {
	return strings.ReplaceAll(strings.ToUpper(http.StatusText(code)), " ", "_")
}
