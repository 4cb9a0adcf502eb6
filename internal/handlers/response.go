package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ArowuTest/sorteos-backend/internal/middleware"
	"github.com/ArowuTest/sorteos-backend/internal/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

const retryMessage = "Temporary failure, please retry"

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondWithError writes the error envelope
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// respondServiceError maps service errors onto HTTP statuses.
// Unexpected errors are logged and answered with a generic retryable message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		RespondWithError(c, http.StatusBadRequest, publicMessage(err, services.ErrValidation))
	case errors.Is(err, services.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, publicMessage(err, services.ErrNotFound))
	case errors.Is(err, services.ErrConflict):
		RespondWithError(c, http.StatusConflict, publicMessage(err, services.ErrConflict))
	default:
		_ = c.Error(err)
		slog.Error("Request failed", "error", err, "path", c.Request.URL.Path,
			"businessID", middleware.BusinessID(c), "requestID", c.GetString(middleware.RequestIDKey))
		RespondWithError(c, http.StatusInternalServerError, retryMessage)
	}
}

// publicMessage strips the sentinel prefix from a wrapped service error
func publicMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

// respondBindError answers a request body that failed to bind or validate
func respondBindError(c *gin.Context, err error) {
	RespondWithError(c, http.StatusBadRequest, err.Error())
}
