package utils

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/alisoliman/recipe-app-api/errors"
	"github.com/gin-gonic/gin"
)

// Gin context keys shared by middleware and controllers
const (
	ContextKeyRequestID = "requestId"
	ContextKeyUserID    = "userId"
	ContextKeyUser      = "user"
	ContextKeyClaims    = "claims"
)

// RespondError aborts the request with the error envelope for err.
// Errors without a code are reported as internal and their cause is only logged.
func RespondError(c *gin.Context, err error) {
	var se *apperrors.StructuredError
	if !errors.As(err, &se) {
		se = apperrors.Wrap(apperrors.ErrCodeInternal, "Internal server error", err)
	}

	requestID := c.GetString(ContextKeyRequestID)
	status := apperrors.HTTPStatusFromCode(se.Code)
	message := se.Message
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"requestId", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		message = "Internal server error"
	}

	body := gin.H{
		"status":    "error",
		"code":      se.Code,
		"message":   message,
		"requestId": requestID,
	}
	if len(se.Fields) > 0 {
		body["errors"] = se.Fields
	}
	c.AbortWithStatusJSON(status, body)
}
