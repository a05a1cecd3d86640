package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPStatus maps an error code to the HTTP status returned to callers.
// Validation failures are the caller's fault; external service failures are
// reported as bad gateway so retrying clients can distinguish them.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeStoreUnavailable,
		ErrCodeDocumentWriteFailed,
		ErrCodeDocumentReadFailed,
		ErrCodeMailSendFailed,
		ErrCodeMirrorWriteFailed,
		"EXTERNAL_SERVICE_ERROR":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponder writes StandardError responses and logs them.
type ErrorResponder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorResponder(logger Logger) *ErrorResponder {
	return &ErrorResponder{logger: logger}
}

// Respond normalizes err and writes it as the JSON response body.
func (r *ErrorResponder) Respond(c *gin.Context, err error) {
	stdErr := Normalize(err)

	r.logger.Error("request failed", map[string]interface{}{
		"path":      c.FullPath(),
		"errorCode": string(stdErr.Code),
		"details":   stdErr.Details,
	})

	c.JSON(HTTPStatus(stdErr.Code), gin.H{
		"error":     stdErr.Message,
		"code":      stdErr.Code,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
	})
}
