// internal/common/errors/handler.go
package errors

import "net/http"

// Logger is the minimal logging surface the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// ErrorHandler normalizes errors and maps them onto HTTP responses.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it at the right severity and returns the
// StandardError plus the HTTP status the web layer should answer with.
func (h *ErrorHandler) Handle(err error, fields map[string]interface{}) (*StandardError, int) {
	std := Normalize(err)

	logFields := map[string]interface{}{
		"errorCode":    string(std.Code),
		"errorDetails": std.Details,
		"retryable":    std.Retryable,
	}
	for k, v := range fields {
		logFields[k] = v
	}

	status := HTTPStatus(std.Code)
	if status >= http.StatusInternalServerError {
		h.logger.Error(std.Message, logFields)
	} else {
		h.logger.Warn(std.Message, logFields)
	}

	return std, status
}

// HTTPStatus maps an error code onto the status the web layer answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeTemplateNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidTemplateName:
		return http.StatusBadRequest
	case ErrCodeValidationFailed, ErrCodeMissingVariable:
		return http.StatusUnprocessableEntity
	case ErrCodeTemplateReadFailed,
		ErrCodeRenderFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeDatabaseQueryFailed,
		ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
