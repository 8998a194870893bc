package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/trafficai/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// appErrorStatus maps controller failure codes onto transport statuses.
var appErrorStatus = map[string]int{
	apperrors.CodeInvalidInput:   http.StatusBadRequest,
	apperrors.CodePairingFailed:  http.StatusBadGateway,
	apperrors.CodeSpeechFailed:   http.StatusServiceUnavailable,
	apperrors.CodeAlreadyStarted: http.StatusConflict,
	apperrors.CodeStorage:        http.StatusInternalServerError,
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	if code := apperrors.CodeOf(err); code != "" {
		if status, ok := appErrorStatus[code]; ok {
			if code == apperrors.CodeInvalidInput {
				code = "invalid_request"
			}
			return NewHTTPError(status, code, err.Error(), err)
		}
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(asHTTPError(err))
	c.Abort()
}
