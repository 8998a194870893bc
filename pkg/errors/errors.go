package errors

import "errors"

// Codes shared by the dashboard layers.
const (
	CodeConfig         = "config_error"
	CodeInvalidInput   = "invalid_input"
	CodePairingFailed  = "pairing_failed"
	CodeSpeechFailed   = "speech_failed"
	CodeStorage        = "storage_error"
	CodeAlreadyStarted = "already_started"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	return code != "" && CodeOf(err) == code
}
