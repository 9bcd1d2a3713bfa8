package apperror

import "net/http"

// Error kinds are the stable machine-readable identifiers carried on every
// error response. Clients switch on these, never on messages.
const (
	KindUnauthorized  = "unauthorized"
	KindValidation    = "validation"
	KindNotFound      = "not_found"
	KindConflict      = "conflict"
	KindDuplicateItem = "duplicate_item"
	KindInternal      = "internal"
)

type AppError struct {
	Code    int    `json:"-"`
	Kind    string `json:"error"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Unauthorized covers every authentication failure. The message is
// deliberately uniform so callers cannot probe whether a token was
// malformed, expired or simply unknown.
func Unauthorized() *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, "Authentication required", nil)
}

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

// DuplicateItem is the conflict raised when an item is associated with the
// same list twice. Kept distinct from Conflict so clients can tell a
// duplicate list entry from a name collision.
func DuplicateItem(message string) *AppError {
	return New(http.StatusConflict, KindDuplicateItem, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}
