package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds returned by stores and services. Handlers never pick status
// codes themselves: they pass the error to From, which maps each kind to
// its status exactly once.
var (
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not_found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

type KindError struct {
	kind error
	code string
}

func (e *KindError) Error() string { return e.code }

func (e *KindError) Is(target error) bool { return target == e.kind }

func conflictErr(code string) error { return &KindError{kind: ErrConflict, code: code} }

func notFoundErr(code string) error { return &KindError{kind: ErrNotFound, code: code} }

// NewConflict tags a uniqueness violation with a machine-readable code.
func NewConflict(code string) error { return conflictErr(code) }

// NewNotFound tags a lookup miss with a machine-readable code.
func NewNotFound(code string) error { return notFoundErr(code) }

func NewUnauthenticated(code string) error {
	return &KindError{kind: ErrUnauthenticated, code: code}
}

func NewForbidden(code string) error {
	return &KindError{kind: ErrForbidden, code: code}
}

// From writes the HTTP response for an error coming out of a store or
// service call. Unknown errors become a 500 without leaking details.
func From(c *gin.Context, err error) {
	var ke *KindError
	code := "internal_error"
	if errors.As(err, &ke) {
		code = ke.code
	}

	switch {
	case errors.Is(err, ErrConflict):
		Write(c, http.StatusConflict, code, "Resource already exists.")
	case errors.Is(err, ErrNotFound):
		Write(c, http.StatusNotFound, code, "Resource not found.")
	case errors.Is(err, ErrUnauthenticated):
		Write(c, http.StatusUnauthorized, code, "Authentication required.")
	case errors.Is(err, ErrForbidden):
		Write(c, http.StatusForbidden, code, "Permission denied.")
	default:
		Write(c, http.StatusInternalServerError, "internal_error", "Internal error.")
	}
}
