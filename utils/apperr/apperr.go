package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an engine error. Every failure the engine returns to a
// caller is one of these kinds; all are recoverable, none are fatal.
type Kind int

const (
	Validation Kind = iota
	NotFound
	RoundNotActive
	Eliminated
	DuplicateApplication
	InvalidState
	Authorization
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case RoundNotActive:
		return "round_not_active"
	case Eliminated:
		return "eliminated"
	case DuplicateApplication:
		return "duplicate_application"
	case InvalidState:
		return "invalid_state"
	case Authorization:
		return "authorization"
	}
	return "unknown"
}

// Error is a typed engine error carrying its kind and a caller-facing message
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds an error of the given kind with a formatted message
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an engine error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of an engine error, or ok=false for any other error
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Status maps an error to the HTTP status the transport layer should send.
// Non-engine errors map to 500.
func Status(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case RoundNotActive, Eliminated, Authorization:
		return http.StatusForbidden
	case DuplicateApplication, InvalidState:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
