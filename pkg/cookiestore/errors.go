package cookiestore

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidName     = errors.New("invalid cookie name")
	ErrInvalidValue    = errors.New("invalid cookie value")
	ErrInvalidExpiry   = errors.New("invalid cookie expiry")
	ErrMalformedCookie = errors.New("malformed cookie string")
)

// Error describes an input rejected before it reached the jar. Errors coming
// from the jar itself are never wrapped in an Error.
type Error struct {
	// Op is the operation that failed: "write", "read" or "parse".
	Op string
	// Name is the cookie name involved, possibly empty.
	Name string
	// Kind is one of the ErrXxx sentinels above.
	Kind error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cookiestore: %s %q: %v", e.Op, e.Name, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Kind
}
