package console

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyConnected is returned by Connect while a connection is live.
	ErrAlreadyConnected = errors.New("already connected; create another console to reach a second server")

	// ErrNotConnected is returned by Send and Close without a live connection.
	ErrNotConnected = errors.New("not connected to the server")

	// ErrNulByte is returned for commands containing byte 0. Color markers use byte 1.
	ErrNulByte = errors.New("command contains a NUL byte; color markers start with byte 1")
)

// ValidationError reports an argument rejected before anything was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidArg(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
