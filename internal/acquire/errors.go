package acquire

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/muurk/wifipass/internal/platform"
)

// ErrorType represents the category of acquisition failure
type ErrorType int

const (
	// ErrTypePermissionDenied indicates a required permission is missing
	ErrTypePermissionDenied ErrorType = iota
	// ErrTypeSourceUnavailable indicates a source could not be read. It is
	// contained inside the chain and only surfaces in logs.
	ErrTypeSourceUnavailable
	// ErrTypeUnexpected indicates a failure outside the normal flow (panic)
	ErrTypeUnexpected
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypePermissionDenied:
		return "Permission Denied"
	case ErrTypeSourceUnavailable:
		return "Source Unavailable"
	case ErrTypeUnexpected:
		return "Unexpected Failure"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is a classified acquisition failure
type Error struct {
	Type    ErrorType
	Message string
	Missing []platform.Permission // set for ErrTypePermissionDenied
	Source  string                // set for ErrTypeSourceUnavailable
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// NewPermissionError creates a permission-denied error naming what is missing
func NewPermissionError(missing []platform.Permission) *Error {
	names := make([]string, len(missing))
	for i, p := range missing {
		names[i] = p.Label()
	}
	return &Error{
		Type:    ErrTypePermissionDenied,
		Message: "missing " + strings.Join(names, ", "),
		Missing: append([]platform.Permission(nil), missing...),
	}
}

// NewSourceError wraps a source failure
func NewSourceError(source string, err error) *Error {
	return &Error{
		Type:    ErrTypeSourceUnavailable,
		Message: source + " source unavailable",
		Source:  source,
		Err:     err,
	}
}

// NewUnexpectedError creates an unexpected-failure error
func NewUnexpectedError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeUnexpected,
		Message: message,
		Err:     err,
	}
}

func asError(err error) (*Error, bool) {
	var acqErr *Error
	if errors.As(err, &acqErr) {
		return acqErr, true
	}
	return nil, false
}

// IsPermissionDenied checks if an error is a permission-denied error
func IsPermissionDenied(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypePermissionDenied
}

// IsSourceUnavailable checks if an error is a source failure
func IsSourceUnavailable(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeSourceUnavailable
}

// IsUnexpected checks if an error is an unexpected failure
func IsUnexpected(err error) bool {
	e, ok := asError(err)
	return ok && e.Type == ErrTypeUnexpected
}

// ShortMessage returns a concise, user-facing message. It never contains
// the underlying technical error text.
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	e, ok := asError(err)
	if !ok {
		if errors.Is(err, context.Canceled) {
			return "Cancelled"
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "Timed out while reading saved networks"
		}
		return "Something went wrong while reading saved networks"
	}
	switch e.Type {
	case ErrTypePermissionDenied:
		return "Permissions are required to read saved networks"
	case ErrTypeSourceUnavailable:
		return "A credential source could not be read"
	default:
		return "Something went wrong while reading saved networks"
	}
}

// TroubleshootingHint returns user-friendly advice for an error
func TroubleshootingHint(err error) string {
	e, ok := asError(err)
	if !ok {
		return "Try reloading. Set WIFIPASS_LOG_LEVEL=debug for details."
	}

	switch e.Type {
	case ErrTypePermissionDenied:
		lines := []string{"The following permissions are missing:"}
		for _, p := range e.Missing {
			lines = append(lines, "  • "+p.Label())
		}
		lines = append(lines,
			"Grant them from the permission screen (press g),",
			"or run: wifipass config init --grant",
		)
		return strings.Join(lines, "\n")

	case ErrTypeSourceUnavailable:
		return strings.Join([]string{
			"A credential source was not readable.",
			"Troubleshooting:",
			"  • Run 'wifipass doctor' to check backends and file access",
			"  • Reading wpa_supplicant.conf usually needs root",
		}, "\n")

	default:
		return "Try reloading. Set WIFIPASS_LOG_LEVEL=debug for details."
	}
}
