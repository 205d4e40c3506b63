package errorhandler

import (
	"errors"
	"strings"
)

// UsageError marks command-line usage mistakes such as bad flags, unknown
// subcommands, or invalid configuration values, so callers can map them to a
// distinct exit code.
type UsageError struct {
	cause error
}

// NewUsageError wraps cause as a usage mistake.
func NewUsageError(cause error) *UsageError {
	return &UsageError{cause: cause}
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e == nil || e.cause == nil {
		return "invalid usage"
	}

	return e.cause.Error()
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *UsageError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// IsUsageError reports whether err stems from command-line usage. Flag
// errors are wrapped in *UsageError via cobra's SetFlagErrorFunc, but
// unknown subcommands surface as plain errors from Execute, so the error
// text is inspected as a fallback.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return true
	}

	message := err.Error()

	return strings.Contains(message, "unknown command") ||
		strings.Contains(message, "unknown flag") ||
		strings.Contains(message, "unknown shorthand flag")
}
