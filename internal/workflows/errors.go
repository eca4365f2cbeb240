package workflows

import (
	"fmt"
	"strings"
)

// ValidationError represents user-facing validation issues.
type ValidationError struct {
	msg     string
	Details []string
}

func (e ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.msg
	}
	return e.msg + ": " + strings.Join(e.Details, "; ")
}

// Message returns the error summary without details.
func (e ValidationError) Message() string {
	return e.msg
}

// NewValidationError creates a new validation error.
func NewValidationError(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

func newValidationErrorWithDetails(msg string, details []string) error {
	return ValidationError{msg: msg, Details: details}
}
