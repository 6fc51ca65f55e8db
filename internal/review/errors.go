package review

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned by Assemble when comments and feedback items
// cannot be paired one to one.
var ErrLengthMismatch = errors.New("comments and feedback items differ in length")

// InputValidationError reports a request that cannot be analyzed. It is
// returned before any completion call is made.
type InputValidationError struct {
	Field   string
	Message string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsInputValidation checks if an error is an input validation error.
func IsInputValidation(err error) bool {
	var ive *InputValidationError
	return errors.As(err, &ive)
}

// MalformedResponseError reports completion text that could not be turned
// into a FeedbackItem.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response: %s: %v", e.Reason, e.Err)
	}
	return "malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
