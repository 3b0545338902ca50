package workflow

import "fmt"

// Result is the outcome of a single workflow operation. It is constructed
// fresh per invocation and never mutated after return.
//
// Invariant: Error is set if and only if Success is false, and Details is
// never populated on failure. The Ok and Fail constructors enforce this.
type Result struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Ok returns a successful Result with the given summary and details.
func Ok(message string, details map[string]any) Result {
	return Result{
		Success: true,
		Message: message,
		Details: details,
	}
}

// Fail returns a failed Result. The formatted text serves as both the
// human-readable message and the diagnostic error.
func Fail(format string, args ...any) Result {
	msg := fmt.Sprintf(format, args...)
	return Result{
		Success: false,
		Message: msg,
		Error:   msg,
	}
}
