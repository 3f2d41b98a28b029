// Package wasmruntime contains the errors which are traps: defined failures of the program being executed.
package wasmruntime

import "errors"

// Error is a trap raised by the engine during execution. Callers receive it via api.Result Trap.
type Error struct {
	s string
}

func New(text string) *Error {
	return &Error{s: text}
}

// Error implements error.
func (e *Error) Error() string {
	return e.s
}

// All the errors are returned by the engine during the execution of functions, and they indicate that the virtual
// machine's state for the call is unrecoverable.
var (
	// ErrRuntimeIntegerOverflow indicates that an integer arithmetic resulted in an overflow value. For example,
	// signed division of the minimum value by -1.
	ErrRuntimeIntegerOverflow = New("integer overflow")
	// ErrRuntimeIntegerDivideByZero indicates that an integer div or rem instruction was executed with 0 as the
	// divisor.
	ErrRuntimeIntegerDivideByZero = New("integer divide by zero")
)

// IsTrap returns true if err is or wraps an Error.
func IsTrap(err error) bool {
	var e *Error
	return errors.As(err, &e)
}
