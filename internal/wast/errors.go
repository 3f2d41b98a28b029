package wast

import (
	"errors"
	"fmt"
)

var (
	// ErrExportNotFound means a command invoked a name the module doesn't export. This is a usage error of the
	// script, not a trap.
	ErrExportNotFound = errors.New("export not found")
	// ErrModuleNotFound means a command ran before any module was defined, or named a module which wasn't.
	ErrModuleNotFound = errors.New("module not found")
	// ErrAssertion means a command completed, but not with the expected result.
	ErrAssertion = errors.New("assertion failed")
)

// FormatError is an error parsing a script, positioned at the token which caused it.
type FormatError struct {
	// Line is the source line number determined by unescaped '\n' characters of the error or EOF
	Line uint32
	// Col is the column number of the error or EOF
	Col uint32
	// Context is where symbolically the error occurred. Ex "module[0].func[1]"
	Context string
	cause   error
}

func (e *FormatError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%d:%d: %v", e.Line, e.Col, e.cause)
	}
	return fmt.Sprintf("%d:%d: %v in %s", e.Line, e.Col, e.cause, e.Context)
}

func (e *FormatError) Unwrap() error {
	return e.cause
}
