package wasm

import "errors"

// The errors below are usage errors: they mean the module or the call was constructed incorrectly by a
// collaborator. They are never traps, which are reported through api.Result instead.
var (
	// ErrFunctionIndexOutOfRange means an export or call referenced a function that doesn't exist.
	ErrFunctionIndexOutOfRange = errors.New("function index out of range")
	// ErrLocalIndexOutOfRange means a local instruction referenced a slot beyond params and locals.
	ErrLocalIndexOutOfRange = errors.New("local index out of range")
	// ErrInvalidArguments means the arguments of a call don't match the parameter types of the function.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrInvalidValueType means a signature or local declared a type that isn't a value type.
	ErrInvalidValueType = errors.New("invalid value type")
	// ErrTooManyResults means a function type declared more than one result.
	ErrTooManyResults = errors.New("at most one result allowed")
	// ErrInvalidOperation means an operation has an operand type or operator the engine doesn't define.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrTypeMismatch means an instruction consumed a value of a type other than the one it is defined for.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrStackUnderflow means an instruction popped more values than were on the operand stack.
	ErrStackUnderflow = errors.New("operand stack underflow")
	// ErrUnsupportedOperation means a recognized, but unimplemented instruction was executed in strict mode.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrBuilderFrozen means ModuleBuilder was modified after Build.
	ErrBuilderFrozen = errors.New("module builder already built")
)
