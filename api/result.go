package api

import "fmt"

// Result is the outcome of Function.Call: exactly one of a returned value, no value, or a trap.
//
// A trap is a first-class outcome, not a Go error: it is the defined failure of the program being run, such as an
// integer division by zero. Results are comparable with Equal.
type Result struct {
	value    Value
	hasValue bool
	trap     error
}

// ValueResult returns a Result holding the returned value.
func ValueResult(v Value) Result {
	return Result{value: v, hasValue: true}
}

// EmptyResult returns a Result of a call that completed without a value.
func EmptyResult() Result {
	return Result{}
}

// TrapResult returns a Result of a call that trapped with the given cause.
func TrapResult(cause error) Result {
	if cause == nil {
		panic("BUG: trap without a cause")
	}
	return Result{trap: cause}
}

// Value returns the returned value and true, or false if there was none or the call trapped.
func (r Result) Value() (Value, bool) {
	return r.value, r.hasValue
}

// IsTrap returns true if the call trapped.
func (r Result) IsTrap() bool {
	return r.trap != nil
}

// Trap returns the cause of the trap or nil if the call didn't trap.
func (r Result) Trap() error {
	return r.trap
}

// Equal returns true if both results have the same outcome. Traps are equal regardless of cause.
func (r Result) Equal(o Result) bool {
	if r.IsTrap() || o.IsTrap() {
		return r.IsTrap() == o.IsTrap()
	}
	return r.hasValue == o.hasValue && r.value == o.value
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch {
	case r.trap != nil:
		return fmt.Sprintf("trap(%v)", r.trap)
	case r.hasValue:
		return fmt.Sprintf("value(%s)", r.value)
	default:
		return "value(none)"
	}
}
