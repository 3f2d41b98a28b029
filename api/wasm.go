// Package api includes constants and interfaces used by both end-users and internal implementations.
package api

import (
	"fmt"
	"math"
)

// ValueType describes a numeric type used in a function signature or as the declared type of a local slot.
//
// The following describes how to convert between wasmvm and Golang types:
//   - ValueTypeI32 - ValueI32(int32) or ValueU32(uint32)
//   - ValueTypeI64 - ValueI64(int64) or ValueU64(uint64)
//   - ValueTypeF32 - ValueF32(float32), see EncodeF32 and DecodeF32
//   - ValueTypeF64 - ValueF64(float64), see EncodeF64 and DecodeF64
//
// Note: This is a type alias as it is easier to encode and decode in the binary format.
type ValueType = byte

const (
	// ValueTypeI32 is a 32-bit integer.
	ValueTypeI32 ValueType = 0x7f
	// ValueTypeI64 is a 64-bit integer.
	ValueTypeI64 ValueType = 0x7e
	// ValueTypeF32 is a 32-bit floating point number.
	ValueTypeF32 ValueType = 0x7d
	// ValueTypeF64 is a 64-bit floating point number.
	ValueTypeF64 ValueType = 0x7c
)

// ValueTypeName returns the type name of the given ValueType as a string.
// These type names match the names used in the WebAssembly text format.
//
// Note: This returns "unknown", if an undefined ValueType value is passed.
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	case ValueTypeF32:
		return "f32"
	case ValueTypeF64:
		return "f64"
	}
	return "unknown"
}

// Module exports functions of a module, post-instantiation.
//
// Note: This is an interface for decoupling, not third-party implementations. All implementations are in wasmvm.
type Module interface {
	fmt.Stringer

	// ExportedFunction returns a function exported from this module or nil if it wasn't.
	//
	// Note: When more than one export has the same name, the first one in declaration order wins.
	ExportedFunction(name string) Function

	// Function returns the function at the given index or nil if the index is out of range.
	Function(index uint32) Function

	// NumFunctions is the count of functions defined in this module.
	NumFunctions() uint32
}

// Function is a function in an instantiated module.
//
// Note: This is an interface for decoupling, not third-party implementations. All implementations are in wasmvm.
type Function interface {
	// ParamTypes are the possibly empty sequence of value types accepted by a function with this signature.
	ParamTypes() []ValueType

	// ResultTypes are the possibly empty sequence of value types returned by a function with this signature.
	//
	// Note: There can be at most one result.
	ResultTypes() []ValueType

	// Call invokes the function with the given parameters.
	//
	// The returned Result is either a value, no value or a trap. A non-nil error means the call could not be
	// performed at all, for example because the parameters don't match ParamTypes. Such errors are never traps.
	//
	// Note: Each call gets its own operand stack and locals, so concurrent calls are safe.
	Call(params ...Value) (Result, error)
}

// EncodeI32 encodes the input as a ValueTypeI32.
func EncodeI32(input int32) uint64 {
	return uint64(uint32(input))
}

// EncodeI64 encodes the input as a ValueTypeI64.
func EncodeI64(input int64) uint64 {
	return uint64(input)
}

// EncodeF32 encodes the input as a ValueTypeF32.
// See DecodeF32
func EncodeF32(input float32) uint64 {
	return uint64(math.Float32bits(input))
}

// DecodeF32 decodes the input as a ValueTypeF32.
// See EncodeF32
func DecodeF32(input uint64) float32 {
	return math.Float32frombits(uint32(input))
}

// EncodeF64 encodes the input as a ValueTypeF64.
// See EncodeF32
func EncodeF64(input float64) uint64 {
	return math.Float64bits(input)
}

// DecodeF64 decodes the input as a ValueTypeF64.
// See EncodeF64
func DecodeF64(input uint64) float64 {
	return math.Float64frombits(input)
}
