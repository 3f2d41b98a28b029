package api

import (
	"fmt"
	"strconv"
)

// Value is a single typed scalar: the unit of computation on the operand stack and in local slots.
//
// Signed and unsigned variants of the same width share a representation. Only the operation applied to a Value
// decides how its bits are interpreted. Values are comparable with ==, which compares type and bits.
type Value struct {
	// Type is the value type this value was produced as.
	Type ValueType
	// bits holds the raw bit pattern. ValueTypeI32 and ValueTypeF32 are zero-extended.
	bits uint64
}

// ValueI32 returns a ValueTypeI32 value.
func ValueI32(v int32) Value {
	return Value{Type: ValueTypeI32, bits: EncodeI32(v)}
}

// ValueU32 returns a ValueTypeI32 value from its unsigned interpretation.
func ValueU32(v uint32) Value {
	return Value{Type: ValueTypeI32, bits: uint64(v)}
}

// ValueI64 returns a ValueTypeI64 value.
func ValueI64(v int64) Value {
	return Value{Type: ValueTypeI64, bits: EncodeI64(v)}
}

// ValueU64 returns a ValueTypeI64 value from its unsigned interpretation.
func ValueU64(v uint64) Value {
	return Value{Type: ValueTypeI64, bits: v}
}

// ValueF32 returns a ValueTypeF32 value.
func ValueF32(v float32) Value {
	return Value{Type: ValueTypeF32, bits: EncodeF32(v)}
}

// ValueF64 returns a ValueTypeF64 value.
func ValueF64(v float64) Value {
	return Value{Type: ValueTypeF64, bits: EncodeF64(v)}
}

// ValueFromBits returns a value of the given type from its raw bits, truncating them to the width of the type.
func ValueFromBits(t ValueType, bits uint64) Value {
	switch t {
	case ValueTypeI32, ValueTypeF32:
		bits = uint64(uint32(bits))
	}
	return Value{Type: t, bits: bits}
}

// ZeroValue returns the default value of a local slot of the given type.
func ZeroValue(t ValueType) Value {
	return Value{Type: t}
}

// Bits returns the raw bit pattern of this value.
func (v Value) Bits() uint64 {
	return v.bits
}

// I32 returns the signed interpretation of a ValueTypeI32.
func (v Value) I32() int32 {
	return int32(v.bits)
}

// U32 returns the unsigned interpretation of a ValueTypeI32.
func (v Value) U32() uint32 {
	return uint32(v.bits)
}

// I64 returns the signed interpretation of a ValueTypeI64.
func (v Value) I64() int64 {
	return int64(v.bits)
}

// U64 returns the unsigned interpretation of a ValueTypeI64.
func (v Value) U64() uint64 {
	return v.bits
}

// F32 returns the value of a ValueTypeF32.
func (v Value) F32() float32 {
	return DecodeF32(v.bits)
}

// F64 returns the value of a ValueTypeF64.
func (v Value) F64() float64 {
	return DecodeF64(v.bits)
}

// IsZero returns true if this is the zero value of its type. Negative zero floats are not zero here, as their bits
// are not.
func (v Value) IsZero() bool {
	return v.bits == 0
}

// String implements fmt.Stringer, ex. "i32:5" or "f64:1.5".
func (v Value) String() string {
	switch v.Type {
	case ValueTypeI32:
		return "i32:" + strconv.FormatInt(int64(v.I32()), 10)
	case ValueTypeI64:
		return "i64:" + strconv.FormatInt(v.I64(), 10)
	case ValueTypeF32:
		return "f32:" + strconv.FormatFloat(float64(v.F32()), 'g', -1, 32)
	case ValueTypeF64:
		return "f64:" + strconv.FormatFloat(v.F64(), 'g', -1, 64)
	}
	return fmt.Sprintf("%s:%#x", ValueTypeName(v.Type), v.bits)
}
