package interpreter

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/tetratelabs/wasmvm/internal/wasmruntime"
	"github.com/tetratelabs/wasmvm/wasm"
)

// intBinary returns the result of op applied to the left operand x1 and the right operand x2. Operands and the
// result of IntTypeI32 are held in the low 32 bits.
//
// This panics with a wasmruntime.Error on division by zero or signed division overflow.
func intBinary(t wasm.IntType, op wasm.IntBinaryOp, x1, x2 uint64) uint64 {
	if t == wasm.IntTypeI32 {
		return uint64(i32Binary(op, uint32(x1), uint32(x2)))
	}
	return i64Binary(op, x1, x2)
}

func i32Binary(op wasm.IntBinaryOp, x1, x2 uint32) uint32 {
	switch op {
	case wasm.IntBinaryOpAdd:
		return x1 + x2
	case wasm.IntBinaryOpSub:
		return x1 - x2
	case wasm.IntBinaryOpMul:
		return x1 * x2
	case wasm.IntBinaryOpDivS:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		s1, s2 := int32(x1), int32(x2)
		if s1 == math.MinInt32 && s2 == -1 {
			panic(wasmruntime.ErrRuntimeIntegerOverflow)
		}
		return uint32(s1 / s2)
	case wasm.IntBinaryOpDivU:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x1 / x2
	case wasm.IntBinaryOpRemS:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		s1, s2 := int32(x1), int32(x2)
		if s2 == -1 {
			return 0 // MinInt32 % -1 doesn't trap.
		}
		return uint32(s1 % s2)
	case wasm.IntBinaryOpRemU:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x1 % x2
	case wasm.IntBinaryOpAnd:
		return x1 & x2
	case wasm.IntBinaryOpOr:
		return x1 | x2
	case wasm.IntBinaryOpXor:
		return x1 ^ x2
	case wasm.IntBinaryOpShl:
		return x1 << (x2 % 32)
	case wasm.IntBinaryOpShrU:
		return x1 >> (x2 % 32)
	case wasm.IntBinaryOpShrS:
		return uint32(int32(x1) >> (x2 % 32))
	case wasm.IntBinaryOpRotl:
		return bits.RotateLeft32(x1, int(x2%32))
	case wasm.IntBinaryOpRotr:
		return bits.RotateLeft32(x1, -int(x2%32))
	}
	panic(fmt.Errorf("BUG: unknown %s", op))
}

func i64Binary(op wasm.IntBinaryOp, x1, x2 uint64) uint64 {
	switch op {
	case wasm.IntBinaryOpAdd:
		return x1 + x2
	case wasm.IntBinaryOpSub:
		return x1 - x2
	case wasm.IntBinaryOpMul:
		return x1 * x2
	case wasm.IntBinaryOpDivS:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		s1, s2 := int64(x1), int64(x2)
		if s1 == math.MinInt64 && s2 == -1 {
			panic(wasmruntime.ErrRuntimeIntegerOverflow)
		}
		return uint64(s1 / s2)
	case wasm.IntBinaryOpDivU:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x1 / x2
	case wasm.IntBinaryOpRemS:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		s1, s2 := int64(x1), int64(x2)
		if s2 == -1 {
			return 0 // MinInt64 % -1 doesn't trap.
		}
		return uint64(s1 % s2)
	case wasm.IntBinaryOpRemU:
		if x2 == 0 {
			panic(wasmruntime.ErrRuntimeIntegerDivideByZero)
		}
		return x1 % x2
	case wasm.IntBinaryOpAnd:
		return x1 & x2
	case wasm.IntBinaryOpOr:
		return x1 | x2
	case wasm.IntBinaryOpXor:
		return x1 ^ x2
	case wasm.IntBinaryOpShl:
		return x1 << (x2 % 64)
	case wasm.IntBinaryOpShrU:
		return x1 >> (x2 % 64)
	case wasm.IntBinaryOpShrS:
		return uint64(int64(x1) >> (x2 % 64))
	case wasm.IntBinaryOpRotl:
		return bits.RotateLeft64(x1, int(x2%64))
	case wasm.IntBinaryOpRotr:
		return bits.RotateLeft64(x1, -int(x2%64))
	}
	panic(fmt.Errorf("BUG: unknown %s", op))
}

func intUnary(t wasm.IntType, op wasm.IntUnaryOp, x uint64) uint64 {
	if t == wasm.IntTypeI32 {
		switch op {
		case wasm.IntUnaryOpClz:
			return uint64(bits.LeadingZeros32(uint32(x)))
		case wasm.IntUnaryOpCtz:
			return uint64(bits.TrailingZeros32(uint32(x)))
		case wasm.IntUnaryOpPopcnt:
			return uint64(bits.OnesCount32(uint32(x)))
		}
	} else {
		switch op {
		case wasm.IntUnaryOpClz:
			return uint64(bits.LeadingZeros64(x))
		case wasm.IntUnaryOpCtz:
			return uint64(bits.TrailingZeros64(x))
		case wasm.IntUnaryOpPopcnt:
			return uint64(bits.OnesCount64(x))
		}
	}
	panic(fmt.Errorf("BUG: unknown %s", op))
}

// intCompare returns the result of comparing the left operand x1 to the right operand x2.
func intCompare(t wasm.IntType, op wasm.IntCompareOp, x1, x2 uint64) bool {
	var s1, s2 int64
	if t == wasm.IntTypeI32 {
		x1, x2 = uint64(uint32(x1)), uint64(uint32(x2))
		s1, s2 = int64(int32(x1)), int64(int32(x2))
	} else {
		s1, s2 = int64(x1), int64(x2)
	}

	switch op {
	case wasm.IntCompareOpEq:
		return x1 == x2
	case wasm.IntCompareOpNe:
		return x1 != x2
	case wasm.IntCompareOpLtS:
		return s1 < s2
	case wasm.IntCompareOpLeS:
		return s1 <= s2
	case wasm.IntCompareOpLtU:
		return x1 < x2
	case wasm.IntCompareOpLeU:
		return x1 <= x2
	case wasm.IntCompareOpGtS:
		return s1 > s2
	case wasm.IntCompareOpGeS:
		return s1 >= s2
	case wasm.IntCompareOpGtU:
		return x1 > x2
	case wasm.IntCompareOpGeU:
		return x1 >= x2
	}
	panic(fmt.Errorf("BUG: unknown %s", op))
}
