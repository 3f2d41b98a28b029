package wasm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wasmvm/api"
)

// TestOperationKind_String ensures that each OperationKind is defined in the String method.
func TestOperationKind_String(t *testing.T) {
	for k := OperationKind(0); k < operationKindEnd; k++ {
		require.NotContains(t, k.String(), "OperationKind(")
	}
	require.Equal(t, "OperationKind(999)", OperationKind(999).String())
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op       Operation
		kind     OperationKind
		expected string
	}{
		{&OperationNop{}, OperationKindNop, "nop"},
		{&OperationUnsupported{Name: "f32.add", Family: FamilyFloat}, OperationKindUnsupported, "f32.add"},
		{&OperationConst{Value: api.ValueI32(-5)}, OperationKindConst, "i32.const -5"},
		{&OperationConst{Value: api.ValueI64(7)}, OperationKindConst, "i64.const 7"},
		{&OperationConst{Value: api.ValueF32(1.5)}, OperationKindConst, "f32.const 1.5"},
		{&OperationConst{Value: api.ValueF64(2.25)}, OperationKindConst, "f64.const 2.25"},
		{&OperationDrop{}, OperationKindDrop, "drop"},
		{&OperationSelect{}, OperationKindSelect, "select"},
		{&OperationLocalGet{Index: 1}, OperationKindLocalGet, "local.get 1"},
		{&OperationLocalSet{Index: 2}, OperationKindLocalSet, "local.set 2"},
		{&OperationLocalTee{Index: 3}, OperationKindLocalTee, "local.tee 3"},
		{&OperationReturn{}, OperationKindReturn, "return"},
		{&OperationReturn{HasArg: true}, OperationKindReturn, "return 1"},
		{&OperationIntBinary{Type: IntTypeI32, Op: IntBinaryOpDivU}, OperationKindIntBinary, "i32.div_u"},
		{&OperationIntBinary{Type: IntTypeI64, Op: IntBinaryOpRotr}, OperationKindIntBinary, "i64.rotr"},
		{&OperationIntUnary{Type: IntTypeI64, Op: IntUnaryOpPopcnt}, OperationKindIntUnary, "i64.popcnt"},
		{&OperationIntCompare{Type: IntTypeI32, Op: IntCompareOpGeU}, OperationKindIntCompare, "i32.ge_u"},
		{&OperationIntEqz{Type: IntTypeI64}, OperationKindIntEqz, "i64.eqz"},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.kind, tc.op.Kind())
			require.Equal(t, tc.expected, tc.op.String())
		})
	}
}

func TestIntBinaryOp_String(t *testing.T) {
	for op := IntBinaryOpAdd; op <= IntBinaryOpRotr; op++ {
		require.False(t, strings.HasPrefix(op.String(), "IntBinaryOp("), op)
	}
	require.Equal(t, "IntBinaryOp(200)", IntBinaryOp(200).String())
}

func TestIntCompareOp_String(t *testing.T) {
	for op := IntCompareOpEq; op <= IntCompareOpGeU; op++ {
		require.False(t, strings.HasPrefix(op.String(), "IntCompareOp("), op)
	}
	require.Equal(t, "IntCompareOp(200)", IntCompareOp(200).String())
}

func TestIntType(t *testing.T) {
	require.Equal(t, api.ValueTypeI32, IntTypeI32.ValueType())
	require.Equal(t, api.ValueTypeI64, IntTypeI64.ValueType())
	require.Equal(t, uint64(32), IntTypeI32.BitWidth())
	require.Equal(t, uint64(64), IntTypeI64.BitWidth())
	require.Equal(t, "IntType(7)", IntType(7).String())
}

func TestFamily_String(t *testing.T) {
	for f, expected := range map[Family]string{
		FamilyControl:    "control",
		FamilyCall:       "call",
		FamilyMemory:     "memory",
		FamilyFloat:      "float",
		FamilyConversion: "conversion",
		FamilyVariable:   "variable",
	} {
		require.Equal(t, expected, f.String())
	}
}
