package wasm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wasmvm/api"
)

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
	f32 = api.ValueTypeF32
)

func TestFunction_SlotType(t *testing.T) {
	f := &Function{
		Type:       &FunctionType{Params: []ValueType{i32, i64}},
		LocalTypes: []ValueType{f32, i64},
	}
	require.Equal(t, uint32(4), f.NumSlots())
	require.Equal(t, i32, f.SlotType(0))
	require.Equal(t, i64, f.SlotType(1))
	require.Equal(t, f32, f.SlotType(2))
	require.Equal(t, i64, f.SlotType(3))
}

func TestFunction_ResultType(t *testing.T) {
	_, ok := (&Function{Type: &FunctionType{}}).ResultType()
	require.False(t, ok)

	rt, ok := (&Function{Type: &FunctionType{Results: []ValueType{i64}}}).ResultType()
	require.True(t, ok)
	require.Equal(t, i64, rt)
}

func TestModule_ExportedFunctionIndex(t *testing.T) {
	m := &Module{
		Functions: []*Function{{Type: &FunctionType{}}, {Type: &FunctionType{}}, {Type: &FunctionType{}}},
		Exports: []*Export{
			nil,
			{Name: "a", Index: 0},
			{Name: "dup", Index: 2},
			{Name: "dup", Index: 1},
		},
	}

	idx, ok := m.ExportedFunctionIndex("a")
	require.True(t, ok)
	require.Equal(t, Index(0), idx)

	// The first in declaration order wins.
	idx, ok = m.ExportedFunctionIndex("dup")
	require.True(t, ok)
	require.Equal(t, Index(2), idx)

	_, ok = m.ExportedFunctionIndex("missing")
	require.False(t, ok)
}

func TestModule_Validate(t *testing.T) {
	nullary := &FunctionType{}
	tests := []struct {
		name        string
		input       *Module
		expectedErr string
	}{
		{
			name:  "empty",
			input: &Module{},
		},
		{
			name: "locals in range",
			input: &Module{Functions: []*Function{{
				Type:       &FunctionType{Params: []ValueType{i32}},
				LocalTypes: []ValueType{i64},
				Body: []Operation{
					&OperationLocalGet{Index: 0}, &OperationLocalTee{Index: 0}, &OperationLocalSet{Index: 0},
					&OperationConst{Value: api.ValueI64(1)}, &OperationLocalSet{Index: 1},
				},
			}}},
		},
		{
			name:        "nil type",
			input:       &Module{Functions: []*Function{{}}},
			expectedErr: "invalid function[0]: nil type",
		},
		{
			name:        "nil function",
			input:       &Module{Functions: []*Function{nil}},
			expectedErr: "invalid function[0]: nil function",
		},
		{
			name: "too many results",
			input: &Module{Functions: []*Function{
				{Type: nullary},
				{Type: &FunctionType{Results: []ValueType{i32, i32}}},
			}},
			expectedErr: "invalid function[1]: at most one result allowed: null_i32i32",
		},
		{
			name:        "invalid param type",
			input:       &Module{Functions: []*Function{{Type: &FunctionType{Params: []ValueType{0x40}}}}},
			expectedErr: "invalid function[0]: invalid value type: 0x40",
		},
		{
			name:        "invalid local type",
			input:       &Module{Functions: []*Function{{Type: nullary, LocalTypes: []ValueType{1}}}},
			expectedErr: "invalid function[0]: invalid value type: 0x1",
		},
		{
			name: "local get out of range",
			input: &Module{Functions: []*Function{{
				Type:       &FunctionType{Params: []ValueType{i32}},
				LocalTypes: []ValueType{i32},
				Body:       []Operation{&OperationNop{}, &OperationLocalGet{Index: 2}},
			}}},
			expectedErr: "invalid function[0]: local index out of range: local.get 2 at pc=1, but only 2 slots",
		},
		{
			name: "local set out of range",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationLocalSet{Index: 0}},
			}}},
			expectedErr: "invalid function[0]: local index out of range: local.set 0 at pc=0, but only 0 slots",
		},
		{
			name: "nil operation",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{nil},
			}}},
			expectedErr: "invalid function[0]: nil operation at pc=0",
		},
		{
			name: "int operations in range",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{
					&OperationIntBinary{Type: IntTypeI64, Op: IntBinaryOpRotr},
					&OperationIntUnary{Type: IntTypeI32, Op: IntUnaryOpPopcnt},
					&OperationIntCompare{Type: IntTypeI64, Op: IntCompareOpGeU},
					&OperationIntEqz{Type: IntTypeI32},
				},
			}}},
		},
		{
			name: "int binary unknown type",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationNop{}, &OperationIntBinary{Type: IntType(7), Op: IntBinaryOpShl}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: IntType(7).shl at pc=1",
		},
		{
			name: "int binary unknown operator",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationIntBinary{Type: IntTypeI32, Op: IntBinaryOp(99)}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: i32.IntBinaryOp(99) at pc=0",
		},
		{
			name: "int unary unknown type",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationIntUnary{Type: IntType(2), Op: IntUnaryOpClz}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: IntType(2).clz at pc=0",
		},
		{
			name: "int unary unknown operator",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationIntUnary{Type: IntTypeI64, Op: IntUnaryOp(3)}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: i64.IntUnaryOp(3) at pc=0",
		},
		{
			name: "int compare unknown type",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationIntCompare{Type: IntType(2), Op: IntCompareOpEq}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: IntType(2).eq at pc=0",
		},
		{
			name: "int compare unknown operator",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationIntCompare{Type: IntTypeI32, Op: IntCompareOp(10)}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: i32.IntCompareOp(10) at pc=0",
		},
		{
			name: "eqz unknown type",
			input: &Module{Functions: []*Function{{
				Type: nullary,
				Body: []Operation{&OperationIntEqz{Type: IntType(9)}},
			}}},
			expectedErr: "invalid function[0]: invalid operation: IntType(9).eqz at pc=0",
		},
		{
			name: "nil export",
			input: &Module{
				Functions: []*Function{{Type: nullary}},
				Exports:   []*Export{{Name: "ok", Index: 0}, nil},
			},
			expectedErr: "invalid export[1]: nil export",
		},
		{
			name: "export out of range",
			input: &Module{
				Functions: []*Function{{Type: nullary}},
				Exports:   []*Export{{Name: "ok", Index: 0}, {Name: "bad", Index: 1}},
			},
			expectedErr: `invalid export[1] "bad": function index out of range: 1 >= 1`,
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.expectedErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.expectedErr)
			}
		})
	}
}
