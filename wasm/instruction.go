package wasm

import (
	"fmt"

	"github.com/tetratelabs/wasmvm/api"
)

// Operation is a single instruction of a function body. The set of implementations is closed: the engine dispatches
// on Kind.
type Operation interface {
	fmt.Stringer
	Kind() OperationKind
}

type OperationKind uint16

const (
	OperationKindNop OperationKind = iota
	OperationKindUnsupported
	OperationKindConst
	OperationKindDrop
	OperationKindSelect
	OperationKindLocalGet
	OperationKindLocalSet
	OperationKindLocalTee
	OperationKindReturn
	OperationKindIntBinary
	OperationKindIntUnary
	OperationKindIntCompare
	OperationKindIntEqz

	// operationKindEnd is always placed at the bottom of this iota definition to be used in the test.
	operationKindEnd
)

func (o OperationKind) String() (ret string) {
	switch o {
	case OperationKindNop:
		ret = "Nop"
	case OperationKindUnsupported:
		ret = "Unsupported"
	case OperationKindConst:
		ret = "Const"
	case OperationKindDrop:
		ret = "Drop"
	case OperationKindSelect:
		ret = "Select"
	case OperationKindLocalGet:
		ret = "LocalGet"
	case OperationKindLocalSet:
		ret = "LocalSet"
	case OperationKindLocalTee:
		ret = "LocalTee"
	case OperationKindReturn:
		ret = "Return"
	case OperationKindIntBinary:
		ret = "IntBinary"
	case OperationKindIntUnary:
		ret = "IntUnary"
	case OperationKindIntCompare:
		ret = "IntCompare"
	case OperationKindIntEqz:
		ret = "IntEqz"
	default:
		ret = fmt.Sprintf("OperationKind(%d)", uint16(o))
	}
	return
}

// IntType is the operand type of an integer instruction.
type IntType byte

const (
	IntTypeI32 IntType = iota
	IntTypeI64
)

func (t IntType) String() (ret string) {
	switch t {
	case IntTypeI32:
		ret = "i32"
	case IntTypeI64:
		ret = "i64"
	default:
		ret = fmt.Sprintf("IntType(%d)", byte(t))
	}
	return
}

func (t IntType) valid() bool {
	return t == IntTypeI32 || t == IntTypeI64
}

// ValueType returns the api.ValueType of operands and results of this type.
func (t IntType) ValueType() api.ValueType {
	if t == IntTypeI64 {
		return api.ValueTypeI64
	}
	return api.ValueTypeI32
}

// BitWidth returns 32 or 64.
func (t IntType) BitWidth() uint64 {
	if t == IntTypeI64 {
		return 64
	}
	return 32
}

// IntBinaryOp is the arithmetic or bitwise operator of OperationIntBinary. The suffix of signedness-dependent
// operators (S or U) determines how the operand bits are interpreted.
type IntBinaryOp byte

const (
	IntBinaryOpAdd IntBinaryOp = iota
	IntBinaryOpSub
	IntBinaryOpMul
	IntBinaryOpDivS
	IntBinaryOpDivU
	IntBinaryOpRemS
	IntBinaryOpRemU
	IntBinaryOpAnd
	IntBinaryOpOr
	IntBinaryOpXor
	IntBinaryOpShl
	IntBinaryOpShrU
	IntBinaryOpShrS
	IntBinaryOpRotl
	IntBinaryOpRotr
)

var intBinaryOpNames = [...]string{
	IntBinaryOpAdd:  "add",
	IntBinaryOpSub:  "sub",
	IntBinaryOpMul:  "mul",
	IntBinaryOpDivS: "div_s",
	IntBinaryOpDivU: "div_u",
	IntBinaryOpRemS: "rem_s",
	IntBinaryOpRemU: "rem_u",
	IntBinaryOpAnd:  "and",
	IntBinaryOpOr:   "or",
	IntBinaryOpXor:  "xor",
	IntBinaryOpShl:  "shl",
	IntBinaryOpShrU: "shr_u",
	IntBinaryOpShrS: "shr_s",
	IntBinaryOpRotl: "rotl",
	IntBinaryOpRotr: "rotr",
}

func (o IntBinaryOp) String() string {
	if int(o) < len(intBinaryOpNames) {
		return intBinaryOpNames[o]
	}
	return fmt.Sprintf("IntBinaryOp(%d)", byte(o))
}

type IntUnaryOp byte

const (
	IntUnaryOpClz IntUnaryOp = iota
	IntUnaryOpCtz
	IntUnaryOpPopcnt
)

func (o IntUnaryOp) String() (ret string) {
	switch o {
	case IntUnaryOpClz:
		ret = "clz"
	case IntUnaryOpCtz:
		ret = "ctz"
	case IntUnaryOpPopcnt:
		ret = "popcnt"
	default:
		ret = fmt.Sprintf("IntUnaryOp(%d)", byte(o))
	}
	return
}

type IntCompareOp byte

const (
	IntCompareOpEq IntCompareOp = iota
	IntCompareOpNe
	IntCompareOpLtS
	IntCompareOpLeS
	IntCompareOpLtU
	IntCompareOpLeU
	IntCompareOpGtS
	IntCompareOpGeS
	IntCompareOpGtU
	IntCompareOpGeU
)

var intCompareOpNames = [...]string{
	IntCompareOpEq:  "eq",
	IntCompareOpNe:  "ne",
	IntCompareOpLtS: "lt_s",
	IntCompareOpLeS: "le_s",
	IntCompareOpLtU: "lt_u",
	IntCompareOpLeU: "le_u",
	IntCompareOpGtS: "gt_s",
	IntCompareOpGeS: "ge_s",
	IntCompareOpGtU: "gt_u",
	IntCompareOpGeU: "ge_u",
}

func (o IntCompareOp) String() string {
	if int(o) < len(intCompareOpNames) {
		return intCompareOpNames[o]
	}
	return fmt.Sprintf("IntCompareOp(%d)", byte(o))
}

// Family groups instructions which are recognized, but whose semantics are not implemented by the engine.
type Family byte

const (
	FamilyControl Family = iota
	FamilyCall
	FamilyMemory
	FamilyFloat
	FamilyConversion
	FamilyVariable
)

func (f Family) String() (ret string) {
	switch f {
	case FamilyControl:
		ret = "control"
	case FamilyCall:
		ret = "call"
	case FamilyMemory:
		ret = "memory"
	case FamilyFloat:
		ret = "float"
	case FamilyConversion:
		ret = "conversion"
	case FamilyVariable:
		ret = "variable"
	default:
		ret = fmt.Sprintf("Family(%d)", byte(f))
	}
	return
}

// OperationNop does nothing.
type OperationNop struct{}

// Kind implements Operation.Kind.
func (o *OperationNop) Kind() OperationKind {
	return OperationKindNop
}

func (o *OperationNop) String() string {
	return "nop"
}

// OperationUnsupported is an instruction that is part of the format, but not implemented by the engine, ex.
// "i32.load" or "br_if".
//
// Unlike OperationNop, executing this is a signal of a correctness gap: the engine either skips it and logs, or
// fails the call with ErrUnsupportedOperation when strict.
type OperationUnsupported struct {
	// Name is the instruction name as written in the source, ex. "f32.add".
	Name   string
	Family Family
}

// Kind implements Operation.Kind.
func (o *OperationUnsupported) Kind() OperationKind {
	return OperationKindUnsupported
}

func (o *OperationUnsupported) String() string {
	return o.Name
}

// OperationConst pushes Value.
type OperationConst struct{ Value api.Value }

// Kind implements Operation.Kind.
func (o *OperationConst) Kind() OperationKind {
	return OperationKindConst
}

func (o *OperationConst) String() string {
	switch o.Value.Type {
	case api.ValueTypeI32:
		return fmt.Sprintf("i32.const %d", o.Value.I32())
	case api.ValueTypeI64:
		return fmt.Sprintf("i64.const %d", o.Value.I64())
	case api.ValueTypeF32:
		return fmt.Sprintf("f32.const %v", o.Value.F32())
	default:
		return fmt.Sprintf("%s.const %v", api.ValueTypeName(o.Value.Type), o.Value.F64())
	}
}

// OperationDrop pops and discards one value.
type OperationDrop struct{}

// Kind implements Operation.Kind.
func (o *OperationDrop) Kind() OperationKind {
	return OperationKindDrop
}

func (o *OperationDrop) String() string {
	return "drop"
}

// OperationSelect pops an i32 condition then two values, pushing the first if the condition is non-zero, otherwise
// the second.
type OperationSelect struct{}

// Kind implements Operation.Kind.
func (o *OperationSelect) Kind() OperationKind {
	return OperationKindSelect
}

func (o *OperationSelect) String() string {
	return "select"
}

// OperationLocalGet pushes the value of the local slot Index.
type OperationLocalGet struct{ Index Index }

// Kind implements Operation.Kind.
func (o *OperationLocalGet) Kind() OperationKind {
	return OperationKindLocalGet
}

func (o *OperationLocalGet) String() string {
	return fmt.Sprintf("local.get %d", o.Index)
}

// OperationLocalSet pops a value into the local slot Index.
type OperationLocalSet struct{ Index Index }

// Kind implements Operation.Kind.
func (o *OperationLocalSet) Kind() OperationKind {
	return OperationKindLocalSet
}

func (o *OperationLocalSet) String() string {
	return fmt.Sprintf("local.set %d", o.Index)
}

// OperationLocalTee stores the top of the stack into the local slot Index, leaving the stack unchanged.
type OperationLocalTee struct{ Index Index }

// Kind implements Operation.Kind.
func (o *OperationLocalTee) Kind() OperationKind {
	return OperationKindLocalTee
}

func (o *OperationLocalTee) String() string {
	return fmt.Sprintf("local.tee %d", o.Index)
}

// OperationReturn completes the call. When HasArg, the top of the stack is the result.
type OperationReturn struct{ HasArg bool }

// Kind implements Operation.Kind.
func (o *OperationReturn) Kind() OperationKind {
	return OperationKindReturn
}

func (o *OperationReturn) String() string {
	if o.HasArg {
		return "return 1"
	}
	return "return"
}

// OperationIntBinary pops the right, then the left operand and pushes the result of Op.
type OperationIntBinary struct {
	Type IntType
	Op   IntBinaryOp
}

// Kind implements Operation.Kind.
func (o *OperationIntBinary) Kind() OperationKind {
	return OperationKindIntBinary
}

func (o *OperationIntBinary) String() string {
	return o.Type.String() + "." + o.Op.String()
}

type OperationIntUnary struct {
	Type IntType
	Op   IntUnaryOp
}

// Kind implements Operation.Kind.
func (o *OperationIntUnary) Kind() OperationKind {
	return OperationKindIntUnary
}

func (o *OperationIntUnary) String() string {
	return o.Type.String() + "." + o.Op.String()
}

// OperationIntCompare pops the right, then the left operand and pushes an i32 1 if the comparison holds, or 0.
type OperationIntCompare struct {
	Type IntType
	Op   IntCompareOp
}

// Kind implements Operation.Kind.
func (o *OperationIntCompare) Kind() OperationKind {
	return OperationKindIntCompare
}

func (o *OperationIntCompare) String() string {
	return o.Type.String() + "." + o.Op.String()
}

type OperationIntEqz struct{ Type IntType }

// Kind implements Operation.Kind.
func (o *OperationIntEqz) Kind() OperationKind {
	return OperationKindIntEqz
}

func (o *OperationIntEqz) String() string {
	return o.Type.String() + ".eqz"
}
