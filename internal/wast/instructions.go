package wast

import (
	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/wasm"
)

// immediate is the kind of static arguments an instruction takes in the text format.
type immediate byte

const (
	immNone immediate = iota
	// immLocal is a local index or $id, resolved to a slot.
	immLocal
	// immIndex is a function, global or label index or $id, which isn't resolved.
	immIndex
	// immLabels is one or more label indices, ex. br_table 0 1 2
	immLabels
	// immMemArg is optional "offset=" and "align=" keywords.
	immMemArg
	// immConst is a numeric literal.
	immConst
	// immBlock is an optional label and block type, ex. block $l (result i32)
	immBlock
	// immLabel is an optional label, ex. end $l
	immLabel
	// immTypeUse is an optional table index followed by a type use, ex. call_indirect (type $t)
	immTypeUse
)

// instruction describes how to parse an instruction and build the operation it executes as.
type instruction struct {
	imm immediate
	// constType is the type of an immConst instruction.
	constType api.ValueType
	// newOp builds the operation given the resolved slot of an immLocal instruction, or zero.
	newOp func(slot wasm.Index) wasm.Operation
}

// instructions are indexed by mnemonic. Legacy mnemonics, such as "get_local", share the instruction of their
// current name.
var instructions = map[string]*instruction{}

func define(imm immediate, newOp func(wasm.Index) wasm.Operation, names ...string) {
	in := &instruction{imm: imm, newOp: newOp}
	for _, name := range names {
		instructions[name] = in
	}
}

// unsupported defines instructions which are recognized, but executed as wasm.OperationUnsupported.
func unsupported(family wasm.Family, imm immediate, names ...string) {
	for _, name := range names {
		op := &wasm.OperationUnsupported{Name: name, Family: family}
		instructions[name] = &instruction{imm: imm, newOp: func(wasm.Index) wasm.Operation { return op }}
	}
}

var (
	intTypes   = []wasm.IntType{wasm.IntTypeI32, wasm.IntTypeI64}
	floatNames = []string{"f32", "f64"}
)

func init() {
	define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationNop{} }, "nop")
	define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationDrop{} }, "drop")
	define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationSelect{} }, "select")
	define(immLocal, func(i wasm.Index) wasm.Operation { return &wasm.OperationLocalGet{Index: i} }, "local.get", "get_local")
	define(immLocal, func(i wasm.Index) wasm.Operation { return &wasm.OperationLocalSet{Index: i} }, "local.set", "set_local")
	define(immLocal, func(i wasm.Index) wasm.Operation { return &wasm.OperationLocalTee{Index: i} }, "local.tee", "tee_local")
	// HasArg depends on the function, so the parser sets it.
	define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationReturn{} }, "return")

	for _, t := range []api.ValueType{api.ValueTypeI32, api.ValueTypeI64, api.ValueTypeF32, api.ValueTypeF64} {
		instructions[api.ValueTypeName(t)+".const"] = &instruction{imm: immConst, constType: t}
	}

	for _, t := range intTypes {
		t := t
		prefix := t.String() + "."
		for op := wasm.IntBinaryOpAdd; op <= wasm.IntBinaryOpRotr; op++ {
			op := op
			define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationIntBinary{Type: t, Op: op} }, prefix+op.String())
		}
		for op := wasm.IntUnaryOpClz; op <= wasm.IntUnaryOpPopcnt; op++ {
			op := op
			define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationIntUnary{Type: t, Op: op} }, prefix+op.String())
		}
		for op := wasm.IntCompareOpEq; op <= wasm.IntCompareOpGeU; op++ {
			op := op
			define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationIntCompare{Type: t, Op: op} }, prefix+op.String())
		}
		define(immNone, func(wasm.Index) wasm.Operation { return &wasm.OperationIntEqz{Type: t} }, prefix+"eqz")
	}

	unsupported(wasm.FamilyControl, immNone, "unreachable")
	unsupported(wasm.FamilyControl, immBlock, "block", "loop", "if")
	unsupported(wasm.FamilyControl, immLabel, "else", "end")
	unsupported(wasm.FamilyControl, immIndex, "br", "br_if")
	unsupported(wasm.FamilyControl, immLabels, "br_table")
	unsupported(wasm.FamilyCall, immIndex, "call")
	unsupported(wasm.FamilyCall, immTypeUse, "call_indirect")
	unsupported(wasm.FamilyVariable, immIndex, "global.get", "global.set", "get_global", "set_global")
	unsupported(wasm.FamilyMemory, immNone, "memory.size", "memory.grow", "current_memory", "grow_memory")

	for _, prefix := range []string{"i32.", "i64.", "f32.", "f64."} {
		unsupported(wasm.FamilyMemory, immMemArg, prefix+"load", prefix+"store")
	}
	unsupported(wasm.FamilyMemory, immMemArg,
		"i32.load8_s", "i32.load8_u", "i32.load16_s", "i32.load16_u",
		"i64.load8_s", "i64.load8_u", "i64.load16_s", "i64.load16_u", "i64.load32_s", "i64.load32_u",
		"i32.store8", "i32.store16", "i64.store8", "i64.store16", "i64.store32")

	for _, f := range floatNames {
		for _, op := range []string{
			"add", "sub", "mul", "div", "min", "max", "copysign",
			"abs", "neg", "sqrt", "ceil", "floor", "trunc", "nearest",
			"eq", "ne", "lt", "gt", "le", "ge",
		} {
			unsupported(wasm.FamilyFloat, immNone, f+"."+op)
		}
	}

	unsupported(wasm.FamilyConversion, immNone,
		"i32.wrap_i64", "i32.wrap/i64",
		"i64.extend_i32_s", "i64.extend_i32_u", "i64.extend_s/i32", "i64.extend_u/i32",
		"f32.demote_f64", "f32.demote/f64", "f64.promote_f32", "f64.promote/f32",
		"i32.reinterpret_f32", "i32.reinterpret/f32", "i64.reinterpret_f64", "i64.reinterpret/f64",
		"f32.reinterpret_i32", "f32.reinterpret/i32", "f64.reinterpret_i64", "f64.reinterpret/i64",
		"i32.extend8_s", "i32.extend16_s", "i64.extend8_s", "i64.extend16_s", "i64.extend32_s")
	for _, i := range []string{"i32", "i64"} {
		for _, f := range floatNames {
			for _, sign := range []string{"s", "u"} {
				unsupported(wasm.FamilyConversion, immNone,
					i+".trunc_"+f+"_"+sign, i+".trunc_"+sign+"/"+f,
					i+".trunc_sat_"+f+"_"+sign, i+".trunc_"+sign+":sat/"+f,
					f+".convert_"+i+"_"+sign, f+".convert_"+sign+"/"+i)
			}
		}
	}
}
