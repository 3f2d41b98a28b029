package wasm

import (
	"errors"
	"fmt"

	"github.com/tetratelabs/wasmvm/api"
)

// Index is the offset in an index namespace, such as the functions of a Module.
type Index = uint32

// Module is the in-memory representation of a loaded module: its functions and the names they are exported with.
//
// A Module is immutable once built (see ModuleBuilder), and is shared read-only by every instance created from it.
type Module struct {
	// Functions are the functions defined in this module. The position is the function Index.
	Functions []*Function

	// Exports are the externally invocable entry points of this module, in declaration order.
	//
	// Note: Names are not required to be unique. See ExportedFunctionIndex
	Exports []*Export
}

// Function is a function defined in a Module.
type Function struct {
	// Type is the signature of this function.
	Type *FunctionType

	// LocalTypes are the types of locals declared in the function body. Local slots begin immediately after the
	// last parameter: slot len(Type.Params) is LocalTypes[0].
	LocalTypes []ValueType

	// Body is the linear instruction sequence executed on call.
	Body []Operation

	// Name is an optional symbolic name used for logging, ex. "$add".
	Name string
}

// Export maps an external name to a function.
type Export struct {
	Name  string
	Index Index
}

// NumSlots returns the count of local slots: parameters followed by declared locals.
func (f *Function) NumSlots() uint32 {
	return uint32(len(f.Type.Params) + len(f.LocalTypes))
}

// SlotType returns the declared type of the local slot, which must be less than NumSlots.
func (f *Function) SlotType(slot Index) ValueType {
	params := uint32(len(f.Type.Params))
	if slot < params {
		return f.Type.Params[slot]
	}
	return f.LocalTypes[slot-params]
}

// ExportedFunctionIndex returns the index of the first function exported as name, or false if there is none.
func (m *Module) ExportedFunctionIndex(name string) (Index, bool) {
	for _, e := range m.Exports {
		if e != nil && e.Name == name {
			return e.Index, true
		}
	}
	return 0, false
}

// Validate returns an error if this module is malformed: any export or local instruction out of range, any integer
// operation of an unknown type or operator, or any signature which cannot be executed.
//
// Note: This does not type-check function bodies. The engine checks value types as it executes.
func (m *Module) Validate() error {
	for i, f := range m.Functions {
		if err := f.validate(); err != nil {
			return fmt.Errorf("invalid function[%d]: %w", i, err)
		}
	}

	functionCount := uint32(len(m.Functions))
	for i, e := range m.Exports {
		if e == nil {
			return fmt.Errorf("invalid export[%d]: nil export", i)
		}
		if e.Index >= functionCount {
			return fmt.Errorf("invalid export[%d] %q: %w: %d >= %d",
				i, e.Name, ErrFunctionIndexOutOfRange, e.Index, functionCount)
		}
	}
	return nil
}

func (f *Function) validate() error {
	if f == nil {
		return errors.New("nil function")
	} else if f.Type == nil {
		return errors.New("nil type")
	}

	if len(f.Type.Results) > 1 {
		return fmt.Errorf("%w: %s", ErrTooManyResults, f.Type)
	}
	for _, vts := range [][]ValueType{f.Type.Params, f.Type.Results, f.LocalTypes} {
		for _, vt := range vts {
			if !isValueType(vt) {
				return fmt.Errorf("%w: %#x", ErrInvalidValueType, vt)
			}
		}
	}

	slots := f.NumSlots()
	for pc, op := range f.Body {
		var slot Index
		switch o := op.(type) {
		case *OperationLocalGet:
			slot = o.Index
		case *OperationLocalSet:
			slot = o.Index
		case *OperationLocalTee:
			slot = o.Index
		case *OperationConst:
			if !isValueType(o.Value.Type) {
				return fmt.Errorf("%w: %#x at pc=%d", ErrInvalidValueType, o.Value.Type, pc)
			}
			continue
		case *OperationIntBinary:
			if !o.Type.valid() || o.Op > IntBinaryOpRotr {
				return fmt.Errorf("%w: %s at pc=%d", ErrInvalidOperation, op, pc)
			}
			continue
		case *OperationIntUnary:
			if !o.Type.valid() || o.Op > IntUnaryOpPopcnt {
				return fmt.Errorf("%w: %s at pc=%d", ErrInvalidOperation, op, pc)
			}
			continue
		case *OperationIntCompare:
			if !o.Type.valid() || o.Op > IntCompareOpGeU {
				return fmt.Errorf("%w: %s at pc=%d", ErrInvalidOperation, op, pc)
			}
			continue
		case *OperationIntEqz:
			if !o.Type.valid() {
				return fmt.Errorf("%w: %s at pc=%d", ErrInvalidOperation, op, pc)
			}
			continue
		case nil:
			return fmt.Errorf("nil operation at pc=%d", pc)
		default:
			continue
		}
		if slot >= slots {
			return fmt.Errorf("%w: %s at pc=%d, but only %d slots", ErrLocalIndexOutOfRange, op, pc, slots)
		}
	}
	return nil
}

// resultType returns the single result type and true, or false when the function returns nothing.
func (t *FunctionType) resultType() (api.ValueType, bool) {
	if len(t.Results) == 0 {
		return 0, false
	}
	return t.Results[0], true
}

// ResultType returns the single result type of the function and true, or false when it returns nothing.
func (f *Function) ResultType() (api.ValueType, bool) {
	return f.Type.resultType()
}
