package wasm

import (
	"fmt"

	"github.com/tetratelabs/wasmvm/api"
)

// ValueType is an alias of api.ValueType defined to simplify imports.
type ValueType = api.ValueType

// FunctionType is a possibly empty function signature.
type FunctionType struct {
	// Params are the possibly empty sequence of value types accepted by a function with this signature.
	Params []ValueType

	// Results are the possibly empty sequence of value types returned by a function with this signature.
	//
	// Note: There can be at most one result. This is checked by Module.Validate.
	Results []ValueType
}

// String returns a compact form of the signature, ex. "i32i32_i32" or "null_null".
func (t *FunctionType) String() (ret string) {
	for _, b := range t.Params {
		ret += api.ValueTypeName(b)
	}
	if len(t.Params) == 0 {
		ret += "null"
	}
	ret += "_"
	for _, b := range t.Results {
		ret += api.ValueTypeName(b)
	}
	if len(t.Results) == 0 {
		ret += "null"
	}
	return
}

// ParamsMatch returns nil if the values are of the parameter types, in order, or an error wrapping
// ErrInvalidArguments.
func (t *FunctionType) ParamsMatch(values []api.Value) error {
	if len(values) != len(t.Params) {
		return fmt.Errorf("%w: expected %d params, but passed %d", ErrInvalidArguments, len(t.Params), len(values))
	}
	for i, v := range values {
		if v.Type != t.Params[i] {
			return fmt.Errorf("%w: param[%d] expected %s, but was %s",
				ErrInvalidArguments, i, api.ValueTypeName(t.Params[i]), api.ValueTypeName(v.Type))
		}
	}
	return nil
}

func isValueType(t ValueType) bool {
	switch t {
	case api.ValueTypeI32, api.ValueTypeI64, api.ValueTypeF32, api.ValueTypeF64:
		return true
	}
	return false
}
