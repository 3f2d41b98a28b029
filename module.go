package wasmvm

import (
	"fmt"

	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/wasm"
)

// moduleInstance implements api.Module. It has no mutable state, so it is safe for concurrent use.
type moduleInstance struct {
	module *wasm.Module
	engine wasm.Engine
}

// String implements fmt.Stringer
func (m *moduleInstance) String() string {
	return fmt.Sprintf("Module[functions=%d, exports=%d]", len(m.module.Functions), len(m.module.Exports))
}

// ExportedFunction implements api.Module ExportedFunction
func (m *moduleInstance) ExportedFunction(name string) api.Function {
	index, ok := m.module.ExportedFunctionIndex(name)
	if !ok {
		return nil
	}
	return m.Function(index)
}

// Function implements api.Module Function
func (m *moduleInstance) Function(index uint32) api.Function {
	if index >= m.NumFunctions() {
		return nil
	}
	return &function{m: m, index: index, f: m.module.Functions[index]}
}

// NumFunctions implements api.Module NumFunctions
func (m *moduleInstance) NumFunctions() uint32 {
	return uint32(len(m.module.Functions))
}

// function implements api.Function
type function struct {
	m     *moduleInstance
	index wasm.Index
	f     *wasm.Function
}

// ParamTypes implements api.Function ParamTypes
func (f *function) ParamTypes() []api.ValueType {
	return f.f.Type.Params
}

// ResultTypes implements api.Function ResultTypes
func (f *function) ResultTypes() []api.ValueType {
	return f.f.Type.Results
}

// Call implements api.Function Call
func (f *function) Call(params ...api.Value) (api.Result, error) {
	return f.m.engine.Call(f.m.module, f.index, params)
}
