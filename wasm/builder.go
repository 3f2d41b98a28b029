package wasm

import "fmt"

// ModuleBuilder assembles a Module. Functions and exports are append-only and there is no removal.
//
// Ex. Below builds a module exporting one function which returns its only parameter:
//
//	b := wasm.NewModuleBuilder()
//	idx := b.AddFunction(&wasm.Function{
//		Type: &wasm.FunctionType{Params: []wasm.ValueType{api.ValueTypeI32}, Results: []wasm.ValueType{api.ValueTypeI32}},
//		Body: []wasm.Operation{&wasm.OperationLocalGet{Index: 0}, &wasm.OperationReturn{HasArg: true}},
//	})
//	m, err := b.AddExport("identity", idx).Build()
//
// Note: Once Build succeeds, the builder is frozen: further changes fail the next Build with ErrBuilderFrozen, so
// a Module handed to an instance never changes.
type ModuleBuilder struct {
	functions []*Function
	exports   []*Export
	built     *Module
	err       error
}

// NewModuleBuilder returns an empty ModuleBuilder.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{}
}

// AddFunction appends a function and returns its index.
func (b *ModuleBuilder) AddFunction(f *Function) Index {
	if b.built != nil {
		b.frozen()
	}
	b.functions = append(b.functions, f)
	return Index(len(b.functions) - 1)
}

// AddExport appends an export of the function at index as name. The index is checked on Build.
func (b *ModuleBuilder) AddExport(name string, index Index) *ModuleBuilder {
	if b.built != nil {
		b.frozen()
	}
	b.exports = append(b.exports, &Export{Name: name, Index: index})
	return b
}

// Build returns the Module or an error if it is invalid. See Module.Validate
func (b *ModuleBuilder) Build() (*Module, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.built != nil {
		return b.built, nil
	}

	m := &Module{
		Functions: append([]*Function(nil), b.functions...),
		Exports:   append([]*Export(nil), b.exports...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	b.built = m
	return m, nil
}

func (b *ModuleBuilder) frozen() {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %d functions, %d exports", ErrBuilderFrozen, len(b.built.Functions), len(b.built.Exports))
	}
}
