package wasmvm

import (
	"fmt"
	"log"

	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/wasm"
)

// This is an example of how to build a module that adds two numbers and call it.
func Example() {
	b := wasm.NewModuleBuilder()
	add := b.AddFunction(&wasm.Function{
		Type: &wasm.FunctionType{
			Params:  []wasm.ValueType{api.ValueTypeI32, api.ValueTypeI32},
			Results: []wasm.ValueType{api.ValueTypeI32},
		},
		Body: []wasm.Operation{
			&wasm.OperationLocalGet{Index: 0},
			&wasm.OperationLocalGet{Index: 1},
			&wasm.OperationIntBinary{Type: wasm.IntTypeI32, Op: wasm.IntBinaryOpAdd},
			&wasm.OperationReturn{HasArg: true},
		},
	})
	m, err := b.AddExport("add", add).Build()
	if err != nil {
		log.Panicln(err)
	}

	mod, err := NewRuntime().InstantiateModule(m)
	if err != nil {
		log.Panicln(err)
	}

	res, err := mod.ExportedFunction("add").Call(api.ValueI32(1), api.ValueI32(2))
	if err != nil {
		log.Panicln(err)
	}

	v, _ := res.Value()
	fmt.Println("1 + 2 =", v.I32())

	// Output:
	// 1 + 2 = 3
}

// This shows that a trap is a result, not an error.
func Example_trap() {
	b := wasm.NewModuleBuilder()
	div := b.AddFunction(&wasm.Function{
		Type: &wasm.FunctionType{
			Params:  []wasm.ValueType{api.ValueTypeI64, api.ValueTypeI64},
			Results: []wasm.ValueType{api.ValueTypeI64},
		},
		Body: []wasm.Operation{
			&wasm.OperationLocalGet{Index: 0},
			&wasm.OperationLocalGet{Index: 1},
			&wasm.OperationIntBinary{Type: wasm.IntTypeI64, Op: wasm.IntBinaryOpDivS},
			&wasm.OperationReturn{HasArg: true},
		},
	})
	m, err := b.AddExport("div_s", div).Build()
	if err != nil {
		log.Panicln(err)
	}

	mod, err := NewRuntime().InstantiateModule(m)
	if err != nil {
		log.Panicln(err)
	}

	res, err := mod.ExportedFunction("div_s").Call(api.ValueI64(1), api.ValueI64(0))
	fmt.Println(res, err)

	// Output:
	// trap(integer divide by zero) <nil>
}
