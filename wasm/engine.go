package wasm

import "github.com/tetratelabs/wasmvm/api"

// Engine is the interface implemented by interpreters.
type Engine interface {
	// Call invokes the function at index in the module m with the given args.
	//
	// The module must have passed Module.Validate. A trap is reported as api.TrapResult, while a non-nil error
	// means the call is invalid, ex. the args don't match the function type.
	Call(m *Module, index Index, args []api.Value) (api.Result, error)
}
