// Package wasmvm executes modules of a stack-based bytecode: functions of typed locals and integer operations,
// invoked by export name.
package wasmvm

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/wasm"
)

// Runtime instantiates modules built with wasm.ModuleBuilder, or by a front end such as a script parser.
//
// Ex.
//
//	r := wasmvm.NewRuntime()
//	mod, _ := r.InstantiateModule(m)
//	res, _ := mod.ExportedFunction("add").Call(api.ValueI32(1), api.ValueI32(2))
type Runtime interface {
	// InstantiateModule validates the module and binds it to the engine of this runtime, or errs if the module is
	// invalid.
	//
	// Note: The module is shared, not copied. It must not be changed after this call.
	InstantiateModule(module *wasm.Module) (api.Module, error)
}

func NewRuntime() Runtime {
	return NewRuntimeWithConfig(NewRuntimeConfig())
}

// NewRuntimeWithConfig returns a runtime with the given configuration.
func NewRuntimeWithConfig(config *RuntimeConfig) Runtime {
	if config == nil {
		panic(errors.New("nil RuntimeConfig"))
	}
	return &runtime{engine: config.newEngine(), logger: config.logger}
}

// runtime allows decoupling of public interfaces from internal representation.
type runtime struct {
	engine wasm.Engine
	logger *zap.Logger
}

// InstantiateModule implements Runtime.InstantiateModule
func (r *runtime) InstantiateModule(module *wasm.Module) (api.Module, error) {
	if module == nil {
		return nil, errors.New("module == nil")
	}
	if err := module.Validate(); err != nil {
		return nil, fmt.Errorf("invalid module: %w", err)
	}

	r.logger.Debug("instantiated module",
		zap.Int("functions", len(module.Functions)),
		zap.Int("exports", len(module.Exports)))
	return &moduleInstance{module: module, engine: r.engine}, nil
}
