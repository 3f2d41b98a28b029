// Package interpreter is the engine which executes wasm.Function bodies one operation at a time against a fresh
// call frame.
package interpreter

import (
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/internal/logging"
	"github.com/tetratelabs/wasmvm/internal/wasmruntime"
	"github.com/tetratelabs/wasmvm/wasm"
)

// engine implements wasm.Engine. It holds no per-call state, so it can be used concurrently.
type engine struct {
	logger            *zap.Logger
	strictUnsupported bool
}

var _ wasm.Engine = &engine{}

// NewEngine returns an interpreter which logs to logger, or nowhere if it is nil.
//
// When strictUnsupported is true, executing a wasm.OperationUnsupported fails the call with
// wasm.ErrUnsupportedOperation instead of being skipped.
func NewEngine(logger *zap.Logger, strictUnsupported bool) wasm.Engine {
	return &engine{logger: logging.OrNop(logger), strictUnsupported: strictUnsupported}
}

// usageError is raised by panic from the dispatch loop when the call, not the program, is invalid.
type usageError struct {
	err error
}

// Call implements wasm.Engine Call.
func (e *engine) Call(m *wasm.Module, index wasm.Index, args []api.Value) (res api.Result, err error) {
	if functionCount := uint32(len(m.Functions)); index >= functionCount {
		return res, fmt.Errorf("%w: %d >= %d", wasm.ErrFunctionIndexOutOfRange, index, functionCount)
	}
	f := m.Functions[index]
	if err = f.Type.ParamsMatch(args); err != nil {
		return res, fmt.Errorf("function[%d] %s: %w", index, f.Type, err)
	}

	frame := newCallFrame(f, index, args)
	defer func() {
		if v := recover(); v != nil {
			res, err = e.unwind(frame, v)
		}
	}()
	return e.exec(frame)
}

// unwind converts the value recovered from a panic in exec into the outcome of the call.
func (e *engine) unwind(frame *callFrame, v interface{}) (api.Result, error) {
	switch cause := v.(type) {
	case *wasmruntime.Error:
		e.logger.Debug("trapped",
			logging.FunctionName(frame.f.Name, frame.index),
			zap.Int("pc", frame.pc),
			zap.Error(cause))
		return api.TrapResult(cause), nil
	case usageError:
		return api.Result{}, fmt.Errorf("function[%d] %s at pc=%d: %w", frame.index, frame.op(), frame.pc, cause.err)
	case runtime.Error:
		panic(cause) // BUG in the engine, not the program.
	default:
		panic(v)
	}
}

// exec runs the body of the function in frame until it returns or there are no operations left.
func (e *engine) exec(frame *callFrame) (api.Result, error) {
	body := frame.f.Body
	unsupported := 0
	for frame.pc = 0; frame.pc < len(body); frame.pc++ {
		op := body[frame.pc]
		switch op.Kind() {
		case wasm.OperationKindNop:
		case wasm.OperationKindUnsupported:
			if e.strictUnsupported {
				frame.fail(wasm.ErrUnsupportedOperation)
			}
			unsupported++
			e.logger.Debug("skipped unsupported operation",
				logging.FunctionName(frame.f.Name, frame.index),
				zap.Int("pc", frame.pc),
				logging.Operation(op),
				zap.Stringer("family", op.(*wasm.OperationUnsupported).Family))
		case wasm.OperationKindConst:
			frame.push(op.(*wasm.OperationConst).Value)
		case wasm.OperationKindDrop:
			frame.pop()
		case wasm.OperationKindSelect:
			c := frame.popOf(api.ValueTypeI32)
			v2 := frame.pop()
			v1 := frame.popOf(v2.Type)
			if c.IsZero() {
				frame.push(v2)
			} else {
				frame.push(v1)
			}
		case wasm.OperationKindLocalGet:
			frame.push(frame.local(op.(*wasm.OperationLocalGet).Index))
		case wasm.OperationKindLocalSet:
			frame.setLocal(op.(*wasm.OperationLocalSet).Index, frame.pop())
		case wasm.OperationKindLocalTee:
			frame.setLocal(op.(*wasm.OperationLocalTee).Index, frame.peek())
		case wasm.OperationKindReturn:
			res := frame.result(op.(*wasm.OperationReturn).HasArg)
			if unsupported > 0 {
				e.logger.Debug("returned after skipping unsupported operations",
					logging.FunctionName(frame.f.Name, frame.index),
					zap.Int("unsupported", unsupported))
			}
			return res, nil
		case wasm.OperationKindIntBinary:
			o := op.(*wasm.OperationIntBinary)
			vt := o.Type.ValueType()
			x2 := frame.popOf(vt)
			x1 := frame.popOf(vt)
			frame.push(api.ValueFromBits(vt, intBinary(o.Type, o.Op, x1.Bits(), x2.Bits())))
		case wasm.OperationKindIntUnary:
			o := op.(*wasm.OperationIntUnary)
			vt := o.Type.ValueType()
			x := frame.popOf(vt)
			frame.push(api.ValueFromBits(vt, intUnary(o.Type, o.Op, x.Bits())))
		case wasm.OperationKindIntCompare:
			o := op.(*wasm.OperationIntCompare)
			vt := o.Type.ValueType()
			x2 := frame.popOf(vt)
			x1 := frame.popOf(vt)
			frame.push(boolValue(intCompare(o.Type, o.Op, x1.Bits(), x2.Bits())))
		case wasm.OperationKindIntEqz:
			o := op.(*wasm.OperationIntEqz)
			frame.push(boolValue(frame.popOf(o.Type.ValueType()).IsZero()))
		default:
			panic(fmt.Errorf("BUG: unknown operation kind %s", op.Kind()))
		}
	}

	e.logger.Debug("function completed without return",
		logging.FunctionName(frame.f.Name, frame.index),
		zap.Int("unsupported", unsupported))
	return api.EmptyResult(), nil
}

// boolValue returns i32 1 if b is true, or i32 0 if not.
func boolValue(b bool) api.Value {
	if b {
		return api.ValueU32(1)
	}
	return api.ValueU32(0)
}
