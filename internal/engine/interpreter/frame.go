package interpreter

import (
	"fmt"

	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/wasm"
)

// callFrame is the state of a single invocation. It is never shared between calls.
type callFrame struct {
	f     *wasm.Function
	index wasm.Index
	// pc is the position of the operation being executed in f.Body.
	pc int
	// locals are the parameters followed by the declared locals of f.
	locals []api.Value
	// stack is the operand stack. The top is the last element.
	stack []api.Value
}

func newCallFrame(f *wasm.Function, index wasm.Index, args []api.Value) *callFrame {
	locals := make([]api.Value, 0, len(args)+len(f.LocalTypes))
	locals = append(locals, args...)
	for _, t := range f.LocalTypes {
		locals = append(locals, api.ZeroValue(t))
	}
	return &callFrame{f: f, index: index, locals: locals}
}

// op returns the operation at pc, or a placeholder if pc is outside the body.
func (c *callFrame) op() fmt.Stringer {
	if c.pc < len(c.f.Body) {
		return c.f.Body[c.pc]
	}
	return &wasm.OperationNop{}
}

// fail aborts the call with a usage error. See engine.unwind
func (c *callFrame) fail(err error) {
	panic(usageError{err: err})
}

func (c *callFrame) push(v api.Value) {
	c.stack = append(c.stack, v)
}

func (c *callFrame) pop() (v api.Value) {
	sp := len(c.stack) - 1
	if sp < 0 {
		c.fail(wasm.ErrStackUnderflow)
	}
	v = c.stack[sp]
	c.stack = c.stack[:sp]
	return
}

// popOf pops a value which must be of type t.
func (c *callFrame) popOf(t api.ValueType) api.Value {
	v := c.pop()
	if v.Type != t {
		c.fail(fmt.Errorf("%w: expected %s, but was %s", wasm.ErrTypeMismatch, api.ValueTypeName(t), api.ValueTypeName(v.Type)))
	}
	return v
}

func (c *callFrame) peek() api.Value {
	if len(c.stack) == 0 {
		c.fail(wasm.ErrStackUnderflow)
	}
	return c.stack[len(c.stack)-1]
}

func (c *callFrame) local(index wasm.Index) api.Value {
	if index >= uint32(len(c.locals)) {
		c.fail(fmt.Errorf("%w: %d >= %d", wasm.ErrLocalIndexOutOfRange, index, len(c.locals)))
	}
	return c.locals[index]
}

// setLocal stores v in the slot at index, which must be declared with the same type as v.
func (c *callFrame) setLocal(index wasm.Index, v api.Value) {
	if t := c.local(index).Type; v.Type != t {
		c.fail(fmt.Errorf("%w: local[%d] is %s, but was %s", wasm.ErrTypeMismatch, index, api.ValueTypeName(t), api.ValueTypeName(v.Type)))
	}
	c.locals[index] = v
}

// result pops the returned value, if any, and checks it against the declared result type.
func (c *callFrame) result(hasArg bool) api.Result {
	if !hasArg {
		return api.EmptyResult()
	}
	v := c.pop()
	t, ok := c.f.ResultType()
	if !ok {
		c.fail(fmt.Errorf("%w: returned %s, but the function has no result", wasm.ErrTypeMismatch, api.ValueTypeName(v.Type)))
	} else if v.Type != t {
		c.fail(fmt.Errorf("%w: returned %s, but the result is %s", wasm.ErrTypeMismatch, api.ValueTypeName(v.Type), api.ValueTypeName(t)))
	}
	return api.ValueResult(v)
}
