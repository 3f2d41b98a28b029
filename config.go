package wasmvm

import (
	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm/internal/engine/interpreter"
	"github.com/tetratelabs/wasmvm/internal/logging"
	"github.com/tetratelabs/wasmvm/wasm"
)

// RuntimeConfig controls runtime behavior, with the default implementation as NewRuntimeConfig
//
// Note: RuntimeConfig is immutable. Each WithXXX function returns a new instance including the corresponding change.
type RuntimeConfig struct {
	logger            *zap.Logger
	strictUnsupported bool
}

// clone ensures all fields are copied even if nil.
func (c *RuntimeConfig) clone() *RuntimeConfig {
	ret := *c
	return &ret
}

// NewRuntimeConfig returns the default configuration: no logging, and unsupported operations are skipped.
func NewRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{logger: zap.NewNop()}
}

// WithLogger sets the logger of the engine and runtime. Defaults to zap.NewNop if nil.
//
// Unsupported operations and functions completing without a return are logged at debug level.
func (c *RuntimeConfig) WithLogger(logger *zap.Logger) *RuntimeConfig {
	ret := c.clone()
	ret.logger = logging.OrNop(logger)
	return ret
}

// WithStrictUnsupported fails any call which executes an operation the engine doesn't implement, such as a block
// or a float instruction, with wasm.ErrUnsupportedOperation. Defaults to false, which skips them.
func (c *RuntimeConfig) WithStrictUnsupported(strictUnsupported bool) *RuntimeConfig {
	ret := c.clone()
	ret.strictUnsupported = strictUnsupported
	return ret
}

func (c *RuntimeConfig) newEngine() wasm.Engine {
	return interpreter.NewEngine(c.logger, c.strictUnsupported)
}
