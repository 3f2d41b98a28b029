// Package logging builds the zap loggers used by the runtime and its front ends, and holds the field helpers
// shared between them. This is in an independent package to avoid dependency cycles.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tetratelabs/wasmvm/api"
)

// Format is the encoding of log entries.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ParseFormat returns the Format named by text, which is case-insensitive. Empty defaults to FormatConsole.
func ParseFormat(text string) (Format, error) {
	switch f := Format(strings.ToLower(text)); f {
	case "":
		return FormatConsole, nil
	case FormatConsole, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q, expected %q or %q", text, FormatConsole, FormatJSON)
	}
}

// ParseLevel returns the zap level named by text, ex. "debug" or "WARN". Empty defaults to zapcore.WarnLevel.
func ParseLevel(text string) (zapcore.Level, error) {
	if text == "" {
		return zapcore.WarnLevel, nil
	}
	l, err := zapcore.ParseLevel(text)
	if err != nil {
		return 0, fmt.Errorf("invalid log level: %w", err)
	}
	return l, nil
}

// New returns a logger writing to stderr at the given level and format.
func New(level, format string) (*zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if f == FormatJSON {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.Sampling = nil
	return cfg.Build()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Value returns a field rendering v as its text form, ex. "i32:5".
func Value(key string, v api.Value) zap.Field {
	return zap.Stringer(key, v)
}

// Values returns a field rendering vs as a list of text forms.
func Values(key string, vs []api.Value) zap.Field {
	return zap.Stringers(key, vs)
}

// Operation returns a field rendering op as its text form under the key "op", ex. "i32.div_u".
func Operation(op fmt.Stringer) zap.Field {
	return zap.Stringer("op", op)
}

// FunctionName returns a field holding the debug name of a function, or its index when it has none.
func FunctionName(name string, index uint32) zap.Field {
	if name == "" {
		return zap.String("func", fmt.Sprintf("[%d]", index))
	}
	return zap.String("func", name)
}
