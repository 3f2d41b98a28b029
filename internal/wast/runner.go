package wast

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm"
	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/internal/logging"
)

// Failure is a command which didn't pass.
type Failure struct {
	Line, Col uint32
	// Command is the text form of the command, ex. `assert_return "add"`
	Command string
	// Err is the reason, which wraps ErrAssertion, ErrExportNotFound, ErrModuleNotFound or a usage error from the
	// call, such as wasm.ErrInvalidArguments.
	Err error
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("%d:%d: %s: %v", f.Line, f.Col, f.Command, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Report counts the outcome of each command of a script, except modules which instantiate successfully.
type Report struct {
	Passed, Failed, Skipped int
	Failures                []*Failure
}

// Err returns all failures combined, or nil if there were none.
func (r *Report) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// String implements fmt.Stringer, ex. "passed=3 failed=0 skipped=1"
func (r *Report) String() string {
	return fmt.Sprintf("passed=%d failed=%d skipped=%d", r.Passed, r.Failed, r.Skipped)
}

// Runner runs the commands of scripts against modules instantiated by Runtime.
type Runner struct {
	Runtime wasmvm.Runtime
	// Logger defaults to zap.NewNop if nil.
	Logger *zap.Logger
	// FailFast stops the script at its first failure.
	FailFast bool
}

// Run instantiates each module of the script once, then runs each command against the most recently defined
// module, or the module it names.
func (r *Runner) Run(s *Script) *Report {
	logger := logging.OrNop(r.Logger)
	report := &Report{}
	named := map[string]api.Module{}
	var current api.Module

	for _, c := range s.Commands {
		var err error
		switch c.Kind {
		case CommandKindModule:
			if current, err = r.Runtime.InstantiateModule(c.Module); err == nil {
				if c.Name != "" {
					named[c.Name] = current
				}
				continue
			}
		case CommandKindSkipped:
			report.Skipped++
			continue
		default:
			err = runAction(logger, c, current, named)
		}

		if err == nil {
			report.Passed++
			continue
		}
		f := &Failure{Line: c.Line, Col: c.Col, Command: c.String(), Err: err}
		logger.Warn("command failed",
			zap.Uint32("line", c.Line),
			zap.String("command", f.Command),
			zap.Error(err))
		report.Failed++
		report.Failures = append(report.Failures, f)
		if r.FailFast {
			break
		}
	}
	return report
}

// runAction invokes the action of c and checks its result.
func runAction(logger *zap.Logger, c *Command, current api.Module, named map[string]api.Module) error {
	mod := current
	if c.Action.Module != "" {
		mod = named[c.Action.Module]
	}
	if mod == nil {
		if c.Action.Module != "" {
			return fmt.Errorf("%w: %s", ErrModuleNotFound, c.Action.Module)
		}
		return ErrModuleNotFound
	}

	fn := mod.ExportedFunction(c.Action.Name)
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrExportNotFound, c.Action.Name)
	}

	res, err := fn.Call(c.Action.Args...)
	if err != nil {
		return err
	}
	logger.Debug("invoked",
		zap.String("name", c.Action.Name),
		logging.Values("args", c.Action.Args),
		zap.Stringer("result", res))

	switch c.Kind {
	case CommandKindAssertReturn:
		expected := api.EmptyResult()
		if c.Expected != nil {
			expected = api.ValueResult(*c.Expected)
		}
		if !res.Equal(expected) {
			return fmt.Errorf("%w: expected %s, but was %s", ErrAssertion, expected, res)
		}
	case CommandKindAssertTrap:
		if !res.IsTrap() {
			return fmt.Errorf("%w: expected trap(%s), but was %s", ErrAssertion, c.Text, res)
		}
	case CommandKindInvoke:
		if res.IsTrap() {
			return fmt.Errorf("%w: unexpected %s", ErrAssertion, res)
		}
	}
	return nil
}
