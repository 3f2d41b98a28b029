// Package wast parses scripts of the text format: modules followed by commands which invoke their exports and
// assert the results, ex.
//
//	(module
//	  (func $div (param i32 i32) (result i32)
//	    (return (i32.div_u (local.get 0) (local.get 1))))
//	  (export "div" (func $div)))
//	(assert_return (invoke "div" (i32.const 7) (i32.const 2)) (i32.const 3))
//	(assert_trap (invoke "div" (i32.const 10) (i32.const 0)) "integer divide by zero")
package wast

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm/api"
	"github.com/tetratelabs/wasmvm/internal/logging"
	"github.com/tetratelabs/wasmvm/wasm"
)

// CommandKind is the type of Command.
type CommandKind byte

const (
	// CommandKindModule defines a module. Later commands without a module name apply to it.
	CommandKindModule CommandKind = iota
	// CommandKindAssertReturn invokes an export and expects a result: a value, or none.
	CommandKindAssertReturn
	// CommandKindAssertTrap invokes an export and expects it to trap.
	CommandKindAssertTrap
	// CommandKindInvoke invokes an export and expects it not to trap.
	CommandKindInvoke
	// CommandKindSkipped is a command which is recognized, but not run, ex. assert_invalid.
	CommandKindSkipped
)

func (k CommandKind) String() (ret string) {
	switch k {
	case CommandKindModule:
		ret = "module"
	case CommandKindAssertReturn:
		ret = "assert_return"
	case CommandKindAssertTrap:
		ret = "assert_trap"
	case CommandKindInvoke:
		ret = "invoke"
	case CommandKindSkipped:
		ret = "skipped"
	default:
		ret = fmt.Sprintf("CommandKind(%d)", byte(k))
	}
	return
}

// Command is one top-level form of a script.
type Command struct {
	Kind      CommandKind
	Line, Col uint32

	// Name is the optional $name of a module, or the keyword of a skipped command.
	Name string
	// Module is set for CommandKindModule.
	Module *wasm.Module

	// Action is set for commands which invoke an export.
	Action *Invoke
	// Expected is the result an assert_return expects. A nil value expects no value.
	Expected *api.Value
	// Text is the message of an assert_trap.
	Text string
}

// String implements fmt.Stringer, ex. `assert_return "add"`
func (c *Command) String() string {
	switch {
	case c.Action != nil:
		return fmt.Sprintf("%s %q", c.Kind, c.Action.Name)
	case c.Name != "":
		return fmt.Sprintf("%s %s", c.Kind, c.Name)
	}
	return c.Kind.String()
}

// Invoke calls the export Name of the module named Module, or the current module if empty.
type Invoke struct {
	Module string
	Name   string
	Args   []api.Value
}

// Script is the parsed commands of a source, in order.
type Script struct {
	Commands []*Command
}

// skippedCommands are recognized, but not run. They need features the engine doesn't have, such as validation or
// NaN inspection.
var skippedCommands = map[string]bool{
	"assert_invalid":               true,
	"assert_malformed":             true,
	"assert_unlinkable":            true,
	"assert_exhaustion":            true,
	"assert_return_nan":            true,
	"assert_return_canonical_nan":  true,
	"assert_return_arithmetic_nan": true,
	"register":                     true,
}

// ParseScript parses source into a Script, or returns a *FormatError.
//
// A source whose first form is a module field, such as (func ...), is a single module without a (module ...)
// wrapper.
func ParseScript(source []byte, logger *zap.Logger) (*Script, error) {
	logger = logging.OrNop(logger)
	top, err := parseSexprs(source)
	if err != nil {
		return nil, err
	}

	s := &Script{}
	if len(top) > 0 && moduleFields[top[0].keyword()] {
		_, m, err := parseModule(logger, "module[0]", top[0], top)
		if err != nil {
			return nil, err
		}
		s.Commands = append(s.Commands, &Command{Kind: CommandKindModule, Line: top[0].line, Col: top[0].col, Module: m})
		return s, nil
	}

	modules := 0
	for i, n := range top {
		context := fmt.Sprintf("command[%d]", i)
		if !n.isList() {
			return nil, n.errorf(context, "expected command, but parsed %s: %s", n.tok, n.text)
		}
		c := &Command{Line: n.line, Col: n.col}
		args := n.children[1:]

		switch kw := n.keyword(); {
		case kw == "module":
			c.Kind = CommandKindModule
			if c.Name, c.Module, err = parseModule(logger, fmt.Sprintf("module[%d]", modules), n, args); err != nil {
				return nil, err
			}
			modules++
		case kw == "assert_return":
			err = parseAssertReturn(context, n, c)
		case kw == "assert_trap":
			err = parseAssertTrap(context, n, c)
		case kw == "invoke":
			c.Kind = CommandKindInvoke
			c.Action, err = parseInvoke(context, n)
		case skippedCommands[kw]:
			c.Kind, c.Name = CommandKindSkipped, kw
		default:
			return nil, n.errorf(context, "unknown command: %s", fieldName(n))
		}
		if err != nil {
			return nil, err
		}
		if c.Kind == CommandKindSkipped {
			logger.Debug("skipped command", zap.String("command", c.Name), zap.Uint32("line", c.Line))
		}
		s.Commands = append(s.Commands, c)
	}
	return s, nil
}

// parseAssertReturn parses (assert_return (invoke ...) const?)
//
// Actions other than invoke, more than one expected value and NaN patterns are skipped.
func parseAssertReturn(context string, n *node, c *Command) (err error) {
	args := n.children[1:]
	if len(args) == 0 {
		return n.errorf(context, "missing action")
	}
	if args[0].keyword() != "invoke" || len(args) > 2 {
		c.Kind, c.Name = CommandKindSkipped, "assert_return"
		return nil
	}
	if len(args) == 2 && isNaNPattern(args[1]) {
		c.Kind, c.Name = CommandKindSkipped, "assert_return"
		return nil
	}

	c.Kind = CommandKindAssertReturn
	if c.Action, err = parseInvoke(context, args[0]); err != nil {
		return err
	}
	if len(args) == 2 {
		var v api.Value
		if v, err = parseConstExpr(context, args[1]); err != nil {
			return err
		}
		c.Expected = &v
	}
	return nil
}

// parseAssertTrap parses (assert_trap (invoke ...) "message"). Traps during instantiation are skipped.
func parseAssertTrap(context string, n *node, c *Command) (err error) {
	args := n.children[1:]
	if len(args) != 2 || args[1].tok != tokenString {
		return n.errorf(context, "expected (assert_trap (invoke ...) \"message\")")
	}
	if args[0].keyword() != "invoke" {
		c.Kind, c.Name = CommandKindSkipped, "assert_trap"
		return nil
	}

	c.Kind = CommandKindAssertTrap
	if c.Text, err = unquote(args[1].text); err != nil {
		return args[1].errorf(context, "%v", err)
	}
	c.Action, err = parseInvoke(context, args[0])
	return err
}

// parseInvoke parses (invoke $module? "name" const*)
func parseInvoke(context string, n *node) (*Invoke, error) {
	args := n.children[1:]
	inv := &Invoke{}
	if len(args) > 0 && args[0].tok == tokenID {
		inv.Module = args[0].text
		args = args[1:]
	}
	if len(args) == 0 || args[0].tok != tokenString {
		return nil, n.errorf(context, "expected export name")
	}
	var err error
	if inv.Name, err = unquote(args[0].text); err != nil {
		return nil, args[0].errorf(context, "%v", err)
	}
	for _, a := range args[1:] {
		v, err := parseConstExpr(context, a)
		if err != nil {
			return nil, err
		}
		inv.Args = append(inv.Args, v)
	}
	return inv, nil
}

// parseConstExpr parses a constant such as (i32.const 5)
func parseConstExpr(context string, n *node) (api.Value, error) {
	kw := n.keyword()
	in, ok := instructions[kw]
	if !ok || in.imm != immConst || len(n.children) != 2 {
		return api.Value{}, n.errorf(context, "expected constant, but parsed %s", fieldName(n))
	}
	v, err := parseConst(in.constType, n.children[1].text)
	if err != nil {
		return api.Value{}, n.children[1].errorf(context, "%v", err)
	}
	return v, nil
}

func isNaNPattern(n *node) bool {
	if len(n.children) != 2 {
		return false
	}
	switch n.children[1].text {
	case "nan:canonical", "nan:arithmetic":
		return true
	}
	return false
}
