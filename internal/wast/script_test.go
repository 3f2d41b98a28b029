package wast

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wasmvm/api"
)

func TestParseScript_Commands(t *testing.T) {
	s, err := ParseScript([]byte(`
(module $M (func (export "f") (param i32) (result i32) (local.get 0)))
(assert_return (invoke "f" (i32.const 1)) (i32.const 1))
(assert_return (invoke $M "f" (i32.const 2)))
(assert_trap (invoke "f" (i32.const 0)) "integer divide by zero")
(invoke "f" (i64.const -1))
(assert_invalid (module (func (result i32))) "type mismatch")
(assert_return (invoke "f") (f32.const nan:canonical))
(assert_return (get "g") (i32.const 1))
(assert_trap (module (func (unreachable)) (start 0)) "unreachable")
(register "M" $M)
`), nil)
	require.NoError(t, err)

	var kinds []CommandKind
	var names []string
	for _, c := range s.Commands {
		kinds = append(kinds, c.Kind)
		names = append(names, c.String())
	}
	require.Equal(t, []CommandKind{
		CommandKindModule,
		CommandKindAssertReturn,
		CommandKindAssertReturn,
		CommandKindAssertTrap,
		CommandKindInvoke,
		CommandKindSkipped,
		CommandKindSkipped,
		CommandKindSkipped,
		CommandKindSkipped,
		CommandKindSkipped,
	}, kinds)
	require.Equal(t, []string{
		"module $M",
		`assert_return "f"`,
		`assert_return "f"`,
		`assert_trap "f"`,
		`invoke "f"`,
		"skipped assert_invalid",
		"skipped assert_return",
		"skipped assert_return",
		"skipped assert_trap",
		"skipped register",
	}, names)

	m := s.Commands[0]
	require.Equal(t, "$M", m.Name)
	require.Equal(t, uint32(2), m.Line)

	ret := s.Commands[1]
	require.Equal(t, &Invoke{Name: "f", Args: []api.Value{api.ValueI32(1)}}, ret.Action)
	expected := api.ValueI32(1)
	require.Equal(t, &expected, ret.Expected)

	ret = s.Commands[2]
	require.Equal(t, &Invoke{Module: "$M", Name: "f", Args: []api.Value{api.ValueI32(2)}}, ret.Action)
	require.Nil(t, ret.Expected)

	trap := s.Commands[3]
	require.Equal(t, "integer divide by zero", trap.Text)

	inv := s.Commands[4]
	require.Equal(t, []api.Value{api.ValueI64(-1)}, inv.Action.Args)
}

func TestParseScript_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr string
	}{
		{
			name:        "atom",
			input:       "module",
			expectedErr: "1:1: expected command, but parsed keyword: module in command[0]",
		},
		{
			name:        "unknown command",
			input:       "(module) (assert_everything)",
			expectedErr: "1:10: unknown command: (assert_everything in command[1]",
		},
		{
			name:        "missing export name",
			input:       "(invoke (i32.const 1))",
			expectedErr: "1:1: expected export name in command[0]",
		},
		{
			name:        "argument is not a constant",
			input:       `(invoke "f" (local.get 0))`,
			expectedErr: "1:13: expected constant, but parsed (local.get in command[0]",
		},
		{
			name:        "trap without message",
			input:       `(assert_trap (invoke "f"))`,
			expectedErr: `1:1: expected (assert_trap (invoke ...) "message") in command[0]`,
		},
		{
			name:        "lexer",
			input:       `(module "`,
			expectedErr: "1:9: expected end quote",
		},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tc.input), nil)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestCommandKind_String(t *testing.T) {
	for k := CommandKindModule; k <= CommandKindSkipped; k++ {
		require.NotContains(t, k.String(), "CommandKind(")
	}
	require.Equal(t, "CommandKind(9)", CommandKind(9).String())
}
