package wast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/wasmvm/api"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		input    string
		bitSize  int
		expected uint64
	}{
		{input: "0", bitSize: 32, expected: 0},
		{input: "10", bitSize: 32, expected: 10},
		{input: "1_000", bitSize: 32, expected: 1000},
		{input: "0x0a", bitSize: 32, expected: 10},
		{input: "0x0_A", bitSize: 32, expected: 10},
		{input: "4294967295", bitSize: 32, expected: math.MaxUint32},
		{input: "0xffffffff", bitSize: 32, expected: math.MaxUint32},
		{input: "-1", bitSize: 32, expected: math.MaxUint32},
		{input: "-0x80000000", bitSize: 32, expected: 0x80000000},
		{input: "-2147483648", bitSize: 32, expected: 0x80000000},
		{input: "+2147483647", bitSize: 32, expected: math.MaxInt32},
		{input: "-1", bitSize: 64, expected: math.MaxUint64},
		{input: "0xffffffffffffffff", bitSize: 64, expected: math.MaxUint64},
		{input: "-9223372036854775808", bitSize: 64, expected: 1 << 63},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.input, func(t *testing.T) {
			actual, err := parseInt(tc.input, tc.bitSize)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestParseInt_Errors(t *testing.T) {
	tests := []struct {
		input       string
		bitSize     int
		expectedErr string
	}{
		{input: "4294967296", bitSize: 32, expectedErr: "i32 constant out of range: 4294967296"},
		{input: "-2147483649", bitSize: 32, expectedErr: "i32 constant out of range: -2147483649"},
		{input: "+2147483648", bitSize: 32, expectedErr: "i32 constant out of range: +2147483648"},
		{input: "18446744073709551616", bitSize: 64, expectedErr: "i64 constant out of range: 18446744073709551616"},
		{input: "-", bitSize: 32, expectedErr: "invalid i32 literal: -"},
		{input: "1__0", bitSize: 32, expectedErr: "invalid i32 literal: 1__0"},
		{input: "_1", bitSize: 32, expectedErr: "invalid i32 literal: _1"},
		{input: "0xg", bitSize: 64, expectedErr: "invalid i64 literal: 0xg"},
		{input: "1.5", bitSize: 32, expectedErr: "invalid i32 literal: 1.5"},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.input, func(t *testing.T) {
			_, err := parseInt(tc.input, tc.bitSize)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input    string
		bitSize  int
		expected uint64
	}{
		{input: "1.5", bitSize: 32, expected: uint64(math.Float32bits(1.5))},
		{input: "-1.5", bitSize: 32, expected: uint64(math.Float32bits(-1.5))},
		{input: "-0.0", bitSize: 64, expected: 1 << 63},
		{input: "1_000.5", bitSize: 64, expected: math.Float64bits(1000.5)},
		{input: "0x1p-1", bitSize: 64, expected: math.Float64bits(0.5)},
		{input: "0x1.8", bitSize: 64, expected: math.Float64bits(1.5)},
		{input: "inf", bitSize: 32, expected: 0x7f800000},
		{input: "-inf", bitSize: 64, expected: 0xfff0000000000000},
		{input: "nan", bitSize: 32, expected: 0x7fc00000},
		{input: "-nan", bitSize: 64, expected: 0xfff8000000000000},
		{input: "nan:0x1", bitSize: 32, expected: 0x7f800001},
		{input: "+nan:0x4000000000000", bitSize: 64, expected: 0x7ff4000000000000},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.input, func(t *testing.T) {
			actual, err := parseFloat(tc.input, tc.bitSize)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}

	for _, input := range []string{"nan:0x0", "nan:0x800000", "abc", "1e40"} {
		_, err := parseFloat(input, 32)
		require.Error(t, err, input)
	}
}

func TestParseConst(t *testing.T) {
	v, err := parseConst(api.ValueTypeI32, "-5")
	require.NoError(t, err)
	require.Equal(t, api.ValueI32(-5), v)

	v, err = parseConst(api.ValueTypeI64, "0xffffffffffffffff")
	require.NoError(t, err)
	require.Equal(t, api.ValueI64(-1), v)

	v, err = parseConst(api.ValueTypeF64, "2.5")
	require.NoError(t, err)
	require.Equal(t, api.ValueF64(2.5), v)

	v, err = parseConst(api.ValueTypeF32, "-0.5")
	require.NoError(t, err)
	require.Equal(t, api.ValueF32(-0.5), v)

	_, err = parseConst(0x40, "1")
	require.EqualError(t, err, "invalid value type: 0x40")
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, expected string
	}{
		{input: `""`, expected: ""},
		{input: `"add"`, expected: "add"},
		{input: `"a\tb\n"`, expected: "a\tb\n"},
		{input: `"\"\'\\"`, expected: `"'\`},
		{input: `"\e2\98\ba"`, expected: "☺"},
		{input: `"\u{263a}!"`, expected: "☺!"},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.input, func(t *testing.T) {
			actual, err := unquote(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestUnquote_Errors(t *testing.T) {
	tests := []struct {
		input, expectedErr string
	}{
		{input: `"\q"`, expectedErr: `invalid escape \q in "\q"`},
		{input: `"\u{zz}"`, expectedErr: `invalid unicode escape in "\u{zz}"`},
		{input: `"\u{110000}"`, expectedErr: `invalid code point 0x110000 in "\u{110000}"`},
		{input: `"\u{d800}"`, expectedErr: `invalid code point 0xd800 in "\u{d800}"`},
		{input: `"\u{dfff}"`, expectedErr: `invalid code point 0xdfff in "\u{dfff}"`},
	}

	for _, tt := range tests {
		tc := tt

		t.Run(tc.input, func(t *testing.T) {
			_, err := unquote(tc.input)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}
