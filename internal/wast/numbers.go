package wast

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tetratelabs/wasmvm/api"
)

// parseInt returns the bits of an integer literal of the given bit size (32 or 64).
//
// A leading '-' or '+' makes the literal signed, so it must be in range of the signed type. Otherwise, the literal
// is unsigned. Either may be hexadecimal with a "0x" prefix, and digits may be separated by '_'.
func parseInt(text string, bitSize int) (uint64, error) {
	s := text
	signed, negative := false, false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		signed, negative = true, s[0] == '-'
		s = s[1:]
	}

	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		s = s[2:]
	}
	if !validDigits(s, base) {
		return 0, fmt.Errorf("invalid i%d literal: %s", bitSize, text)
	}

	u, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), base, bitSize)
	if err != nil {
		return 0, fmt.Errorf("i%d constant out of range: %s", bitSize, text)
	}

	if signed {
		limit := uint64(1) << (bitSize - 1)
		if negative && u > limit || !negative && u >= limit {
			return 0, fmt.Errorf("i%d constant out of range: %s", bitSize, text)
		}
		if negative {
			u = -u
		}
	}
	if bitSize == 32 {
		u = uint64(uint32(u))
	}
	return u, nil
}

// validDigits returns true if s is a non-empty sequence of digits in base, where each '_' is between two digits.
func validDigits(s string, base int) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			if i == 0 || i == len(s)-1 || s[i-1] == '_' {
				return false
			}
			continue
		}
		if !isDigit(c, base) {
			return false
		}
	}
	return true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		return true
	}
	return false
}

// parseFloat returns the bits of a float literal of the given bit size (32 or 64), including "inf", "nan" and
// "nan:0x..." which sets the payload.
func parseFloat(text string, bitSize int) (uint64, error) {
	s := strings.ReplaceAll(text, "_", "")
	var sign uint64
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		if s[0] == '-' {
			sign = 1
		}
		s = s[1:]
	}

	expBits, fracBits := 8, 23
	if bitSize == 64 {
		expBits, fracBits = 11, 52
	}
	signBit := sign << (bitSize - 1)
	expMask := (uint64(1)<<expBits - 1) << fracBits
	fracMask := uint64(1)<<fracBits - 1

	switch {
	case s == "inf":
		return signBit | expMask, nil
	case s == "nan":
		return signBit | expMask | uint64(1)<<(fracBits-1), nil
	case strings.HasPrefix(s, "nan:0x"):
		payload, err := strconv.ParseUint(s[len("nan:0x"):], 16, 64)
		if err != nil || payload == 0 || payload > fracMask {
			return 0, fmt.Errorf("invalid f%d nan payload: %s", bitSize, text)
		}
		return signBit | expMask | payload, nil
	}

	if (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) && !strings.ContainsAny(s, "pP") {
		s += "p0" // Go requires an exponent on hexadecimal floats.
	}
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, fmt.Errorf("invalid f%d literal: %s", bitSize, text)
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		return 0, fmt.Errorf("invalid f%d literal: %s", bitSize, text)
	}
	if bitSize == 32 {
		return signBit | uint64(math.Float32bits(float32(f))), nil
	}
	return signBit | math.Float64bits(f), nil
}

// parseConst returns the value of a literal of the given type.
func parseConst(t api.ValueType, text string) (api.Value, error) {
	var bits uint64
	var err error
	switch t {
	case api.ValueTypeI32:
		bits, err = parseInt(text, 32)
	case api.ValueTypeI64:
		bits, err = parseInt(text, 64)
	case api.ValueTypeF32:
		bits, err = parseFloat(text, 32)
	case api.ValueTypeF64:
		bits, err = parseFloat(text, 64)
	default:
		err = fmt.Errorf("invalid value type: %#x", t)
	}
	if err != nil {
		return api.Value{}, err
	}
	return api.ValueFromBits(t, bits), nil
}

// parseValueType returns the value type of a keyword such as "i32".
func parseValueType(text string) (api.ValueType, bool) {
	switch text {
	case "i32":
		return api.ValueTypeI32, true
	case "i64":
		return api.ValueTypeI64, true
	case "f32":
		return api.ValueTypeF32, true
	case "f64":
		return api.ValueTypeF64, true
	}
	return 0, false
}

// unquote returns the bytes of a string token, decoding escapes such as "\n", "\hh" and "\u{hhhh}".
func unquote(token string) (string, error) {
	s := token[1 : len(token)-1]
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if i++; i == len(s) {
			return "", fmt.Errorf("invalid escape at end of %s", token)
		}
		switch c = s[i]; c {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '"', '\'', '\\':
			b.WriteByte(c)
		case 'u':
			end := strings.IndexByte(s[i:], '}')
			if i+1 >= len(s) || s[i+1] != '{' || end < 0 {
				return "", fmt.Errorf("invalid unicode escape in %s", token)
			}
			r, err := strconv.ParseUint(s[i+2:i+end], 16, 32)
			if err != nil {
				return "", fmt.Errorf("invalid unicode escape in %s", token)
			}
			if !utf8.ValidRune(rune(r)) {
				return "", fmt.Errorf("invalid code point %#x in %s", r, token)
			}
			b.WriteRune(rune(r))
			i += end
		default:
			if i+1 >= len(s) || !isDigit(c, 16) || !isDigit(s[i+1], 16) {
				return "", fmt.Errorf("invalid escape \\%c in %s", c, token)
			}
			h, _ := strconv.ParseUint(s[i:i+2], 16, 8)
			b.WriteByte(byte(h))
			i++
		}
	}
	return b.String(), nil
}
