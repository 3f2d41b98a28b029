package wast

import (
	"errors"
	"fmt"
)

// tokenParser parses the current token and returns a parser for the next.
//
// * tok is the token type
// * tokenBytes are the bytes of the token, including quotes of a tokenString. Do not modify this.
// * line is the source line number determined by unescaped '\n' characters.
// * col is the column number of the first byte of the token.
//
// Returning an error stops lexing.
type tokenParser func(tok tokenType, tokenBytes []byte, line, col uint32) (tokenParser, error)

// lex invokes the parser function for each token in source. This returns when the source is exhausted or an error
// occurs, with the position of the error or EOF.
//
// Line comments ";;" and nested block comments "(; ;)" are skipped.
func lex(parser tokenParser, source []byte) (line, col uint32, err error) {
	end := len(source)
	line, col = 1, 1
	parenDepth := 0
	blockCommentDepth := 0

	for i := 0; i < end; i, col = i+1, col+1 {
		b1 := source[i]

		if b1 == '\n' {
			line++
			col = 0 // for loop will + 1
			continue
		}
		if b1 == ' ' || b1 == '\t' || b1 == '\r' {
			continue
		}

		switch b1 {
		case '(':
			if i+1 < end && source[i+1] == ';' {
				i++
				col++
				blockCommentDepth++
				continue
			}
		case ';':
			if i+1 < end {
				if b2 := source[i+1]; blockCommentDepth > 0 && b2 == ')' {
					i++
					col++
					blockCommentDepth--
					continue
				} else if b2 == ';' && blockCommentDepth == 0 {
					for i+1 < end && source[i+1] != '\n' {
						i++
						col++
					}
					continue // at the '\n' or EOF
				}
			}
		}

		if blockCommentDepth > 0 {
			continue
		}

		tok := firstTokenByte[b1]
		start, c := i, col
		switch tok {
		case tokenLParen:
			parenDepth++
		case tokenRParen:
			if parenDepth == 0 {
				return line, col, errors.New("found ')' before '('")
			}
			parenDepth--
		case tokenString:
			closed := false
			for i+1 < end {
				i++
				col++
				if b := source[i]; b == '"' {
					closed = true
					break
				} else if b == '\n' {
					return line, col, errors.New("found newline in string")
				} else if b == '\\' && i+1 < end {
					i++
					col++
				}
			}
			if !closed {
				return line, c, errors.New("expected end quote")
			}
		case tokenKeyword, tokenNumber, tokenID, tokenReserved:
			for i+1 < end && idChar[source[i+1]] {
				i++
				col++
			}
		default:
			if b1 > 0x7f {
				return line, col, fmt.Errorf("expected an ASCII character, not 0x%x", b1)
			}
			return line, col, fmt.Errorf("unexpected character %q", b1)
		}

		if parser, err = parser(tok, source[start:i+1], line, c); err != nil {
			return line, c, err
		}
	}

	if blockCommentDepth > 0 {
		return line, col, errors.New("expected block comment end ';)', but reached end of input")
	}
	if parenDepth > 0 {
		return line, col, errors.New("expected ')', but reached end of input")
	}
	return line, col, nil
}
