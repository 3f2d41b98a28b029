package wast

import "fmt"

// tokenType is the lexical class of a token in the text format.
type tokenType byte

const (
	tokenInvalid tokenType = iota
	// tokenKeyword is a sequence of idChar characters beginning with a lowercase letter, ex. "i32.add" or
	// "offset=4". Floating-point constants "inf" and "nan" are keywords, too.
	tokenKeyword
	// tokenNumber is a sequence of idChar characters beginning with a digit or a sign, ex. "-1", "0x7f" or "1.5e10".
	// Whether it is an integer or a float is decided by the instruction which consumes it.
	tokenNumber
	// tokenString is a possibly empty sequence of characters enclosed in double quotes, ex. "add".
	tokenString
	// tokenID is a sequence of idChar characters prefixed by a '$', ex. "$x".
	tokenID
	tokenLParen
	tokenRParen
	// tokenReserved is any other sequence of idChar characters.
	tokenReserved
)

var tokenNames = [...]string{
	tokenInvalid:  "invalid",
	tokenKeyword:  "keyword",
	tokenNumber:   "number",
	tokenString:   "string",
	tokenID:       "id",
	tokenLParen:   "(",
	tokenRParen:   ")",
	tokenReserved: "reserved",
}

// String returns the string name of this token.
func (t tokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("tokenType(%d)", byte(t))
}

// firstTokenByte is the token type of a token beginning with a byte, or tokenInvalid.
var firstTokenByte = func() (ret [256]tokenType) {
	for b := 0; b < 256; b++ {
		switch {
		case b >= 'a' && b <= 'z':
			ret[b] = tokenKeyword
		case b >= '0' && b <= '9', b == '+', b == '-':
			ret[b] = tokenNumber
		case b == '"':
			ret[b] = tokenString
		case b == '$':
			ret[b] = tokenID
		case b == '(':
			ret[b] = tokenLParen
		case b == ')':
			ret[b] = tokenRParen
		case idChar[b]:
			ret[b] = tokenReserved
		}
	}
	return
}()

// idChar is true for characters which can continue a keyword, number, id or reserved token.
var idChar = func() (ret [256]bool) {
	for b := '0'; b <= '9'; b++ {
		ret[b] = true
	}
	for b := 'a'; b <= 'z'; b++ {
		ret[b] = true
	}
	for b := 'A'; b <= 'Z'; b++ {
		ret[b] = true
	}
	for _, b := range "!#$%&'*+-./:<=>?@\\^_`|~" {
		ret[b] = true
	}
	return
}()
