package wast

import "fmt"

// node is an atom or a parenthesized list of nodes.
type node struct {
	// tok is the type of an atom, or tokenLParen for a list.
	tok tokenType
	// text is the source of an atom.
	text      string
	children  []*node
	line, col uint32
}

func (n *node) isList() bool {
	return n.tok == tokenLParen
}

// keyword returns the text of the first child of a list if it is a keyword, or the empty string.
func (n *node) keyword() string {
	if n.isList() && len(n.children) > 0 && n.children[0].tok == tokenKeyword {
		return n.children[0].text
	}
	return ""
}

// isKeyword returns true if this is an atom of the given keyword.
func (n *node) isKeyword(text string) bool {
	return n.tok == tokenKeyword && n.text == text
}

// errorf returns a FormatError at the position of this node.
func (n *node) errorf(context, format string, args ...interface{}) error {
	return &FormatError{Line: n.line, Col: n.col, Context: context, cause: fmt.Errorf(format, args...)}
}

// wrap returns err as a FormatError at the position of this node, unless it already is one.
func (n *node) wrap(context string, err error) error {
	if _, ok := err.(*FormatError); ok {
		return err
	}
	return &FormatError{Line: n.line, Col: n.col, Context: context, cause: err}
}

// parseSexprs returns the top-level nodes of source.
func parseSexprs(source []byte) ([]*node, error) {
	b := &treeBuilder{}
	if line, col, err := lex(b.parse, source); err != nil {
		return nil, &FormatError{Line: line, Col: col, cause: err}
	}
	return b.top, nil
}

// treeBuilder is a tokenParser which collects tokens into nodes.
type treeBuilder struct {
	top []*node
	// open are the lists which are not yet closed, innermost last.
	open []*node
}

func (b *treeBuilder) parse(tok tokenType, tokenBytes []byte, line, col uint32) (tokenParser, error) {
	switch tok {
	case tokenLParen:
		b.open = append(b.open, &node{tok: tokenLParen, line: line, col: col})
	case tokenRParen:
		last := len(b.open) - 1
		closed := b.open[last]
		b.open = b.open[:last]
		b.add(closed)
	default:
		b.add(&node{tok: tok, text: string(tokenBytes), line: line, col: col})
	}
	return b.parse, nil
}

func (b *treeBuilder) add(n *node) {
	if len(b.open) == 0 {
		b.top = append(b.top, n)
		return
	}
	parent := b.open[len(b.open)-1]
	parent.children = append(parent.children, n)
}
