package wast

import (
	"strings"

	"github.com/tetratelabs/wasmvm/wasm"
)

// funcParser converts the instructions of a function body, in flat or folded form, into operations.
type funcParser struct {
	context string
	// locals resolve $names of params and locals to their slots.
	locals    map[string]wasm.Index
	hasResult bool
	ops       []wasm.Operation
}

// parseInstructions parses a sequence of instructions, where each is either a list in folded form, or a keyword in
// flat form followed by its immediates.
func (p *funcParser) parseInstructions(nodes []*node) error {
	for i := 0; i < len(nodes); {
		n := nodes[i]
		if n.isList() {
			if err := p.parseFolded(n); err != nil {
				return err
			}
			i++
			continue
		}

		in, err := p.lookup(n)
		if err != nil {
			return err
		}
		consumed, op, err := p.immediates(n, in, nodes[i+1:])
		if err != nil {
			return err
		}
		if ret, ok := op.(*wasm.OperationReturn); ok {
			ret.HasArg = p.hasResult
		}
		p.ops = append(p.ops, op)
		i += 1 + consumed
	}
	return nil
}

func (p *funcParser) lookup(n *node) (*instruction, error) {
	if n.tok != tokenKeyword {
		return nil, n.errorf(p.context, "expected instruction, but parsed %s: %s", n.tok, n.text)
	}
	in, ok := instructions[n.text]
	if !ok {
		return nil, n.errorf(p.context, "unknown instruction: %s", n.text)
	}
	return in, nil
}

// parseFolded parses (instr immediates* operands*), where the operands are executed before the instruction.
//
// Blocks contain instructions instead of operands, ex. (block (result i32) (i32.const 1)), and (if cond* (then
// instr*) (else instr*)?) executes its conditions first. These are flattened with an explicit end.
func (p *funcParser) parseFolded(n *node) error {
	if len(n.children) == 0 {
		return n.errorf(p.context, "empty instruction")
	}
	head := n.children[0]
	in, err := p.lookup(head)
	if err != nil {
		return err
	}
	consumed, op, err := p.immediates(head, in, n.children[1:])
	if err != nil {
		return err
	}
	operands := n.children[1+consumed:]

	switch head.text {
	case "block", "loop":
		p.ops = append(p.ops, op)
		if err = p.parseInstructions(operands); err != nil {
			return err
		}
		p.ops = append(p.ops, instructions["end"].newOp(0))
		return nil
	case "if":
		var then, els *node
		var conditions []*node
		for _, c := range operands {
			switch c.keyword() {
			case "then":
				then = c
			case "else":
				els = c
			default:
				if then != nil {
					return c.errorf(p.context, "unexpected %s after (then", fieldName(c))
				}
				conditions = append(conditions, c)
			}
		}
		if then == nil {
			return n.errorf(p.context, "expected (then ...)")
		}
		if err = p.parseInstructions(conditions); err != nil {
			return err
		}
		p.ops = append(p.ops, op)
		if err = p.parseInstructions(then.children[1:]); err != nil {
			return err
		}
		if els != nil {
			p.ops = append(p.ops, instructions["else"].newOp(0))
			if err = p.parseInstructions(els.children[1:]); err != nil {
				return err
			}
		}
		p.ops = append(p.ops, instructions["end"].newOp(0))
		return nil
	}

	for _, o := range operands {
		if !o.isList() {
			return o.errorf(p.context, "expected folded operand of %s, but parsed %s: %s", head.text, o.tok, o.text)
		}
	}
	if err = p.parseInstructions(operands); err != nil {
		return err
	}
	if ret, ok := op.(*wasm.OperationReturn); ok {
		ret.HasArg = p.hasResult || len(operands) > 0
	}
	p.ops = append(p.ops, op)
	return nil
}

// immediates parses the static arguments of the instruction at head from rest, returning how many nodes were
// consumed and the operation to execute.
func (p *funcParser) immediates(head *node, in *instruction, rest []*node) (consumed int, op wasm.Operation, err error) {
	switch in.imm {
	case immNone:
	case immLocal:
		if len(rest) == 0 || !isIndex(rest[0]) {
			return 0, nil, head.errorf(p.context, "missing local index for %s", head.text)
		}
		var slot wasm.Index
		if slot, err = parseIndex(p.context, rest[0], p.locals); err != nil {
			return 0, nil, err
		}
		return 1, in.newOp(slot), nil
	case immIndex:
		if len(rest) == 0 || !isIndex(rest[0]) {
			return 0, nil, head.errorf(p.context, "missing index for %s", head.text)
		}
		consumed = 1
	case immLabels:
		for consumed < len(rest) && isIndex(rest[consumed]) {
			consumed++
		}
		if consumed == 0 {
			return 0, nil, head.errorf(p.context, "missing label for %s", head.text)
		}
	case immMemArg:
		for consumed < len(rest) && rest[consumed].tok == tokenKeyword &&
			(strings.HasPrefix(rest[consumed].text, "offset=") || strings.HasPrefix(rest[consumed].text, "align=")) {
			consumed++
		}
	case immConst:
		if len(rest) == 0 || rest[0].isList() {
			return 0, nil, head.errorf(p.context, "missing literal for %s", head.text)
		}
		c, err := parseConst(in.constType, rest[0].text)
		if err != nil {
			return 0, nil, rest[0].errorf(p.context, "%v", err)
		}
		return 1, &wasm.OperationConst{Value: c}, nil
	case immBlock:
		if consumed < len(rest) && rest[consumed].tok == tokenID {
			consumed++
		}
		for consumed < len(rest) && isTypeUse(rest[consumed]) {
			consumed++
		}
	case immLabel:
		if len(rest) > 0 && rest[0].tok == tokenID {
			consumed = 1
		}
	case immTypeUse:
		if consumed < len(rest) && isIndex(rest[consumed]) {
			consumed++
		}
		for consumed < len(rest) && isTypeUse(rest[consumed]) {
			consumed++
		}
	}
	return consumed, in.newOp(0), nil
}

func isIndex(n *node) bool {
	return n.tok == tokenNumber || n.tok == tokenID
}

// isTypeUse returns true for (type x), (param ...) or (result ...), as used by blocks and call_indirect.
func isTypeUse(n *node) bool {
	switch n.keyword() {
	case "type", "param", "result":
		return true
	}
	return false
}
