package wast

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tetratelabs/wasmvm/wasm"
)

// moduleFields are the fields which can appear in a module. Only "func", "type" and "export" define anything the
// engine executes: the rest are skipped.
var moduleFields = map[string]bool{
	"func": true, "type": true, "export": true, "import": true, "memory": true, "table": true,
	"global": true, "data": true, "elem": true, "start": true,
}

// moduleParser builds a wasm.Module from the fields of a (module ...) list.
type moduleParser struct {
	logger  *zap.Logger
	context string

	types     []*wasm.FunctionType
	typeNames map[string]wasm.Index
	funcNames map[string]wasm.Index
	funcCount wasm.Index
}

// parseModule returns the optional $name and the module defined by fields.
func parseModule(logger *zap.Logger, context string, n *node, fields []*node) (name string, m *wasm.Module, err error) {
	if len(fields) > 0 && fields[0].tok == tokenID {
		name = fields[0].text
		fields = fields[1:]
	}
	if len(fields) > 0 && (fields[0].isKeyword("binary") || fields[0].isKeyword("quote")) {
		return "", nil, fields[0].errorf(context, "unsupported module encoding: %s", fields[0].text)
	}

	p := &moduleParser{
		logger:    logger,
		context:   context,
		typeNames: map[string]wasm.Index{},
		funcNames: map[string]wasm.Index{},
	}

	// Functions and types can be referenced before they are defined, so index them first.
	for _, f := range fields {
		if !f.isList() || !moduleFields[f.keyword()] {
			return "", nil, f.errorf(context, "unexpected module field: %s", fieldName(f))
		}
		switch f.keyword() {
		case "type":
			if err = p.parseType(f); err != nil {
				return "", nil, err
			}
		case "func":
			if isImported(f) {
				continue
			}
			if len(f.children) > 1 && f.children[1].tok == tokenID {
				p.funcNames[f.children[1].text] = p.funcCount
			}
			p.funcCount++
		}
	}

	b := wasm.NewModuleBuilder()
	var funcIndex wasm.Index
	for _, f := range fields {
		switch f.keyword() {
		case "func":
			if isImported(f) {
				p.skipped(f)
				continue
			}
			fn, exports, err := p.parseFunc(f, funcIndex)
			funcIndex++
			if err != nil {
				return "", nil, err
			}
			index := b.AddFunction(fn)
			for _, e := range exports {
				b.AddExport(e, index)
			}
		case "export":
			if err = p.parseExport(b, f); err != nil {
				return "", nil, err
			}
		case "type":
		default:
			p.skipped(f)
		}
	}

	if m, err = b.Build(); err != nil {
		return "", nil, n.wrap(context, err)
	}
	return name, m, nil
}

func fieldName(n *node) string {
	if n.isList() {
		return "(" + n.keyword()
	}
	return n.text
}

func (p *moduleParser) skipped(n *node) {
	p.logger.Debug("skipped module field",
		zap.String("field", n.keyword()),
		zap.Uint32("line", n.line),
		zap.Uint32("col", n.col))
}

func isImported(f *node) bool {
	for _, c := range f.children {
		if c.keyword() == "import" {
			return true
		}
	}
	return false
}

// parseType parses (type $name? (func (param ...)* (result ...)*))
func (p *moduleParser) parseType(n *node) error {
	context := fmt.Sprintf("%s.type[%d]", p.context, len(p.types))
	children := n.children[1:]
	if len(children) > 0 && children[0].tok == tokenID {
		p.typeNames[children[0].text] = wasm.Index(len(p.types))
		children = children[1:]
	}
	if len(children) != 1 || children[0].keyword() != "func" {
		return n.errorf(context, "expected (func ...)")
	}

	t := &wasm.FunctionType{}
	for _, c := range children[0].children[1:] {
		var err error
		switch c.keyword() {
		case "param":
			err = parseDecls(context, c, &t.Params, nil, 0)
		case "result":
			err = parseDecls(context, c, &t.Results, nil, 0)
		default:
			err = c.errorf(context, "unexpected %s in type", fieldName(c))
		}
		if err != nil {
			return err
		}
	}
	p.types = append(p.types, t)
	return nil
}

// parseDecls appends the value types of a (param ...), (result ...) or (local ...) list to types. When names is
// not nil, a $name is assigned the slot firstSlot + the position of its type. Otherwise, it is ignored.
func parseDecls(context string, n *node, types *[]wasm.ValueType, names map[string]wasm.Index, firstSlot int) error {
	children := n.children[1:]
	if len(children) > 0 && children[0].tok == tokenID {
		if len(children) != 2 {
			return n.errorf(context, "expected one type after %s", children[0].text)
		}
		if names != nil {
			if _, ok := names[children[0].text]; ok {
				return children[0].errorf(context, "duplicate name %s", children[0].text)
			}
			names[children[0].text] = wasm.Index(firstSlot + len(*types))
		}
		children = children[1:]
	}
	for _, c := range children {
		vt, ok := parseValueType(c.text)
		if c.tok != tokenKeyword || !ok {
			return c.errorf(context, "unknown value type: %s", c.text)
		}
		*types = append(*types, vt)
	}
	return nil
}

// parseIndex returns an index which is either a decimal number or an id in names.
func parseIndex(context string, n *node, names map[string]wasm.Index) (wasm.Index, error) {
	switch n.tok {
	case tokenNumber:
		i, err := strconv.ParseUint(strings.ReplaceAll(n.text, "_", ""), 0, 32)
		if err != nil || strings.HasPrefix(n.text, "-") || strings.HasPrefix(n.text, "+") {
			return 0, n.errorf(context, "invalid index: %s", n.text)
		}
		return wasm.Index(i), nil
	case tokenID:
		if i, ok := names[n.text]; ok {
			return i, nil
		}
		return 0, n.errorf(context, "unknown id: %s", n.text)
	}
	return 0, n.errorf(context, "expected index, but parsed %s", fieldName(n))
}

// parseFunc parses (func $name? (export "name")* (type x)? (param ...)* (result ...)* (local ...)* instr*)
func (p *moduleParser) parseFunc(n *node, index wasm.Index) (*wasm.Function, []string, error) {
	context := fmt.Sprintf("%s.func[%d]", p.context, index)
	children := n.children[1:]
	f := &wasm.Function{}
	if len(children) > 0 && children[0].tok == tokenID {
		f.Name = children[0].text
		children = children[1:]
	}

	var exports []string
	var typeUse *wasm.FunctionType
	inline := &wasm.FunctionType{}
	hasInline := false
	locals := map[string]wasm.Index{}

	// finishType decides the signature, once the first local or instruction is reached.
	finishType := func() {
		if f.Type != nil {
			return
		}
		if typeUse != nil && !hasInline {
			f.Type = typeUse
		} else {
			f.Type = inline
		}
	}

	i := 0
Fields:
	for ; i < len(children); i++ {
		c := children[i]
		var err error
		switch c.keyword() {
		case "export":
			if len(c.children) != 2 || c.children[1].tok != tokenString {
				return nil, nil, c.errorf(context, "expected (export \"name\")")
			}
			var name string
			if name, err = unquote(c.children[1].text); err != nil {
				return nil, nil, c.children[1].errorf(context, "%v", err)
			}
			exports = append(exports, name)
		case "type":
			if len(c.children) != 2 {
				return nil, nil, c.errorf(context, "expected (type index)")
			}
			var ti wasm.Index
			if ti, err = parseIndex(context, c.children[1], p.typeNames); err != nil {
				return nil, nil, err
			}
			if int(ti) >= len(p.types) {
				return nil, nil, c.errorf(context, "unknown type: %d", ti)
			}
			typeUse = p.types[ti]
		case "param":
			hasInline = true
			err = parseDecls(context, c, &inline.Params, locals, 0)
		case "result":
			hasInline = true
			err = parseDecls(context, c, &inline.Results, nil, 0)
		case "local":
			finishType()
			err = parseDecls(context, c, &f.LocalTypes, locals, len(f.Type.Params))
		default:
			break Fields
		}
		if err != nil {
			return nil, nil, err
		}
	}
	finishType()

	_, hasResult := f.ResultType()
	fp := &funcParser{context: context, locals: locals, hasResult: hasResult}
	if err := fp.parseInstructions(children[i:]); err != nil {
		return nil, nil, err
	}

	// The end of a function returns its result, like an explicit return does.
	if len(fp.ops) == 0 || fp.ops[len(fp.ops)-1].Kind() != wasm.OperationKindReturn {
		fp.ops = append(fp.ops, &wasm.OperationReturn{HasArg: hasResult})
	}
	f.Body = fp.ops
	return f, exports, nil
}

// parseExport parses (export "name" (func x)), or the legacy form (export "name" x).
func (p *moduleParser) parseExport(b *wasm.ModuleBuilder, n *node) error {
	context := p.context + ".export"
	if len(n.children) != 3 || n.children[1].tok != tokenString {
		return n.errorf(context, "expected (export \"name\" (func index))")
	}
	name, err := unquote(n.children[1].text)
	if err != nil {
		return n.children[1].errorf(context, "%v", err)
	}
	context = fmt.Sprintf("%s.export[%q]", p.context, name)

	desc := n.children[2]
	if desc.isList() {
		switch desc.keyword() {
		case "func":
			if len(desc.children) != 2 {
				return desc.errorf(context, "expected (func index)")
			}
			desc = desc.children[1]
		case "memory", "table", "global":
			p.skipped(n)
			return nil
		default:
			return desc.errorf(context, "unexpected export kind: %s", fieldName(desc))
		}
	}

	index, err := parseIndex(context, desc, p.funcNames)
	if err != nil {
		return err
	}
	b.AddExport(name, index)
	return nil
}
