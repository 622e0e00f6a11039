package parse

import (
	"strconv"

	"sledge/internal/decl"
	"sledge/internal/term"
)

// elaborator turns s-expression nodes into de Bruijn terms. scope is
// the binder stack, innermost last.
type elaborator struct {
	env   *decl.Env
	scope []string
	// pending holds the names of inductives currently being declared,
	// so constructor types can mention them before they land in env.
	pending map[term.Name]struct{}
}

func (el *elaborator) push(name string) {
	el.scope = append(el.scope, name)
}

func (el *elaborator) pop() {
	el.scope = el.scope[:len(el.scope)-1]
}

func (el *elaborator) lookup(name string) (int, bool) {
	for i := len(el.scope) - 1; i >= 0; i-- {
		if el.scope[i] == name {
			return len(el.scope) - 1 - i, true
		}
	}
	return 0, false
}

func (el *elaborator) term(n *node) (*term.Expr, error) {
	if n.isSym() {
		return el.symbol(n)
	}
	if len(n.List) == 0 {
		return nil, errAt(n.Pos, "empty form")
	}
	head := n.List[0]
	if !head.isSym() {
		return nil, errAt(head.Pos, "form head must be a symbol")
	}
	args := n.List[1:]
	switch head.Sym {
	case "pi", "lam":
		if len(args) != 3 || !args[0].isSym() {
			return nil, errAt(n.Pos, "(%s x T B) wants a binder name, a type and a body", head.Sym)
		}
		ty, err := el.term(args[1])
		if err != nil {
			return nil, err
		}
		el.push(args[0].Sym)
		body, err := el.term(args[2])
		el.pop()
		if err != nil {
			return nil, err
		}
		if head.Sym == "pi" {
			return term.Pi(term.Name(args[0].Sym), ty, body), nil
		}
		return term.Lambda(term.Name(args[0].Sym), ty, body), nil
	case "->":
		if len(args) < 2 {
			return nil, errAt(n.Pos, "(-> A B ...) wants at least two types")
		}
		tys := make([]*term.Expr, len(args))
		for i, a := range args {
			ty, err := el.term(a)
			if err != nil {
				return nil, err
			}
			tys[i] = ty
		}
		return term.ArrowN(tys...), nil
	case "app":
		if len(args) < 2 {
			return nil, errAt(n.Pos, "(app f a ...) wants a head and at least one argument")
		}
		fn, err := el.term(args[0])
		if err != nil {
			return nil, err
		}
		rest := make([]*term.Expr, len(args)-1)
		for i, a := range args[1:] {
			arg, err := el.term(a)
			if err != nil {
				return nil, err
			}
			rest[i] = arg
		}
		return term.AppN(fn, rest...), nil
	case "const":
		if len(args) < 1 || !args[0].isSym() {
			return nil, errAt(n.Pos, "(const Name LEVEL ...) wants a constant name")
		}
		levels := make([]term.Level, len(args)-1)
		for i, a := range args[1:] {
			lvl, err := level(a)
			if err != nil {
				return nil, err
			}
			levels[i] = lvl
		}
		return term.Const(term.Name(args[0].Sym), levels...), nil
	case "sort":
		if len(args) != 1 {
			return nil, errAt(n.Pos, "(sort LEVEL) wants one level")
		}
		lvl, err := level(args[0])
		if err != nil {
			return nil, err
		}
		return term.Sort(lvl), nil
	case "lit":
		if len(args) != 1 || !args[0].isSym() {
			return nil, errAt(n.Pos, "(lit N) wants a numeral")
		}
		v, err := strconv.ParseUint(args[0].Sym, 10, 64)
		if err != nil {
			return nil, errAt(args[0].Pos, "bad numeral %q", args[0].Sym)
		}
		return term.NatLit(v), nil
	default:
		return nil, errAt(head.Pos, "unknown term form %q", head.Sym)
	}
}

// symbol resolves a bare name: innermost binder first, then a
// declared constant, then a free variable.
func (el *elaborator) symbol(n *node) (*term.Expr, error) {
	switch n.Sym {
	case "Prop":
		return term.Prop(), nil
	case "Type":
		return term.TypeU(), nil
	}
	// Bare numerals are literals, matching the printer.
	if v, err := strconv.ParseUint(n.Sym, 10, 64); err == nil {
		return term.NatLit(v), nil
	}
	if idx, ok := el.lookup(n.Sym); ok {
		return term.BVar(idx), nil
	}
	name := term.Name(n.Sym)
	if _, ok := el.pending[name]; ok {
		return term.Const(name), nil
	}
	if _, ok := el.env.Inductive(name); ok {
		return term.Const(name), nil
	}
	if _, ok := el.env.Ctor(name); ok {
		return term.Const(name), nil
	}
	return term.FVar(name), nil
}

func level(n *node) (term.Level, error) {
	if !n.isSym() {
		return term.Level{}, errAt(n.Pos, "level must be a numeral or a parameter name")
	}
	if v, err := strconv.ParseUint(n.Sym, 10, 32); err == nil {
		return term.LevelLit(uint32(v)), nil
	}
	return term.LevelParam(term.Name(n.Sym)), nil
}
