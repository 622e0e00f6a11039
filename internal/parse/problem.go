package parse

import (
	"strconv"

	"sledge/internal/decl"
	"sledge/internal/term"
)

// Hypothesis is one (hyp name TYPE) entry, in file order.
type Hypothesis struct {
	Name term.Name
	Type *term.Expr
}

// Problem is one parsed problem file. Env starts from the prelude and
// accumulates the file's own declarations.
type Problem struct {
	Env     *decl.Env
	Hyps    []Hypothesis
	Atoms   []*term.Expr
	Targets []*term.Expr
	Goals   []*term.Expr
}

// ParseProblem reads a complete problem from source text.
func ParseProblem(src string) (*Problem, error) {
	forms, err := readAll(src)
	if err != nil {
		return nil, err
	}
	p := &Problem{Env: decl.Prelude()}
	el := &elaborator{env: p.Env}
	for _, form := range forms {
		if err := p.apply(el, form); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Problem) apply(el *elaborator, form *node) error {
	if form.isSym() || len(form.List) == 0 || !form.List[0].isSym() {
		return errAt(form.Pos, "expected a (keyword ...) form")
	}
	head := form.List[0]
	args := form.List[1:]
	switch head.Sym {
	case "inductive", "class":
		clear := markPending(el, form)
		info, ctors, err := parseInductive(el, form)
		clear()
		if err != nil {
			return err
		}
		if err := p.Env.AddInductive(info, ctors); err != nil {
			return errAt(form.Pos, "%s", err)
		}
		return nil
	case "mutual":
		clear := markPending(el, args...)
		defer clear()
		var infos []decl.InductiveInfo
		var ctors []decl.CtorInfo
		for _, member := range args {
			info, memberCtors, err := parseInductive(el, member)
			if err != nil {
				return err
			}
			infos = append(infos, info)
			ctors = append(ctors, memberCtors...)
		}
		if len(infos) < 2 {
			return errAt(form.Pos, "(mutual ...) wants at least two inductives")
		}
		if err := p.Env.AddMutual(infos, ctors); err != nil {
			return errAt(form.Pos, "%s", err)
		}
		return nil
	case "hyp":
		if len(args) != 2 || !args[0].isSym() {
			return errAt(form.Pos, "(hyp name TYPE) wants a name and a type")
		}
		ty, err := el.term(args[1])
		if err != nil {
			return err
		}
		p.Hyps = append(p.Hyps, Hypothesis{Name: term.Name(args[0].Sym), Type: ty})
		return nil
	case "atom":
		ty, err := oneTerm(el, form, args)
		if err != nil {
			return err
		}
		p.Atoms = append(p.Atoms, ty)
		return nil
	case "target":
		ty, err := oneTerm(el, form, args)
		if err != nil {
			return err
		}
		p.Targets = append(p.Targets, ty)
		return nil
	case "goal":
		ty, err := oneTerm(el, form, args)
		if err != nil {
			return err
		}
		p.Goals = append(p.Goals, ty)
		return nil
	default:
		return errAt(head.Pos, "unknown top-level form %q", head.Sym)
	}
}

// markPending registers the names of the inductive forms so their
// constructor types resolve them as constants. The returned func
// unregisters them.
func markPending(el *elaborator, forms ...*node) func() {
	if el.pending == nil {
		el.pending = make(map[term.Name]struct{}, len(forms))
	}
	var added []term.Name
	for _, form := range forms {
		if form.isSym() || len(form.List) < 2 || !form.List[1].isSym() {
			continue
		}
		name := term.Name(form.List[1].Sym)
		if _, dup := el.pending[name]; !dup {
			el.pending[name] = struct{}{}
			added = append(added, name)
		}
	}
	return func() {
		for _, name := range added {
			delete(el.pending, name)
		}
	}
}

func oneTerm(el *elaborator, form *node, args []*node) (*term.Expr, error) {
	if len(args) != 1 {
		return nil, errAt(form.Pos, "form wants exactly one term")
	}
	return el.term(args[0])
}

// parseInductive handles (inductive ...) and (class ...) forms:
//
//	(inductive Name (levels u ...) NPARAMS TYPE (ctor Name TYPE) ...)
func parseInductive(el *elaborator, form *node) (decl.InductiveInfo, []decl.CtorInfo, error) {
	var info decl.InductiveInfo
	if form.isSym() || len(form.List) < 5 || !form.List[0].isSym() {
		return info, nil, errAt(form.Pos, "malformed inductive form")
	}
	head, args := form.List[0], form.List[1:]
	if head.Sym != "inductive" && head.Sym != "class" {
		return info, nil, errAt(head.Pos, "expected inductive or class, got %q", head.Sym)
	}
	if !args[0].isSym() {
		return info, nil, errAt(args[0].Pos, "inductive wants a name")
	}
	name := term.Name(args[0].Sym)
	levels, err := parseLevels(args[1])
	if err != nil {
		return info, nil, err
	}
	if !args[2].isSym() {
		return info, nil, errAt(args[2].Pos, "inductive wants a parameter count")
	}
	nparams, err := strconv.Atoi(args[2].Sym)
	if err != nil || nparams < 0 {
		return info, nil, errAt(args[2].Pos, "bad parameter count %q", args[2].Sym)
	}
	ty, err := el.term(args[3])
	if err != nil {
		return info, nil, err
	}
	info = decl.InductiveInfo{
		Name:        name,
		LevelParams: levels,
		NumParams:   nparams,
		Type:        ty,
		IsClass:     head.Sym == "class",
	}
	var ctors []decl.CtorInfo
	for _, c := range args[4:] {
		if c.isSym() || len(c.List) != 3 || !c.List[0].isSym() || c.List[0].Sym != "ctor" || !c.List[1].isSym() {
			return info, nil, errAt(c.Pos, "(ctor Name TYPE) expected")
		}
		cty, err := el.term(c.List[2])
		if err != nil {
			return info, nil, err
		}
		ctors = append(ctors, decl.CtorInfo{
			Name:        term.Name(c.List[1].Sym),
			Induct:      name,
			LevelParams: levels,
			Type:        cty,
		})
	}
	return info, ctors, nil
}

func parseLevels(n *node) ([]term.Name, error) {
	if n.isSym() || len(n.List) == 0 || !n.List[0].isSym() || n.List[0].Sym != "levels" {
		return nil, errAt(n.Pos, "(levels u ...) expected")
	}
	var out []term.Name
	for _, l := range n.List[1:] {
		if !l.isSym() {
			return nil, errAt(l.Pos, "level parameter must be a name")
		}
		out = append(out, term.Name(l.Sym))
	}
	return out, nil
}
