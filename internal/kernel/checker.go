package kernel

import (
	"fmt"

	"sledge/internal/decl"
	"sledge/internal/term"
)

// Local is one entry of a hypothesis context.
type Local struct {
	Name term.Name
	Type *term.Expr
}

// LocalContext is an ordered hypothesis context with name lookup.
type LocalContext struct {
	locals []Local
	index  map[term.Name]int
}

// NewLocalContext builds a context from the given entries.
func NewLocalContext(locals ...Local) *LocalContext {
	ctx := &LocalContext{index: make(map[term.Name]int, len(locals))}
	for _, l := range locals {
		ctx.Add(l.Name, l.Type)
	}
	return ctx
}

// Add appends a local. A repeated name shadows the earlier entry.
func (ctx *LocalContext) Add(name term.Name, ty *term.Expr) {
	ctx.index[name] = len(ctx.locals)
	ctx.locals = append(ctx.locals, Local{Name: name, Type: ty})
}

// Type resolves the type of a free variable.
func (ctx *LocalContext) Type(name term.Name) (*term.Expr, bool) {
	if ctx == nil {
		return nil, false
	}
	idx, ok := ctx.index[name]
	if !ok {
		return nil, false
	}
	return ctx.locals[idx].Type, true
}

// Locals returns the entries in declaration order.
func (ctx *LocalContext) Locals() []Local {
	if ctx == nil {
		return nil
	}
	return ctx.locals
}

// Checker is the definitional-equality and unification substrate. Its
// metavariable assignments form a restartable context: Snapshot marks
// the current trail position and Restore rolls every later assignment
// back, so exploratory matching can branch without interference.
type Checker struct {
	env    *decl.Env
	lctx   *LocalContext
	assign map[term.Name]*term.Expr
	trail  []term.Name
	fresh  int

	// Inference temporaries. Kept apart from lctx so typing a binder
	// never plants synthetic locals in the hypothesis context.
	scratch    []Local
	scratchIdx map[term.Name]int
}

// NewChecker builds a checker over a declaration table and an optional
// hypothesis context.
func NewChecker(env *decl.Env, lctx *LocalContext) *Checker {
	return &Checker{
		env:    env,
		lctx:   lctx,
		assign: make(map[term.Name]*term.Expr, 16),
	}
}

// Env returns the underlying declaration table.
func (c *Checker) Env() *decl.Env {
	return c.env
}

// Fork returns a fresh checker over the same declarations and context
// but with a discardable assignment state. The checker never writes to
// the hypothesis context, so sharing it is safe.
func (c *Checker) Fork() *Checker {
	return NewChecker(c.env, c.lctx)
}

// Snapshot marks the current unification state.
func (c *Checker) Snapshot() int {
	return len(c.trail)
}

// Restore rolls the unification state back to a snapshot.
func (c *Checker) Restore(mark int) {
	if mark < 0 || mark > len(c.trail) {
		return
	}
	for i := len(c.trail) - 1; i >= mark; i-- {
		delete(c.assign, c.trail[i])
	}
	c.trail = c.trail[:mark]
}

// FreshMVar introduces an unassigned metavariable.
func (c *Checker) FreshMVar(prefix string) *term.Expr {
	c.fresh++
	return term.MVar(term.Name(fmt.Sprintf("%s%d", prefix, c.fresh)))
}

// FreshFVarName returns a name unused by generated free variables.
func (c *Checker) FreshFVarName(prefix string) term.Name {
	c.fresh++
	return term.Name(fmt.Sprintf("%s%d", prefix, c.fresh))
}

func (c *Checker) assignMVar(name term.Name, value *term.Expr) {
	c.assign[name] = value
	c.trail = append(c.trail, name)
}

// whnf reduces the head of an expression: assigned metavariables are
// resolved, metadata dropped, lets expanded, and head beta redexes
// contracted.
func (c *Checker) whnf(e *term.Expr) *term.Expr {
	for e != nil {
		switch e.Kind {
		case term.KindMVar:
			v, ok := c.assign[e.Data.(term.MVarData).Name]
			if !ok {
				return e
			}
			e = v
		case term.KindMData:
			e = e.Data.(term.MDataData).Inner
		case term.KindLet:
			data := e.Data.(term.LetData)
			e = term.Instantiate(data.Body, data.Value)
		case term.KindApp:
			head, args := term.AppSpine(e)
			reducedHead := c.whnf(head)
			if reducedHead.Kind == term.KindLambda && len(args) > 0 {
				body := reducedHead.Data.(term.BinderData).Body
				e = term.AppN(term.Instantiate(body, args[0]), args[1:]...)
				continue
			}
			if reducedHead != head {
				e = term.AppN(reducedHead, args...)
				continue
			}
			return e
		default:
			return e
		}
	}
	return e
}

// IsDefEq checks definitional equality without assigning any
// metavariable.
func (c *Checker) IsDefEq(a, b *term.Expr) bool {
	return c.equate(a, b, false)
}

// Unify checks definitional equality, assigning unassigned
// metavariables where that closes the gap. Assignments land on the
// trail and are undone by Restore.
func (c *Checker) Unify(a, b *term.Expr) bool {
	return c.equate(a, b, true)
}

func (c *Checker) equate(a, b *term.Expr, assignOK bool) bool {
	a, b = c.whnf(a), c.whnf(b)
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind == term.KindMVar && b.Kind == term.KindMVar &&
		a.Data.(term.MVarData).Name == b.Data.(term.MVarData).Name {
		return true
	}
	if a.Kind == term.KindMVar {
		return assignOK && c.tryAssign(a.Data.(term.MVarData).Name, b)
	}
	if b.Kind == term.KindMVar {
		return assignOK && c.tryAssign(b.Data.(term.MVarData).Name, a)
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case term.KindBVar:
		return a.Data.(term.BVarData).Idx == b.Data.(term.BVarData).Idx
	case term.KindFVar:
		return a.Data.(term.FVarData).Name == b.Data.(term.FVarData).Name
	case term.KindSort:
		return a.Data.(term.SortData).Level.Eq(b.Data.(term.SortData).Level)
	case term.KindConst:
		da, db := a.Data.(term.ConstData), b.Data.(term.ConstData)
		if da.Name != db.Name || len(da.Levels) != len(db.Levels) {
			return false
		}
		for i := range da.Levels {
			if !da.Levels[i].Eq(db.Levels[i]) {
				return false
			}
		}
		return true
	case term.KindApp:
		da, db := a.Data.(term.AppData), b.Data.(term.AppData)
		return c.equate(da.Fn, db.Fn, assignOK) && c.equate(da.Arg, db.Arg, assignOK)
	case term.KindLambda, term.KindPi:
		da, db := a.Data.(term.BinderData), b.Data.(term.BinderData)
		return c.equate(da.Type, db.Type, assignOK) && c.equate(da.Body, db.Body, assignOK)
	case term.KindProj:
		da, db := a.Data.(term.ProjData), b.Data.(term.ProjData)
		return da.Struct == db.Struct && da.Field == db.Field && c.equate(da.Val, db.Val, assignOK)
	case term.KindLit:
		return a.Data.(term.LitData).Nat == b.Data.(term.LitData).Nat
	default:
		return false
	}
}

func (c *Checker) tryAssign(name term.Name, value *term.Expr) bool {
	if c.occurs(name, value) {
		return false
	}
	c.assignMVar(name, value)
	return true
}

func (c *Checker) occurs(name term.Name, e *term.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case term.KindMVar:
		mv := e.Data.(term.MVarData).Name
		if mv == name {
			return true
		}
		if v, ok := c.assign[mv]; ok {
			return c.occurs(name, v)
		}
		return false
	case term.KindApp:
		data := e.Data.(term.AppData)
		return c.occurs(name, data.Fn) || c.occurs(name, data.Arg)
	case term.KindLambda, term.KindPi:
		data := e.Data.(term.BinderData)
		return c.occurs(name, data.Type) || c.occurs(name, data.Body)
	case term.KindLet:
		data := e.Data.(term.LetData)
		return c.occurs(name, data.Type) || c.occurs(name, data.Value) || c.occurs(name, data.Body)
	case term.KindMData:
		return c.occurs(name, e.Data.(term.MDataData).Inner)
	case term.KindProj:
		return c.occurs(name, e.Data.(term.ProjData).Val)
	default:
		return false
	}
}

// InstantiateMVars substitutes every assigned metavariable in e,
// transitively.
func (c *Checker) InstantiateMVars(e *term.Expr) *term.Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case term.KindMVar:
		if v, ok := c.assign[e.Data.(term.MVarData).Name]; ok {
			return c.InstantiateMVars(v)
		}
		return e
	case term.KindApp:
		data := e.Data.(term.AppData)
		return term.App(c.InstantiateMVars(data.Fn), c.InstantiateMVars(data.Arg))
	case term.KindLambda:
		data := e.Data.(term.BinderData)
		return term.Lambda(data.Binder, c.InstantiateMVars(data.Type), c.InstantiateMVars(data.Body))
	case term.KindPi:
		data := e.Data.(term.BinderData)
		return term.Pi(data.Binder, c.InstantiateMVars(data.Type), c.InstantiateMVars(data.Body))
	case term.KindLet:
		data := e.Data.(term.LetData)
		return term.Let(data.Binder, c.InstantiateMVars(data.Type), c.InstantiateMVars(data.Value), c.InstantiateMVars(data.Body))
	case term.KindMData:
		data := e.Data.(term.MDataData)
		return term.MData(data.Info, c.InstantiateMVars(data.Inner))
	case term.KindProj:
		data := e.Data.(term.ProjData)
		return term.Proj(data.Struct, data.Field, c.InstantiateMVars(data.Val))
	default:
		return e
	}
}
