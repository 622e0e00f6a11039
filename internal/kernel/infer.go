package kernel

import (
	"errors"
	"fmt"

	"sledge/internal/term"
)

var (
	// ErrUnknownConst indicates a constant with no declaration.
	ErrUnknownConst = errors.New("unknown constant")
	// ErrNotFunction indicates an application whose head does not have
	// a function type.
	ErrNotFunction = errors.New("not a function")
	// ErrTypeMismatch indicates an argument whose type is not
	// definitionally equal to the expected domain.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrCannotInfer indicates a form outside the inferable fragment.
	ErrCannotInfer = errors.New("cannot infer type")
	// ErrLevelArity indicates a constant applied to the wrong number
	// of universe levels.
	ErrLevelArity = errors.New("universe level arity mismatch")
)

// Infer computes the type of an expression within the restricted
// fragment the bridge manipulates. Free variables resolve through the
// checker's hypothesis context; constants through the declaration
// table. Binder bodies are typed under scratch locals discarded on
// return; the hypothesis context itself is never written.
func (c *Checker) Infer(e *term.Expr) (*term.Expr, error) {
	mark := len(c.scratch)
	ty, err := c.infer(e)
	c.scratchTrim(mark)
	return ty, err
}

func (c *Checker) infer(e *term.Expr) (*term.Expr, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil expression", ErrCannotInfer)
	}
	switch e.Kind {
	case term.KindSort:
		level := e.Data.(term.SortData).Level
		succ, ok := level.Succ()
		if !ok {
			return nil, fmt.Errorf("%w: sort of parameter level %s", ErrCannotInfer, level)
		}
		return term.Sort(succ), nil
	case term.KindConst:
		data := e.Data.(term.ConstData)
		declared, lparams, err := c.constType(data.Name)
		if err != nil {
			return nil, err
		}
		if len(lparams) != len(data.Levels) {
			return nil, fmt.Errorf("%w: %s wants %d levels, got %d", ErrLevelArity, data.Name, len(lparams), len(data.Levels))
		}
		return term.InstantiateLevelParams(declared, lparams, data.Levels), nil
	case term.KindFVar:
		name := e.Data.(term.FVarData).Name
		if ty, ok := c.scratchType(name); ok {
			return ty, nil
		}
		ty, ok := c.lctx.Type(name)
		if !ok {
			return nil, fmt.Errorf("%w: free variable %s", ErrCannotInfer, name)
		}
		return ty, nil
	case term.KindBVar:
		return nil, fmt.Errorf("%w: loose bound variable #%d", ErrCannotInfer, e.Data.(term.BVarData).Idx)
	case term.KindMVar:
		return nil, fmt.Errorf("%w: metavariable %s", ErrCannotInfer, e)
	case term.KindApp:
		data := e.Data.(term.AppData)
		fnTy, err := c.infer(data.Fn)
		if err != nil {
			return nil, err
		}
		fnTy = c.whnf(fnTy)
		if fnTy.Kind != term.KindPi {
			return nil, fmt.Errorf("%w: %s : %s", ErrNotFunction, data.Fn, fnTy)
		}
		binder := fnTy.Data.(term.BinderData)
		argTy, err := c.infer(data.Arg)
		if err != nil {
			return nil, err
		}
		if !c.IsDefEq(argTy, binder.Type) {
			return nil, fmt.Errorf("%w: argument %s has type %s, expected %s", ErrTypeMismatch, data.Arg, argTy, binder.Type)
		}
		return term.Instantiate(binder.Body, data.Arg), nil
	case term.KindLambda:
		data := e.Data.(term.BinderData)
		fv := c.FreshFVarName("_lam")
		c.scratchAdd(fv, data.Type)
		bodyTy, err := c.infer(term.Instantiate(data.Body, term.FVar(fv)))
		if err != nil {
			return nil, err
		}
		return term.Pi(data.Binder, data.Type, term.AbstractFVar(bodyTy, fv)), nil
	case term.KindPi:
		data := e.Data.(term.BinderData)
		domSort, err := c.inferSortLevel(data.Type)
		if err != nil {
			return nil, err
		}
		fv := c.FreshFVarName("_pi")
		c.scratchAdd(fv, data.Type)
		codSort, err := c.inferSortLevel(term.Instantiate(data.Body, term.FVar(fv)))
		if err != nil {
			return nil, err
		}
		level, ok := term.LevelMax(domSort, codSort)
		if !ok {
			return nil, fmt.Errorf("%w: universe of %s", ErrCannotInfer, e)
		}
		return term.Sort(level), nil
	case term.KindLet:
		data := e.Data.(term.LetData)
		return c.infer(term.Instantiate(data.Body, data.Value))
	case term.KindMData:
		return c.infer(e.Data.(term.MDataData).Inner)
	case term.KindLit:
		return term.Const("Nat"), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrCannotInfer, e.Kind)
	}
}

// InferSortInProp reports whether the type of ty is the proposition
// sort, i.e. whether a hypothesis of type ty is a proof.
func (c *Checker) InferSortInProp(ty *term.Expr) (bool, error) {
	sort, err := c.Infer(ty)
	if err != nil {
		return false, err
	}
	return c.IsDefEq(sort, term.Prop()), nil
}

func (c *Checker) inferSortLevel(e *term.Expr) (term.Level, error) {
	ty, err := c.infer(e)
	if err != nil {
		return term.Level{}, err
	}
	ty = c.whnf(ty)
	if ty.Kind != term.KindSort {
		return term.Level{}, fmt.Errorf("%w: %s is not a sort", ErrCannotInfer, ty)
	}
	return ty.Data.(term.SortData).Level, nil
}

func (c *Checker) constType(name term.Name) (*term.Expr, []term.Name, error) {
	if ind, ok := c.env.Inductive(name); ok {
		return ind.Type, ind.LevelParams, nil
	}
	if ctor, ok := c.env.Ctor(name); ok {
		return ctor.Type, ctor.LevelParams, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownConst, name)
}

func (c *Checker) scratchAdd(name term.Name, ty *term.Expr) {
	if c.scratchIdx == nil {
		c.scratchIdx = make(map[term.Name]int, 4)
	}
	c.scratchIdx[name] = len(c.scratch)
	c.scratch = append(c.scratch, Local{Name: name, Type: ty})
}

func (c *Checker) scratchType(name term.Name) (*term.Expr, bool) {
	idx, ok := c.scratchIdx[name]
	if !ok {
		return nil, false
	}
	return c.scratch[idx].Type, true
}

// scratchTrim discards temporaries registered after the mark.
// Generated names are never reused, so removal is a plain delete.
func (c *Checker) scratchTrim(mark int) {
	for i := len(c.scratch) - 1; i >= mark; i-- {
		delete(c.scratchIdx, c.scratch[i].Name)
	}
	c.scratch = c.scratch[:mark]
}
