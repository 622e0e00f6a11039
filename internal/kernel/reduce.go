package kernel

import (
	"sledge/internal/decl"
	"sledge/internal/term"
)

// PrepReduce normalizes an expression the way the collection engines
// expect their inputs: beta redexes contracted, local definitions
// zeta-expanded, metadata wrappers dropped, and projections of literal
// constructor applications resolved to the projected field. Any
// projection that cannot be resolved is left in place for the caller
// to reject.
func PrepReduce(env *decl.Env, e *term.Expr) *term.Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case term.KindLet:
		data := e.Data.(term.LetData)
		return PrepReduce(env, term.Instantiate(data.Body, data.Value))
	case term.KindMData:
		return PrepReduce(env, e.Data.(term.MDataData).Inner)
	case term.KindApp:
		data := e.Data.(term.AppData)
		fn := PrepReduce(env, data.Fn)
		arg := PrepReduce(env, data.Arg)
		if fn.Kind == term.KindLambda {
			return PrepReduce(env, term.Instantiate(fn.Data.(term.BinderData).Body, arg))
		}
		return term.App(fn, arg)
	case term.KindLambda:
		data := e.Data.(term.BinderData)
		return term.Lambda(data.Binder, PrepReduce(env, data.Type), PrepReduce(env, data.Body))
	case term.KindPi:
		data := e.Data.(term.BinderData)
		return term.Pi(data.Binder, PrepReduce(env, data.Type), PrepReduce(env, data.Body))
	case term.KindProj:
		data := e.Data.(term.ProjData)
		val := PrepReduce(env, data.Val)
		if reduced, ok := reduceProj(env, data, val); ok {
			return PrepReduce(env, reduced)
		}
		return term.Proj(data.Struct, data.Field, val)
	default:
		return e
	}
}

// reduceProj resolves a projection applied to a constructor
// application: the result is the constructor argument at the field
// position past the type parameters.
func reduceProj(env *decl.Env, data term.ProjData, val *term.Expr) (*term.Expr, bool) {
	if env == nil {
		return nil, false
	}
	head, args := term.AppSpine(val)
	if head == nil || head.Kind != term.KindConst {
		return nil, false
	}
	ctor, ok := env.Ctor(head.Data.(term.ConstData).Name)
	if !ok {
		return nil, false
	}
	ind, ok := env.Inductive(ctor.Induct)
	if !ok {
		return nil, false
	}
	idx := ind.NumParams + data.Field
	if idx < 0 || idx >= len(args) {
		return nil, false
	}
	return args[idx], true
}
