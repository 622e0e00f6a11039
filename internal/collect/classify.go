package collect

import (
	"sledge/internal/decl"
	"sledge/internal/kernel"
	"sledge/internal/term"
)

// IsFamily reports whether the inductive type has indices beyond its
// declared parameters. Fails with decl.ErrNotInductive when the name
// does not resolve to an inductive declaration.
func IsFamily(env *decl.Env, name term.Name) (bool, error) {
	info, err := env.MustInductive(name)
	if err != nil {
		return false, err
	}
	binders := countBinders(kernel.PrepReduce(env, info.Type))
	return binders > info.NumParams, nil
}

// IsIndProp reports whether the inductive type lands in the
// proposition sort once all its binders are unfolded. Runs in a fresh,
// discardable inference context.
func IsIndProp(env *decl.Env, name term.Name) (bool, error) {
	info, err := env.MustInductive(name)
	if err != nil {
		return false, err
	}
	kc := kernel.NewChecker(env, nil)
	body := kernel.PrepReduce(env, info.Type)
	for body.Kind == term.KindPi {
		data := body.Data.(term.BinderData)
		body = term.Instantiate(data.Body, term.FVar(kc.FreshFVarName("_b")))
	}
	return kc.IsDefEq(body, term.Prop()), nil
}

// IsSimpleCtor reports whether the constructor is monomorphic once the
// type's parameters are fixed: after introducing exactly the parameter
// binders, no remaining field type may depend on an earlier field.
// Fails with decl.ErrNotConstructor for non-constructor names.
func IsSimpleCtor(env *decl.Env, name term.Name) (bool, error) {
	ctor, err := env.MustCtor(name)
	if err != nil {
		return false, err
	}
	info, err := env.MustInductive(ctor.Induct)
	if err != nil {
		return false, err
	}
	kc := kernel.NewChecker(env, nil)
	body := kernel.PrepReduce(env, ctor.Type)
	for i := 0; i < info.NumParams; i++ {
		if body.Kind != term.KindPi {
			// Fewer binders than declared parameters: malformed, but
			// classification only needs a verdict.
			return false, nil
		}
		data := body.Data.(term.BinderData)
		body = term.Instantiate(data.Body, term.FVar(kc.FreshFVarName("_p")))
	}
	for body.Kind == term.KindPi {
		data := body.Data.(term.BinderData)
		if term.HasLooseBVar(data.Body, 0) {
			return false, nil
		}
		body = term.Instantiate(data.Body, term.FVar(kc.FreshFVarName("_f")))
	}
	return true, nil
}

// IsSimpleInductive reports whether the type is not a family and every
// constructor is simple.
func IsSimpleInductive(env *decl.Env, name term.Name) (bool, error) {
	family, err := IsFamily(env, name)
	if err != nil {
		return false, err
	}
	if family {
		return false, nil
	}
	info, _ := env.Inductive(name)
	for _, ctorName := range info.Ctors {
		simple, err := IsSimpleCtor(env, ctorName)
		if err != nil {
			return false, err
		}
		if !simple {
			return false, nil
		}
	}
	return true, nil
}

func countBinders(e *term.Expr) int {
	n := 0
	for e != nil && e.Kind == term.KindPi {
		n++
		e = e.Data.(term.BinderData).Body
	}
	return n
}
