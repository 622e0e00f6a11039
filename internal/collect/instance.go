package collect

import (
	"errors"
	"fmt"

	"sledge/internal/decl"
	"sledge/internal/kernel"
	"sledge/internal/term"
)

var (
	// ErrParamArity indicates a Build call whose argument list does not
	// match the declared parameter count. Callers own this contract.
	ErrParamArity = errors.New("parameter count mismatch")
	// ErrUpstreamForm indicates a local definition, metadata wrapper,
	// or projection surviving into the engines: an upstream reduction
	// contract violation.
	ErrUpstreamForm = errors.New("unreduced upstream form")
)

// InstCtor pairs an instantiated constructor with its reduced type.
type InstCtor struct {
	Ctor *term.Expr
	Type *term.Expr
}

// InstInductive is the canonical description of one concrete
// instantiation of an inductive type: the fully applied type former
// and every constructor in declaration order, all sharing the same
// parameter arguments and universe levels.
type InstInductive struct {
	Name  term.Name
	Type  *term.Expr
	Ctors []InstCtor
}

// Builder produces InstInductive values from concrete parameter
// assignments.
type Builder struct {
	env *decl.Env
	kc  *kernel.Checker
}

// NewBuilder creates a builder over the declaration table and
// inference substrate.
func NewBuilder(env *decl.Env, kc *kernel.Checker) *Builder {
	return &Builder{env: env, kc: kc}
}

// Build instantiates the named inductive with the given universe
// levels and parameter arguments. The argument count must equal the
// declared parameter count; violating that is a programming error on
// the caller's side and reported as a hard failure.
func (b *Builder) Build(name term.Name, levels []term.Level, args []*term.Expr) (InstInductive, error) {
	info, err := b.env.MustInductive(name)
	if err != nil {
		return InstInductive{}, err
	}
	if len(args) != info.NumParams {
		return InstInductive{}, fmt.Errorf("%w: %s wants %d parameters, got %d", ErrParamArity, name, info.NumParams, len(args))
	}
	inst := InstInductive{
		Name:  name,
		Type:  term.AppN(term.Const(name, levels...), args...),
		Ctors: make([]InstCtor, 0, len(info.Ctors)),
	}
	for _, ctorName := range info.Ctors {
		ctor := term.AppN(term.Const(ctorName, levels...), args...)
		cty, err := b.kc.Infer(ctor)
		if err != nil {
			return InstInductive{}, fmt.Errorf("constructor %s: %w", ctorName, err)
		}
		cty = kernel.PrepReduce(b.env, cty)
		if err := checkReduced(cty); err != nil {
			return InstInductive{}, fmt.Errorf("constructor %s: %w", ctorName, err)
		}
		inst.Ctors = append(inst.Ctors, InstCtor{Ctor: ctor, Type: cty})
	}
	return inst, nil
}

// checkReduced enforces the upstream reduction contract: the shared
// reducer must have eliminated lets, metadata, and projections.
func checkReduced(e *term.Expr) error {
	for _, kind := range []term.Kind{term.KindLet, term.KindMData, term.KindProj} {
		if term.ContainsKind(e, kind) {
			return fmt.Errorf("%w: %s in %s", ErrUpstreamForm, kind, e)
		}
	}
	return nil
}
