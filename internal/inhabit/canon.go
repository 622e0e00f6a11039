package inhabit

import (
	"errors"
	"fmt"

	"sledge/internal/term"
)

// ErrCanonicalize indicates a matched fact whose leaf no longer
// corresponds to any atomic type. The matcher verifies every leaf
// before canonicalization runs, so this signals an internal
// inconsistency, not bad input.
var ErrCanonicalize = errors.New("canonicalization found no matching atomic type")

// Fact is a ground inhabitation fact: its type is built purely from
// atomic types and non-dependent implication.
type Fact struct {
	Proof *term.Expr
	Type  *term.Expr
}

// Equivalence is the definitional-equality capability the
// canonicalizer needs from the kernel.
type Equivalence interface {
	IsDefEq(a, b *term.Expr) bool
}

// Canonicalize rebuilds every arrow layer of ty and replaces each
// leaf with the first definitionally equal atomic type in the
// supplied order, so definitionally equal fact types become
// syntactically identical.
func Canonicalize(eq Equivalence, ty *term.Expr, atoms []*term.Expr) (*term.Expr, error) {
	if dom, cod, ok := term.ArrowParts(ty); ok {
		cdom, err := Canonicalize(eq, dom, atoms)
		if err != nil {
			return nil, err
		}
		ccod, err := Canonicalize(eq, cod, atoms)
		if err != nil {
			return nil, err
		}
		return term.Arrow(cdom, ccod), nil
	}
	for _, atom := range atoms {
		if eq.IsDefEq(ty, atom) {
			return atom, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCanonicalize, ty)
}
