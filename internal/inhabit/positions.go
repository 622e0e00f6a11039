package inhabit

import "sledge/internal/term"

// Dir is one step of a position path through an implication tree.
type Dir uint8

const (
	// DirDom descends into the domain of a non-dependent arrow.
	DirDom Dir = iota
	// DirCod descends into its codomain.
	DirCod
)

// Position addresses one minimal non-implication subterm: the path of
// domain/codomain choices from the root of a fact type to a leaf of
// its implication tree.
type Position []Dir

// MinimalPositions enumerates every leaf of the implication tree of
// ty in discovery order, domains before codomains. A dependent
// quantifier is not an arrow and terminates decomposition as a leaf.
func MinimalPositions(ty *term.Expr) []Position {
	var out []Position
	var walk func(e *term.Expr, path Position)
	walk = func(e *term.Expr, path Position) {
		if dom, cod, ok := term.ArrowParts(e); ok {
			walk(dom, append(path, DirDom))
			walk(cod, append(path, DirCod))
			return
		}
		out = append(out, append(Position(nil), path...))
	}
	walk(ty, nil)
	return out
}

// Subterm resolves a position within ty. It fails if the path runs
// through a node that is not a non-dependent arrow.
func Subterm(ty *term.Expr, pos Position) (*term.Expr, bool) {
	e := ty
	for _, dir := range pos {
		dom, cod, ok := term.ArrowParts(e)
		if !ok {
			return nil, false
		}
		if dir == DirDom {
			e = dom
		} else {
			e = cod
		}
	}
	return e, true
}
