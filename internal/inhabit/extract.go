// Package inhabit extracts non-emptiness evidence from a hypothesis
// context and specializes it against a fixed set of atomic types. The
// extractor selects data-typed hypotheses (a hypothesis h : T where T
// is not a proposition witnesses that T is inhabited); the matcher
// grounds each surviving lemma so every leaf of its implication tree
// is one of the problem's atomic types.
package inhabit

import (
	"sledge/internal/diag"
	"sledge/internal/kernel"
	"sledge/internal/term"
)

// Lemma is one candidate inhabitation fact. Proof is the evidence
// term, Type its (arrow-shaped) type.
type Lemma struct {
	Proof *term.Expr
	Type  *term.Expr
}

// connectiveHeads are the core logical constants whose applications
// are propositional content, not inhabitation evidence.
var connectiveHeads = map[term.Name]struct{}{
	"Eq":     {},
	"Exists": {},
	"And":    {},
	"Or":     {},
	"Iff":    {},
	"Not":    {},
}

// Extractor scans hypothesis contexts for inhabitation lemmas.
type Extractor struct {
	kc       *kernel.Checker
	reporter diag.Reporter
}

// NewExtractor builds an extractor over the given checker. Sort
// inference runs on a fork so extraction never pollutes the caller's
// unification state.
func NewExtractor(kc *kernel.Checker, reporter diag.Reporter) *Extractor {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Extractor{kc: kc, reporter: reporter}
}

// Extract walks the context in declaration order and returns one
// lemma per accepted hypothesis, deduplicated first syntactically and
// then under definitional equality. Rejections are reported, never
// fatal.
func (x *Extractor) Extract(lctx *kernel.LocalContext) []Lemma {
	var accepted []Lemma
	for _, local := range lctx.Locals() {
		subject := string(local.Name)
		if x.hasConnectiveHead(local.Type) {
			diag.Info(x.reporter, diag.InhabConnectiveHead, subject, "logical connective is not inhabitation evidence")
			continue
		}
		inProp, err := x.kc.Fork().InferSortInProp(local.Type)
		if err != nil {
			diag.Warn(x.reporter, diag.InhabInferFailed, subject, err.Error())
			continue
		}
		if inProp {
			diag.Info(x.reporter, diag.InhabProofSkipped, subject, "hypothesis is a proof, not data")
			continue
		}
		if hasNestedDependent(local.Type) {
			diag.Info(x.reporter, diag.InhabDependentBinder, subject, "dependent quantifier under implication chain")
			continue
		}
		if x.isDuplicate(local.Type, accepted) {
			diag.Info(x.reporter, diag.InhabDuplicate, subject, "type already witnessed by an earlier hypothesis")
			continue
		}
		accepted = append(accepted, Lemma{Proof: term.FVar(local.Name), Type: local.Type})
	}
	return accepted
}

func (x *Extractor) hasConnectiveHead(ty *term.Expr) bool {
	head, ok := term.ConstHead(ty)
	if !ok {
		return false
	}
	_, flagged := connectiveHeads[head.Name]
	return flagged
}

// hasNestedDependent reports whether a dependent quantifier occurs
// anywhere in the implication tree of ty.
func hasNestedDependent(ty *term.Expr) bool {
	if dom, cod, ok := term.ArrowParts(ty); ok {
		return hasNestedDependent(dom) || hasNestedDependent(cod)
	}
	return ty != nil && ty.Kind == term.KindPi
}

// isDuplicate checks the cheap syntactic match first; the
// definitional check only runs when that finds nothing.
func (x *Extractor) isDuplicate(ty *term.Expr, accepted []Lemma) bool {
	for _, lem := range accepted {
		if term.Eq(ty, lem.Type) {
			return true
		}
	}
	for _, lem := range accepted {
		if x.kc.IsDefEq(ty, lem.Type) {
			return true
		}
	}
	return false
}
