package inhabit

import (
	"sledge/internal/diag"
	"sledge/internal/kernel"
	"sledge/internal/term"
)

// Matcher specializes inhabitation lemmas against a fixed atomic-type
// set. One Matcher owns one run and is not safe for concurrent use.
type Matcher struct {
	kc       *kernel.Checker
	reporter diag.Reporter
}

// NewMatcher builds a matcher over the given checker. Unification
// branches through the checker's snapshot trail, so the checker must
// not be shared with a concurrent caller.
func NewMatcher(kc *kernel.Checker, reporter diag.Reporter) *Matcher {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Matcher{kc: kc, reporter: reporter}
}

type instance struct {
	proof *term.Expr
	ty    *term.Expr
}

// Match produces every ground specialization of the lemmas whose type
// is built purely from the given atomic types, canonicalized and
// deduplicated. Atom order is significant: canonical leaves take the
// first matching atom.
func (m *Matcher) Match(lemmas []Lemma, atoms []*term.Expr) ([]Fact, error) {
	var facts []Fact
	for _, lem := range lemmas {
		insts := m.specialize(lem, atoms)
		for _, inst := range insts {
			if !m.ground(lem, inst) {
				continue
			}
			canonical, err := Canonicalize(m.kc, inst.ty, atoms)
			if err != nil {
				return nil, err
			}
			if containsFact(facts, canonical) {
				continue
			}
			facts = append(facts, Fact{Proof: inst.proof, Type: canonical})
		}
	}
	return facts, nil
}

// specialize threads the lemma's instances through the minimal
// non-implication positions left to right. Every candidate atom is
// tried against the saved unification state and the state is restored
// whether or not the attempt succeeded, so branches never interfere.
func (m *Matcher) specialize(lem Lemma, atoms []*term.Expr) []instance {
	seed := m.seed(lem)
	positions := MinimalPositions(seed.ty)
	insts := []instance{seed}
	for _, pos := range positions {
		var next []instance
		for _, inst := range insts {
			sub, ok := Subterm(inst.ty, pos)
			if !ok {
				diag.Warn(m.reporter, diag.MatchPositionFailed, inst.ty.String(), "implication tree changed shape during specialization")
				continue
			}
			for _, atom := range atoms {
				mark := m.kc.Snapshot()
				if m.kc.Unify(sub, atom) {
					next = append(next, instance{
						proof: m.kc.InstantiateMVars(inst.proof),
						ty:    m.kc.InstantiateMVars(inst.ty),
					})
				}
				m.kc.Restore(mark)
			}
		}
		insts = next
	}
	return insts
}

// seed builds the starting instance: leading dependent binders are
// generalized away as fresh metavariables applied to the proof.
// Non-dependent leading arrows stay, they are part of the implication
// tree being matched.
func (m *Matcher) seed(lem Lemma) instance {
	proof, ty := lem.Proof, lem.Type
	for ty != nil && ty.Kind == term.KindPi {
		data := ty.Data.(term.BinderData)
		if !term.HasLooseBVar(data.Body, 0) {
			break
		}
		mv := m.kc.FreshMVar("?a")
		proof = term.App(proof, mv)
		ty = term.Instantiate(data.Body, mv)
	}
	return instance{proof: proof, ty: ty}
}

// ground rejects instances that are not fully specialized.
func (m *Matcher) ground(lem Lemma, inst instance) bool {
	subject := lem.Proof.String()
	if term.HasMVar(inst.ty) || term.HasMVar(inst.proof) {
		diag.Info(m.reporter, diag.MatchUnresolvedParams, subject, "instance retains unresolved parameters")
		return false
	}
	if term.HasLevelParam(inst.ty) {
		diag.Info(m.reporter, diag.MatchUnresolvedParams, subject, "instance retains universe parameters")
		return false
	}
	if inst.ty.Kind == term.KindPi && !term.IsArrow(inst.ty) {
		diag.Info(m.reporter, diag.MatchResidualBinder, subject, "instance retains an unconsumed binder")
		return false
	}
	return true
}

func containsFact(facts []Fact, canonical *term.Expr) bool {
	for _, f := range facts {
		if term.Eq(f.Type, canonical) {
			return true
		}
	}
	return false
}
