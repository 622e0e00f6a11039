package inhabit

import (
	"testing"

	"sledge/internal/decl"
	"sledge/internal/diag"
	"sledge/internal/kernel"
	"sledge/internal/term"
)

func newExtractor(t *testing.T) (*Extractor, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(64)
	kc := kernel.NewChecker(decl.Prelude(), nil)
	return NewExtractor(kc, diag.BagReporter{Bag: bag}), bag
}

func TestExtractKeepsDataHypotheses(t *testing.T) {
	x, _ := newExtractor(t)
	lctx := kernel.NewLocalContext(
		kernel.Local{Name: "n", Type: term.Const("Nat")},
		kernel.Local{Name: "b", Type: term.Const("Bool")},
	)
	lemmas := x.Extract(lctx)
	if len(lemmas) != 2 {
		t.Fatalf("lemmas = %d, want 2", len(lemmas))
	}
	if !term.Eq(lemmas[0].Proof, term.FVar("n")) || !term.Eq(lemmas[0].Type, term.Const("Nat")) {
		t.Fatalf("first lemma = %s : %s", lemmas[0].Proof, lemmas[0].Type)
	}
}

func TestExtractSkipsProofs(t *testing.T) {
	x, bag := newExtractor(t)
	nonemptyNat := term.App(term.Const("Nonempty", term.LevelLit(1)), term.Const("Nat"))
	lctx := kernel.NewLocalContext(
		kernel.Local{Name: "h", Type: nonemptyNat},
	)
	if got := x.Extract(lctx); len(got) != 0 {
		t.Fatalf("proof hypothesis extracted: %d lemmas", len(got))
	}
	if len(bag.ByCode(diag.InhabProofSkipped)) != 1 {
		t.Fatalf("no proof-skip diagnostic")
	}
}

func TestExtractSkipsConnectiveHeads(t *testing.T) {
	x, bag := newExtractor(t)
	zero := term.Const("Nat.zero")
	eqTy := term.AppN(term.Const("Eq", term.LevelLit(1)), term.Const("Nat"), zero, zero)
	lctx := kernel.NewLocalContext(
		kernel.Local{Name: "h", Type: eqTy},
	)
	if got := x.Extract(lctx); len(got) != 0 {
		t.Fatalf("connective hypothesis extracted: %d lemmas", len(got))
	}
	if len(bag.ByCode(diag.InhabConnectiveHead)) != 1 {
		t.Fatalf("no connective diagnostic")
	}
}

func TestExtractSkipsNestedDependentQuantifiers(t *testing.T) {
	x, bag := newExtractor(t)
	nat := term.Const("Nat")
	// Nat -> (pi n Nat (Fin n))
	ty := term.Arrow(nat, term.Pi("n", nat, term.App(term.Const("Fin"), term.BVar(0))))
	lctx := kernel.NewLocalContext(
		kernel.Local{Name: "f", Type: ty},
	)
	if got := x.Extract(lctx); len(got) != 0 {
		t.Fatalf("dependent hypothesis extracted: %d lemmas", len(got))
	}
	if len(bag.ByCode(diag.InhabDependentBinder)) != 1 {
		t.Fatalf("no dependent-binder diagnostic")
	}
}

func TestExtractDeduplicates(t *testing.T) {
	x, bag := newExtractor(t)
	nat := term.Const("Nat")
	// Definitionally Nat, but syntactically a beta redex.
	redex := term.App(term.Lambda("A", term.TypeU(), term.BVar(0)), nat)
	lctx := kernel.NewLocalContext(
		kernel.Local{Name: "n1", Type: nat},
		kernel.Local{Name: "n2", Type: nat},
		kernel.Local{Name: "n3", Type: redex},
	)
	lemmas := x.Extract(lctx)
	if len(lemmas) != 1 {
		t.Fatalf("lemmas = %d, want 1", len(lemmas))
	}
	if !term.Eq(lemmas[0].Proof, term.FVar("n1")) {
		t.Fatalf("kept proof = %s, want first hypothesis", lemmas[0].Proof)
	}
	if got := len(bag.ByCode(diag.InhabDuplicate)); got != 2 {
		t.Fatalf("duplicate diagnostics = %d, want 2", got)
	}
}

func TestExtractOrderIsContextOrder(t *testing.T) {
	x, _ := newExtractor(t)
	lctx := kernel.NewLocalContext(
		kernel.Local{Name: "b", Type: term.Const("Bool")},
		kernel.Local{Name: "n", Type: term.Const("Nat")},
	)
	lemmas := x.Extract(lctx)
	if len(lemmas) != 2 {
		t.Fatalf("lemmas = %d, want 2", len(lemmas))
	}
	if !term.Eq(lemmas[0].Type, term.Const("Bool")) || !term.Eq(lemmas[1].Type, term.Const("Nat")) {
		t.Fatalf("lemma order %s, %s", lemmas[0].Type, lemmas[1].Type)
	}
}
