package kernel

import (
	"errors"
	"testing"

	"sledge/internal/decl"
	"sledge/internal/term"
)

func listOf(elem *term.Expr) *term.Expr {
	return term.App(term.Const("List", term.LevelLit(1)), elem)
}

func TestPrepReduceBetaAndZeta(t *testing.T) {
	env := decl.Prelude()
	// (let x := Nat in (fun y : Type => y) x)
	e := term.Let("x", term.TypeU(), term.Const("Nat"),
		term.App(term.Lambda("y", term.TypeU(), term.BVar(0)), term.BVar(0)))
	got := PrepReduce(env, e)
	if !term.Eq(got, term.Const("Nat")) {
		t.Fatalf("reduce: got %s", got)
	}
}

func TestPrepReduceDropsMetadata(t *testing.T) {
	env := decl.Prelude()
	e := term.MData("origin", listOf(term.MData("origin", term.Const("Bool"))))
	got := PrepReduce(env, e)
	if term.ContainsKind(got, term.KindMData) {
		t.Fatalf("metadata survived: %s", got)
	}
}

func TestPrepReduceResolvesCtorProjection(t *testing.T) {
	env := decl.Prelude()
	pair := term.AppN(term.Const("Prod.mk", term.LevelLit(1)),
		term.Const("Bool"), term.Const("Nat"),
		term.Const("Bool.true"), term.Const("Nat.zero"))
	got := PrepReduce(env, term.Proj("Prod", 1, pair))
	if !term.Eq(got, term.Const("Nat.zero")) {
		t.Fatalf("projection: got %s", got)
	}
}

func TestPrepReduceKeepsStuckProjection(t *testing.T) {
	env := decl.Prelude()
	stuck := term.Proj("Prod", 0, term.FVar("p"))
	got := PrepReduce(env, stuck)
	if got.Kind != term.KindProj {
		t.Fatalf("stuck projection should remain, got %s", got)
	}
}

func TestIsDefEqModuloBeta(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	a := listOf(term.Const("Nat"))
	b := term.App(term.Lambda("A", term.TypeU(), listOf(term.BVar(0))), term.Const("Nat"))
	if !c.IsDefEq(a, b) {
		t.Fatalf("beta-equal terms not defeq: %s vs %s", a, b)
	}
	if c.IsDefEq(a, listOf(term.Const("Bool"))) {
		t.Fatalf("distinct instantiations reported equal")
	}
}

func TestInferConstApplication(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	ty, err := c.Infer(listOf(term.Const("Nat")))
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if !c.IsDefEq(ty, term.TypeU()) {
		t.Fatalf("List Nat should live in Type, got %s", ty)
	}
}

func TestInferCtorTelescope(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	cons := term.App(term.Const("List.cons", term.LevelLit(1)), term.Const("Nat"))
	ty, err := c.Infer(cons)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	want := term.ArrowN(term.Const("Nat"), listOf(term.Const("Nat")), listOf(term.Const("Nat")))
	if !c.IsDefEq(ty, want) {
		t.Fatalf("cons type: got %s, want %s", ty, want)
	}
}

func TestInferRejectsBadArgument(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	// List expects a type, not a term of Nat.
	_, err := c.Infer(listOf(term.Const("Nat.zero")))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("want ErrTypeMismatch, got %v", err)
	}
}

func TestInferUnknownConstant(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	_, err := c.Infer(term.Const("Ghost"))
	if !errors.Is(err, ErrUnknownConst) {
		t.Fatalf("want ErrUnknownConst, got %v", err)
	}
}

func TestInferFreeVariableUsesContext(t *testing.T) {
	lctx := NewLocalContext(Local{Name: "n", Type: term.Const("Nat")})
	c := NewChecker(decl.Prelude(), lctx)
	ty, err := c.Infer(term.FVar("n"))
	if err != nil || !term.Eq(ty, term.Const("Nat")) {
		t.Fatalf("fvar type: %s err=%v", ty, err)
	}
}

func TestInferKeepsBinderLocalsOutOfContext(t *testing.T) {
	lctx := NewLocalContext(Local{Name: "n", Type: term.Const("Nat")})
	c := NewChecker(decl.Prelude(), lctx)
	arrow := term.Arrow(term.Const("Nat"), term.Const("Bool"))
	ty, err := c.Infer(arrow)
	if err != nil || !term.Eq(ty, term.TypeU()) {
		t.Fatalf("arrow sort: %s err=%v", ty, err)
	}
	lam := term.Lambda("x", term.Const("Bool"), term.BVar(0))
	if _, err := c.Infer(lam); err != nil {
		t.Fatalf("lambda: %v", err)
	}
	if got := lctx.Locals(); len(got) != 1 || got[0].Name != "n" {
		t.Fatalf("context grew: %v", got)
	}
	if len(c.scratch) != 0 {
		t.Fatalf("scratch locals survived inference: %v", c.scratch)
	}

	// A nil context stays nil: inference must not fabricate one.
	bare := NewChecker(decl.Prelude(), nil)
	if _, err := bare.Infer(arrow); err != nil {
		t.Fatalf("arrow without context: %v", err)
	}
	if bare.lctx != nil {
		t.Fatalf("inference created a hypothesis context")
	}
}

func TestInferPropLanding(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	inProp, err := c.InferSortInProp(term.App(term.Const("Nonempty", term.LevelLit(1)), term.Const("Nat")))
	if err != nil || !inProp {
		t.Fatalf("Nonempty Nat should land in Prop, err=%v", err)
	}
	inProp, err = c.InferSortInProp(term.Const("Nat"))
	if err != nil || inProp {
		t.Fatalf("Nat should not land in Prop, err=%v", err)
	}
}

func TestUnifyAssignsAndRestores(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	m := c.FreshMVar("m")

	mark := c.Snapshot()
	if !c.Unify(listOf(m), listOf(term.Const("Nat"))) {
		t.Fatalf("unification failed")
	}
	if got := c.InstantiateMVars(m); !term.Eq(got, term.Const("Nat")) {
		t.Fatalf("assignment: got %s", got)
	}
	c.Restore(mark)
	if got := c.InstantiateMVars(m); got.Kind != term.KindMVar {
		t.Fatalf("restore did not roll back assignment: %s", got)
	}

	// The same metavariable is free again for an unrelated attempt.
	if !c.Unify(m, term.Const("Bool")) {
		t.Fatalf("reuse after restore failed")
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	m := c.FreshMVar("m")
	if c.Unify(m, listOf(m)) {
		t.Fatalf("occurs check missed a cyclic assignment")
	}
}

func TestIsDefEqNeverAssigns(t *testing.T) {
	c := NewChecker(decl.Prelude(), nil)
	m := c.FreshMVar("m")
	if c.IsDefEq(m, term.Const("Nat")) {
		t.Fatalf("defeq must not solve metavariables")
	}
	if len(c.trail) != 0 {
		t.Fatalf("defeq polluted the trail")
	}
}
