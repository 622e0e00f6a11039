package collect

import (
	"errors"
	"testing"

	"sledge/internal/decl"
	"sledge/internal/diag"
	"sledge/internal/kernel"
	"sledge/internal/term"
)

func newRun(t *testing.T, env *decl.Env) (*Collector, *diag.Bag) {
	t.Helper()
	kc := kernel.NewChecker(env, nil)
	bag := diag.NewBag(200)
	c := NewCollector(env, NewBuilder(env, kc), kc, diag.BagReporter{Bag: bag})
	return c, bag
}

func listNat() *term.Expr {
	return term.App(term.Const("List", term.LevelLit(1)), term.Const("Nat"))
}

func TestCollectSelfReferentialTerminates(t *testing.T) {
	c, _ := newRun(t, decl.Prelude())
	forest, err := c.Collect(listNat())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// Nat appears as a nested occurrence inside List's constructor
	// types and becomes its own group.
	if forest.GroupCount() != 2 {
		t.Fatalf("groups: got %d, want 2", forest.GroupCount())
	}
	lists := forest.ByName("List")
	if len(lists) != 1 {
		t.Fatalf("List instantiations: got %d, want 1", len(lists))
	}
	if len(lists[0].Ctors) != 2 {
		t.Fatalf("List constructors: got %d, want 2", len(lists[0].Ctors))
	}
}

func TestCollectFunctionTypeParameter(t *testing.T) {
	// A parameter argument that is itself an arrow type forces the
	// builder to infer through a quantifier while typing the
	// constructors.
	c, _ := newRun(t, decl.Prelude())
	fn := term.Arrow(term.Const("Nat"), term.Const("Bool"))
	listFn := term.App(term.Const("List", term.LevelLit(1)), fn)
	forest, err := c.Collect(listFn)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// Nat and Bool surface from walking the arrow argument.
	if forest.GroupCount() != 3 {
		t.Fatalf("groups: got %d, want 3", forest.GroupCount())
	}
	lists := forest.ByName("List")
	if len(lists) != 1 || !term.Eq(lists[0].Type, listFn) {
		t.Fatalf("List instantiation: %v", lists)
	}
	wantCons := term.Arrow(fn, term.Arrow(listFn, listFn))
	if got := lists[0].Ctors[1].Type; !term.Eq(got, wantCons) {
		t.Fatalf("cons type: %s, want %s", got, wantCons)
	}
}

func TestCollectIdempotentDeduplication(t *testing.T) {
	c, bag := newRun(t, decl.Prelude())
	forest, err := c.Collect(listNat(), listNat())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if forest.GroupCount() != 2 {
		t.Fatalf("groups after revisit: got %d, want 2", forest.GroupCount())
	}
	if len(bag.ByCode(diag.CollectDuplicate)) == 0 {
		t.Fatalf("no duplicate skip recorded")
	}
}

func TestCollectDeduplicatesUpToDefEq(t *testing.T) {
	c, bag := newRun(t, decl.Prelude())
	redex := term.App(term.Const("List", term.LevelLit(1)),
		term.App(term.Lambda("x", term.TypeU(), term.BVar(0)), term.Const("Nat")))
	forest, err := c.Collect(listNat(), redex)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := len(forest.ByName("List")); got != 1 {
		t.Fatalf("defeq instantiations not merged: %d entries", got)
	}
	if len(bag.ByCode(diag.CollectDuplicate)) == 0 {
		t.Fatalf("no duplicate skip recorded for defeq match")
	}
}

func TestCollectMutualGroupTogether(t *testing.T) {
	c, _ := newRun(t, decl.Prelude())
	forest, err := c.Collect(term.App(term.Const("Tree", term.LevelLit(1)), term.Const("Nat")))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// Nat first (nested in the constructor fields), then one group
	// holding Tree and Forest together.
	if forest.GroupCount() != 2 {
		t.Fatalf("groups: got %d, want 2", forest.GroupCount())
	}
	var mutual []*InstInductive
	for _, g := range forest.Groups() {
		if len(g) == 2 {
			mutual = g
		}
	}
	if mutual == nil {
		t.Fatalf("mutual group missing: %v", forest.Groups())
	}
	if mutual[0].Name != "Tree" || mutual[1].Name != "Forest" {
		t.Fatalf("mutual order: %s, %s", mutual[0].Name, mutual[1].Name)
	}
	// Both registered under the same instantiation: re-visiting Forest
	// Nat must deduplicate, not create a partial second group.
	forest, err = c.Collect(term.App(term.Const("Forest", term.LevelLit(1)), term.Const("Nat")))
	if err != nil {
		t.Fatalf("re-collect: %v", err)
	}
	if forest.GroupCount() != 2 {
		t.Fatalf("partial mutual group created: %d groups", forest.GroupCount())
	}
}

func TestCollectPoisonedMutualGroupAbsent(t *testing.T) {
	env := decl.NewEnv()
	nat := term.Const("Nat")
	if err := env.AddInductive(decl.InductiveInfo{Name: "Nat", Type: term.TypeU()},
		[]decl.CtorInfo{
			{Name: "Nat.zero", Induct: "Nat", Type: nat},
			{Name: "Nat.succ", Induct: "Nat", Type: term.Arrow(nat, nat)},
		}); err != nil {
		t.Fatalf("env: %v", err)
	}
	if err := env.AddInductive(decl.InductiveInfo{Name: "Fin", Type: term.Arrow(nat, term.TypeU())},
		[]decl.CtorInfo{
			{Name: "Fin.zero", Induct: "Fin", Type: term.Pi("n", nat, term.App(term.Const("Fin"), term.App(term.Const("Nat.succ"), term.BVar(0))))},
		}); err != nil {
		t.Fatalf("env: %v", err)
	}
	// Even is simple on its own, but its mutual sibling Odd has a
	// dependent constructor, which poisons the whole group.
	even, odd := term.Const("Even"), term.Const("Odd")
	if err := env.AddMutual(
		[]decl.InductiveInfo{
			{Name: "Even", Type: term.TypeU()},
			{Name: "Odd", Type: term.TypeU()},
		},
		[]decl.CtorInfo{
			{Name: "Even.zero", Induct: "Even", Type: even},
			{Name: "Even.step", Induct: "Even", Type: term.Arrow(odd, even)},
			{Name: "Odd.mk", Induct: "Odd", Type: term.Pi("n", nat, term.Arrow(term.App(term.Const("Fin"), term.BVar(0)), odd))},
		}); err != nil {
		t.Fatalf("env: %v", err)
	}

	c, bag := newRun(t, env)
	forest, err := c.Collect(even)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if forest.GroupCount() != 0 {
		t.Fatalf("poisoned group collected: %v", forest.Groups())
	}
	if len(bag.ByCode(diag.CollectGroupPoisoned)) == 0 {
		t.Fatalf("no poisoning diagnostic recorded")
	}
}

func TestCollectRejectsFamilies(t *testing.T) {
	c, bag := newRun(t, decl.Prelude())
	forest, err := c.Collect(term.App(term.Const("Vec", term.LevelLit(1)), term.Const("Nat")))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// Vec is skipped as a family, but its parameter argument is still
	// walked independently.
	if got := len(forest.ByName("Vec")); got != 0 {
		t.Fatalf("family collected: %d entries", got)
	}
	if got := len(forest.ByName("Nat")); got != 1 {
		t.Fatalf("argument of skipped head not walked: %d Nat entries", got)
	}
	if len(bag.ByCode(diag.CollectNonSimple)) == 0 {
		t.Fatalf("no non-simple diagnostic recorded")
	}
}

func TestCollectSkipsClassMarkedTypes(t *testing.T) {
	c, bag := newRun(t, decl.Prelude())
	forest, err := c.Collect(term.App(term.Const("Inhabited", term.LevelLit(1)), term.Const("Nat")))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got := len(forest.ByName("Inhabited")); got != 0 {
		t.Fatalf("class collected: %d entries", got)
	}
	if len(bag.ByCode(diag.CollectClassSkipped)) == 0 {
		t.Fatalf("no class diagnostic recorded")
	}
}

func TestCollectSkipsPartialApplications(t *testing.T) {
	c, bag := newRun(t, decl.Prelude())
	forest, err := c.Collect(term.Const("List", term.LevelLit(1)))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if forest.GroupCount() != 0 {
		t.Fatalf("partial application collected")
	}
	if len(bag.ByCode(diag.CollectArityMismatch)) == 0 {
		t.Fatalf("no arity diagnostic recorded")
	}
}

func TestCollectSkipsDependentQuantifiers(t *testing.T) {
	c, bag := newRun(t, decl.Prelude())
	dep := term.Pi("A", term.TypeU(), term.App(term.Const("List", term.LevelLit(1)), term.BVar(0)))
	forest, err := c.Collect(dep)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if forest.GroupCount() != 0 {
		t.Fatalf("dependent quantifier traversed: %v", forest.Groups())
	}
	if len(bag.ByCode(diag.CollectDependentBinder)) == 0 {
		t.Fatalf("no dependent-binder diagnostic recorded")
	}
}

func TestCollectWalksArrowsBothSides(t *testing.T) {
	c, _ := newRun(t, decl.Prelude())
	arrow := term.Arrow(listNat(), term.App(term.Const("Option", term.LevelLit(1)), term.Const("Bool")))
	forest, err := c.Collect(arrow)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	for _, name := range []term.Name{"List", "Nat", "Option", "Bool"} {
		if len(forest.ByName(name)) != 1 {
			t.Fatalf("%s not collected from arrow", name)
		}
	}
}

func TestCollectNestedInstantiationsScenario(t *testing.T) {
	c, _ := newRun(t, decl.Prelude())
	lvl := term.LevelLit(1)
	expr := term.AppN(term.Const("Prod", lvl),
		term.App(term.Const("List", lvl), term.Const("Bool")),
		term.App(term.Const("Array", lvl), term.Const("Nat")))
	forest, err := c.Collect(expr)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// Bool, List Bool, Nat, List Nat (inside Array.mk), Array Nat, Prod.
	if forest.GroupCount() != 6 {
		t.Fatalf("groups: got %d, want 6: %v", forest.GroupCount(), names(forest))
	}
	if got := len(forest.ByName("List")); got != 2 {
		t.Fatalf("List instantiations: got %d, want 2 (Bool and Nat)", got)
	}
	for _, name := range []term.Name{"Bool", "Nat", "Array", "Prod"} {
		if got := len(forest.ByName(name)); got != 1 {
			t.Fatalf("%s instantiations: got %d, want 1", name, got)
		}
	}
	// Nested groups are appended before the group that exposed them.
	groups := forest.Groups()
	last := groups[len(groups)-1]
	if len(last) != 1 || last[0].Name != "Prod" {
		t.Fatalf("outermost group should close the forest, got %s", last[0].Name)
	}
}

func TestCollectHardFailsOnUnreducedForms(t *testing.T) {
	c, _ := newRun(t, decl.Prelude())
	bad := term.Let("x", term.TypeU(), term.Const("Nat"), listNat())
	_, err := c.Collect(bad)
	if !errors.Is(err, ErrUpstreamForm) {
		t.Fatalf("want ErrUpstreamForm, got %v", err)
	}
}

// allEq treats every pair of terms as equal, standing in for a
// coarser equivalence than the kernel's.
type allEq struct{}

func (allEq) IsDefEq(a, b *term.Expr) bool { return true }

func TestCollectorUsesInjectedEquivalence(t *testing.T) {
	env := decl.Prelude()
	kc := kernel.NewChecker(env, nil)
	c := NewCollector(env, NewBuilder(env, kc), allEq{}, diag.NopReporter{})
	lvl := term.LevelLit(1)
	forest, err := c.Collect(
		term.App(term.Const("Option", lvl), term.Const("Nat")),
		term.App(term.Const("Option", lvl), term.Const("Bool")))
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	// Under the trivial equivalence the second instantiation counts as
	// already recorded.
	if got := len(forest.ByName("Option")); got != 1 {
		t.Fatalf("injected equivalence ignored: %d Option entries", got)
	}
}

func names(f *Forest) []term.Name {
	var out []term.Name
	for _, g := range f.Groups() {
		for _, inst := range g {
			out = append(out, inst.Name)
		}
	}
	return out
}
