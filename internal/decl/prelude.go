package decl

import "sledge/internal/term"

// Prelude returns a declaration table preloaded with the core types
// every problem can rely on: simple data types, a mutual pair, the
// inductive families that collection must reject, the logical
// connectives, and one class-marked declaration.
func Prelude() *Env {
	e := NewEnv()

	u := term.LevelParam("u")
	sortU := term.Sort(u)
	nat := term.Const("Nat")
	boolT := term.Const("Bool")
	prop := term.Prop()

	// Nat and Bool: monomorphic, zero parameters.
	must(e.AddInductive(
		InductiveInfo{Name: "Nat", Type: term.TypeU()},
		[]CtorInfo{
			{Name: "Nat.zero", Induct: "Nat", Type: nat},
			{Name: "Nat.succ", Induct: "Nat", Type: term.Arrow(nat, nat)},
		}))
	must(e.AddInductive(
		InductiveInfo{Name: "Bool", Type: term.TypeU()},
		[]CtorInfo{
			{Name: "Bool.false", Induct: "Bool", Type: boolT},
			{Name: "Bool.true", Induct: "Bool", Type: boolT},
		}))

	// List, Option, Array, Prod: one universe parameter each.
	listA := term.App(term.Const("List", u), term.BVar(0))
	must(e.AddInductive(
		InductiveInfo{Name: "List", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, sortU)},
		[]CtorInfo{
			{Name: "List.nil", Induct: "List", LevelParams: params("u"), Type: term.Pi("A", sortU, listA)},
			{Name: "List.cons", Induct: "List", LevelParams: params("u"), Type: term.Pi("A", sortU, term.ArrowN(term.BVar(0), listA, listA))},
		}))

	optA := term.App(term.Const("Option", u), term.BVar(0))
	must(e.AddInductive(
		InductiveInfo{Name: "Option", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, sortU)},
		[]CtorInfo{
			{Name: "Option.none", Induct: "Option", LevelParams: params("u"), Type: term.Pi("A", sortU, optA)},
			{Name: "Option.some", Induct: "Option", LevelParams: params("u"), Type: term.Pi("A", sortU, term.Arrow(term.BVar(0), optA))},
		}))

	arrA := term.App(term.Const("Array", u), term.BVar(0))
	must(e.AddInductive(
		InductiveInfo{Name: "Array", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, sortU)},
		[]CtorInfo{
			{Name: "Array.mk", Induct: "Array", LevelParams: params("u"), Type: term.Pi("A", sortU, term.Arrow(listA, arrA))},
		}))

	prodAB := term.AppN(term.Const("Prod", u), term.BVar(1), term.BVar(0))
	must(e.AddInductive(
		InductiveInfo{Name: "Prod", LevelParams: params("u"), NumParams: 2, Type: term.Pi("A", sortU, term.Pi("B", sortU, sortU))},
		[]CtorInfo{
			{Name: "Prod.mk", Induct: "Prod", LevelParams: params("u"),
				Type: term.Pi("A", sortU, term.Pi("B", sortU, term.ArrowN(term.BVar(1), term.BVar(0), prodAB)))},
		}))

	// Tree / Forest: the canonical mutual-recursion pair.
	treeA := term.App(term.Const("Tree", u), term.BVar(0))
	forestA := term.App(term.Const("Forest", u), term.BVar(0))
	must(e.AddMutual(
		[]InductiveInfo{
			{Name: "Tree", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, sortU)},
			{Name: "Forest", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, sortU)},
		},
		[]CtorInfo{
			{Name: "Tree.node", Induct: "Tree", LevelParams: params("u"), Type: term.Pi("A", sortU, term.ArrowN(term.BVar(0), forestA, treeA))},
			{Name: "Forest.nil", Induct: "Forest", LevelParams: params("u"), Type: term.Pi("A", sortU, forestA)},
			{Name: "Forest.cons", Induct: "Forest", LevelParams: params("u"), Type: term.Pi("A", sortU, term.ArrowN(treeA, forestA, forestA))},
		}))

	// Fin and Vec: inductive families, present so rejection paths have
	// something real to reject.
	finN := func(n *term.Expr) *term.Expr { return term.App(term.Const("Fin"), n) }
	must(e.AddInductive(
		InductiveInfo{Name: "Fin", Type: term.Arrow(nat, term.TypeU())},
		[]CtorInfo{
			{Name: "Fin.zero", Induct: "Fin", Type: term.Pi("n", nat, finN(term.App(term.Const("Nat.succ"), term.BVar(0))))},
			{Name: "Fin.succ", Induct: "Fin", Type: term.Pi("n", nat, term.Arrow(finN(term.BVar(0)), finN(term.App(term.Const("Nat.succ"), term.BVar(0)))))},
		}))

	vec := func(a, n *term.Expr) *term.Expr { return term.AppN(term.Const("Vec", u), a, n) }
	must(e.AddInductive(
		InductiveInfo{Name: "Vec", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, term.Arrow(nat, sortU))},
		[]CtorInfo{
			{Name: "Vec.nil", Induct: "Vec", LevelParams: params("u"), Type: term.Pi("A", sortU, vec(term.BVar(0), term.Const("Nat.zero")))},
			{Name: "Vec.cons", Induct: "Vec", LevelParams: params("u"),
				Type: term.Pi("A", sortU, term.Pi("n", nat, term.ArrowN(term.BVar(1), vec(term.BVar(1), term.BVar(0)), vec(term.BVar(1), term.App(term.Const("Nat.succ"), term.BVar(0))))))},
		}))

	// Logical connectives. The inhabitation extractor rejects these by
	// head name; declaring them keeps problems type-correct.
	must(e.AddInductive(
		InductiveInfo{Name: "Eq", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, term.ArrowN(term.BVar(0), term.BVar(0), prop))},
		[]CtorInfo{
			{Name: "Eq.refl", Induct: "Eq", LevelParams: params("u"),
				Type: term.Pi("A", sortU, term.Pi("a", term.BVar(0), term.AppN(term.Const("Eq", u), term.BVar(1), term.BVar(0), term.BVar(0))))},
		}))
	must(e.AddInductive(
		InductiveInfo{Name: "And", NumParams: 2, Type: term.ArrowN(prop, prop, prop)},
		[]CtorInfo{
			{Name: "And.intro", Induct: "And",
				Type: term.Pi("a", prop, term.Pi("b", prop, term.ArrowN(term.BVar(1), term.BVar(0), term.AppN(term.Const("And"), term.BVar(1), term.BVar(0)))))},
		}))
	must(e.AddInductive(
		InductiveInfo{Name: "Or", NumParams: 2, Type: term.ArrowN(prop, prop, prop)},
		[]CtorInfo{
			{Name: "Or.inl", Induct: "Or",
				Type: term.Pi("a", prop, term.Pi("b", prop, term.Arrow(term.BVar(1), term.AppN(term.Const("Or"), term.BVar(1), term.BVar(0)))))},
			{Name: "Or.inr", Induct: "Or",
				Type: term.Pi("a", prop, term.Pi("b", prop, term.Arrow(term.BVar(0), term.AppN(term.Const("Or"), term.BVar(1), term.BVar(0)))))},
		}))
	must(e.AddInductive(
		InductiveInfo{Name: "Iff", NumParams: 2, Type: term.ArrowN(prop, prop, prop)},
		[]CtorInfo{
			{Name: "Iff.intro", Induct: "Iff",
				Type: term.Pi("a", prop, term.Pi("b", prop, term.ArrowN(
					term.Arrow(term.BVar(1), term.BVar(0)),
					term.Arrow(term.BVar(0), term.BVar(1)),
					term.AppN(term.Const("Iff"), term.BVar(1), term.BVar(0)))))},
		}))
	must(e.AddInductive(
		InductiveInfo{Name: "Not", NumParams: 1, Type: term.Arrow(prop, prop)},
		nil))
	must(e.AddInductive(
		InductiveInfo{Name: "Exists", LevelParams: params("u"), NumParams: 2,
			Type: term.Pi("A", sortU, term.Arrow(term.Arrow(term.BVar(0), prop), prop))},
		[]CtorInfo{
			{Name: "Exists.intro", Induct: "Exists", LevelParams: params("u"),
				Type: term.Pi("A", sortU, term.Pi("p", term.Arrow(term.BVar(0), prop),
					term.Pi("a", term.BVar(1), term.Arrow(term.App(term.BVar(1), term.BVar(0)),
						term.AppN(term.Const("Exists", u), term.BVar(2), term.BVar(1))))))},
		}))
	must(e.AddInductive(
		InductiveInfo{Name: "Nonempty", LevelParams: params("u"), NumParams: 1, Type: term.Arrow(sortU, prop)},
		[]CtorInfo{
			{Name: "Nonempty.intro", Induct: "Nonempty", LevelParams: params("u"),
				Type: term.Pi("A", sortU, term.Arrow(term.BVar(0), term.App(term.Const("Nonempty", u), term.BVar(0))))},
		}))

	// Inhabited is the class marker the collector must skip.
	must(e.AddInductive(
		InductiveInfo{Name: "Inhabited", LevelParams: params("u"), NumParams: 1, Type: term.Pi("A", sortU, sortU), IsClass: true},
		[]CtorInfo{
			{Name: "Inhabited.mk", Induct: "Inhabited", LevelParams: params("u"),
				Type: term.Pi("A", sortU, term.Arrow(term.BVar(0), term.App(term.Const("Inhabited", u), term.BVar(0))))},
		}))

	return e
}

func params(names ...term.Name) []term.Name {
	return names
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
