package decl

import (
	"errors"
	"testing"

	"sledge/internal/term"
)

func TestEnvResolvesInductivesAndCtors(t *testing.T) {
	e := Prelude()
	info, ok := e.Inductive("List")
	if !ok {
		t.Fatalf("List not declared")
	}
	if info.NumParams != 1 {
		t.Fatalf("unexpected List param count: %d", info.NumParams)
	}
	if len(info.Ctors) != 2 || info.Ctors[0] != "List.nil" || info.Ctors[1] != "List.cons" {
		t.Fatalf("constructor order not preserved: %v", info.Ctors)
	}
	ctor, ok := e.Ctor("List.cons")
	if !ok || ctor.Induct != "List" {
		t.Fatalf("List.cons not resolved: %+v", ctor)
	}
	if _, ok := e.Inductive("List.cons"); ok {
		t.Fatalf("constructor resolved as inductive")
	}
}

func TestMutualGroupConsistent(t *testing.T) {
	e := Prelude()
	tree, _ := e.Inductive("Tree")
	forest, _ := e.Inductive("Forest")
	if len(tree.Mutual) != 2 || len(forest.Mutual) != 2 {
		t.Fatalf("mutual group sizes: tree=%d forest=%d", len(tree.Mutual), len(forest.Mutual))
	}
	for i := range tree.Mutual {
		if tree.Mutual[i] != forest.Mutual[i] {
			t.Fatalf("mutual groups disagree: %v vs %v", tree.Mutual, forest.Mutual)
		}
	}
}

func TestSelfGroupDefaulted(t *testing.T) {
	e := NewEnv()
	if err := e.AddInductive(InductiveInfo{Name: "Unit", Type: term.TypeU()},
		[]CtorInfo{{Name: "Unit.mk", Induct: "Unit", Type: term.Const("Unit")}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	info, _ := e.Inductive("Unit")
	if len(info.Mutual) != 1 || info.Mutual[0] != "Unit" {
		t.Fatalf("self group not defaulted: %v", info.Mutual)
	}
}

func TestDuplicateRejected(t *testing.T) {
	e := NewEnv()
	info := InductiveInfo{Name: "Unit", Type: term.TypeU()}
	if err := e.AddInductive(info, nil); err != nil {
		t.Fatalf("first add: %v", err)
	}
	err := e.AddInductive(info, nil)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestMustLookupsReportSentinels(t *testing.T) {
	e := Prelude()
	if _, err := e.MustInductive("Missing"); !errors.Is(err, ErrNotInductive) {
		t.Fatalf("want ErrNotInductive, got %v", err)
	}
	if _, err := e.MustCtor("List"); !errors.Is(err, ErrNotConstructor) {
		t.Fatalf("want ErrNotConstructor, got %v", err)
	}
}

func TestClassFlagPreserved(t *testing.T) {
	e := Prelude()
	info, _ := e.Inductive("Inhabited")
	if !info.IsClass {
		t.Fatalf("Inhabited should be class-marked")
	}
	list, _ := e.Inductive("List")
	if list.IsClass {
		t.Fatalf("List should not be class-marked")
	}
}
