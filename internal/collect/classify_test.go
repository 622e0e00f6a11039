package collect

import (
	"errors"
	"testing"

	"sledge/internal/decl"
	"sledge/internal/term"
)

func TestIsFamily(t *testing.T) {
	env := decl.Prelude()
	cases := []struct {
		name term.Name
		want bool
	}{
		{"Nat", false},
		{"List", false},
		{"Prod", false},
		{"Fin", true},
		{"Vec", true},
		{"Eq", true},
	}
	for _, tc := range cases {
		got, err := IsFamily(env, tc.name)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("IsFamily(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsFamilyRejectsNonInductive(t *testing.T) {
	env := decl.Prelude()
	_, err := IsFamily(env, "List.cons")
	if !errors.Is(err, decl.ErrNotInductive) {
		t.Fatalf("want ErrNotInductive, got %v", err)
	}
}

func TestIsIndProp(t *testing.T) {
	env := decl.Prelude()
	cases := []struct {
		name term.Name
		want bool
	}{
		{"And", true},
		{"Nonempty", true},
		{"Eq", true},
		{"List", false},
		{"Nat", false},
	}
	for _, tc := range cases {
		got, err := IsIndProp(env, tc.name)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("IsIndProp(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsSimpleCtor(t *testing.T) {
	env := decl.Prelude()
	cases := []struct {
		name term.Name
		want bool
	}{
		{"List.cons", true},
		{"Prod.mk", true},
		{"Tree.node", true},
		{"Vec.cons", false}, // field depends on the length field
		{"Fin.succ", false},
	}
	for _, tc := range cases {
		got, err := IsSimpleCtor(env, tc.name)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("IsSimpleCtor(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIsSimpleCtorRejectsNonCtor(t *testing.T) {
	env := decl.Prelude()
	_, err := IsSimpleCtor(env, "List")
	if !errors.Is(err, decl.ErrNotConstructor) {
		t.Fatalf("want ErrNotConstructor, got %v", err)
	}
}

func TestIsSimpleInductive(t *testing.T) {
	env := decl.Prelude()
	for _, name := range []term.Name{"Nat", "Bool", "List", "Prod", "Tree", "Forest", "Option", "Array"} {
		got, err := IsSimpleInductive(env, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !got {
			t.Fatalf("%s should be simple", name)
		}
	}
	for _, name := range []term.Name{"Fin", "Vec", "Eq"} {
		got, err := IsSimpleInductive(env, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got {
			t.Fatalf("%s should not be simple", name)
		}
	}
}
