package decl

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"sledge/internal/term"
)

var (
	// ErrNotInductive indicates a name that does not resolve to an
	// inductive type declaration.
	ErrNotInductive = errors.New("not an inductive type")
	// ErrNotConstructor indicates a name that does not resolve to a
	// constructor declaration.
	ErrNotConstructor = errors.New("not a constructor")
	// ErrDuplicate indicates a name declared twice.
	ErrDuplicate = errors.New("duplicate declaration")
)

// InductiveInfo describes one inductive type declaration.
type InductiveInfo struct {
	Name        term.Name
	LevelParams []term.Name
	NumParams   int
	// Type is the universe-polymorphic type of the type former.
	Type *term.Expr
	// Ctors lists constructor names in declaration order.
	Ctors []term.Name
	// Mutual lists the whole mutual-recursion group, including the
	// type itself, in declaration order.
	Mutual []term.Name
	// IsClass marks structure-like class declarations that the
	// collection engine excludes.
	IsClass bool
}

// CtorInfo describes one constructor declaration.
type CtorInfo struct {
	Name        term.Name
	Induct      term.Name
	LevelParams []term.Name
	Type        *term.Expr
}

// Env is the declaration table: an arena of inductive and constructor
// records with name indexes, never direct back-references.
type Env struct {
	inductives []InductiveInfo
	ctors      []CtorInfo
	indIndex   map[term.Name]uint32
	ctorIndex  map[term.Name]uint32
}

// NewEnv creates an empty declaration table.
func NewEnv() *Env {
	return &Env{
		indIndex:  make(map[term.Name]uint32, 32),
		ctorIndex: make(map[term.Name]uint32, 64),
	}
}

// AddInductive registers a non-mutual inductive type with its
// constructors. The mutual group defaults to the type itself.
func (e *Env) AddInductive(info InductiveInfo, ctors []CtorInfo) error {
	if len(info.Mutual) == 0 {
		info.Mutual = []term.Name{info.Name}
	}
	return e.AddMutual([]InductiveInfo{info}, ctors)
}

// AddMutual registers a full mutual-recursion group atomically. Every
// member's Mutual field is overwritten with the group's name list so
// membership stays consistent no matter what the caller supplied.
func (e *Env) AddMutual(infos []InductiveInfo, ctors []CtorInfo) error {
	group := make([]term.Name, len(infos))
	for i, info := range infos {
		group[i] = info.Name
	}
	for _, info := range infos {
		if _, dup := e.indIndex[info.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicate, info.Name)
		}
	}
	for _, c := range ctors {
		if _, dup := e.ctorIndex[c.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicate, c.Name)
		}
	}
	for _, info := range infos {
		info.Mutual = group
		if len(info.Ctors) == 0 {
			for _, c := range ctors {
				if c.Induct == info.Name {
					info.Ctors = append(info.Ctors, c.Name)
				}
			}
		}
		idx, err := safecast.Conv[uint32](len(e.inductives))
		if err != nil {
			return fmt.Errorf("inductive arena overflow: %w", err)
		}
		e.inductives = append(e.inductives, info)
		e.indIndex[info.Name] = idx
	}
	for _, c := range ctors {
		idx, err := safecast.Conv[uint32](len(e.ctors))
		if err != nil {
			return fmt.Errorf("constructor arena overflow: %w", err)
		}
		e.ctors = append(e.ctors, c)
		e.ctorIndex[c.Name] = idx
	}
	return nil
}

// Inductive resolves an inductive declaration by name.
func (e *Env) Inductive(name term.Name) (*InductiveInfo, bool) {
	idx, ok := e.indIndex[name]
	if !ok {
		return nil, false
	}
	return &e.inductives[idx], true
}

// Ctor resolves a constructor declaration by name.
func (e *Env) Ctor(name term.Name) (*CtorInfo, bool) {
	idx, ok := e.ctorIndex[name]
	if !ok {
		return nil, false
	}
	return &e.ctors[idx], true
}

// MustInductive resolves an inductive declaration or fails with
// ErrNotInductive.
func (e *Env) MustInductive(name term.Name) (*InductiveInfo, error) {
	info, ok := e.Inductive(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotInductive, name)
	}
	return info, nil
}

// MustCtor resolves a constructor declaration or fails with
// ErrNotConstructor.
func (e *Env) MustCtor(name term.Name) (*CtorInfo, error) {
	info, ok := e.Ctor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotConstructor, name)
	}
	return info, nil
}

// Inductives returns all inductive declarations in registration order.
func (e *Env) Inductives() []InductiveInfo {
	return e.inductives
}
