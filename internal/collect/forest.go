package collect

import (
	"fmt"

	"fortio.org/safecast"

	"sledge/internal/term"
)

// Forest is the output of one collection run: an arena of
// instantiated inductives plus group index lists, one list per
// mutual-recursion group in discovery order. Groups never hold direct
// back-references into each other; dependency structure is recovered
// by name through the arena index.
type Forest struct {
	arena  []InstInductive
	byName map[term.Name][]uint32
	groups [][]uint32
}

// NewForest creates an empty forest.
func NewForest() *Forest {
	return &Forest{byName: make(map[term.Name][]uint32, 16)}
}

func (f *Forest) addGroup(insts []InstInductive) error {
	ids := make([]uint32, 0, len(insts))
	for _, inst := range insts {
		idx, err := safecast.Conv[uint32](len(f.arena))
		if err != nil {
			return fmt.Errorf("forest arena overflow: %w", err)
		}
		f.arena = append(f.arena, inst)
		f.byName[inst.Name] = append(f.byName[inst.Name], idx)
		ids = append(ids, idx)
	}
	f.groups = append(f.groups, ids)
	return nil
}

// Len returns the total number of instantiated inductives.
func (f *Forest) Len() int {
	return len(f.arena)
}

// GroupCount returns the number of mutual-recursion groups.
func (f *Forest) GroupCount() int {
	return len(f.groups)
}

// Group returns the instantiations of one group in declaration order.
func (f *Forest) Group(i int) []*InstInductive {
	if i < 0 || i >= len(f.groups) {
		return nil
	}
	out := make([]*InstInductive, len(f.groups[i]))
	for j, idx := range f.groups[i] {
		out[j] = &f.arena[idx]
	}
	return out
}

// Groups returns every group in discovery order.
func (f *Forest) Groups() [][]*InstInductive {
	out := make([][]*InstInductive, len(f.groups))
	for i := range f.groups {
		out[i] = f.Group(i)
	}
	return out
}

// ByName returns every instantiation recorded for a type constructor.
func (f *Forest) ByName(name term.Name) []*InstInductive {
	ids := f.byName[name]
	out := make([]*InstInductive, len(ids))
	for i, idx := range ids {
		out[i] = &f.arena[idx]
	}
	return out
}
