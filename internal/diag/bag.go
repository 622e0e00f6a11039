package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates diagnostics up to a fixed limit, counting what it
// had to drop.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 1
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   max,
	}
}

// Add appends a diagnostic, honoring the limit. The first record over
// the limit leaves a single marker in the bag; everything past the
// limit is counted and discarded, and Add returns false for it.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) < b.max {
		b.items = append(b.items, d)
		return true
	}
	if b.dropped == 0 {
		b.items = append(b.items, Diagnostic{
			Severity: SevWarning,
			Code:     PipeDiagLimit,
			Message:  fmt.Sprintf("diagnostic limit of %d reached, further records dropped", b.max),
		})
	}
	b.dropped++
	return false
}

func (b *Bag) Cap() int {
	return b.max
}

// Dropped reports how many records were discarded past the limit.
func (b *Bag) Dropped() int {
	return b.dropped
}

// HasErrors reports whether any record has Severity >= Error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any record has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the accumulated diagnostics. The
// slice aliases the bag's storage; do not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// ByCode returns every record carrying the given code.
func (b *Bag) ByCode(code Code) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends diagnostics from another bag, growing the limit when
// needed to fit everything.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders records by subject, code, then severity descending, for
// deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Subject != dj.Subject {
			return di.Subject < dj.Subject
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Severity > dj.Severity
	})
}
