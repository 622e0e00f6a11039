// Package export serializes run results for the downstream
// first-order reifier. Snapshots are schema-versioned msgpack; terms
// travel as their printed s-expression form, which the problem reader
// round-trips.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"sledge/internal/pipeline"
)

// SchemaVersion is incremented whenever the Snapshot layout changes.
const SchemaVersion uint16 = 1

// ErrSchema indicates a snapshot written by an incompatible version.
var ErrSchema = errors.New("snapshot schema mismatch")

// Ctor is one instantiated constructor.
type Ctor struct {
	Expr string
	Type string
}

// Inductive is one instantiated inductive description.
type Inductive struct {
	Name  string
	Type  string
	Ctors []Ctor
}

// Group is one mutual-recursion group in discovery order.
type Group struct {
	Members []Inductive
}

// Fact is one ground inhabitation fact.
type Fact struct {
	Proof string
	Type  string
}

// Diagnostic mirrors one diagnostic record.
type Diagnostic struct {
	Severity uint8
	Code     uint16
	Subject  string
	Message  string
}

// Snapshot is the complete exported result of one problem run.
type Snapshot struct {
	Schema uint16
	Path   string
	Groups []Group
	Facts  []Fact
	Diags  []Diagnostic
}

// BuildSnapshot flattens a pipeline result into its exported form.
func BuildSnapshot(res *pipeline.Result) *Snapshot {
	snap := &Snapshot{Schema: SchemaVersion, Path: res.Path}
	for _, group := range res.Forest.Groups() {
		g := Group{Members: make([]Inductive, 0, len(group))}
		for _, inst := range group {
			ind := Inductive{
				Name:  string(inst.Name),
				Type:  inst.Type.String(),
				Ctors: make([]Ctor, 0, len(inst.Ctors)),
			}
			for _, ctor := range inst.Ctors {
				ind.Ctors = append(ind.Ctors, Ctor{Expr: ctor.Ctor.String(), Type: ctor.Type.String()})
			}
			g.Members = append(g.Members, ind)
		}
		snap.Groups = append(snap.Groups, g)
	}
	for _, fact := range res.Facts {
		snap.Facts = append(snap.Facts, Fact{Proof: fact.Proof.String(), Type: fact.Type.String()})
	}
	for _, d := range res.Bag.Items() {
		snap.Diags = append(snap.Diags, Diagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Subject:  d.Subject,
			Message:  d.Message,
		})
	}
	return snap
}

// Write encodes a snapshot.
func Write(w io.Writer, snap *Snapshot) error {
	return msgpack.NewEncoder(w).Encode(snap)
}

// Read decodes a snapshot and validates its schema version.
func Read(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}
	if snap.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, snap.Schema, SchemaVersion)
	}
	return &snap, nil
}

// WriteFile writes a snapshot through a temp file and an atomic
// rename.
func WriteFile(path string, snap *Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := Write(f, snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ReadFile loads a snapshot from disk.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
