package export

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"sledge/internal/parse"
	"sledge/internal/pipeline"
)

const sampleProblem = `
(hyp n Nat)
(atom Nat)
(goal (app (const List 1) Nat))
`

func runSample(t *testing.T) *pipeline.Result {
	t.Helper()
	res, err := pipeline.Run("sample.sl", sampleProblem, pipeline.Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return res
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := BuildSnapshot(runSample(t))
	if snap.Schema != SchemaVersion {
		t.Fatalf("schema = %d", snap.Schema)
	}
	if len(snap.Groups) == 0 || len(snap.Facts) != 1 {
		t.Fatalf("snapshot = %d groups, %d facts", len(snap.Groups), len(snap.Facts))
	}

	var buf bytes.Buffer
	if err := Write(&buf, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Path != "sample.sl" || len(got.Groups) != len(snap.Groups) || len(got.Facts) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Facts[0].Proof != "n" || got.Facts[0].Type != "Nat" {
		t.Fatalf("fact = %+v", got.Facts[0])
	}
}

func TestSnapshotTermsReparse(t *testing.T) {
	snap := BuildSnapshot(runSample(t))
	for _, group := range snap.Groups {
		for _, member := range group.Members {
			if _, err := parse.ParseProblem("(atom " + member.Type + ")"); err != nil {
				t.Fatalf("exported type %q does not reparse: %v", member.Type, err)
			}
			for _, ctor := range member.Ctors {
				if _, err := parse.ParseProblem("(atom " + ctor.Type + ")"); err != nil {
					t.Fatalf("exported ctor type %q does not reparse: %v", ctor.Type, err)
				}
			}
		}
	}
}

func TestSnapshotSchemaCheck(t *testing.T) {
	snap := BuildSnapshot(runSample(t))
	snap.Schema = SchemaVersion + 1
	var buf bytes.Buffer
	if err := Write(&buf, snap); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Read(&buf); !errors.Is(err, ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	snap := BuildSnapshot(runSample(t))
	path := filepath.Join(t.TempDir(), "out", "sample.mp")
	if err := WriteFile(path, snap); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if got.Path != snap.Path || len(got.Groups) != len(snap.Groups) {
		t.Fatalf("file round trip mismatch")
	}
}
