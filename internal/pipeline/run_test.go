package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"sledge/internal/term"
)

const sampleProblem = `
(hyp n Nat)
(hyp f (-> Bool Nat))
(atom Nat)
(atom Bool)
(target (app (const List 1) Nat))
(goal (app (const Nonempty 1) Nat))
`

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func (s *recordingSink) all() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

func TestRunFullPipeline(t *testing.T) {
	sink := &recordingSink{}
	res, err := Run("sample.sl", sampleProblem, Options{Sink: sink})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := res.Forest.GroupCount(); got != 4 {
		t.Fatalf("groups = %d, want 4 (Nat, Nonempty, Bool, List)", got)
	}
	if len(res.Forest.ByName("List")) != 1 || len(res.Forest.ByName("Nat")) != 1 {
		t.Fatalf("forest missing expected instantiations")
	}
	if len(res.Facts) != 2 {
		t.Fatalf("facts = %d, want 2", len(res.Facts))
	}
	if !term.Eq(res.Facts[0].Type, term.Const("Nat")) {
		t.Fatalf("first fact = %s", res.Facts[0].Type)
	}
	if !term.Eq(res.Facts[1].Type, term.Arrow(term.Const("Bool"), term.Const("Nat"))) {
		t.Fatalf("second fact = %s", res.Facts[1].Type)
	}
	if got := len(res.Timing.Phases); got != 4 {
		t.Fatalf("timed phases = %d, want 4", got)
	}

	events := sink.all()
	if len(events) == 0 {
		t.Fatalf("no progress events")
	}
	first, last := events[0], events[len(events)-1]
	if first.Stage != StageParse || first.Status != StatusWorking {
		t.Fatalf("first event = %+v", first)
	}
	if last.Stage != StageMatch || last.Status != StatusDone || last.File != "sample.sl" {
		t.Fatalf("last event = %+v", last)
	}
}

func TestRunFactsUseOnlyDeclaredHypotheses(t *testing.T) {
	// The goal's parameter argument is itself an arrow type, so the
	// builder has to type a quantifier while specializing List's
	// constructors. The temporaries that typing introduces must never
	// surface as hypotheses.
	const src = `
(hyp b Bool)
(atom Nat)
(atom Bool)
(goal (app (const List 1) (-> Nat Bool)))
`
	res, err := Run("arrow.sl", src, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := res.Forest.GroupCount(); got != 3 {
		t.Fatalf("groups = %d, want 3 (Nat, Bool, List)", got)
	}
	if len(res.Facts) != 1 {
		t.Fatalf("facts = %d, want 1: %v", len(res.Facts), res.Facts)
	}
	if !term.Eq(res.Facts[0].Proof, term.FVar("b")) || !term.Eq(res.Facts[0].Type, term.Const("Bool")) {
		t.Fatalf("fact = %s : %s, want b : Bool", res.Facts[0].Proof, res.Facts[0].Type)
	}
}

func TestRunReportsParseFailure(t *testing.T) {
	sink := &recordingSink{}
	_, err := Run("bad.sl", "(atom", Options{Sink: sink})
	if err == nil {
		t.Fatalf("no error for malformed problem")
	}
	events := sink.all()
	last := events[len(events)-1]
	if last.Status != StatusError || last.Err == nil {
		t.Fatalf("last event = %+v", last)
	}
}

func TestRunDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("a.sl", sampleProblem)
	write("b.sl", "(atom") // malformed
	write("c.txt", "ignored")

	results, err := RunDir(context.Background(), dir, 2, Options{Sink: &recordingSink{}})
	if err != nil {
		t.Fatalf("run dir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if filepath.Base(results[0].Path) != "a.sl" || results[0].Err != nil {
		t.Fatalf("first result = %+v", results[0])
	}
	if results[0].Result == nil || len(results[0].Result.Facts) != 2 {
		t.Fatalf("first result incomplete")
	}
	if filepath.Base(results[1].Path) != "b.sl" || results[1].Err == nil {
		t.Fatalf("second result should carry the parse error: %+v", results[1])
	}
}

func TestRunDirEmpty(t *testing.T) {
	results, err := RunDir(context.Background(), t.TempDir(), 0, Options{})
	if err != nil || results != nil {
		t.Fatalf("results = %v, err = %v", results, err)
	}
}
