package observ

import (
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin(PhaseCollect)
	tm.End(idx, "3 groups")
	idx = tm.Begin(PhaseMatch)
	tm.End(idx, "")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != PhaseCollect || report.Phases[0].Note != "3 groups" {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}

	summary := tm.Summary()
	if !strings.Contains(summary, PhaseCollect) || !strings.Contains(summary, "total") {
		t.Fatalf("summary missing entries:\n%s", summary)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(3, "ignored")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("report = %+v, want empty", got)
	}
}
