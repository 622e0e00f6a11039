package pipeline

import (
	"fmt"
	"time"

	"sledge/internal/collect"
	"sledge/internal/diag"
	"sledge/internal/inhabit"
	"sledge/internal/kernel"
	"sledge/internal/observ"
	"sledge/internal/parse"
	"sledge/internal/term"
)

// DefaultMaxDiagnostics caps a run's diagnostic bag when the caller
// does not say otherwise.
const DefaultMaxDiagnostics = 256

// Options configures a single problem run.
type Options struct {
	MaxDiagnostics int
	Sink           ProgressSink
}

func (o Options) sink() ProgressSink {
	if o.Sink == nil {
		return nopSink{}
	}
	return o.Sink
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Result is the outcome of one problem run.
type Result struct {
	Path    string
	Problem *parse.Problem
	Forest  *collect.Forest
	Facts   []inhabit.Fact
	Bag     *diag.Bag
	Timing  observ.Report
}

// Run executes the full pipeline on one problem source. Soft skips
// land in the result's diagnostic bag; hard failures abort the run.
func Run(path, src string, opts Options) (*Result, error) {
	sink := opts.sink()
	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}
	timer := observ.NewTimer()
	start := time.Now()

	fail := func(stage Stage, err error) (*Result, error) {
		sink.OnEvent(Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return nil, fmt.Errorf("%s: %s: %w", path, stage, err)
	}

	sink.OnEvent(Event{File: path, Stage: StageParse, Status: StatusWorking})
	phase := timer.Begin(observ.PhaseParse)
	problem, err := parse.ParseProblem(src)
	if err != nil {
		diag.Error(reporter, diag.PipeParseFailed, path, err.Error())
		return fail(StageParse, err)
	}
	timer.End(phase, fmt.Sprintf("%d hyps, %d atoms", len(problem.Hyps), len(problem.Atoms)))

	lctx := kernel.NewLocalContext()
	for _, hyp := range problem.Hyps {
		lctx.Add(hyp.Name, hyp.Type)
	}
	kc := kernel.NewChecker(problem.Env, lctx)

	sink.OnEvent(Event{File: path, Stage: StageCollect, Status: StatusWorking})
	phase = timer.Begin(observ.PhaseCollect)
	collector := collect.NewCollector(problem.Env, collect.NewBuilder(problem.Env, kc), kc, reporter)
	forest, err := collector.Collect(collectRoots(problem)...)
	if err != nil {
		return fail(StageCollect, err)
	}
	timer.End(phase, fmt.Sprintf("%d groups", forest.GroupCount()))

	sink.OnEvent(Event{File: path, Stage: StageExtract, Status: StatusWorking})
	phase = timer.Begin(observ.PhaseExtract)
	lemmas := inhabit.NewExtractor(kc, reporter).Extract(lctx)
	timer.End(phase, fmt.Sprintf("%d lemmas", len(lemmas)))

	sink.OnEvent(Event{File: path, Stage: StageMatch, Status: StatusWorking})
	phase = timer.Begin(observ.PhaseMatch)
	facts, err := inhabit.NewMatcher(kc, reporter).Match(lemmas, problem.Atoms)
	if err != nil {
		return fail(StageMatch, err)
	}
	timer.End(phase, fmt.Sprintf("%d facts", len(facts)))

	sink.OnEvent(Event{File: path, Stage: StageMatch, Status: StatusDone, Elapsed: time.Since(start)})
	return &Result{
		Path:    path,
		Problem: problem,
		Forest:  forest,
		Facts:   facts,
		Bag:     bag,
		Timing:  timer.Report(),
	}, nil
}

// collectRoots gathers every expression the collector must walk:
// goals, hypothesis types, declared targets and the atom set itself.
func collectRoots(p *parse.Problem) []*term.Expr {
	roots := make([]*term.Expr, 0, len(p.Goals)+len(p.Hyps)+len(p.Targets)+len(p.Atoms))
	roots = append(roots, p.Goals...)
	for _, hyp := range p.Hyps {
		roots = append(roots, hyp.Type)
	}
	roots = append(roots, p.Targets...)
	roots = append(roots, p.Atoms...)
	return roots
}
