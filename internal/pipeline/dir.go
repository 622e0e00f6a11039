package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ProblemExt is the extension of problem files picked up by
// directory runs.
const ProblemExt = ".sl"

// DirResult holds the outcome of one file within a directory run.
// Err is set when the file failed; Result is set otherwise.
type DirResult struct {
	Path   string
	Result *Result
	Err    error
}

// ListProblems returns the sorted list of problem files under dir.
func ListProblems(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ProblemExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Sorted for a deterministic result order.
	sort.Strings(files)
	return files, nil
}

// RunDir runs every problem file under dir with at most jobs workers.
// Result indices follow the sorted file order. A failed file records
// its error in its slot; only cancellation aborts the whole run.
func RunDir(ctx context.Context, dir string, jobs int, opts Options) ([]DirResult, error) {
	files, err := ListProblems(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	sink := opts.sink()
	for _, path := range files {
		sink.OnEvent(Event{File: path, Stage: StageParse, Status: StatusQueued})
	}

	// Index per goroutine is unique, so no mutex around results.
	results := make([]DirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = DirResult{Path: path, Err: err}
				sink.OnEvent(Event{File: path, Stage: StageParse, Status: StatusError, Err: err})
				return nil
			}
			res, err := Run(path, string(src), opts)
			results[i] = DirResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
