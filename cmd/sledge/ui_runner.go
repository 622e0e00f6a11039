package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sledge/internal/pipeline"
	"sledge/internal/ui"
)

type dirOutcome struct {
	results []pipeline.DirResult
	err     error
}

// runDirWithUI runs a directory pipeline behind a Bubble Tea progress
// view fed by the run's event channel.
func runDirWithUI(ctx context.Context, dir string, jobs int, opts pipeline.Options) ([]pipeline.DirResult, error) {
	files, err := pipeline.ListProblems(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = pipeline.ChannelSink{Ch: events}
		results, err := pipeline.RunDir(ctx, dir, jobs, optsCopy)
		outcomeCh <- dirOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
