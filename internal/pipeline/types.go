// Package pipeline drives complete problem runs: parse, inductive
// collection, inhabitation extraction and atom matching, with
// progress events and per-phase timings. Directory runs fan out over
// a bounded worker group.
package pipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageParse is the problem-file reading stage.
	StageParse Stage = "parse"
	// StageCollect is the inductive collection stage.
	StageCollect Stage = "collect"
	// StageExtract is the inhabitation extraction stage.
	StageExtract Stage = "extract"
	// StageMatch is the atom matching stage.
	StageMatch Stage = "match"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the problem is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the problem is being processed.
	StatusWorking Status = "working"
	// StatusDone indicates the problem finished.
	StatusDone Status = "done"
	// StatusError indicates the problem failed.
	StatusError Status = "error"
)

// Event reports progress for one problem file (or for the overall
// run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
