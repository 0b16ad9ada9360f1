package driver

import "time"

// Stage describes a high-level phase of one generation run.
type Stage string

const (
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageLint is the validation stage.
	StageLint Stage = "lint"
	// StageExpand is the expansion stage.
	StageExpand Stage = "expand"
	// StageRender is the output assembly stage.
	StageRender Stage = "render"
	// StageWrite is the file writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
	// StatusSkipped indicates the stage was short-circuited.
	StatusSkipped Status = "skipped"
)

// Event reports progress for a file.
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

func emit(sink ProgressSink, file string, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err})
}
