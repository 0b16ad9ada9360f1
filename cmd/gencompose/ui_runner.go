package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"gencompose/internal/driver"
	"gencompose/internal/ui"
)

type dirOutcome struct {
	result *driver.DirResult
	err    error
}

// runDirWithUI executes a directory run while a Bubble Tea program
// renders per-file progress from a channel sink.
func runDirWithUI(ctx context.Context, title string, req *driver.DirRequest) (*driver.DirResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		reqCopy := *req
		reqCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.GenerateDir(ctx, &reqCopy)
		outcomeCh <- dirOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, driver.FilePaths(req.Manifest), events)
	program := tea.NewProgram(model)
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
