package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"docwrap/internal/driver"
	"docwrap/internal/ui"
)

type runOutcome struct {
	summary *driver.Summary
	err     error
}

// runWithUI drives a rewrap run behind a Bubble Tea progress screen. The
// run itself happens in a goroutine; events stream into the model until
// the driver closes the channel.
func runWithUI(ctx context.Context, title string, paths []string, opts driver.Options) (*driver.Summary, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		summary, err := driver.Run(ctx, paths, opts)
		outcomeCh <- runOutcome{summary: summary, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.summary, uiErr
	}
	return outcome.summary, outcome.err
}
