package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rms-check/internal/driver"
	"rms-check/internal/source"
	"rms-check/internal/ui"
)

// runAnalyzeDirWithUI runs driver.AnalyzeDir for dir under a Bubble Tea
// progress display, one line per discovered file. Used by check when
// --ui renders a terminal and the target is a directory.
func runAnalyzeDirWithUI(ctx context.Context, title string, files []string, dir string, opts driver.AnalyzeDirOptions) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.Event, 256)
	type outcome struct {
		fileSet *source.FileSet
		results []*driver.Result
		err     error
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.AnalyzeDir(ctx, dir, optsCopy)
		outcomeCh <- outcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil {
		return out.fileSet, out.results, uiErr
	}
	return out.fileSet, out.results, out.err
}
