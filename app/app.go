package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seanlum/ManPage-Explorer/internal/logging"
	"github.com/seanlum/ManPage-Explorer/man"
	"github.com/seanlum/ManPage-Explorer/ui"
)

// Options carries the CLI surface into the application.
type Options struct {
	Query      string // initial filter query
	ExpandAll  bool
	Width      int    // formatting width for the renderer
	LogFile    string // debug log destination; empty discards
	ManpathBin string
	ManBin     string
}

// Run wires the collaborators together and drives the UI to completion:
// build the logger, scan the catalog once, then hand everything to the
// terminal program until the user quits.
func Run(opts Options) error {
	log, closeLog, err := logging.New(opts.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	scanner := &man.Scanner{ManpathBin: opts.ManpathBin, Log: log}
	renderer := &man.Renderer{ManBin: opts.ManBin, Width: opts.Width, Log: log}

	model := ui.New(ui.Options{
		Catalog:   scanner.Scan(),
		Scanner:   scanner,
		Renderer:  renderer,
		Filter:    opts.Query,
		ExpandAll: opts.ExpandAll,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}
