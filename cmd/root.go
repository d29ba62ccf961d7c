package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/seanlum/ManPage-Explorer/app"
	"github.com/seanlum/ManPage-Explorer/man"
)

var version = "dev"

// CLI is the whole flag surface. Nothing is read from the environment or
// from config files; everything the program needs arrives here.
type CLI struct {
	Query      string           `arg:"" optional:"" help:"Initial filter query applied to the page tree."`
	ExpandAll  bool             `help:"Start with every section subtree expanded."`
	Width      int              `default:"80" help:"Formatting width handed to the renderer via MANWIDTH."`
	LogFile    string           `type:"path" help:"Write debug logs to this file."`
	ManpathBin string           `default:"manpath" help:"Search path resolver binary."`
	ManBin     string           `default:"man" help:"Manual page formatter binary."`
	Version    kong.VersionFlag `help:"Print version and exit."`
}

// Execute parses the command line and runs the application. Flag errors and
// startup failures are the only paths that exit non-zero; everything after
// the UI starts is handled inside it.
func Execute() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("manpage-explorer"),
		kong.Description("Browse and search locally installed manual pages."),
		kong.Vars{"version": version},
	)

	if cli.ManBin == "" {
		cli.ManBin = man.DefaultManBin
	}
	if cli.ManpathBin == "" {
		cli.ManpathBin = man.DefaultManpathBin
	}

	err := app.Run(app.Options{
		Query:      cli.Query,
		ExpandAll:  cli.ExpandAll,
		Width:      cli.Width,
		LogFile:    cli.LogFile,
		ManpathBin: cli.ManpathBin,
		ManBin:     cli.ManBin,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
