package man

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Default collaborator binaries for the renderer.
const (
	DefaultManBin = "man"
	DefaultColBin = "col"
)

// DefaultWidth is the formatting width handed to man via MANWIDTH when the
// caller does not choose one.
const DefaultWidth = 80

// Renderer formats manual pages through the system man toolchain. The page
// body comes from "man <section> <name>" piped through "col -bx" so that
// backspace overstrike sequences are already resolved to plain characters
// and tabs are expanded.
type Renderer struct {
	ManBin string // formatter binary; DefaultManBin when empty
	ColBin string // overstrike filter binary; DefaultColBin when empty
	Width  int    // formatting width via MANWIDTH; DefaultWidth when <= 0
	Log    *slog.Logger
}

// Render returns the formatted plain-text body of one manual page. The call
// blocks until both collaborators exit; no timeout is imposed. Any failure
// of either collaborator surfaces as a single error for the caller to
// present.
func (r *Renderer) Render(name, section string) (string, error) {
	manBin := r.ManBin
	if manBin == "" {
		manBin = DefaultManBin
	}
	colBin := r.ColBin
	if colBin == "" {
		colBin = DefaultColBin
	}
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}

	man := exec.Command(manBin, section, name)
	man.Env = append(os.Environ(), fmt.Sprintf("MANWIDTH=%d", width))
	col := exec.Command(colBin, "-bx")

	pipe, err := man.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%s stdout pipe: %w", manBin, err)
	}
	col.Stdin = pipe

	var stdout, manErr, colErr bytes.Buffer
	man.Stderr = &manErr
	col.Stdout = &stdout
	col.Stderr = &colErr

	if err := man.Start(); err != nil {
		return "", fmt.Errorf("start %s: %w", manBin, err)
	}
	if err := col.Start(); err != nil {
		_ = man.Process.Kill()
		_ = man.Wait()
		return "", fmt.Errorf("start %s: %w", colBin, err)
	}

	if err := man.Wait(); err != nil {
		_ = col.Process.Kill()
		_ = col.Wait()
		return "", fmt.Errorf("%s %s %s: %w: %s", manBin, section, name, err,
			strings.TrimSpace(manErr.String()))
	}
	if err := col.Wait(); err != nil {
		return "", fmt.Errorf("%s failed: %w: %s", colBin, err,
			strings.TrimSpace(colErr.String()))
	}

	r.log().Debug("rendered page", "name", name, "section", section,
		"width", width, "bytes", stdout.Len())
	return stdout.String(), nil
}

func (r *Renderer) log() *slog.Logger {
	if r.Log == nil {
		return nopLogger
	}
	return r.Log
}
