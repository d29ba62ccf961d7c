package man

import (
	"bytes"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// DefaultManpathBin is the path resolver consulted for the manual search
// path.
const DefaultManpathBin = "manpath"

// Scanner discovers manual pages along the system search path.
type Scanner struct {
	ManpathBin string // resolver binary; DefaultManpathBin when empty
	Log        *slog.Logger
}

// SearchPath invokes the path resolver once and returns the directories it
// reports, in order. A resolver that fails or prints nothing yields zero
// directories; discovery treats that as "nothing installed", not an error.
func (s *Scanner) SearchPath() []string {
	bin := s.ManpathBin
	if bin == "" {
		bin = DefaultManpathBin
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(bin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		s.log().Debug("path resolver failed", "bin", bin, "err", err,
			"stderr", strings.TrimSpace(stderr.String()))
		return nil
	}

	dirs := SplitSearchPath(stdout.String())
	s.log().Debug("resolved manual search path", "bin", bin, "dirs", dirs)
	return dirs
}

// SplitSearchPath parses the resolver's colon-delimited output. Empty output
// and empty elements contribute no directories.
func SplitSearchPath(out string) []string {
	var dirs []string
	for _, dir := range strings.Split(strings.TrimSpace(out), ":") {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Scan resolves the search path and builds the catalog in one step.
func (s *Scanner) Scan() Catalog {
	start := time.Now()
	catalog := BuildCatalog(s.SearchPath(), s.Log)
	s.log().Debug("catalog built",
		"sections", len(catalog.Sections),
		"entries", catalog.NumEntries(),
		"took", time.Since(start))
	return catalog
}

func (s *Scanner) log() *slog.Logger {
	if s.Log == nil {
		return nopLogger
	}
	return s.Log
}
