package man

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Entry is one named manual page within a section.
type Entry struct {
	Name    string
	Section string
}

// Label returns the display label used in the page tree, "name.section".
func (e Entry) Label() string {
	return e.Name + "." + e.Section
}

// ParseLabel splits a display label at the last '.' into name and section,
// so names that themselves contain dots survive the round trip
// ("tar.bz2.1" -> "tar.bz2", "1"). ok is false for labels with no '.' at
// all, such as section headings.
func ParseLabel(label string) (name, section string, ok bool) {
	idx := strings.LastIndex(label, ".")
	if idx == -1 {
		return "", "", false
	}
	return label[:idx], label[idx+1:], true
}

// Section groups the pages of one manual section, ordered by display label.
type Section struct {
	ID      string
	Entries []Entry
}

// Catalog is the section-grouped listing of every manual page discovered
// along the search path. It is built once and never mutated; a rescan
// produces a fresh Catalog that replaces the old one wholesale.
type Catalog struct {
	Sections []Section
}

// NumEntries returns the total page count across all sections.
func (c Catalog) NumEntries() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Entries)
	}
	return n
}

// sectionDirPrefix is the fixed prefix of section subdirectories ("man1",
// "man3p", ...). Whatever follows it is the section identifier, verbatim.
const sectionDirPrefix = "man"

var nopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// BuildCatalog scans the given directories in order and assembles the
// catalog. A directory that does not exist, or whose listing fails, is
// skipped: search paths routinely name directories that are absent on the
// local system, so that is the normal state of affairs and never an error.
// A page found under more than one directory keeps its first occurrence
// only.
func BuildCatalog(dirs []string, log *slog.Logger) Catalog {
	if log == nil {
		log = nopLogger
	}

	seen := make(map[Entry]struct{})
	bySection := make(map[string][]Entry)

	for _, dir := range dirs {
		subdirs, err := os.ReadDir(dir)
		if err != nil {
			log.Debug("skipping search path directory", "dir", dir, "err", err)
			continue
		}
		for _, sub := range subdirs {
			if !strings.HasPrefix(sub.Name(), sectionDirPrefix) {
				continue
			}
			section := sub.Name()[len(sectionDirPrefix):]
			sectionDir := filepath.Join(dir, sub.Name())

			// Listing the candidate also weeds out plain files and
			// dangling symlinks that happen to share the prefix.
			files, err := os.ReadDir(sectionDir)
			if err != nil {
				log.Debug("skipping section directory", "dir", sectionDir, "err", err)
				continue
			}
			for _, f := range files {
				name, _, found := strings.Cut(f.Name(), ".")
				if !found {
					continue
				}
				e := Entry{Name: name, Section: section}
				if _, dup := seen[e]; dup {
					continue
				}
				seen[e] = struct{}{}
				bySection[section] = append(bySection[section], e)
			}
		}
	}

	catalog := Catalog{Sections: make([]Section, 0, len(bySection))}
	for id, entries := range bySection {
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Label() < entries[j].Label()
		})
		catalog.Sections = append(catalog.Sections, Section{ID: id, Entries: entries})
	}
	sort.Slice(catalog.Sections, func(i, j int) bool {
		return sectionLess(catalog.Sections[i].ID, catalog.Sections[j].ID)
	})
	return catalog
}

// sectionLess orders section identifiers by their leading run of decimal
// digits parsed as an integer. Identifiers with no leading digits sort after
// all numeric ones; ties break lexicographically: "1" < "3" < "3p" < "n".
func sectionLess(a, b string) bool {
	na, aNumeric := leadingInt(a)
	nb, bNumeric := leadingInt(b)
	switch {
	case aNumeric && !bNumeric:
		return true
	case !aNumeric && bNumeric:
		return false
	case aNumeric && bNumeric && na != nb:
		return na < nb
	}
	return a < b
}

func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		// A digit run too long for int; treat like a non-numeric identifier.
		return 0, false
	}
	return n, true
}
