package ui

import (
	"fmt"
	"strings"
)

// span is one highlight-search hit: byte offsets into a single line.
type span struct {
	line  int
	start int
	end   int
}

// document holds the rendered text of the active manual page together with
// the highlight-search state for it. Loading a page replaces the document
// wholesale; the match set never outlives the text it was built from.
type document struct {
	lines   []string
	query   string
	matches []span
	current int // index into matches, -1 when unset
}

func newDocument() *document {
	return &document{current: -1}
}

// setText replaces the document body and drops all search state: the match
// set empties, the cursor unsets, and the active query clears, whatever
// search was running before.
func (d *document) setText(text string) {
	d.lines = strings.Split(text, "\n")
	d.query = ""
	d.matches = nil
	d.current = -1
}

// search runs a case-sensitive literal-substring search over the whole
// document and rebuilds the match set from scratch. An empty query is a
// no-op: whatever highlights exist stay as they are. Occurrences are
// non-overlapping, in document order; when any are found the first becomes
// current.
func (d *document) search(query string) {
	if query == "" {
		return
	}
	d.query = query
	d.matches = nil
	d.current = -1

	for lineNo, line := range d.lines {
		from := 0
		for {
			idx := strings.Index(line[from:], query)
			if idx == -1 {
				break
			}
			start := from + idx
			end := start + len(query)
			d.matches = append(d.matches, span{line: lineNo, start: start, end: end})
			from = end
		}
	}

	if len(d.matches) > 0 {
		d.focusMatch(0)
	}
}

// focusMatch makes match i current, wrapping modulo the match-set length so
// that navigation cycles in both directions (-1 lands on the last match).
// With no matches it does nothing.
func (d *document) focusMatch(i int) {
	n := len(d.matches)
	if n == 0 {
		return
	}
	d.current = ((i % n) + n) % n
}

func (d *document) nextMatch() { d.focusMatch(d.current + 1) }
func (d *document) prevMatch() { d.focusMatch(d.current - 1) }

// currentLine returns the line the current match sits on, for scrolling.
func (d *document) currentLine() (int, bool) {
	if d.current < 0 || d.current >= len(d.matches) {
		return 0, false
	}
	return d.matches[d.current].line, true
}

// status reports the 1-based "k of N" text, empty while no match is
// current.
func (d *document) status() string {
	if d.current < 0 {
		return ""
	}
	return fmt.Sprintf("%d of %d", d.current+1, len(d.matches))
}

// render produces the display text of the whole document with every match
// styled, the current one distinctly. Styling happens at render time so the
// underlying lines stay plain for searching.
func (d *document) render() string {
	if len(d.matches) == 0 {
		return strings.Join(d.lines, "\n")
	}

	byLine := make(map[int][]int, len(d.matches))
	for i, m := range d.matches {
		byLine[m.line] = append(byLine[m.line], i)
	}

	var b strings.Builder
	for lineNo, line := range d.lines {
		if lineNo > 0 {
			b.WriteString("\n")
		}
		hits, ok := byLine[lineNo]
		if !ok {
			b.WriteString(line)
			continue
		}
		last := 0
		for _, i := range hits {
			m := d.matches[i]
			b.WriteString(line[last:m.start])
			if i == d.current {
				b.WriteString(currentMatchStyle.Render(line[m.start:m.end]))
			} else {
				b.WriteString(matchStyle.Render(line[m.start:m.end]))
			}
			last = m.end
		}
		b.WriteString(line[last:])
	}
	return b.String()
}
