package ui

import (
	"strings"

	"github.com/seanlum/ManPage-Explorer/man"
)

const rootLabel = "Man Pages"

type nodeKind int

const (
	kindRoot nodeKind = iota
	kindSection
	kindEntry
)

// node is one arena slot. Parent/child links are arena indices, so the
// hierarchy stays a plain ownership tree with no pointer cycles.
type node struct {
	kind     nodeKind
	label    string
	parent   int
	children []int
	visible  bool
	expanded bool
}

// tree is the presentation projection of a Catalog: an arena of nodes with
// per-node visibility that filtering mutates, leaving the Catalog itself
// untouched. Node 0 is always the root.
type tree struct {
	nodes []node
}

// newTree materializes the arena for a catalog. The root starts expanded,
// section subtrees collapsed unless expandAll is set, and every node
// visible.
func newTree(catalog man.Catalog, expandAll bool) *tree {
	t := &tree{nodes: make([]node, 0, 1+catalog.NumEntries()+len(catalog.Sections))}
	t.nodes = append(t.nodes, node{
		kind:     kindRoot,
		label:    rootLabel,
		parent:   -1,
		visible:  true,
		expanded: true,
	})

	for _, s := range catalog.Sections {
		sectionIdx := len(t.nodes)
		t.nodes = append(t.nodes, node{
			kind:     kindSection,
			label:    "Section " + s.ID,
			parent:   0,
			visible:  true,
			expanded: expandAll,
		})
		t.nodes[0].children = append(t.nodes[0].children, sectionIdx)

		for _, e := range s.Entries {
			entryIdx := len(t.nodes)
			t.nodes = append(t.nodes, node{
				kind:    kindEntry,
				label:   e.Label(),
				parent:  sectionIdx,
				visible: true,
			})
			t.nodes[sectionIdx].children = append(t.nodes[sectionIdx].children, entryIdx)
		}
	}
	return t
}

// filter recomputes visibility from the query: an entry is visible iff the
// trimmed, lowercased query is a substring of its lowercased label, and a
// section is visible iff at least one of its entries is. The empty query
// makes everything visible. One linear pass over the arena; expansion state
// and catalog data are untouched, so re-running on every keystroke is safe.
func (t *tree) filter(query string) {
	query = strings.ToLower(strings.TrimSpace(query))

	for i := range t.nodes {
		switch t.nodes[i].kind {
		case kindRoot:
			t.nodes[i].visible = true
		case kindEntry:
			t.nodes[i].visible = query == "" ||
				strings.Contains(strings.ToLower(t.nodes[i].label), query)
		}
	}
	for i := range t.nodes {
		if t.nodes[i].kind != kindSection {
			continue
		}
		visible := false
		for _, c := range t.nodes[i].children {
			if t.nodes[c].visible {
				visible = true
				break
			}
		}
		t.nodes[i].visible = visible
	}
}

// toggle flips the expansion of a section node; other kinds are no-ops.
func (t *tree) toggle(id int) {
	if id >= 0 && id < len(t.nodes) && t.nodes[id].kind == kindSection {
		t.nodes[id].expanded = !t.nodes[id].expanded
	}
}

func (t *tree) setExpanded(id int, expanded bool) {
	if id >= 0 && id < len(t.nodes) && t.nodes[id].kind == kindSection {
		t.nodes[id].expanded = expanded
	}
}

// row is one display line of the flattened tree.
type row struct {
	id    int
	depth int
}

// rows flattens the visible nodes depth-first, descending only into
// expanded nodes. The cursor indexes this slice.
func (t *tree) rows() []row {
	if len(t.nodes) == 0 {
		return nil
	}
	out := make([]row, 0, len(t.nodes))
	var walk func(id, depth int)
	walk = func(id, depth int) {
		if !t.nodes[id].visible {
			return
		}
		out = append(out, row{id: id, depth: depth})
		if !t.nodes[id].expanded {
			return
		}
		for _, c := range t.nodes[id].children {
			walk(c, depth+1)
		}
	}
	walk(0, 0)
	return out
}

// selection resolves a node to the (name, section) pair of the manual page
// it names. Rows whose label has no '.' (the root, section headings) do not
// resolve; the label splits at the last '.' so dotted names survive.
func (t *tree) selection(id int) (name, section string, ok bool) {
	if id < 0 || id >= len(t.nodes) || t.nodes[id].kind != kindEntry {
		return "", "", false
	}
	return man.ParseLabel(t.nodes[id].label)
}
