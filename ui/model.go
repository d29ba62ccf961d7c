package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/seanlum/ManPage-Explorer/man"
)

// Renderer formats one manual page to plain text. man.Renderer satisfies
// it; tests inject fakes.
type Renderer interface {
	Render(name, section string) (string, error)
}

// Scanner rebuilds the catalog on demand. man.Scanner satisfies it.
type Scanner interface {
	Scan() man.Catalog
}

// Pane identifies the focused region; tab cycles through them in order.
type Pane int

const (
	PaneFilter Pane = iota
	PaneTree
	PaneDocument
	PaneSearch
	paneCount
)

const placeholderText = "Select a manual page from the tree."

// Options configures a Model.
type Options struct {
	Catalog   man.Catalog
	Scanner   Scanner
	Renderer  Renderer
	Filter    string // initial filter query, applied before first render
	ExpandAll bool
}

// Model is the whole-program bubbletea model: a filter bar over a section
// tree on the left, the rendered page with its highlight-search bar on the
// right.
type Model struct {
	scanner  Scanner
	renderer Renderer

	tree      *tree
	doc       *document
	expandAll bool

	filterInput textinput.Model
	searchInput textinput.Model
	viewport    viewport.Model
	help        help.Model

	focus        Pane
	cursor       int // index into the flattened tree rows
	scrollOffset int // first visible tree row
	width        int
	height       int
	ready        bool
	quitting     bool
}

// New builds the model for a scanned catalog. The initial filter query, if
// any, is applied before the first render.
func New(opts Options) Model {
	fi := textinput.New()
	fi.Placeholder = "Filter pages..."
	fi.Prompt = "Filter: "
	fi.PromptStyle = titleStyle
	fi.Focus()

	si := textinput.New()
	si.Placeholder = "Find in page..."
	si.Prompt = "/"
	si.PromptStyle = titleStyle

	m := Model{
		scanner:     opts.Scanner,
		renderer:    opts.Renderer,
		tree:        newTree(opts.Catalog, opts.ExpandAll),
		doc:         newDocument(),
		expandAll:   opts.ExpandAll,
		filterInput: fi,
		searchInput: si,
		viewport:    viewport.New(0, 0),
		help:        help.New(),
		focus:       PaneFilter,
	}
	m.viewport.SetContent(placeholderText)

	if opts.Filter != "" {
		m.filterInput.SetValue(opts.Filter)
		m.tree.filter(opts.Filter)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, globalKeys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, globalKeys.NextPane):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil

	case key.Matches(msg, globalKeys.PrevPane):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil

	case key.Matches(msg, globalKeys.FocusSearch):
		m.setFocus(PaneSearch)
		return m, nil
	}

	switch m.focus {
	case PaneFilter:
		return m.updateFilter(msg)
	case PaneTree:
		return m.updateTree(msg)
	case PaneDocument:
		return m.updateDocument(msg)
	default:
		return m.updateSearch(msg)
	}
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, inputKeys.Accept):
		m.setFocus(PaneTree)
		return m, nil
	case key.Matches(msg, inputKeys.Cancel):
		m.filterInput.SetValue("")
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.filterInput.Value()
	m.filterInput, cmd = m.filterInput.Update(msg)
	if m.filterInput.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

// applyFilter re-filters the tree from the current input value and keeps
// the cursor inside the new row slice.
func (m *Model) applyFilter() {
	m.tree.filter(m.filterInput.Value())
	m.clampCursor()
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.tree.rows()

	switch {
	case key.Matches(msg, globalKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, treeKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustTreeScroll()
		}

	case key.Matches(msg, treeKeys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
			m.adjustTreeScroll()
		}

	case key.Matches(msg, treeKeys.Top):
		m.cursor = 0
		m.scrollOffset = 0

	case key.Matches(msg, treeKeys.Bottom):
		if len(rows) > 0 {
			m.cursor = len(rows) - 1
			m.adjustTreeScroll()
		}

	case key.Matches(msg, treeKeys.PageUp):
		m.cursor -= m.treeHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.adjustTreeScroll()

	case key.Matches(msg, treeKeys.PageDown):
		m.cursor += m.treeHeight()
		if m.cursor > len(rows)-1 {
			m.cursor = len(rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.adjustTreeScroll()

	case key.Matches(msg, treeKeys.Select):
		if m.cursor < len(rows) {
			m.selectNode(rows[m.cursor].id)
		}

	case key.Matches(msg, treeKeys.Expand):
		if m.cursor < len(rows) {
			m.tree.setExpanded(rows[m.cursor].id, true)
		}

	case key.Matches(msg, treeKeys.Collapse):
		if m.cursor < len(rows) {
			m.tree.setExpanded(rows[m.cursor].id, false)
		}

	case key.Matches(msg, treeKeys.Rescan):
		m.rescan()
	}
	return m, nil
}

// selectNode acts on the row under the cursor: sections toggle their
// subtree, entries load into the document pane. The root, and any other
// row that names no page, does nothing.
func (m *Model) selectNode(id int) {
	if name, section, ok := m.tree.selection(id); ok {
		m.loadEntry(name, section)
		return
	}
	m.tree.toggle(id)
	m.clampCursor()
}

// loadEntry replaces the document with the rendered page. A renderer
// failure becomes the document body instead of an error: the tree, filter,
// and the rest of the UI stay fully interactive. Either way the previous
// search state is gone.
func (m *Model) loadEntry(name, section string) {
	text, err := m.renderer.Render(name, section)
	if err != nil {
		text = "Error loading man page: " + err.Error()
	}
	m.doc.setText(text)
	m.searchInput.SetValue("")
	m.viewport.SetContent(m.doc.render())
	m.viewport.GotoTop()
}

// rescan swaps in a freshly built catalog and re-applies the active
// filter. The open document is unaffected.
func (m *Model) rescan() {
	if m.scanner == nil {
		return
	}
	m.tree = newTree(m.scanner.Scan(), m.expandAll)
	m.cursor = 0
	m.scrollOffset = 0
	m.applyFilter()
}

func (m Model) updateDocument(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, globalKeys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, documentKeys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, documentKeys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, documentKeys.HalfUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, documentKeys.HalfDown):
		m.viewport.HalfViewDown()
	case key.Matches(msg, documentKeys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, documentKeys.Bottom):
		m.viewport.GotoBottom()

	case key.Matches(msg, documentKeys.NextMatch):
		m.doc.nextMatch()
		m.showCurrentMatch()
	case key.Matches(msg, documentKeys.PrevMatch):
		m.doc.prevMatch()
		m.showCurrentMatch()

	case key.Matches(msg, documentKeys.Search):
		m.setFocus(PaneSearch)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, inputKeys.Accept):
		m.doc.search(m.searchInput.Value())
		m.showCurrentMatch()
		m.setFocus(PaneDocument)
		return m, nil
	case key.Matches(msg, inputKeys.Cancel):
		m.setFocus(PaneDocument)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// showCurrentMatch re-renders the highlights and centers the viewport on
// the current match's line.
func (m *Model) showCurrentMatch() {
	m.viewport.SetContent(m.doc.render())
	line, ok := m.doc.currentLine()
	if !ok {
		return
	}
	offset := line - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

func (m *Model) setFocus(p Pane) {
	m.focus = p
	if p == PaneFilter {
		m.filterInput.Focus()
	} else {
		m.filterInput.Blur()
	}
	if p == PaneSearch {
		m.searchInput.Focus()
	} else {
		m.searchInput.Blur()
	}
}

func (m *Model) clampCursor() {
	n := len(m.tree.rows())
	if m.cursor > n-1 {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustTreeScroll()
}

// adjustTreeScroll keeps the cursor row inside the tree viewport.
func (m *Model) adjustTreeScroll() {
	h := m.treeHeight()
	if h <= 0 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
}

const (
	inputBarHeight = 3 // bordered one-line input
	helpBarHeight  = 1
	minTreeWidth   = 24
	maxTreeWidth   = 48
)

func (m Model) treeWidth() int {
	w := m.width / 3
	if w < minTreeWidth {
		w = minTreeWidth
	}
	if w > maxTreeWidth {
		w = maxTreeWidth
	}
	return w
}

// treeHeight is the number of tree rows that fit beside the document.
func (m Model) treeHeight() int {
	h := m.height - inputBarHeight - helpBarHeight - 2 // borders
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resize() {
	docWidth := m.width - m.treeWidth() - 4 // pane borders
	if docWidth < 20 {
		docWidth = 20
	}
	m.viewport.Width = docWidth
	docHeight := m.height - inputBarHeight*2 - helpBarHeight - 2
	if docHeight < 1 {
		docHeight = 1
	}
	m.viewport.Height = docHeight

	m.filterInput.Width = m.width - 14
	m.searchInput.Width = docWidth - 20
	m.help.Width = m.width
	m.adjustTreeScroll()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	filterBar := borderStyle(m.focus == PaneFilter).
		Width(m.width - 2).
		Render(m.filterInput.View())

	treePane := borderStyle(m.focus == PaneTree).
		Width(m.treeWidth()).
		Render(m.renderTree())

	docPane := borderStyle(m.focus == PaneDocument).
		Width(m.viewport.Width).
		Render(m.viewport.View())

	searchBar := borderStyle(m.focus == PaneSearch).
		Width(m.viewport.Width).
		Render(m.renderSearchBar())

	right := lipgloss.JoinVertical(lipgloss.Left, docPane, searchBar)
	main := lipgloss.JoinHorizontal(lipgloss.Top, treePane, right)

	return lipgloss.JoinVertical(lipgloss.Left,
		filterBar,
		main,
		m.help.View(m.focusedKeyMap()),
	)
}

func (m Model) focusedKeyMap() help.KeyMap {
	switch m.focus {
	case PaneTree:
		return treeKeys
	case PaneDocument:
		return documentKeys
	default:
		return inputKeys
	}
}

func (m Model) renderTree() string {
	rows := m.tree.rows()
	h := m.treeHeight()
	w := m.treeWidth() - 2

	var b strings.Builder
	for i := 0; i < h; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		idx := m.scrollOffset + i
		if idx >= len(rows) {
			continue
		}
		r := rows[idx]
		n := m.tree.nodes[r.id]

		label := n.label
		switch n.kind {
		case kindSection:
			if n.expanded {
				label = "▾ " + label
			} else {
				label = "▸ " + label
			}
		}
		line := strings.Repeat("  ", r.depth) + label
		line = runewidth.Truncate(line, w, "…")

		switch {
		case idx == m.cursor && m.focus == PaneTree:
			b.WriteString(selectedStyle.Render(line))
		case n.kind == kindSection:
			b.WriteString(sectionStyle.Render(line))
		default:
			b.WriteString(normalStyle.Render(line))
		}
	}
	return b.String()
}

func (m Model) renderSearchBar() string {
	status := m.doc.status()
	if status == "" && m.doc.query != "" {
		status = "no matches"
	}
	gap := m.viewport.Width - 2 - lipgloss.Width(m.searchInput.View()) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}
	return m.searchInput.View() + strings.Repeat(" ", gap) + statusStyle.Render(status)
}

// Document exposes the plain text currently shown, for tests.
func (m Model) Document() string {
	return strings.Join(m.doc.lines, "\n")
}

// MatchStatus exposes the "k of N" text, for tests.
func (m Model) MatchStatus() string {
	return m.doc.status()
}

// Focus reports the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}
