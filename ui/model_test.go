package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanlum/ManPage-Explorer/man"
)

// fakeRenderer serves canned page text keyed by display label.
type fakeRenderer struct {
	pages map[string]string
	calls []string
}

func (f *fakeRenderer) Render(name, section string) (string, error) {
	label := name + "." + section
	f.calls = append(f.calls, label)
	text, ok := f.pages[label]
	if !ok {
		return "", errors.New("exit status 16")
	}
	return text, nil
}

type fakeScanner struct {
	catalog man.Catalog
	scans   int
}

func (f *fakeScanner) Scan() man.Catalog {
	f.scans++
	return f.catalog
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	m := New(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func runes(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var (
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyCtrlF    = tea.KeyMsg{Type: tea.KeyCtrlF}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
)

func TestModelFocusCycling(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: &fakeRenderer{}})
	require.Equal(t, PaneFilter, m.Focus())

	m = press(t, m, keyTab)
	assert.Equal(t, PaneTree, m.Focus())
	m = press(t, m, keyTab)
	assert.Equal(t, PaneDocument, m.Focus())
	m = press(t, m, keyTab)
	assert.Equal(t, PaneSearch, m.Focus())
	m = press(t, m, keyTab)
	assert.Equal(t, PaneFilter, m.Focus())

	m = press(t, m, keyShiftTab)
	assert.Equal(t, PaneSearch, m.Focus())
}

func TestModelGlobalSearchShortcut(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: &fakeRenderer{}})

	m = press(t, m, keyCtrlF)
	assert.Equal(t, PaneSearch, m.Focus())
	assert.True(t, m.searchInput.Focused())

	// Works from the tree pane too.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEscape}, keyShiftTab)
	require.Equal(t, PaneTree, m.Focus())
	m = press(t, m, keyCtrlF)
	assert.Equal(t, PaneSearch, m.Focus())
}

func TestModelFilterTyping(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{
		Catalog:  testCatalog(),
		Renderer: &fakeRenderer{},
	})

	m = press(t, m, runes("lsblk")...)

	assert.Equal(t, []string{"lsblk.8"}, visibleLabels(m.tree))
	assert.False(t, sectionVisible(m.tree, "Section 1"))

	// Enter hands focus to the tree with the filter still applied.
	m = press(t, m, keyEnter)
	assert.Equal(t, PaneTree, m.Focus())
	assert.Equal(t, []string{"lsblk.8"}, visibleLabels(m.tree))
}

func TestModelInitialFilter(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, Options{
		Catalog:  testCatalog(),
		Renderer: &fakeRenderer{},
		Filter:   "cat",
	})

	assert.Equal(t, []string{"cat.1"}, visibleLabels(m.tree))
	assert.Equal(t, "cat", m.filterInput.Value())
}

func TestModelEntrySelection(t *testing.T) {
	t.Parallel()

	t.Run("loads the page under the cursor", func(t *testing.T) {
		t.Parallel()

		r := &fakeRenderer{pages: map[string]string{
			"cat.1": "CAT(1)\n\nNAME\n    cat - concatenate files",
		}}
		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: r})

		// tab to tree, down to Section 1, expand it, down to cat.1, open.
		m = press(t, m, keyTab, keyDown, keyEnter, keyDown, keyEnter)

		assert.Equal(t, []string{"cat.1"}, r.calls)
		assert.Contains(t, m.Document(), "concatenate files")
	})

	t.Run("selecting a section toggles instead of loading", func(t *testing.T) {
		t.Parallel()

		r := &fakeRenderer{}
		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: r})

		m = press(t, m, keyTab, keyDown, keyEnter)
		assert.Empty(t, r.calls)
		require.Len(t, m.tree.rows(), 5)

		m = press(t, m, keyEnter)
		assert.Len(t, m.tree.rows(), 3)
	})

	t.Run("renderer failure becomes the document body", func(t *testing.T) {
		t.Parallel()

		m := newTestModel(t, Options{
			Catalog:  testCatalog(),
			Renderer: &fakeRenderer{},
			Filter:   "lsblk",
		})

		m = press(t, m, keyTab, keyDown, keyEnter, keyDown, keyEnter)

		assert.Equal(t, "Error loading man page: exit status 16", m.Document())
		// Tree and filter state survive the failure.
		assert.Equal(t, "lsblk", m.filterInput.Value())
		assert.Equal(t, []string{"lsblk.8"}, visibleLabels(m.tree))
	})
}

func TestModelHighlightSearch(t *testing.T) {
	t.Parallel()

	loaded := func(t *testing.T) Model {
		t.Helper()
		r := &fakeRenderer{pages: map[string]string{
			"cat.1": "foo bar foo baz foo",
		}}
		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: r})
		return press(t, m, keyTab, keyDown, keyEnter, keyDown, keyEnter)
	}

	t.Run("enter searches and focuses the document", func(t *testing.T) {
		t.Parallel()

		m := loaded(t)
		m = press(t, m, keyCtrlF)
		m = press(t, m, runes("foo")...)
		m = press(t, m, keyEnter)

		assert.Equal(t, PaneDocument, m.Focus())
		assert.Equal(t, "1 of 3", m.MatchStatus())
	})

	t.Run("n and N cycle through matches with wrap-around", func(t *testing.T) {
		t.Parallel()

		m := loaded(t)
		m = press(t, m, keyCtrlF)
		m = press(t, m, runes("foo")...)
		m = press(t, m, keyEnter)

		m = press(t, m, runes("n")...)
		assert.Equal(t, "2 of 3", m.MatchStatus())
		m = press(t, m, runes("nn")...)
		assert.Equal(t, "1 of 3", m.MatchStatus())
		m = press(t, m, runes("N")...)
		assert.Equal(t, "3 of 3", m.MatchStatus())
	})

	t.Run("loading another page clears the search", func(t *testing.T) {
		t.Parallel()

		r := &fakeRenderer{pages: map[string]string{
			"cat.1": "foo bar foo baz foo",
			"ls.1":  "list directory contents",
		}}
		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: r})
		m = press(t, m, keyTab, keyDown, keyEnter, keyDown, keyEnter)
		m = press(t, m, keyCtrlF)
		m = press(t, m, runes("foo")...)
		m = press(t, m, keyEnter)
		require.Equal(t, "1 of 3", m.MatchStatus())

		// Back to the tree, open ls.1.
		m = press(t, m, keyShiftTab, keyDown, keyEnter)

		assert.Equal(t, "", m.MatchStatus())
		assert.Equal(t, "", m.searchInput.Value())
		assert.Contains(t, m.Document(), "directory contents")
	})

	t.Run("escape cancels without searching", func(t *testing.T) {
		t.Parallel()

		m := loaded(t)
		m = press(t, m, keyCtrlF)
		m = press(t, m, runes("foo")...)
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})

		assert.Equal(t, PaneDocument, m.Focus())
		assert.Equal(t, "", m.MatchStatus())
	})
}

func TestModelRescan(t *testing.T) {
	t.Parallel()

	grown := man.Catalog{Sections: []man.Section{
		{ID: "1", Entries: []man.Entry{
			{Name: "cat", Section: "1"},
			{Name: "ls", Section: "1"},
			{Name: "mv", Section: "1"},
		}},
	}}
	s := &fakeScanner{catalog: grown}
	m := newTestModel(t, Options{
		Catalog:  testCatalog(),
		Scanner:  s,
		Renderer: &fakeRenderer{},
		Filter:   "mv",
	})
	require.Empty(t, visibleLabels(m.tree))

	m = press(t, m, keyTab)
	m = press(t, m, runes("r")...)

	assert.Equal(t, 1, s.scans)
	// The fresh catalog is filtered by the still-active query.
	assert.Equal(t, []string{"mv.1"}, visibleLabels(m.tree))
}

func TestModelQuit(t *testing.T) {
	t.Parallel()

	t.Run("q quits from the tree pane", func(t *testing.T) {
		t.Parallel()

		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: &fakeRenderer{}})
		m = press(t, m, keyTab)

		updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
		assert.Equal(t, "", updated.(Model).View())
	})

	t.Run("q types into a focused input", func(t *testing.T) {
		t.Parallel()

		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: &fakeRenderer{}})

		m = press(t, m, runes("q")...)
		assert.Equal(t, "q", m.filterInput.Value())
	})

	t.Run("ctrl+c quits from anywhere", func(t *testing.T) {
		t.Parallel()

		m := newTestModel(t, Options{Catalog: testCatalog(), Renderer: &fakeRenderer{}})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}
