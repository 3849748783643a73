package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// searchState holds the recipe search prompt.
type searchState struct {
	active bool
	input  textinput.Model
}

func newSearchState() searchState {
	ti := textinput.New()
	ti.Prompt = " / "
	ti.Placeholder = "Cari resep..."
	ti.CharLimit = 100
	return searchState{input: ti}
}

// startSearch opens the prompt pre-filled with the current search term.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	m.search.active = true
	m.search.input.SetValue(m.query().Search)
	m.search.input.CursorEnd()
	cmd := m.search.input.Focus()
	return m, cmd
}

// handleSearchKey feeds keys to the prompt. Enter searches from page one,
// esc leaves the current search untouched.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.active = false
		m.search.input.Blur()
		q := m.query()
		q.Search = strings.TrimSpace(m.search.input.Value())
		q.Page = 1
		return m.applyQuery(q)
	case "esc":
		m.search.active = false
		m.search.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}
