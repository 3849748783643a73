package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atvouzx/dapur/internal/recipes"
)

const (
	emptyBrowseMessage = "Resep tidak ditemukan. Coba kata kunci lain."
	loadingMessage     = "Memuat resep..."
)

var (
	difficultyCycle = []string{"", recipes.DifficultyEasy, recipes.DifficultyMedium, recipes.DifficultyHard}
	categoryCycle   = []string{"", recipes.CategoryFood, recipes.CategoryDrink}
)

// query returns the list parameters the grid is showing.
func (m Model) query() recipes.ListParams {
	if m.store == nil {
		return recipes.ListParams{}
	}
	return m.store.Query()
}

// applyQuery stores new list parameters, moves the cursor home and fetches
// the new page right away.
func (m Model) applyQuery(q recipes.ListParams) (tea.Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	m.store.SetQuery(q)
	m.browse = gridState{}
	m.setStatus(loadingMessage)
	cmd := m.refreshCmd()
	return m, cmd
}

// handleBrowseKey handles the list controls of the recipe grid. ok is false
// when the key is not a list control.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	q := m.query()
	switch {
	case key.Matches(msg, m.keys.Search):
		next, cmd := m.startSearch()
		return next, cmd, true

	case key.Matches(msg, m.keys.CycleDifficulty):
		q.Difficulty = nextValue(difficultyCycle, q.Difficulty)
		q.Page = 1

	case key.Matches(msg, m.keys.CycleCategory):
		q.Category = nextValue(categoryCycle, q.Category)
		q.Page = 1

	case key.Matches(msg, m.keys.ToggleOrder):
		if q.Order == recipes.OrderAsc {
			q.Order = recipes.OrderDesc
		} else {
			q.Order = recipes.OrderAsc
		}
		q.Page = 1

	case key.Matches(msg, m.keys.PrevPage):
		if q.Page <= 1 {
			return m, nil, true
		}
		q.Page--

	case key.Matches(msg, m.keys.NextPage):
		page := max(q.Page, 1)
		if page >= m.snapshot.Pagination.TotalPages {
			return m, nil, true
		}
		q.Page = page + 1

	case key.Matches(msg, m.keys.ToggleHeader):
		m.prefs.HideHeader = !m.prefs.HideHeader
		m.savePrefs()
		m.ensureSelectionVisible()
		cmd := m.observeGrid()
		return m, cmd, true

	default:
		return m, nil, false
	}

	next, cmd := m.applyQuery(q)
	return next, cmd, true
}

// nextValue returns the entry after current in cycle, wrapping around.
func nextValue(cycle []string, current string) string {
	for i, v := range cycle {
		if v == current {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func filterLabel(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return label(value)
}

func orderLabel(order string) string {
	if order == recipes.OrderAsc {
		return "Terlama"
	}
	return "Terbaru"
}

// browseHeaderHeight is the number of rows above the cards.
func (m Model) browseHeaderHeight() int {
	h := 2 // filter line and a blank line
	if !m.prefs.HideHeader {
		h += 2
	}
	return h
}

// renderBrowse renders the recipe grid view.
func (m Model) renderBrowse() string {
	var b strings.Builder
	if !m.prefs.HideHeader {
		b.WriteString(m.renderHero(m.width))
	}
	if m.search.active {
		b.WriteString(m.search.input.View())
	} else {
		b.WriteString(m.renderFilterLine())
	}
	b.WriteString("\n\n")

	height := m.gridHeight()
	switch {
	case !m.snapshot.HasData && m.snapshot.LastError != nil:
		b.WriteString(m.renderPlaceholder("Gagal memuat resep: "+m.snapshot.LastError.Error(), height))
	case !m.snapshot.HasData:
		b.WriteString(m.renderPlaceholder(loadingMessage, height))
	case len(m.snapshot.Recipes) == 0:
		b.WriteString(m.renderPlaceholder(emptyBrowseMessage, height))
	default:
		b.WriteString(m.renderGrid(m.snapshot.Recipes, m.browse, m.width, height))
	}
	return clipLines(b.String(), m.contentHeight())
}

// renderFilterLine summarises the active query and page.
func (m Model) renderFilterLine() string {
	styles := m.theme.Styles()
	q := m.query()
	field := func(name, value string) string {
		return styles.FaintText.Render(name+":") + " " + styles.Text.Render(value)
	}

	search := "-"
	if q.Search != "" {
		search = "\"" + truncate(q.Search, 24) + "\""
	}
	p := m.snapshot.Pagination
	page := fmt.Sprintf("%d/%d", max(p.Page, 1), max(p.TotalPages, 1))

	parts := []string{
		field("Kategori", filterLabel(q.Category, "Semua")),
		field("Kesulitan", filterLabel(q.Difficulty, "Semua")),
		field("Urutan", orderLabel(q.Order)),
		field("Cari", search),
		field("Halaman", page),
	}
	return " " + strings.Join(parts, "  ")
}

// renderPlaceholder centers a message in the card area.
func (m Model) renderPlaceholder(msg string, height int) string {
	styles := m.theme.Styles()
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		styles.MutedText.Render(truncate(msg, max(m.width-4, 10))))
}
