package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atvouzx/dapur/internal/recipes"
)

// gridState is the cursor and scroll position of one recipe grid.
type gridState struct {
	selected int
	offset   int // first visible row
}

// gridColumns returns how many cards fit side by side at width.
func gridColumns(width int) int {
	switch {
	case width < GridTwoColumnWidth:
		return 1
	case width < GridThreeColumnWidth:
		return 2
	default:
		return 3
	}
}

// visibleRange returns the half-open index range of cards with at least one
// line inside a window of height rows, scrolled down by offset grid rows.
func visibleRange(total, cols, offset, height int) (start, end int) {
	if total <= 0 || cols <= 0 {
		return 0, 0
	}
	rows := max((height+cardHeight-1)/cardHeight, 1)
	start = min(max(offset, 0)*cols, total)
	end = min((max(offset, 0)+rows)*cols, total)
	return start, end
}

// activeGrid returns the cursor state of the grid on screen.
func (m *Model) activeGrid() *gridState {
	if m.currentView == ViewFavorites {
		return &m.favGrid
	}
	return &m.browse
}

// gridItems returns the cards of the current view, or nil when the view is
// not a grid.
func (m Model) gridItems() []recipes.Recipe {
	switch m.currentView {
	case ViewBrowse:
		return m.snapshot.Recipes
	case ViewFavorites:
		return favoriteRecipes(m.snapshot.Favorites)
	default:
		return nil
	}
}

// gridKey identifies the set of cards on screen.
func (m Model) gridKey() string {
	items := m.gridItems()
	if items == nil {
		return ""
	}
	ids := make([]string, len(items))
	for i, r := range items {
		ids[i] = r.ID
	}
	return strconv.Itoa(int(m.currentView)) + ":" + strings.Join(ids, ",")
}

// gridHeight is the number of rows available to cards.
func (m Model) gridHeight() int {
	h := m.contentHeight()
	switch m.currentView {
	case ViewBrowse:
		h -= m.browseHeaderHeight()
	case ViewFavorites:
		h -= 2
	}
	return max(h, 1)
}

// clampSelection keeps both grid cursors inside their item lists.
func (m *Model) clampSelection() {
	clamp := func(g *gridState, n int) {
		if g.selected >= n {
			g.selected = n - 1
		}
		if g.selected < 0 {
			g.selected = 0
		}
	}
	clamp(&m.browse, len(m.snapshot.Recipes))
	clamp(&m.favGrid, len(m.snapshot.Favorites))
}

// ensureSelectionVisible scrolls the active grid so the selected card is
// fully on screen.
func (m *Model) ensureSelectionVisible() {
	if m.currentView != ViewBrowse && m.currentView != ViewFavorites {
		return
	}
	g := m.activeGrid()
	cols := gridColumns(m.width)
	fullRows := max(m.gridHeight()/cardHeight, 1)
	row := g.selected / cols
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+fullRows {
		g.offset = row - fullRows + 1
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// observeGrid schedules reveals for the cards currently in view.
func (m *Model) observeGrid() tea.Cmd {
	if !m.ready {
		return nil
	}
	items := m.gridItems()
	if len(items) == 0 {
		return nil
	}
	g := m.activeGrid()
	start, end := visibleRange(len(items), gridColumns(m.width), g.offset, m.gridHeight())
	visible := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		visible = append(visible, i)
	}
	return tea.Batch(m.reveal.observe(visible)...)
}

// handleGridKey processes keys shared by the recipe and favorites grids.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.currentView == ViewBrowse {
		if next, cmd, ok := m.handleBrowseKey(msg); ok {
			return next, cmd
		}
	}

	items := m.gridItems()
	if len(items) == 0 {
		return m, nil
	}
	g := m.activeGrid()
	cols := gridColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.Up):
		if g.selected-cols >= 0 {
			g.selected -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if g.selected+cols < len(items) {
			g.selected += cols
		}
	case key.Matches(msg, m.keys.Left):
		if g.selected > 0 {
			g.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if g.selected < len(items)-1 {
			g.selected++
		}
	case key.Matches(msg, m.keys.Top):
		g.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		g.selected = len(items) - 1
	case key.Matches(msg, m.keys.Open):
		return m.openDetail(items[g.selected])
	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.toggleFavoriteCmd(items[g.selected].ID)
	case key.Matches(msg, m.keys.Share):
		return m, m.shareCmd(items[g.selected].ID)
	default:
		return m, nil
	}

	m.ensureSelectionVisible()
	cmd := m.observeGrid()
	return m, cmd
}

// renderGrid renders the visible rows of cards.
func (m Model) renderGrid(items []recipes.Recipe, g gridState, width, height int) string {
	cols := gridColumns(width)
	cardWidth := max((width-(cols-1)*cardGap)/cols, 8)
	start, end := visibleRange(len(items), cols, g.offset, height)
	favs := m.snapshot.FavoriteIDs()
	gap := strings.Repeat(" ", cardGap)

	var rows []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cards []string
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			if len(cards) > 0 {
				cards = append(cards, gap)
			}
			r := items[i]
			cards = append(cards, m.renderCard(r, i, cardWidth, i == g.selected, favs[r.ID]))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return clipLines(strings.Join(rows, "\n"), height)
}

// renderCard renders one recipe card. Cards that have not been revealed
// yet render as an empty placeholder of the same size.
func (m Model) renderCard(r recipes.Recipe, index, width int, selected, favorite bool) string {
	styles := m.theme.Styles()
	inner := max(width-4, 1)
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(width-2, 3)).
		Height(cardHeight - 2)

	if !m.reveal.isRevealed(index) {
		return frame.
			BorderForeground(lipgloss.Color(m.theme.Faint)).
			Render(styles.FaintText.Render(strings.Repeat("·", min(inner, 3))))
	}

	borderColor := m.theme.Border
	nameStyle := styles.Text.Bold(true)
	if selected {
		borderColor = m.theme.BorderFocus
		nameStyle = styles.AccentText.Bold(true)
	}

	lines := []string{
		m.cardChips(r, inner),
		nameStyle.Render(truncate(orDash(r.Name), inner)),
		styles.MutedText.Render(truncate(cardMeta(r), inner)),
		styles.FaintText.Render(truncate(cardImage(r), inner)),
		m.cardFooter(r, favorite),
	}
	return frame.
		BorderForeground(lipgloss.Color(borderColor)).
		Render(strings.Join(lines, "\n"))
}

// cardChips renders the category chip and, when the recipe has been rated,
// the rating badge.
func (m Model) cardChips(r recipes.Recipe, width int) string {
	styles := m.theme.Styles()
	var parts []string
	if r.Category != "" {
		parts = append(parts, styles.ChipStyle(r.Category).Render(label(r.Category)))
	}
	if r.AverageRating > 0 {
		parts = append(parts, styles.WarningText.Render("★ "+formatRating(r.AverageRating)))
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > width {
		plain := label(r.Category)
		if r.AverageRating > 0 {
			plain += " ★ " + formatRating(r.AverageRating)
		}
		return styles.MutedText.Render(truncate(plain, width))
	}
	return line
}

func (m Model) cardFooter(r recipes.Recipe, favorite bool) string {
	styles := m.theme.Styles()
	marker := styles.FaintText.Render("♡")
	if favorite {
		marker = styles.DangerText.Render("♥ Favorit")
	}
	if m.isCopied(r.ID) {
		marker += " " + styles.SuccessText.Render("Tersalin")
	}
	return marker
}

func cardMeta(r recipes.Recipe) string {
	var parts []string
	if p := strings.TrimSpace(r.PrepTime); p != "" {
		if _, err := strconv.Atoi(p); err == nil {
			p += " menit"
		}
		parts = append(parts, p)
	}
	if d := label(r.Difficulty); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, " · ")
}

func cardImage(r recipes.Recipe) string {
	if r.ImageURL == "" {
		return "(tanpa gambar)"
	}
	return r.ImageURL
}
