package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atvouzx/dapur/internal/api"
	"github.com/atvouzx/dapur/internal/recipes"
)

// detailState holds the recipe shown in the detail view.
type detailState struct {
	recipeID string
	recipe   recipes.Recipe
	loaded   bool
	loading  bool
	err      error

	reviews       []recipes.Review
	reviewsLoaded bool
	reviewsErr    error
}

type detailLoadedMsg struct {
	id     string
	recipe recipes.Recipe
	err    error
}

type reviewsLoadedMsg struct {
	recipeID string
	reviews  []recipes.Review
	err      error
}

func (m *Model) initDetailViewport() {
	m.detailViewport = viewport.New(max(m.width-4, 1), max(m.contentHeight()-2, 1))
}

// updateDetailViewport resizes the viewport and re-renders the recipe.
func (m *Model) updateDetailViewport() {
	if m.detailViewport.Width == 0 {
		m.initDetailViewport()
	}
	m.detailViewport.Width = max(m.width-4, 1)
	m.detailViewport.Height = max(m.contentHeight()-2, 1)
	m.detailViewport.SetContent(m.renderDetailContent(m.detailViewport.Width))
}

// openDetail shows r right away from the grid data, then loads the full
// record and its reviews. Records already in the cache skip the fetch.
func (m Model) openDetail(r recipes.Recipe) (tea.Model, tea.Cmd) {
	if r.ID == "" {
		return m, nil
	}
	if m.currentView != ViewDetail {
		m.returnView = m.currentView
	}
	m.currentView = ViewDetail
	m.reveal.reset()
	m.shownKey = ""

	m.detail = detailState{recipeID: r.ID, recipe: r}
	if cached, ok := m.detailCache.Get(r.ID); ok {
		m.detail.recipe = cached
		m.detail.loaded = true
	} else {
		m.detail.loading = true
	}
	m.updateDetailViewport()
	m.detailViewport.GotoTop()

	cmds := []tea.Cmd{m.loadReviewsCmd(r.ID)}
	if !m.detail.loaded {
		cmds = append(cmds, m.loadDetailCmd(r.ID))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	if m.recipes == nil {
		return nil
	}
	svc := m.recipes
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		env, err := svc.GetRecipeDetail(ctx, id)
		r := env.Data
		if r.ID == "" {
			r.ID = id
		}
		return detailLoadedMsg{id: id, recipe: r, err: err}
	}
}

func (m Model) loadReviewsCmd(recipeID string) tea.Cmd {
	if m.reviews == nil {
		return nil
	}
	svc := m.reviews
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		reviews, err := svc.ListReviews(ctx, recipeID)
		return reviewsLoadedMsg{recipeID: recipeID, reviews: reviews, err: err}
	}
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.detail.recipeID {
		return m, nil
	}
	m.detail.loading = false
	if msg.err != nil {
		m.detail.err = msg.err
		m.log.WithError(msg.err).WithField("recipe_id", msg.id).Warn("load recipe failed")
		if api.IsNotFound(msg.err) {
			m.setError("Resep tidak ditemukan")
		} else {
			m.setError("Gagal memuat resep: " + msg.err.Error())
		}
	} else {
		m.detail.err = nil
		m.detail.recipe = msg.recipe
		m.detail.loaded = true
		m.detailCache.Add(msg.id, msg.recipe)
	}
	m.updateDetailViewport()
	return m, nil
}

func (m *Model) handleReviewsLoaded(msg reviewsLoadedMsg) {
	if msg.recipeID != m.detail.recipeID {
		return
	}
	m.detail.reviewsLoaded = true
	m.detail.reviewsErr = msg.err
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("recipe_id", msg.recipeID).Warn("load reviews failed")
	} else {
		m.detail.reviews = msg.reviews
	}
	m.updateDetailViewport()
}

// ownReview returns the current user's review of the open recipe.
func (m Model) ownReview() (recipes.Review, bool) {
	for _, r := range m.detail.reviews {
		if r.UserIdentifier != "" && r.UserIdentifier == m.user {
			return r, true
		}
	}
	return recipes.Review{}, false
}

// handleDetailKey processes keys in the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFavorite):
		return m, m.toggleFavoriteCmd(m.detail.recipeID)
	case key.Matches(msg, m.keys.Share):
		return m, m.shareCmd(m.detail.recipeID)
	case key.Matches(msg, m.keys.WriteReview):
		return m.openReviewForm()
	case key.Matches(msg, m.keys.DeleteReview):
		own, ok := m.ownReview()
		if !ok {
			m.setStatus("Kamu belum menulis ulasan untuk resep ini")
			return m, nil
		}
		return m, m.deleteReviewCmd(m.detail.recipeID, own.ID)
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// renderDetail renders the detail view.
func (m Model) renderDetail() string {
	title := m.detail.recipe.Name
	if title == "" {
		title = "Resep"
	}
	return m.renderTitledBox(title, m.detailViewport.View(), m.width, m.contentHeight(), true)
}

// renderDetailContent renders the scrollable body of the detail view.
func (m Model) renderDetailContent(width int) string {
	if m.detail.recipeID == "" {
		return ""
	}
	styles := m.theme.Styles()
	r := m.detail.recipe
	wrap := lipgloss.NewStyle().Width(max(width, 10))
	section := func(title string) string {
		return "\n" + styles.AccentText.Bold(true).Render(title)
	}

	var lines []string

	var chips []string
	if r.Category != "" {
		chips = append(chips, styles.ChipStyle(r.Category).Render(label(r.Category)))
	}
	if r.Difficulty != "" {
		chips = append(chips, styles.ChipStyle(r.Difficulty).Render(label(r.Difficulty)))
	}
	if r.AverageRating > 0 {
		rating := "★ " + formatRating(r.AverageRating)
		if r.ReviewCount > 0 {
			rating += fmt.Sprintf(" (%d ulasan)", r.ReviewCount)
		}
		chips = append(chips, styles.WarningText.Render(rating))
	}
	if m.snapshot.IsFavorite(r.ID) {
		chips = append(chips, styles.DangerText.Render("♥ Favorit"))
	}
	if m.isCopied(r.ID) {
		chips = append(chips, styles.SuccessText.Render("Tersalin"))
	}
	if len(chips) > 0 {
		lines = append(lines, strings.Join(chips, " "))
	}

	if meta := cardMeta(recipes.Recipe{PrepTime: r.PrepTime}); meta != "" {
		lines = append(lines, styles.MutedText.Render("Waktu: "+meta))
	}
	lines = append(lines, styles.FaintText.Render("Gambar: "+cardImage(r)))

	if m.detail.loading {
		lines = append(lines, "", styles.MutedText.Render(loadingMessage))
	}
	if m.detail.err != nil {
		lines = append(lines, "", styles.DangerText.Render(m.detail.err.Error()))
	}

	if d := strings.TrimSpace(r.Description); d != "" {
		lines = append(lines, "", wrap.Render(styles.Text.Render(d)))
	}

	lines = append(lines, section(fmt.Sprintf("Bahan (%d)", len(r.Ingredients))))
	if len(r.Ingredients) == 0 {
		lines = append(lines, styles.FaintText.Render("  Belum ada bahan"))
	}
	for _, ing := range r.Ingredients {
		text := ing.Name
		if q := strings.TrimSpace(ing.Quantity); q != "" {
			text = q + " " + ing.Name
		}
		lines = append(lines, wrap.Render("  • "+orDash(text)))
	}

	lines = append(lines, section(fmt.Sprintf("Langkah (%d)", len(r.Steps))))
	if len(r.Steps) == 0 {
		lines = append(lines, styles.FaintText.Render("  Belum ada langkah"))
	}
	for _, s := range r.Steps {
		lines = append(lines, wrap.Render(fmt.Sprintf("  %d. %s", s.Number, orDash(s.Instruction))))
	}

	lines = append(lines, section(fmt.Sprintf("Ulasan (%d)", len(m.detail.reviews))))
	switch {
	case m.detail.reviewsErr != nil:
		lines = append(lines, styles.DangerText.Render("  Gagal memuat ulasan: "+m.detail.reviewsErr.Error()))
	case !m.detail.reviewsLoaded:
		lines = append(lines, styles.MutedText.Render("  Memuat ulasan..."))
	case len(m.detail.reviews) == 0:
		lines = append(lines, styles.FaintText.Render("  Belum ada ulasan. Tekan r untuk menulis."))
	}
	for _, rv := range m.detail.reviews {
		who := truncate(orDash(rv.UserIdentifier), 24)
		if rv.UserIdentifier == m.user && m.user != "" {
			who += " (kamu)"
		}
		lines = append(lines, "  "+styles.WarningText.Render(stars(rv.Rating))+" "+styles.MutedText.Render(who))
		if c := strings.TrimSpace(rv.Comment); c != "" {
			lines = append(lines, wrap.Render("    "+c))
		}
	}

	return strings.Join(lines, "\n")
}
