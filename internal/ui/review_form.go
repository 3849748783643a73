package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atvouzx/dapur/internal/recipes"
)

const (
	fieldRating = iota
	fieldComment
	fieldCount
)

// reviewForm is the create/edit review dialog of the detail view.
type reviewForm struct {
	active  bool
	editing string // review id when updating an existing review
	focus   int
	rating  textinput.Model
	comment textinput.Model
	err     string
	saving  bool
}

type reviewSavedMsg struct {
	recipeID string
	review   recipes.Review
	err      error
}

type reviewDeletedMsg struct {
	recipeID string
	err      error
}

func newReviewForm() reviewForm {
	rating := textinput.New()
	rating.Prompt = "Rating (1-5): "
	rating.Placeholder = "5"
	rating.CharLimit = 1

	comment := textinput.New()
	comment.Prompt = "Komentar: "
	comment.Placeholder = "Tulis pendapatmu..."
	comment.CharLimit = 1000

	return reviewForm{rating: rating, comment: comment}
}

// openReviewForm opens the form, pre-filled with the user's own review when
// one exists.
func (m Model) openReviewForm() (tea.Model, tea.Cmd) {
	if m.detail.recipeID == "" {
		return m, nil
	}
	form := newReviewForm()
	form.active = true
	if own, ok := m.ownReview(); ok {
		form.editing = own.ID
		form.rating.SetValue(strconv.Itoa(own.Rating))
		form.comment.SetValue(own.Comment)
	}
	cmd := form.rating.Focus()
	m.form = form
	return m, cmd
}

func (f *reviewForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	f.rating.Blur()
	f.comment.Blur()
	if f.focus == fieldRating {
		return f.rating.Focus()
	}
	return f.comment.Focus()
}

// handleReviewFormKey processes keys while the review form is open.
func (m Model) handleReviewFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.saving {
		return m, nil
	}
	switch {
	case msg.String() == "esc":
		m.form = newReviewForm()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		dir := 1
		if msg.String() == "shift+tab" {
			dir = -1
		}
		cmd := m.form.setFocus(m.form.focus + dir)
		return m, cmd
	case key.Matches(msg, m.keys.Confirm):
		return m.submitReview()
	}

	var cmd tea.Cmd
	if m.form.focus == fieldRating {
		m.form.rating, cmd = m.form.rating.Update(msg)
	} else {
		m.form.comment, cmd = m.form.comment.Update(msg)
	}
	m.form.err = ""
	return m, cmd
}

// submitReview checks the rating is a number and sends the review. Range
// checks are left to the review service.
func (m Model) submitReview() (tea.Model, tea.Cmd) {
	rating, err := strconv.Atoi(strings.TrimSpace(m.form.rating.Value()))
	if err != nil {
		m.form.err = "Rating harus berupa angka 1-5"
		return m, nil
	}
	in := recipes.ReviewInput{
		UserIdentifier: m.user,
		Rating:         rating,
		Comment:        strings.TrimSpace(m.form.comment.Value()),
	}
	m.form.saving = true
	m.form.err = ""
	return m, m.saveReviewCmd(m.detail.recipeID, m.form.editing, in)
}

func (m Model) saveReviewCmd(recipeID, reviewID string, in recipes.ReviewInput) tea.Cmd {
	if m.reviews == nil {
		return nil
	}
	svc := m.reviews
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		var (
			review recipes.Review
			err    error
		)
		if reviewID != "" {
			review, err = svc.UpdateReview(ctx, reviewID, in)
		} else {
			review, err = svc.CreateReview(ctx, recipeID, in)
		}
		return reviewSavedMsg{recipeID: recipeID, review: review, err: err}
	}
}

func (m Model) deleteReviewCmd(recipeID, reviewID string) tea.Cmd {
	if m.reviews == nil {
		return nil
	}
	svc := m.reviews
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		return reviewDeletedMsg{recipeID: recipeID, err: svc.DeleteReview(ctx, reviewID)}
	}
}

func (m Model) handleReviewSaved(msg reviewSavedMsg) (tea.Model, tea.Cmd) {
	m.form.saving = false
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("recipe_id", msg.recipeID).Warn("save review failed")
		m.form.err = reviewErrorText(msg.err)
		m.setError("Gagal menyimpan ulasan")
		return m, nil
	}
	m.form = newReviewForm()
	m.setStatus("Ulasan disimpan")
	return m.reloadDetail(msg.recipeID)
}

func (m Model) handleReviewDeleted(msg reviewDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("recipe_id", msg.recipeID).Warn("delete review failed")
		m.setError("Gagal menghapus ulasan: " + msg.err.Error())
		return m, nil
	}
	m.setStatus("Ulasan dihapus")
	return m.reloadDetail(msg.recipeID)
}

// reloadDetail refetches a recipe whose rating may have changed.
func (m Model) reloadDetail(recipeID string) (tea.Model, tea.Cmd) {
	m.detailCache.Remove(recipeID)
	if recipeID != m.detail.recipeID {
		cmd := m.refreshCmd()
		return m, cmd
	}
	m.detail.loading = true
	m.detail.reviewsLoaded = false
	refresh := m.refreshCmd()
	return m, tea.Batch(m.loadDetailCmd(recipeID), m.loadReviewsCmd(recipeID), refresh)
}

// reviewErrorText strips the sentinel prefix from validation errors.
func reviewErrorText(err error) string {
	if errors.Is(err, recipes.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), recipes.ErrInvalidInput.Error()+": ")
	}
	return err.Error()
}

// renderReviewForm renders the review dialog over the detail view.
func (m Model) renderReviewForm() string {
	styles := m.theme.Styles()
	title := "Tulis Ulasan"
	if m.form.editing != "" {
		title = "Ubah Ulasan"
	}

	lines := []string{
		styles.MutedText.Render(truncate(m.detail.recipe.Name, 48)),
		"",
		m.form.rating.View(),
		m.form.comment.View(),
		"",
	}
	switch {
	case m.form.saving:
		lines = append(lines, styles.MutedText.Render("Menyimpan..."))
	case m.form.err != "":
		lines = append(lines, styles.DangerText.Render(m.form.err))
	default:
		lines = append(lines, styles.FaintText.Render("tab pindah kolom • enter simpan • esc batal"))
	}

	width := min(max(m.width-4, 20), 64)
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(width).
		Render(styles.AccentText.Bold(true).Render(title) + "\n\n" + strings.Join(lines, "\n"))

	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, modal)
}

