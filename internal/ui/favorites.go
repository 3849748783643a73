package ui

import (
	"context"
	"fmt"
	"maps"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atvouzx/dapur/internal/recipes"
)

const emptyFavoritesMessage = "Belum ada resep favorit. Tekan space pada kartu resep untuk menyimpannya."

type favoriteToggledMsg struct {
	recipeID string
	result   recipes.ToggleResult
	err      error
}

type sharedMsg struct {
	recipeID string
	link     string
	err      error
}

type copiedExpiredMsg struct {
	recipeID string
	seq      int
}

// favoriteRecipes returns the recipes of a favorites list, filling in the id
// and a name when the API returned only the recipe id.
func favoriteRecipes(favs []recipes.Favorite) []recipes.Recipe {
	out := make([]recipes.Recipe, 0, len(favs))
	for _, f := range favs {
		r := f.Recipe
		if r.ID == "" {
			r.ID = f.RecipeID
		}
		if strings.TrimSpace(r.Name) == "" {
			r.Name = "Resep #" + r.ID
		}
		out = append(out, r)
	}
	return out
}

// renderFavorites renders the favorites grid.
func (m Model) renderFavorites() string {
	styles := m.theme.Styles()
	items := favoriteRecipes(m.snapshot.Favorites)

	var b strings.Builder
	b.WriteString(" " + styles.AccentText.Bold(true).Render(fmt.Sprintf("Resep Favorit (%d)", len(items))))
	b.WriteString("\n\n")

	height := m.gridHeight()
	if len(items) == 0 {
		b.WriteString(m.renderPlaceholder(emptyFavoritesMessage, height))
	} else {
		b.WriteString(m.renderGrid(items, m.favGrid, m.width, height))
	}
	return clipLines(b.String(), m.contentHeight())
}

// toggleFavoriteCmd flips recipeID in the user's favorites.
func (m Model) toggleFavoriteCmd(recipeID string) tea.Cmd {
	if m.favorites == nil || recipeID == "" {
		return nil
	}
	svc := m.favorites
	in := recipes.ToggleInput{RecipeID: recipeID, UserIdentifier: m.user}
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		res, err := svc.ToggleFavorite(ctx, in)
		return favoriteToggledMsg{recipeID: recipeID, result: res, err: err}
	}
}

// handleFavoriteToggled applies a toggle result to the store so the marker
// updates before the next poll.
func (m *Model) handleFavoriteToggled(msg favoriteToggledMsg) tea.Cmd {
	if msg.err != nil {
		m.log.WithError(msg.err).WithField("recipe_id", msg.recipeID).Warn("toggle favorite failed")
		m.setError("Gagal mengubah favorit: " + msg.err.Error())
		return nil
	}

	id := msg.result.RecipeID
	if id == "" {
		id = msg.recipeID
	}
	text := msg.result.Message
	if text == "" {
		text = "Resep dihapus dari favorit"
		if msg.result.Favorited {
			text = "Resep ditambahkan ke favorit"
		}
	}
	m.setStatus(text)

	if m.store == nil {
		return nil
	}
	m.store.MarkFavorite(id, msg.result.Favorited)
	return m.applySnapshot(m.store.Snapshot())
}

// shareCmd copies the share link of recipeID to the clipboard.
func (m Model) shareCmd(recipeID string) tea.Cmd {
	if recipeID == "" {
		return nil
	}
	link := m.config.ShareLink(recipeID)
	copyText := m.copyText
	return func() tea.Msg {
		return sharedMsg{recipeID: recipeID, link: link, err: copyText(link)}
	}
}

// handleShared shows the copied badge, or the link itself when the
// clipboard is unavailable.
func (m Model) handleShared(msg sharedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.WithError(msg.err).Debug("clipboard unavailable")
		m.setStatus("Tautan resep: " + msg.link)
		return m, nil
	}

	id := msg.recipeID
	seq := m.markCopied(id)
	m.setStatus("Tautan disalin: " + msg.link)
	return m, tea.Tick(CopiedBadgeDuration, func(time.Time) tea.Msg {
		return copiedExpiredMsg{recipeID: id, seq: seq}
	})
}

// markCopied records a fresh copy of id and returns its sequence number.
// Each recipe keeps its own badge; copying it again restarts its timer.
func (m *Model) markCopied(id string) int {
	m.copiedSeq++
	next := make(map[string]int, len(m.copied)+1)
	maps.Copy(next, m.copied)
	next[id] = m.copiedSeq
	m.copied = next
	return m.copiedSeq
}

// handleCopiedExpired clears a badge unless the recipe was copied again
// after the expiring tick was scheduled.
func (m *Model) handleCopiedExpired(msg copiedExpiredMsg) {
	if seq, ok := m.copied[msg.recipeID]; !ok || seq != msg.seq {
		return
	}
	next := maps.Clone(m.copied)
	delete(next, msg.recipeID)
	m.copied = next
}

func (m Model) isCopied(id string) bool {
	_, ok := m.copied[id]
	return ok
}
