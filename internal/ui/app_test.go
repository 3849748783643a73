package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atvouzx/dapur/internal/api"
	"github.com/atvouzx/dapur/internal/apitest"
	"github.com/atvouzx/dapur/internal/config"
	"github.com/atvouzx/dapur/internal/logging"
	"github.com/atvouzx/dapur/internal/prefs"
	"github.com/atvouzx/dapur/internal/recipes"
	"github.com/atvouzx/dapur/internal/state"
)

const testPageSize = 4

type harness struct {
	srv       *apitest.Server
	store     *state.Store
	cfg       *config.Config
	prefsPath string
	copied    []string
	clipErr   error
}

// newHarness wires a Model to an in-memory API holding the seed recipes and
// loads the first page. The terminal is 120 columns wide (three card columns).
func newHarness(t *testing.T, user string) (*harness, Model) {
	t.Helper()
	srv, ts := apitest.Start(t, apitest.SeedRecipes()...)
	client, err := api.NewClient(ts.URL)
	require.NoError(t, err)

	recipeSvc := recipes.NewRecipeService(client)
	favoriteSvc := recipes.NewFavoriteService(client)

	cfg := config.Default()
	cfg.LogDir = t.TempDir()
	cfg.ShareBaseURL = "https://resep.example/"

	h := &harness{
		srv:       srv,
		store:     &state.Store{},
		cfg:       &cfg,
		prefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	h.store.SetQuery(recipes.ListParams{Page: 1, Limit: testPageSize})

	refresh := func(ctx context.Context) error {
		list, err := recipeSvc.ListRecipes(ctx, h.store.Query())
		if err != nil {
			h.store.Update(nil, nil, err)
			return err
		}
		var favs []recipes.Favorite
		if user != "" {
			if favs, err = favoriteSvc.ListFavorites(ctx, user); err != nil {
				h.store.Update(nil, nil, err)
				return err
			}
		}
		h.store.Update(&list, favs, nil)
		return nil
	}
	require.NoError(t, refresh(context.Background()))

	m := New(Options{
		Store:     h.store,
		Recipes:   recipeSvc,
		Favorites: favoriteSvc,
		Reviews:   recipes.NewReviewService(client),
		Refresh:   refresh,
		Config:    h.cfg,
		User:      user,
		Prefs:     prefs.Prefs{Theme: "Nightfox"},
		PrefsPath: h.prefsPath,
		Log:       logging.Discard(),
		Clipboard: func(s string) error {
			if h.clipErr != nil {
				return h.clipErr
			}
			h.copied = append(h.copied, s)
			return nil
		},
	})
	m = update(t, m, snapshotMsg(h.store.Snapshot()))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return h, m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(keyMsg(s))
	return next.(Model), cmd
}

// sync delivers the store's current snapshot, as the UI tick would.
func (h *harness) sync(t *testing.T, m Model) Model {
	t.Helper()
	return update(t, m, snapshotMsg(h.store.Snapshot()))
}

func (h *harness) count(method, path string) int {
	n := 0
	for _, r := range h.srv.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func TestNew_Defaults(t *testing.T) {
	m := New(Options{Prefs: prefs.Prefs{Theme: "Slate", UserIdentifier: "from-prefs"}})
	assert.Equal(t, "Slate", m.theme.Name)
	assert.Equal(t, "from-prefs", m.user)
	assert.Equal(t, ViewBrowse, m.currentView)
	assert.Equal(t, "Memuat...", m.View())

	m = New(Options{User: " flag-user ", Prefs: prefs.Prefs{UserIdentifier: "from-prefs"}})
	assert.Equal(t, "flag-user", m.user)
	assert.Equal(t, "Nightfox", m.theme.Name)
}

func TestBrowse_RendersFirstPage(t *testing.T) {
	_, m := newHarness(t, "")
	require.Len(t, m.snapshot.Recipes, testPageSize)
	assert.Equal(t, 2, m.snapshot.Pagination.TotalPages)

	view := m.View()
	assert.Contains(t, view, heroTitle)
	assert.Contains(t, view, "Halaman: 1/2")
	assert.Contains(t, view, "ONLINE")
}

func TestBrowse_EmptyAndOfflineStates(t *testing.T) {
	h, m := newHarness(t, "")

	h.store.Update(&recipes.RecipeList{Pagination: recipes.Pagination{Page: 1}}, nil, nil)
	m = h.sync(t, m)
	assert.Contains(t, m.View(), emptyBrowseMessage)

	h.store.Update(nil, nil, errors.New("dial tcp: connection refused"))
	h.store.Update(nil, nil, errors.New("dial tcp: connection refused"))
	m = h.sync(t, m)
	assert.Contains(t, m.View(), "OFFLINE")
}

func TestGrid_KeyboardNavigation(t *testing.T) {
	_, m := newHarness(t, "")
	require.Equal(t, 3, gridColumns(m.width))

	steps := []struct {
		key  string
		want int
	}{
		{"j", 3},
		{"j", 3}, // no card below
		{"l", 3}, // last card
		{"h", 2},
		{"k", 2}, // no row above
		{"g", 0},
		{"G", 3},
	}
	for _, s := range steps {
		m, _ = press(t, m, s.key)
		if m.browse.selected != s.want {
			t.Fatalf("after %q selected = %d, want %d", s.key, m.browse.selected, s.want)
		}
	}
}

func TestGrid_WindowSizeSchedulesReveals(t *testing.T) {
	_, m := newHarness(t, "")

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	m = next.(Model)
	assert.Equal(t, 1, gridColumns(m.width))
	assert.Nil(t, cmd, "cards already scheduled must not be scheduled again")

	m = update(t, m, revealMsg{generation: m.reveal.generation, index: 0})
	assert.True(t, m.reveal.isRevealed(0))
	assert.Contains(t, m.View(), m.snapshot.Recipes[0].Name)

	m = update(t, m, revealMsg{generation: m.reveal.generation - 1, index: 1})
	assert.False(t, m.reveal.isRevealed(1))
}

func TestSearch_AppliesFromPageOne(t *testing.T) {
	h, m := newHarness(t, "")
	h.store.SetQuery(recipes.ListParams{Page: 2, Limit: testPageSize})

	m, _ = press(t, m, "/")
	require.True(t, m.search.active)
	m, _ = press(t, m, "q") // typed into the prompt, does not quit
	m, _ = press(t, m, "rendang")
	assert.Equal(t, "qrendang", m.search.input.Value())

	m.search.input.SetValue("rendang")
	m, cmd := press(t, m, "enter")
	assert.False(t, m.search.active)
	q := h.store.Query()
	assert.Equal(t, "rendang", q.Search)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, loadingMessage, m.status)

	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, refreshedMsg{}, msg)
	m = update(t, m, msg)
	assert.Empty(t, m.status)

	m = h.sync(t, m)
	require.Len(t, m.snapshot.Recipes, 1)
	assert.Equal(t, "Rendang Daging", m.snapshot.Recipes[0].Name)

	// esc drops the search term.
	m, cmd = press(t, m, "esc")
	assert.Empty(t, h.store.Query().Search)
	assert.NotNil(t, cmd)
}

func TestSearch_EscKeepsCurrentQuery(t *testing.T) {
	h, m := newHarness(t, "")
	m, _ = press(t, m, "/")
	m, _ = press(t, m, "soto")
	m, cmd := press(t, m, "esc")
	assert.False(t, m.search.active)
	assert.Nil(t, cmd)
	assert.Empty(t, h.store.Query().Search)
}

func TestBrowse_FilterCyclesResetPage(t *testing.T) {
	h, m := newHarness(t, "")
	h.store.SetQuery(recipes.ListParams{Page: 2, Limit: testPageSize})

	m, _ = press(t, m, "f")
	assert.Equal(t, recipes.DifficultyEasy, h.store.Query().Difficulty)
	assert.Equal(t, 1, h.store.Query().Page)

	m, _ = press(t, m, "f")
	assert.Equal(t, recipes.DifficultyMedium, h.store.Query().Difficulty)

	m, _ = press(t, m, "c")
	assert.Equal(t, recipes.CategoryFood, h.store.Query().Category)
	m, _ = press(t, m, "c")
	m, _ = press(t, m, "c")
	assert.Empty(t, h.store.Query().Category)

	m, _ = press(t, m, "o")
	assert.Equal(t, recipes.OrderAsc, h.store.Query().Order)
	_, _ = press(t, m, "o")
	assert.Equal(t, recipes.OrderDesc, h.store.Query().Order)
}

func TestBrowse_Paging(t *testing.T) {
	h, m := newHarness(t, "")

	m, cmd := press(t, m, "[")
	assert.Nil(t, cmd)
	assert.Equal(t, 1, h.store.Query().Page)

	m, cmd = press(t, m, "]")
	require.NotNil(t, cmd)
	assert.Equal(t, 2, h.store.Query().Page)
	m = update(t, m, cmd())
	m = h.sync(t, m)
	assert.Len(t, m.snapshot.Recipes, 2)

	_, cmd = press(t, m, "]")
	assert.Nil(t, cmd, "already on the last page")
	assert.Equal(t, 2, h.store.Query().Page)
}

func TestFavorites_ToggleUpdatesStore(t *testing.T) {
	h, m := newHarness(t, "tester")
	id := m.snapshot.Recipes[0].ID

	m, cmd := press(t, m, "space")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, "Resep ditambahkan ke favorit", m.status)
	assert.True(t, m.snapshot.IsFavorite(id))
	assert.True(t, h.store.Snapshot().IsFavorite(id))

	m, _ = press(t, m, "2")
	require.Equal(t, ViewFavorites, m.currentView)
	require.Len(t, m.gridItems(), 1)
	assert.Equal(t, id, m.gridItems()[0].ID)

	m, cmd = press(t, m, "space")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, "Resep dihapus dari favorit", m.status)
	assert.Empty(t, m.gridItems())
	assert.Contains(t, m.View(), "Belum ada resep favorit")
}

func TestFavorites_ToggleWithoutUserFailsLocally(t *testing.T) {
	h, m := newHarness(t, "")

	_, cmd := press(t, m, "space")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.status, "user_identifier")
	assert.Zero(t, h.count("POST", "/api/v1/favorites/toggle"))
}

func TestShare_CopiesLinkAndShowsBadge(t *testing.T) {
	h, m := newHarness(t, "")
	id := m.snapshot.Recipes[0].ID
	link := "https://resep.example/?recipe=" + id

	m, cmd := press(t, m, "y")
	require.NotNil(t, cmd)
	next, expire := m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, []string{link}, h.copied)
	assert.True(t, m.isCopied(id))
	assert.Contains(t, m.status, link)
	assert.NotNil(t, expire)

	m = update(t, m, copiedExpiredMsg{recipeID: id, seq: m.copied[id]})
	assert.False(t, m.isCopied(id))
}

func TestShare_BadgesExpireIndependently(t *testing.T) {
	_, m := newHarness(t, "")
	first := m.snapshot.Recipes[0].ID
	second := m.snapshot.Recipes[1].ID

	m = update(t, m, sharedMsg{recipeID: first, link: "a"})
	firstSeq := m.copied[first]
	m = update(t, m, sharedMsg{recipeID: second, link: "b"})
	assert.True(t, m.isCopied(first))
	assert.True(t, m.isCopied(second))

	// The first copy's timer only clears the first badge.
	m = update(t, m, copiedExpiredMsg{recipeID: first, seq: firstSeq})
	assert.False(t, m.isCopied(first))
	assert.True(t, m.isCopied(second))

	// Copying again restarts the timer; the older tick is ignored.
	m = update(t, m, sharedMsg{recipeID: second, link: "b"})
	m = update(t, m, copiedExpiredMsg{recipeID: second, seq: m.copied[second] - 1})
	assert.True(t, m.isCopied(second))
	m = update(t, m, copiedExpiredMsg{recipeID: second, seq: m.copied[second]})
	assert.False(t, m.isCopied(second))
}

func TestShare_ClipboardFailureShowsLink(t *testing.T) {
	h, m := newHarness(t, "")
	h.clipErr = errors.New("no clipboard utility")
	id := m.snapshot.Recipes[0].ID

	m, cmd := press(t, m, "y")
	m = update(t, m, cmd())
	assert.Empty(t, m.copied)
	assert.Equal(t, "Tautan resep: https://resep.example/?recipe="+id, m.status)
	assert.False(t, m.statusIsError)
}

func openDetail(t *testing.T, m Model, id string) Model {
	t.Helper()
	next, _ := m.openDetail(recipes.Recipe{ID: id})
	return next.(Model)
}

func TestDetail_LoadsAndCaches(t *testing.T) {
	h, m := newHarness(t, "")

	m = openDetail(t, m, "1")
	require.Equal(t, ViewDetail, m.currentView)
	assert.True(t, m.detail.loading)

	m = update(t, m, m.loadDetailCmd("1")())
	m = update(t, m, m.loadReviewsCmd("1")())
	require.True(t, m.detail.loaded)
	assert.Equal(t, "Nasi Goreng Kampung", m.detail.recipe.Name)
	assert.Len(t, m.detail.recipe.Ingredients, 3)
	assert.True(t, m.detail.reviewsLoaded)

	content := m.renderDetailContent(100)
	assert.Contains(t, content, "Bahan (3)")
	assert.Contains(t, content, "2 butir Telur")
	assert.Contains(t, content, "1. Tumis bawang hingga harum.")
	assert.Contains(t, content, "Belum ada ulasan")

	m, _ = press(t, m, "esc")
	assert.Equal(t, ViewBrowse, m.currentView)

	m = openDetail(t, m, "1")
	assert.True(t, m.detail.loaded, "second open is served from the cache")
	assert.False(t, m.detail.loading)
	assert.Equal(t, 1, h.count("GET", "/api/v1/recipes/1"))
}

func TestDetail_NotFound(t *testing.T) {
	_, m := newHarness(t, "")
	m = openDetail(t, m, "999")
	m = update(t, m, m.loadDetailCmd("999")())

	assert.False(t, m.detail.loaded)
	assert.True(t, m.statusIsError)
	assert.Equal(t, "Resep tidak ditemukan", m.status)
}

func TestDetail_IgnoresResultsForOtherRecipe(t *testing.T) {
	_, m := newHarness(t, "")
	m = openDetail(t, m, "1")
	stale := m.loadDetailCmd("2")()
	m = openDetail(t, m, "3")

	m = update(t, m, stale)
	assert.Equal(t, "3", m.detail.recipeID)
	assert.False(t, m.detail.loaded)
}

func TestReviewForm_CreateEditDelete(t *testing.T) {
	h, m := newHarness(t, "tester")
	m = openDetail(t, m, "1")
	m = update(t, m, m.loadReviewsCmd("1")())

	m, _ = press(t, m, "r")
	require.True(t, m.form.active)
	assert.Empty(t, m.form.editing)

	m.form.rating.SetValue("x")
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, "Rating harus berupa angka 1-5", m.form.err)

	m.form.rating.SetValue("9")
	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.True(t, m.form.active)
	assert.Contains(t, m.form.err, "rating must be at most 5")
	assert.Zero(t, h.count("POST", "/api/v1/recipes/1/reviews"))

	m.form.rating.SetValue("4")
	m.form.comment.SetValue("Enak sekali")
	m, cmd = press(t, m, "enter")
	require.True(t, m.form.saving)
	m = update(t, m, cmd())
	assert.False(t, m.form.active)
	assert.Equal(t, "Ulasan disimpan", m.status)
	assert.Equal(t, 1, h.count("POST", "/api/v1/recipes/1/reviews"))

	m = update(t, m, m.loadReviewsCmd("1")())
	own, ok := m.ownReview()
	require.True(t, ok)
	assert.Equal(t, 4, own.Rating)
	assert.Contains(t, m.renderDetailContent(100), "(kamu)")

	m, _ = press(t, m, "r")
	assert.Equal(t, own.ID, m.form.editing)
	assert.Equal(t, "4", m.form.rating.Value())
	assert.Equal(t, "Enak sekali", m.form.comment.Value())
	m, _ = press(t, m, "esc")
	assert.False(t, m.form.active)
	assert.Equal(t, ViewDetail, m.currentView)

	m, cmd = press(t, m, "x")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	assert.Equal(t, "Ulasan dihapus", m.status)
	m = update(t, m, m.loadReviewsCmd("1")())
	_, ok = m.ownReview()
	assert.False(t, ok)

	_, cmd = press(t, m, "x")
	assert.Nil(t, cmd)
}

func TestReviewForm_TabSwitchesField(t *testing.T) {
	_, m := newHarness(t, "tester")
	m = openDetail(t, m, "1")
	m, _ = press(t, m, "r")
	require.Equal(t, fieldRating, m.form.focus)

	m, _ = press(t, m, "tab")
	assert.Equal(t, fieldComment, m.form.focus)
	m, _ = press(t, m, "q")
	assert.Equal(t, "q", m.form.comment.Value(), "keys go to the form while it is open")
	assert.Contains(t, m.View(), "Tulis Ulasan")
}

func TestToggleHeader_PersistsPrefs(t *testing.T) {
	h, m := newHarness(t, "")
	before := m.browseHeaderHeight()

	m, _ = press(t, m, "H")
	assert.True(t, m.prefs.HideHeader)
	assert.Equal(t, before-2, m.browseHeaderHeight())
	assert.NotContains(t, m.View(), heroTitle)

	saved, err := prefs.Load(h.prefsPath)
	require.NoError(t, err)
	assert.True(t, saved.HideHeader)
}

func TestCycleTheme_PersistsPrefs(t *testing.T) {
	h, m := newHarness(t, "")
	m, _ = press(t, m, "T")
	assert.Equal(t, "Kanagawa", m.theme.Name)

	saved, err := prefs.Load(h.prefsPath)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", saved.Theme)
}

func TestTab_CyclesViews(t *testing.T) {
	_, m := newHarness(t, "")
	want := []View{ViewFavorites, ViewProfile, ViewLogs, ViewBrowse}
	for _, v := range want {
		m, _ = press(t, m, "tab")
		require.Equal(t, v, m.currentView)
	}
}

func TestProfile_ShowsOwnerAndUser(t *testing.T) {
	_, m := newHarness(t, "tester")
	m, _ = press(t, m, "3")
	view := m.View()
	assert.Contains(t, view, "Profile Pengguna")
	assert.Contains(t, view, "Faiz Abdul Hanif")
	assert.Contains(t, view, "tester")
}

func TestHelp_OpensAndClosesOnAnyKey(t *testing.T) {
	_, m := newHarness(t, "")
	m, _ = press(t, m, "?")
	require.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, cmd := press(t, m, "q")
	assert.False(t, m.showHelp)
	assert.Nil(t, cmd, "closing help must not quit")
}

func TestLogs_ReadsAndSearchesLogFile(t *testing.T) {
	h, m := newHarness(t, "")

	require.NoError(t, os.MkdirAll(h.cfg.LogDir, 0o755))
	f, err := os.Create(h.cfg.LogPath())
	require.NoError(t, err)
	log := logging.New(f, "debug")
	log.WithField("recipe_id", "1").Warn("load recipe failed")
	log.WithField("recipes", 4).Debug("poll complete")
	require.NoError(t, f.Close())

	m, cmd := press(t, m, "4")
	require.Equal(t, ViewLogs, m.currentView)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())
	require.Len(t, m.logs.lines, 2)

	content := m.renderLogContent()
	assert.Contains(t, content, "load recipe failed")
	assert.Contains(t, content, "recipe_id=1")
	assert.Contains(t, content, "WARNING")

	m, _ = press(t, m, "/")
	require.True(t, m.logs.searchActive)
	m, _ = press(t, m, "poll")
	m, _ = press(t, m, "enter")
	assert.Equal(t, []int{1}, m.logs.searchMatches)
	assert.False(t, m.logs.follow)

	m, _ = press(t, m, "esc")
	assert.Nil(t, m.logs.searchRegex)
	assert.Equal(t, ViewLogs, m.currentView)

	m, _ = press(t, m, "space")
	assert.True(t, m.logs.follow)

	m, _ = press(t, m, "esc")
	assert.Equal(t, ViewBrowse, m.currentView)
}

func TestLogs_EmptyFile(t *testing.T) {
	h, m := newHarness(t, "")
	m, cmd := press(t, m, "4")
	m = update(t, m, cmd())
	assert.Empty(t, m.logs.lines)
	assert.True(t, strings.Contains(m.renderLogContent(), "Belum ada log di "+h.cfg.LogPath()))
}
