package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"github.com/atvouzx/dapur/internal/config"
	"github.com/atvouzx/dapur/internal/prefs"
	"github.com/atvouzx/dapur/internal/recipes"
	"github.com/atvouzx/dapur/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewFavorites
	ViewDetail
	ViewProfile
	ViewLogs
)

// tabOrder is the cycle followed by tab. The detail view is entered from a
// card and is not part of it.
var tabOrder = []View{ViewBrowse, ViewFavorites, ViewProfile, ViewLogs}

// RecipeSource loads a single recipe.
type RecipeSource interface {
	GetRecipeDetail(ctx context.Context, id string) (recipes.Envelope[recipes.Recipe], error)
}

// FavoriteToggler flips a recipe in or out of the user's favorites.
type FavoriteToggler interface {
	ToggleFavorite(ctx context.Context, in recipes.ToggleInput) (recipes.ToggleResult, error)
}

// ReviewStore reads and writes recipe reviews.
type ReviewStore interface {
	ListReviews(ctx context.Context, recipeID string) ([]recipes.Review, error)
	CreateReview(ctx context.Context, recipeID string, in recipes.ReviewInput) (recipes.Review, error)
	UpdateReview(ctx context.Context, reviewID string, in recipes.ReviewInput) (recipes.Review, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Recipes   RecipeSource
	Favorites FavoriteToggler
	Reviews   ReviewStore
	// Refresh fetches the store's current query immediately.
	Refresh   func(context.Context) error
	Config    *config.Config
	User      string
	Prefs     prefs.Prefs
	PrefsPath string
	Log       logrus.FieldLogger
	PollTick  time.Duration
	// Clipboard copies text for the share action; nil uses the system clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	recipes   RecipeSource
	favorites FavoriteToggler
	reviews   ReviewStore
	refreshFn func(context.Context) error
	config    *config.Config
	user      string
	prefs     prefs.Prefs
	prefsPath string
	log       logrus.FieldLogger
	pollTick  time.Duration
	copyText  func(string) error
	keys      keyMap

	// UI state
	theme       Theme
	currentView View
	returnView  View // view to go back to from detail
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
	refreshing  bool

	// Grid state
	browse   gridState
	favGrid  gridState
	reveal   *revealer
	shownKey string // identity of the cards on screen

	// Search
	search searchState

	// Detail state
	detail         detailState
	detailViewport viewport.Model
	detailCache    *expirable.LRU[string, recipes.Recipe]
	form           reviewForm

	// Log state
	logs        logState
	logViewport viewport.Model

	// Status line
	status        string
	statusIsError bool

	// Share badge
	copied    map[string]int
	copiedSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	copyText := opts.Clipboard
	if copyText == nil {
		copyText = clipboard.WriteAll
	}


	user := strings.TrimSpace(opts.User)
	if user == "" {
		user = opts.Prefs.UserIdentifier
	}

	return Model{
		ctx:         ctx,
		store:       opts.Store,
		recipes:     opts.Recipes,
		favorites:   opts.Favorites,
		reviews:     opts.Reviews,
		refreshFn:   opts.Refresh,
		config:      cfg,
		user:        user,
		prefs:       opts.Prefs,
		prefsPath:   prefsPath,
		log:         log,
		pollTick:    pollTick,
		copyText:    copyText,
		keys:        DefaultKeyMap(),
		theme:       GetTheme(opts.Prefs.Theme),
		currentView: ViewBrowse,
		reveal:      newRevealer(),
		search:      newSearchState(),
		detailCache: expirable.NewLRU[string, recipes.Recipe](detailCacheSize, nil, detailCacheTTL),
		form:        newReviewForm(),
		logs:        newLogState(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
			m.initLogViewport()
		}
		m.ready = true
		m.updateDetailViewport()
		m.updateLogViewport()
		m.ensureSelectionVisible()
		cmd := m.observeGrid()
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.lastUpdated = time.Now()
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, cmd

	case refreshedMsg:
		m.refreshing = false
		if msg.err != nil {
			m.setError("Gagal memuat resep: " + msg.err.Error())
		} else if m.status == loadingMessage {
			m.clearStatus()
		}
		if m.store == nil {
			return m, nil
		}
		return m, fetchSnapshotCmd(m.store)

	case revealMsg:
		m.reveal.apply(msg)
		return m, nil

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case reviewsLoadedMsg:
		m.handleReviewsLoaded(msg)
		return m, nil

	case reviewSavedMsg:
		return m.handleReviewSaved(msg)

	case reviewDeletedMsg:
		return m.handleReviewDeleted(msg)

	case favoriteToggledMsg:
		cmd := m.handleFavoriteToggled(msg)
		return m, cmd

	case sharedMsg:
		return m.handleShared(msg)

	case copiedExpiredMsg:
		m.handleCopiedExpired(msg)
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Memuat..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// contentHeight is the number of rows between the command bar and the
// status line.
func (m Model) contentHeight() int {
	return max(m.height-3, 1)
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBrowse:
		return m.renderBrowse()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewDetail:
		if m.form.active {
			return m.renderReviewForm()
		}
		return m.renderDetail()
	case ViewProfile:
		return m.renderProfile()
	case ViewLogs:
		return m.renderLogs()
	default:
		return ""
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// Text inputs own the keyboard while active
	if m.search.active {
		return m.handleSearchKey(msg)
	}
	if m.form.active {
		return m.handleReviewFormKey(msg)
	}
	if m.logs.searchActive {
		return m.handleLogSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		return m.setView(m.nextView(1))

	case key.Matches(msg, m.keys.ShiftTab):
		return m.setView(m.nextView(-1))

	case key.Matches(msg, m.keys.Escape):
		m.clearStatus()
		switch {
		case m.currentView == ViewDetail:
			return m.setView(m.returnView)
		case m.currentView == ViewLogs && m.clearLogSearch():
			return m, nil
		case m.currentView == ViewBrowse && m.query().Search != "":
			q := m.query()
			q.Search = ""
			return m.applyQuery(q)
		}
		return m.setView(ViewBrowse)

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.refreshCmd()
		return m, cmd

	case key.Matches(msg, m.keys.ViewBrowse):
		return m.setView(ViewBrowse)

	case key.Matches(msg, m.keys.ViewFavorites):
		return m.setView(ViewFavorites)

	case key.Matches(msg, m.keys.ViewProfile):
		return m.setView(ViewProfile)

	case key.Matches(msg, m.keys.ViewLogs):
		return m.setView(ViewLogs)
	}

	// View-specific keys
	switch m.currentView {
	case ViewBrowse, ViewFavorites:
		return m.handleGridKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// nextView returns the view dir steps away from the current one in tab order.
func (m Model) nextView(dir int) View {
	current := m.currentView
	if current == ViewDetail {
		current = m.returnView
	}
	for i, v := range tabOrder {
		if v == current {
			return tabOrder[(i+dir+len(tabOrder))%len(tabOrder)]
		}
	}
	return ViewBrowse
}

// setView switches views. Leaving or entering a grid starts a new reveal
// generation so the entrance animation replays.
func (m Model) setView(v View) (tea.Model, tea.Cmd) {
	if v == m.currentView {
		return m, nil
	}
	m.currentView = v
	m.reveal.reset()
	m.shownKey = m.gridKey()

	switch v {
	case ViewBrowse, ViewFavorites:
		m.ensureSelectionVisible()
		cmd := m.observeGrid()
		return m, cmd
	case ViewLogs:
		m.updateLogViewport()
		return m, m.refreshLogs()
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.logs.follow {
		cmds = append(cmds, m.refreshLogs())
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// applySnapshot installs a new snapshot. When the cards on screen change
// the reveal animation restarts for the new set.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	m.snapshot = snap
	m.clampSelection()
	m.ensureSelectionVisible()

	if k := m.gridKey(); k != m.shownKey {
		m.shownKey = k
		m.reveal.reset()
	}
	if m.currentView == ViewDetail {
		m.updateDetailViewport()
	}
	return m.observeGrid()
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusIsError = false
}

func (m *Model) setError(msg string) {
	m.status = msg
	m.statusIsError = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusIsError = false
}

// savePrefs persists theme and header preferences. Failures are logged only.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.WithError(err).Warn("save prefs failed")
	}
}

// requestContext bounds a UI-initiated API call.
func (m Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, RequestTimeout)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type refreshedMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// refreshCmd asks the poller's fetch to run now instead of waiting for the
// next poll.
func (m *Model) refreshCmd() tea.Cmd {
	if m.refreshFn == nil {
		if m.store == nil {
			return nil
		}
		return fetchSnapshotCmd(m.store)
	}
	m.refreshing = true
	refresh := m.refreshFn
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		return refreshedMsg{err: refresh(ctx)}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
