package ui

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atvouzx/dapur/internal/logtail"
)

// logState holds the application log view.
type logState struct {
	lines  []string
	follow bool
	err    error

	// Search
	searchActive   bool
	searchQuery    string
	searchRegex    *regexp.Regexp
	searchInput    textinput.Model
	searchMatches  []int
	searchMatchIdx int
}

type logLinesMsg struct {
	lines []string
	err   error
}

func newLogState() logState {
	ti := textinput.New()
	ti.Prompt = " / "
	ti.Placeholder = "Cari di log..."
	ti.CharLimit = 100
	return logState{follow: true, searchInput: ti}
}

func (m *Model) initLogViewport() {
	m.logViewport = viewport.New(max(m.width-4, 1), max(m.contentHeight()-3, 1))
}

// updateLogViewport resizes the viewport and re-renders the buffered lines.
func (m *Model) updateLogViewport() {
	if m.logViewport.Width == 0 {
		m.initLogViewport()
	}
	// One row below the box is used by the log status line.
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.contentHeight()-3, 1)
	m.logViewport.SetContent(m.renderLogContent())
	if m.logs.follow {
		m.logViewport.GotoBottom()
	}
}

// refreshLogs reads the tail of the log file.
func (m Model) refreshLogs() tea.Cmd {
	path := m.config.LogPath()
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogFetchLimit)
		return logLinesMsg{lines: lines, err: err}
	}
}

func (m *Model) handleLogLines(msg logLinesMsg) {
	m.logs.err = msg.err
	if msg.err == nil {
		m.logs.lines = msg.lines
	}
	if m.logs.searchRegex != nil {
		m.findSearchMatches()
	}
	m.updateLogViewport()
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	bg := NewBgStyle(m.theme.Background)
	styles := m.theme.Styles()
	box := m.renderTitledBox("Log Aplikasi", m.logViewport.View(), m.width, max(m.contentHeight()-1, 3), true)
	return box + "\n" + bg.FillLine(m.renderLogStatus(styles, bg), m.width)
}

// renderLogStatus renders the line below the log box.
func (m Model) renderLogStatus(styles Styles, bg BgStyle) string {
	if m.logs.searchActive {
		return m.logs.searchInput.View()
	}
	if m.logs.searchRegex != nil {
		if len(m.logs.searchMatches) == 0 {
			return bg.Render("Pola tidak ditemukan: "+m.logs.searchQuery, styles.DangerText)
		}
		return bg.Render("/"+m.logs.searchQuery, styles.AccentText) +
			bg.Render(" - ", styles.FaintText) +
			bg.Render(fmt.Sprintf("%d/%d", m.logs.searchMatchIdx+1, len(m.logs.searchMatches)), styles.WarningText) +
			bg.Render(" - n berikutnya, N sebelumnya, Esc hapus", styles.FaintText)
	}

	follow := "off"
	if m.logs.follow {
		follow = "on"
	}
	parts := []string{
		bg.Render(fmt.Sprintf("%d baris", len(m.logs.lines)), styles.FaintText),
		bg.Render("auto-tail "+follow, styles.FaintText),
		bg.Render(m.config.LogPath(), styles.AccentText),
	}
	if m.logs.err != nil {
		parts = append(parts, bg.Render(m.logs.err.Error(), styles.DangerText))
	}
	sep := bg.Space() + bg.Render("•", styles.FaintText) + bg.Space()
	return strings.Join(parts, sep)
}

// renderLogContent renders the numbered, colourised log lines.
func (m Model) renderLogContent() string {
	bg := NewBgStyle(m.theme.SurfaceAlt)
	styles := m.theme.Styles()
	width := m.logViewport.Width

	if len(m.logs.lines) == 0 {
		return bg.FillLine(bg.Render("Belum ada log di "+m.config.LogPath(), styles.MutedText), width)
	}

	matches := make(map[int]bool, len(m.logs.searchMatches))
	for _, idx := range m.logs.searchMatches {
		matches[idx] = true
	}
	active := -1
	if m.logs.searchMatchIdx < len(m.logs.searchMatches) {
		active = m.logs.searchMatches[m.logs.searchMatchIdx]
	}

	var b strings.Builder
	for i, line := range m.logs.lines {
		gutter := fmt.Sprintf("%4d │ ", i+1)
		var content string
		switch {
		case i == active:
			hl := lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.Warning)).
				Foreground(lipgloss.Color(m.theme.Background))
			content = hl.Render(gutter + logtail.Format(line))
		case matches[i]:
			content = bg.Render(gutter, styles.AccentText) + bg.Render(logtail.Format(line), styles.AccentText)
		default:
			content = bg.Render(gutter, styles.FaintText) + m.colorizeLogLine(line, styles, bg)
		}
		b.WriteString(bg.FillLine(content, width))
		if i < len(m.logs.lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// colorizeLogLine renders one JSON log line as "time LEVEL – message k=v".
func (m Model) colorizeLogLine(line string, styles Styles, bg BgStyle) string {
	entry, ok := logtail.Parse(line)
	if !ok {
		return bg.Render(line, styles.Text)
	}

	var b strings.Builder
	if !entry.Time.IsZero() {
		b.WriteString(bg.Render(entry.Time.Local().Format("2006-01-02 15:04:05"), styles.FaintText))
		b.WriteString(bg.Space())
	}
	level := entry.Level
	if level == "" {
		level = "INFO"
	}
	b.WriteString(bg.Render(level, levelStyle(level, styles).Bold(true)))
	if msg := strings.TrimSpace(entry.Message); msg != "" {
		b.WriteString(bg.Render(" – ", styles.FaintText))
		b.WriteString(bg.Render(msg, styles.Text))
	}

	for _, k := range slices.Sorted(maps.Keys(entry.Fields)) {
		b.WriteString(bg.Render(" "+k+"="+entry.Fields[k], styles.MutedText))
	}
	return b.String()
}

func levelStyle(level string, styles Styles) lipgloss.Style {
	switch level {
	case "INFO":
		return styles.SuccessText
	case "WARN", "WARNING":
		return styles.WarningText
	case "ERROR", "FATAL", "PANIC":
		return styles.DangerText
	case "DEBUG", "TRACE":
		return styles.InfoText
	default:
		return styles.Text
	}
}

// handleLogsKey processes keyboard input for the logs view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.logs.searchActive {
		return m.handleLogSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logs.follow = !m.logs.follow
		if m.logs.follow {
			m.logViewport.GotoBottom()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.logs.searchActive = true
		m.logs.searchInput.SetValue("")
		cmd := m.logs.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextMatch):
		m.stepSearchMatch(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevMatch):
		m.stepSearchMatch(-1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.logViewport.GotoTop()
		m.logs.follow = false
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
		m.logs.follow = true
	case key.Matches(msg, m.keys.Down):
		m.logViewport.ScrollDown(1)
		m.logs.follow = false
	case key.Matches(msg, m.keys.Up):
		m.logViewport.ScrollUp(1)
		m.logs.follow = false
	case key.Matches(msg, m.keys.PageDown):
		m.logViewport.PageDown()
		m.logs.follow = false
	case key.Matches(msg, m.keys.PageUp):
		m.logViewport.PageUp()
		m.logs.follow = false
	}
	return m, nil
}

// handleLogSearchInput feeds keys to the log search prompt. The query is a
// case-insensitive regular expression.
func (m Model) handleLogSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := strings.TrimSpace(m.logs.searchInput.Value())
		m.logs.searchActive = false
		m.logs.searchInput.Blur()
		if query == "" {
			m.clearLogSearch()
			return m, nil
		}
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			m.setError("Pola tidak valid: " + err.Error())
			return m, nil
		}
		m.logs.searchRegex = re
		m.logs.searchQuery = query
		m.logs.searchMatchIdx = 0
		m.findSearchMatches()
		m.logs.follow = false
		m.updateLogViewport()
		m.scrollToSearchMatch()
		return m, nil

	case msg.String() == "esc":
		m.logs.searchActive = false
		m.logs.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.logs.searchInput, cmd = m.logs.searchInput.Update(msg)
	return m, cmd
}

// clearLogSearch drops the active search. Returns false when none was set.
func (m *Model) clearLogSearch() bool {
	if m.logs.searchRegex == nil {
		return false
	}
	m.logs.searchRegex = nil
	m.logs.searchQuery = ""
	m.logs.searchMatches = nil
	m.logs.searchMatchIdx = 0
	m.updateLogViewport()
	return true
}

func (m *Model) findSearchMatches() {
	m.logs.searchMatches = nil
	if m.logs.searchRegex == nil {
		return
	}
	for i, line := range m.logs.lines {
		if m.logs.searchRegex.MatchString(logtail.Format(line)) {
			m.logs.searchMatches = append(m.logs.searchMatches, i)
		}
	}
	if m.logs.searchMatchIdx >= len(m.logs.searchMatches) {
		m.logs.searchMatchIdx = 0
	}
}

func (m *Model) stepSearchMatch(dir int) {
	n := len(m.logs.searchMatches)
	if n == 0 {
		return
	}
	m.logs.searchMatchIdx = (m.logs.searchMatchIdx + dir + n) % n
	m.updateLogViewport()
	m.scrollToSearchMatch()
}

// scrollToSearchMatch centres the active match and stops following.
func (m *Model) scrollToSearchMatch() {
	if m.logs.searchMatchIdx >= len(m.logs.searchMatches) {
		return
	}
	m.logs.follow = false
	target := m.logs.searchMatches[m.logs.searchMatchIdx]
	m.logViewport.SetYOffset(max(target-m.logViewport.Height/2, 0))
}
