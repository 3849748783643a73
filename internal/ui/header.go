package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	heroTitle    = "Jelajahi Resep Makanan"
	heroSubtitle = "Temukan inspirasi masakan Nusantara favoritmu. Dari hidangan utama hingga camilan, semua ada di sini."
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < GridThreeColumnWidth

	parts := []string{bg.Render("dapur", styles.Logo)}
	parts = append(parts, m.connectionBadge(styles, bg))

	if m.snapshot.HasData {
		parts = append(parts,
			bg.Render("Resep:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.snapshot.Pagination.Total), styles.Text),
			bg.Render("Favorit:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.snapshot.Favorites)), styles.Text),
		)
	}

	if !compact && m.user != "" {
		parts = append(parts,
			bg.Render("user", styles.FaintText)+bg.Space()+
				bg.Render(truncate(m.user, 14), styles.MutedText))
	}

	if ts := m.formatTimestamp(); ts != "" {
		parts = append(parts, bg.Render(ts, styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 30
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText)+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// connectionBadge summarises API reachability.
func (m Model) connectionBadge(styles Styles, bg BgStyle) string {
	switch {
	case m.snapshot.IsOffline():
		return bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText)
	case m.snapshot.LastError != nil:
		return bg.Render("● Retrying...", styles.WarningText.Bold(true))
	case m.snapshot.HasData:
		return bg.Render("● ONLINE", styles.SuccessText)
	default:
		return bg.Render("Menghubungkan ke "+truncate(m.config.APIURL, 40), styles.WarningText.Bold(true))
	}
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	if m.snapshot.LastUpdated.IsZero() {
		return ""
	}
	since := time.Since(m.snapshot.LastUpdated)
	ts := m.snapshot.LastUpdated.Format("15:04:05")
	switch {
	case since < time.Minute:
		return ts
	case since < time.Hour:
		return ts + fmt.Sprintf(" (%dm lalu)", int(since.Minutes()))
	default:
		return ts + fmt.Sprintf(" (%dj lalu)", int(since.Hours()))
	}
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return "OFFLINE"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "returned status 5"):
		return "SERVER ERROR"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewBrowse:
		q := m.query()
		commands = []cmd{
			{"/", "Cari"},
			{"c", filterLabel(q.Category, "Kategori")},
			{"f", filterLabel(q.Difficulty, "Kesulitan")},
			{"o", orderLabel(q.Order)},
			{"[/]", "Halaman"},
			{"enter", "Buka"},
			{"space", "Favorit"},
			{"y", "Bagikan"},
		}
	case ViewFavorites:
		commands = []cmd{
			{"enter", "Buka"},
			{"space", "Hapus favorit"},
			{"y", "Bagikan"},
			{"1", "Resep"},
		}
	case ViewDetail:
		commands = []cmd{
			{"j/k", "Gulir"},
			{"space", "Favorit"},
			{"y", "Bagikan"},
			{"r", "Ulasan"},
			{"x", "Hapus ulasan"},
			{"esc", "Kembali"},
		}
	case ViewLogs:
		follow := "Jeda"
		if !m.logs.follow {
			follow = "Ikuti"
		}
		commands = []cmd{
			{"space", follow},
			{"/", "Cari"},
			{"n/N", "Hasil"},
			{"j/k", "Gulir"},
			{"g/G", "Awal/Akhir"},
			{"esc", "Kembali"},
		}
	default:
		commands = []cmd{
			{"1", "Resep"},
			{"2", "Favorit"},
			{"4", "Log"},
		}
	}
	commands = append(commands, cmd{"tab", "Tampilan"}, cmd{"?", "Bantuan"})

	colon := bg.Render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

// renderStatusLine renders the transient message line at the bottom.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles()
	if m.status == "" {
		if m.refreshing {
			return styles.FaintText.Render(" Memuat...")
		}
		return styles.FaintText.Render(" ? untuk bantuan")
	}
	style := styles.InfoText
	if m.statusIsError {
		style = styles.DangerText
	}
	return style.Render(" " + truncate(m.status, max(m.width-2, 10)))
}

// renderHero renders the toggleable page heading of the recipe grid.
func (m Model) renderHero(width int) string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render(heroTitle)
	subtitle := styles.MutedText.Render(truncate(heroSubtitle, width))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, title) + "\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, subtitle) + "\n"
}
