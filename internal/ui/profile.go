package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderProfile renders the owner card and local settings.
func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	p := m.config.Profile

	labelWidth := 14
	row := func(name, value string) string {
		return styles.FaintText.Render(fmt.Sprintf("%-*s", labelWidth, name)) + styles.Text.Render(orDash(value))
	}

	initials := profileInitials(p.Name)
	avatar := lipgloss.NewStyle().
		Bold(true).
		Padding(1, 3).
		Background(lipgloss.Color(m.theme.Accent)).
		Foreground(lipgloss.Color(m.theme.Background)).
		Render(initials)

	identity := strings.Join([]string{
		styles.AccentText.Bold(true).Render(orDash(p.Name)),
		styles.MutedText.Render(orDash(p.StudentID)),
		styles.MutedText.Render(orDash(p.Group)),
	}, "\n")

	top := lipgloss.JoinHorizontal(lipgloss.Center, avatar, "  ", identity)

	details := strings.Join([]string{
		row("Avatar", p.AvatarURL),
		row("Pengguna", m.user),
		row("Favorit", fmt.Sprintf("%d resep", len(m.snapshot.Favorites))),
		row("API", m.config.APIURL),
		row("Tema", m.theme.Name),
		row("Log", m.config.LogPath()),
	}, "\n")

	body := top + "\n\n" + details
	width := min(max(m.width-2, 20), 72)
	card := m.renderTitledBox("Profile Pengguna", lipgloss.NewStyle().Padding(1, 2).Render(body), width, lipgloss.Height(body)+4, true)
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, card)
}

// profileInitials returns up to two initials of name.
func profileInitials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}
