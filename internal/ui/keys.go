package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewBrowse    key.Binding
	ViewFavorites key.Binding
	ViewProfile   key.Binding
	ViewLogs      key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding

	// List controls
	Search          key.Binding
	CycleDifficulty key.Binding
	CycleCategory   key.Binding
	ToggleOrder     key.Binding
	PrevPage        key.Binding
	NextPage        key.Binding
	ToggleHeader    key.Binding

	// Recipe actions
	ToggleFavorite key.Binding
	Share          key.Binding
	WriteReview    key.Binding
	DeleteReview   key.Binding

	// Logs
	ToggleFollow key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
	PageUp       key.Binding
	PageDown     key.Binding

	// Forms
	Confirm   key.Binding
	NextField key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Refresh now"),
		),

		// View switching
		ViewBrowse: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Recipes"),
		),
		ViewFavorites: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Favorites"),
		),
		ViewProfile: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Profile"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Logs"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open recipe"),
		),

		// List controls
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search recipes"),
		),
		CycleDifficulty: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle difficulty"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cycle category"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Newest/oldest first"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next page"),
		),
		ToggleHeader: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "Toggle header"),
		),

		// Recipe actions
		ToggleFavorite: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Toggle favorite"),
		),
		Share: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy share link"),
		),
		WriteReview: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Write/edit review"),
		),
		DeleteReview: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Delete my review"),
		),

		// Logs
		ToggleFollow: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "Toggle follow mode"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next log match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Previous log match"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "Page down"),
		),

		// Forms
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Next field"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Tab, k.ViewBrowse, k.ViewFavorites, k.ViewProfile, k.ViewLogs, k.Escape},
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Open},
		// Recipes
		{k.Search, k.CycleDifficulty, k.CycleCategory, k.ToggleOrder, k.PrevPage, k.NextPage, k.ToggleHeader},
		{k.ToggleFavorite, k.Share, k.WriteReview, k.DeleteReview, k.ToggleFollow, k.NextMatch, k.PrevMatch},
		// General
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
