// Package ui is the dapur terminal front-end, built on Bubble Tea.
//
// The Model reads recipe pages and favorites from a state.Store that the
// poller keeps fresh, and calls the recipe, favorite and review services
// directly for user actions. Views:
//
//   - Browse: hero banner, filter line and the recipe card grid
//   - Favorites: the user's favorite recipes in the same grid
//   - Detail: one recipe with ingredients, steps and reviews
//   - Profile: owner card and local settings
//   - Logs: tail of dapur's own JSON log with regex search
//
// Cards fade in with a staggered reveal. Each card gets a delay of
// (index mod 3) steps the first time it scrolls into view; a change of the
// card set starts a new generation so stale reveals are ignored.
//
// Service calls run as tea.Cmd functions bounded by RequestTimeout, and
// their results come back as messages handled in Update.
package ui
