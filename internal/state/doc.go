// Package state provides thread-safe state shared between the background
// poller and the UI.
//
// The poller is the single writer: it fetches the current recipe page and
// the user's favorites and calls Store.Update. The UI reads with
// Store.Snapshot, which returns defensive copies, and writes only the list
// query (SetQuery) and optimistic favorite changes (MarkFavorite).
//
// A failed update keeps the previous data and records the error.
// ConsecutiveFailures counts failed polls in a row; two or more mark the
// snapshot offline.
//
// The zero Store is ready to use.
package state
