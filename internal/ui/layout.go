package ui

import "time"

// Terminal width thresholds for the recipe grid.
const (
	// GridTwoColumnWidth is the width at which the grid shows two columns.
	GridTwoColumnWidth = 80

	// GridThreeColumnWidth is the width at which the grid shows three columns.
	GridThreeColumnWidth = 120
)

// Card geometry.
const (
	// cardHeight is the rendered height of one card including its border.
	cardHeight = 7

	// cardGap is the number of blank columns between cards.
	cardGap = 1
)

// Timing constants.
const (
	// RevealStagger is the delay step between cards of one grid row.
	RevealStagger = 150 * time.Millisecond

	// CopiedBadgeDuration is how long the "Tersalin" badge stays on a card.
	CopiedBadgeDuration = 2 * time.Second

	// RequestTimeout bounds API calls started from the UI.
	RequestTimeout = 10 * time.Second

	// DefaultUIInterval is the default snapshot refresh interval.
	DefaultUIInterval = time.Second
)

// Log display limits.
const (
	// LogFetchLimit is the number of trailing log lines read per refresh.
	LogFetchLimit = 500
)

// Recipe detail cache bounds.
const (
	detailCacheSize = 64
	detailCacheTTL  = 5 * time.Minute
)
