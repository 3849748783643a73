package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// revealMsg marks one card as revealed. Messages from an older generation
// are ignored.
type revealMsg struct {
	generation uint64
	index      int
}

// revealDelay returns how long a card waits after entering the visible
// window before it is revealed. Cards are staggered in groups of three.
func revealDelay(index int) time.Duration {
	if index < 0 {
		index = -index
	}
	return time.Duration(index%3) * RevealStagger
}

// revealer tracks the entrance animation of grid cards. Each card is
// scheduled at most once per generation; reset starts a new generation and
// drops every reveal still in flight.
type revealer struct {
	generation uint64
	scheduled  map[int]bool
	revealed   map[int]bool
}

func newRevealer() *revealer {
	return &revealer{
		scheduled: make(map[int]bool),
		revealed:  make(map[int]bool),
	}
}

// reset forgets all cards and invalidates pending reveals.
func (r *revealer) reset() {
	r.generation++
	r.scheduled = make(map[int]bool)
	r.revealed = make(map[int]bool)
}

// observe schedules a reveal for every visible card that has not been
// scheduled yet, in the order given.
func (r *revealer) observe(visible []int) []tea.Cmd {
	var cmds []tea.Cmd
	for _, idx := range visible {
		if r.scheduled[idx] {
			continue
		}
		r.scheduled[idx] = true
		cmds = append(cmds, revealCmd(r.generation, idx))
	}
	return cmds
}

// apply records a fired reveal and reports whether it belonged to the
// current generation.
func (r *revealer) apply(msg revealMsg) bool {
	if msg.generation != r.generation {
		return false
	}
	r.revealed[msg.index] = true
	return true
}

func (r *revealer) isRevealed(index int) bool {
	return r.revealed[index]
}

func revealCmd(generation uint64, index int) tea.Cmd {
	msg := revealMsg{generation: generation, index: index}
	delay := revealDelay(index)
	if delay == 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return msg })
}
