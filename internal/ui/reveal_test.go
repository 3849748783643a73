package ui

import (
	"testing"
	"time"
)

func TestRevealDelay_StaggersInGroupsOfThree(t *testing.T) {
	tests := []struct {
		index int
		want  time.Duration
	}{
		{0, 0},
		{1, 150 * time.Millisecond},
		{2, 300 * time.Millisecond},
		{3, 0},
		{4, 150 * time.Millisecond},
		{11, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := revealDelay(tt.index); got != tt.want {
			t.Errorf("revealDelay(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestRevealer_SchedulesEachCardOnce(t *testing.T) {
	r := newRevealer()

	cmds := r.observe([]int{0, 1, 2})
	if len(cmds) != 3 {
		t.Fatalf("observe returned %d cmds, want 3", len(cmds))
	}
	cmds = r.observe([]int{1, 2, 3})
	if len(cmds) != 1 {
		t.Fatalf("second observe returned %d cmds, want 1 (only card 3)", len(cmds))
	}
}

func TestRevealer_ImmediateCardFires(t *testing.T) {
	r := newRevealer()
	cmds := r.observe([]int{3})
	if len(cmds) != 1 {
		t.Fatalf("observe returned %d cmds, want 1", len(cmds))
	}

	msg, ok := cmds[0]().(revealMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want revealMsg", msg)
	}
	if msg.index != 3 || msg.generation != r.generation {
		t.Fatalf("msg = %+v, want index 3 of generation %d", msg, r.generation)
	}
	if r.isRevealed(3) {
		t.Fatalf("card revealed before message applied")
	}
	if !r.apply(msg) || !r.isRevealed(3) {
		t.Fatalf("apply did not reveal card 3")
	}
}

func TestRevealer_DelayedCardFiresAfterStagger(t *testing.T) {
	r := newRevealer()
	cmds := r.observe([]int{1})

	start := time.Now()
	msg, ok := cmds[0]().(revealMsg)
	if !ok || msg.index != 1 {
		t.Fatalf("cmd returned %#v, want revealMsg for card 1", msg)
	}
	if elapsed := time.Since(start); elapsed < 100*time.Millisecond {
		t.Fatalf("card 1 fired after %v, want about %v", elapsed, RevealStagger)
	}
}

func TestRevealer_ResetDropsInFlightReveals(t *testing.T) {
	r := newRevealer()
	cmds := r.observe([]int{0})
	stale := cmds[0]().(revealMsg)

	r.reset()

	if r.apply(stale) {
		t.Fatalf("apply accepted a reveal from the previous generation")
	}
	if r.isRevealed(0) {
		t.Fatalf("stale reveal marked card 0")
	}
	if cmds := r.observe([]int{0}); len(cmds) != 1 {
		t.Fatalf("after reset observe returned %d cmds, want 1", len(cmds))
	}
}
