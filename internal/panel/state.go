package panel

import (
	"time"

	"github.com/dshills/cmdlog/internal/history"
)

// State is the view-side state kept next to a history.
type State struct {
	lastPush time.Time
	pending  int
	now      func() time.Time
}

// NewState creates panel state. The last push time starts at creation.
func NewState() *State {
	s := &State{now: time.Now}
	s.lastPush = s.now()
	return s
}

// Push records the push time and pushes cmd onto h.
func Push[T any](s *State, h *history.History[T], cmd T) {
	s.lastPush = s.now()
	h.Push(cmd)
}

// LastPush returns when a command was last pushed through the panel.
func (s *State) LastPush() time.Time {
	return s.lastPush
}

// TimeSinceLastPush returns the time elapsed since the last push.
func (s *State) TimeSinceLastPush() time.Duration {
	return s.now().Sub(s.lastPush)
}

// MaxSizeInput describes the capacity input field after a frame.
type MaxSizeInput struct {
	// Active is true while the user is editing the field.
	Active bool
	// Committed is true when the user just finished an edit.
	Committed bool
}

// EditMaxSize stages a capacity without applying it. Negative values are
// staged as zero.
func (s *State) EditMaxSize(n int) {
	s.pending = max(n, 0)
}

// PendingMaxSize returns the staged capacity.
func (s *State) PendingMaxSize() int {
	return s.pending
}

// SyncMaxSize reconciles the staged capacity with h.
//
// A committed edit is applied with SetMaxSize. While the input is not active
// the staged value follows the history's capacity, so edits made elsewhere
// show up in the field. It returns true if a capacity was applied.
func SyncMaxSize[T any](s *State, h *history.History[T], in MaxSizeInput) bool {
	if in.Committed {
		h.SetMaxSize(s.pending)
	}
	// Must run after the commit, or a just-finished edit would be overwritten.
	if !in.Active {
		s.pending = h.MaxSize()
	}
	return in.Committed
}

// MaxSizeChanged returns true if the staged capacity differs from h's.
func MaxSizeChanged[T any](s *State, h *history.History[T]) bool {
	return s.pending != h.MaxSize()
}

// WillErase returns true if committing the staged capacity would evict commands.
func WillErase[T any](s *State, h *history.History[T]) bool {
	return s.pending < h.Size()
}
