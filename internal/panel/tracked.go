package panel

import (
	"github.com/dshills/cmdlog/internal/history"
	"github.com/dshills/cmdlog/internal/logging"
)

// DefaultMaxSize is the capacity used when none is configured.
const DefaultMaxSize = 1000

// Tracked owns a history and the panel state that goes with it.
type Tracked[T any] struct {
	history *history.History[T]
	state   *State
	log     *logging.Logger
}

// NewTracked creates a tracked history with the given capacity.
// A nil logger discards output.
func NewTracked[T any](maxSize int, log *logging.Logger) *Tracked[T] {
	if log == nil {
		log = logging.Null()
	}
	t := &Tracked[T]{
		history: history.New[T](maxSize),
		state:   NewState(),
		log:     log.WithComponent("history"),
	}
	t.state.pending = t.history.MaxSize()
	return t
}

// History returns the underlying history.
func (t *Tracked[T]) History() *history.History[T] {
	return t.history
}

// Panel returns the panel state.
func (t *Tracked[T]) Panel() *State {
	return t.state
}

// Push records cmd and the push time.
func (t *Tracked[T]) Push(cmd T) {
	dropped := t.history.RedoCount()
	before := t.history.Size()

	Push(t.state, t.history, cmd)

	if t.history.MaxSize() == 0 {
		t.log.Debug("capacity is zero, push not recorded")
		return
	}
	if dropped > 0 {
		t.log.Debug("push discarded %d redo commands", dropped)
	}
	if evicted := before - dropped + 1 - t.history.Size(); evicted > 0 {
		t.log.Debug("push evicted %d commands", evicted)
	}
}

// MoveForward redoes the next command with e.
func (t *Tracked[T]) MoveForward(e history.Executor[T]) error {
	if err := t.history.MoveForward(e); err != nil {
		t.log.Warn("redo failed: %v", err)
		return err
	}
	return nil
}

// MoveBackward undoes the last applied command with r.
func (t *Tracked[T]) MoveBackward(r history.Reverter[T]) error {
	if err := t.history.MoveBackward(r); err != nil {
		t.log.Warn("undo failed: %v", err)
		return err
	}
	return nil
}

// SetMaxSize stages and commits a new capacity.
func (t *Tracked[T]) SetMaxSize(n int) {
	before := t.history.Size()
	t.state.EditMaxSize(n)
	SyncMaxSize(t.state, t.history, MaxSizeInput{Committed: true})

	if evicted := before - t.history.Size(); evicted > 0 {
		t.log.Info("capacity set to %d, evicted %d commands", t.history.MaxSize(), evicted)
	} else {
		t.log.Debug("capacity set to %d", t.history.MaxSize())
	}
}

// Clear empties the history. The capacity and last push time are kept.
func (t *Tracked[T]) Clear() {
	n := t.history.Size()
	t.history.Clear()
	t.log.Debug("cleared %d commands", n)
}
