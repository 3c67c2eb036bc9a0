package history

import (
	"iter"
	"slices"
)

// entry wraps a command with the sequence number it was pushed under.
type entry[T any] struct {
	cmd T
	seq uint64
}

// History is a bounded, linear log of commands with an undo/redo cursor.
//
// Commands at indices below Cursor have been applied; commands at or after it
// are redo candidates. The zero value is a History with capacity zero.
type History[T any] struct {
	entries []entry[T]
	cursor  int
	maxSize int

	// lastSeq is the sequence number handed to the most recent push.
	// Sequence numbers start at 1 and are never reused.
	lastSeq uint64
}

// New creates a history that retains at most maxSize commands.
// A negative maxSize is treated as zero.
func New[T any](maxSize int) *History[T] {
	return &History[T]{
		maxSize: max(maxSize, 0),
	}
}

// Push records cmd as the newest applied command.
//
// Commands after the cursor are discarded first. If the log then holds more
// than MaxSize commands, the oldest ones are evicted. With a capacity of zero
// Push does nothing.
func (h *History[T]) Push(cmd T) {
	if h.maxSize == 0 {
		return
	}

	// Drop the redo branch
	clear(h.entries[h.cursor:])
	h.entries = h.entries[:h.cursor]

	h.lastSeq++
	h.entries = append(h.entries, entry[T]{cmd: cmd, seq: h.lastSeq})
	h.cursor = len(h.entries)

	h.evict(len(h.entries) - h.maxSize)
}

// MoveForward redoes the command at the cursor using e.
//
// It is a no-op when there is nothing to redo. The cursor only advances if
// e.Execute returns nil; its error is returned as is.
func (h *History[T]) MoveForward(e Executor[T]) error {
	if h.cursor == len(h.entries) {
		return nil
	}

	if err := e.Execute(h.entries[h.cursor].cmd); err != nil {
		return err
	}

	h.cursor++
	return nil
}

// MoveBackward undoes the command before the cursor using r.
//
// It is a no-op when there is nothing to undo. The cursor only moves back if
// r.Revert returns nil; its error is returned as is.
func (h *History[T]) MoveBackward(r Reverter[T]) error {
	if h.cursor == 0 {
		return nil
	}

	if err := r.Revert(h.entries[h.cursor-1].cmd); err != nil {
		return err
	}

	h.cursor--
	return nil
}

// MaxSize returns the maximum number of retained commands.
func (h *History[T]) MaxSize() int {
	return h.maxSize
}

// SetMaxSize changes the capacity. A negative n is treated as zero.
//
// If more than n commands are retained, the oldest are evicted and the cursor
// moves down by the number evicted, stopping at zero. Evicting applied
// commands does not revert them.
func (h *History[T]) SetMaxSize(n int) {
	h.maxSize = max(n, 0)
	h.evict(len(h.entries) - h.maxSize)
}

// Size returns the number of retained commands.
func (h *History[T]) Size() int {
	return len(h.entries)
}

// Cursor returns the number of applied commands.
func (h *History[T]) Cursor() int {
	return h.cursor
}

// CanUndo returns true if MoveBackward would revert a command.
func (h *History[T]) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo returns true if MoveForward would execute a command.
func (h *History[T]) CanRedo() bool {
	return h.cursor < len(h.entries)
}

// UndoCount returns the number of commands that can be undone.
func (h *History[T]) UndoCount() int {
	return h.cursor
}

// RedoCount returns the number of commands that can be redone.
func (h *History[T]) RedoCount() int {
	return len(h.entries) - h.cursor
}

// Clear removes all commands. The capacity is unchanged.
func (h *History[T]) Clear() {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.cursor = 0
}

// Commands returns a copy of the retained commands, oldest first.
func (h *History[T]) Commands() []T {
	cmds := make([]T, len(h.entries))
	for i, e := range h.entries {
		cmds[i] = e.cmd
	}
	return cmds
}

// All iterates over the retained commands, oldest first, with their index.
// The history must not be modified during iteration.
func (h *History[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range h.entries {
			if !yield(i, e.cmd) {
				return
			}
		}
	}
}

// evict removes the n oldest commands.
func (h *History[T]) evict(n int) {
	if n <= 0 {
		return
	}
	n = min(n, len(h.entries))

	h.entries = slices.Delete(h.entries, 0, n)
	h.cursor = max(h.cursor-n, 0)
}
