package history

import (
	"cmp"
	"slices"
)

// Position identifies a retained command without holding a reference to it.
//
// The zero Position is the sentinel returned by Current when nothing is
// applied. A Position stays comparable across pushes and evictions; it is
// resolved against the log each time it is used.
type Position struct {
	seq uint64
}

// Valid returns false for the sentinel Position.
func (p Position) Valid() bool {
	return p.seq != 0
}

// Current returns the Position of the last applied command, or the sentinel
// Position if the cursor is at zero.
func (h *History[T]) Current() Position {
	if h.cursor == 0 {
		return Position{}
	}
	return Position{seq: h.entries[h.cursor-1].seq}
}

// PositionAt returns the Position of the command at index i, oldest first.
// It returns the sentinel Position if i is out of range.
func (h *History[T]) PositionAt(i int) Position {
	if i < 0 || i >= len(h.entries) {
		return Position{}
	}
	return Position{seq: h.entries[i].seq}
}

// IndexOf returns the current index of the command named by p.
// It returns false if p is the sentinel or its command is no longer retained.
func (h *History[T]) IndexOf(p Position) (int, bool) {
	if !p.Valid() {
		return -1, false
	}

	// Sequence numbers increase from oldest to newest.
	i, found := slices.BinarySearchFunc(h.entries, p.seq, func(e entry[T], seq uint64) int {
		return cmp.Compare(e.seq, seq)
	})
	if !found {
		return -1, false
	}
	return i, true
}

// At returns the command named by p.
// It returns false if p is the sentinel or its command is no longer retained.
func (h *History[T]) At(p Position) (T, bool) {
	i, ok := h.IndexOf(p)
	if !ok {
		var zero T
		return zero, false
	}
	return h.entries[i].cmd, true
}
