package panel

import "github.com/dshills/cmdlog/internal/history"

// Entry is one row of a history listing.
type Entry struct {
	Index    int
	Text     string
	Position history.Position
	// Applied is true for commands before the cursor.
	Applied bool
	// Current marks the last applied command.
	Current bool
}

// Entries lists the commands of h oldest first, described by describe.
func Entries[T any](h *history.History[T], describe func(T) string) []Entry {
	current, hasCurrent := h.IndexOf(h.Current())

	entries := make([]Entry, 0, h.Size())
	for i, cmd := range h.All() {
		entries = append(entries, Entry{
			Index:    i,
			Text:     describe(cmd),
			Position: h.PositionAt(i),
			Applied:  i < h.Cursor(),
			Current:  hasCurrent && i == current,
		})
	}
	return entries
}
