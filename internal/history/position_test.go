package history

import "testing"

func TestCurrentSentinel(t *testing.T) {
	h := New[string](10)
	if h.Current().Valid() {
		t.Error("Current() on empty history is valid")
	}

	h.Push("a")
	_ = h.MoveBackward(&recorder{})
	if h.Current().Valid() {
		t.Error("Current() with cursor at 0 is valid")
	}
	if _, ok := h.At(h.Current()); ok {
		t.Error("At(sentinel) = ok")
	}
	if i, ok := h.IndexOf(Position{}); ok || i != -1 {
		t.Errorf("IndexOf(sentinel) = %d, %v; want -1, false", i, ok)
	}
}

func TestCurrentTracksCursor(t *testing.T) {
	h := New[string](10)
	pushAll(h, "a", "b", "c")

	cmd, ok := h.At(h.Current())
	if !ok || cmd != "c" {
		t.Errorf("At(Current()) = %q, %v; want \"c\", true", cmd, ok)
	}

	_ = h.MoveBackward(&recorder{})
	cmd, ok = h.At(h.Current())
	if !ok || cmd != "b" {
		t.Errorf("At(Current()) after undo = %q, %v; want \"b\", true", cmd, ok)
	}
	if i, _ := h.IndexOf(h.Current()); i != 1 {
		t.Errorf("IndexOf(Current()) = %d, want 1", i)
	}
}

func TestPositionSurvivesEviction(t *testing.T) {
	h := New[string](3)
	pushAll(h, "a", "b", "c")
	pos := h.PositionAt(2) // "c"

	h.Push("d")
	i, ok := h.IndexOf(pos)
	if !ok || i != 1 {
		t.Errorf("IndexOf() after eviction = %d, %v; want 1, true", i, ok)
	}
	if cmd, _ := h.At(pos); cmd != "c" {
		t.Errorf("At() after eviction = %q, want \"c\"", cmd)
	}
}

func TestPositionInvalidatedByEviction(t *testing.T) {
	h := New[string](2)
	h.Push("a")
	pos := h.Current()

	h.Push("b")
	h.Push("c")
	if _, ok := h.At(pos); ok {
		t.Error("At() resolved an evicted command")
	}
}

func TestPositionInvalidatedByTruncation(t *testing.T) {
	h := New[string](10)
	pushAll(h, "a", "b", "c")
	pos := h.PositionAt(2) // "c"

	rec := &recorder{}
	_ = h.MoveBackward(rec)
	_ = h.MoveBackward(rec)
	h.Push("d")

	if _, ok := h.At(pos); ok {
		t.Error("At() resolved a truncated command")
	}
	if cmd, ok := h.At(h.Current()); !ok || cmd != "d" {
		t.Errorf("At(Current()) = %q, %v; want \"d\", true", cmd, ok)
	}
}

func TestPositionInvalidatedByClear(t *testing.T) {
	h := New[string](10)
	pushAll(h, "a", "b")
	pos := h.Current()

	h.Clear()
	h.Push("a")
	if _, ok := h.At(pos); ok {
		t.Error("At() resolved a command from before Clear")
	}
	if pos == h.Current() {
		t.Error("Position reused after Clear")
	}
}

func TestPositionAtOutOfRange(t *testing.T) {
	h := New[string](10)
	h.Push("a")

	for _, i := range []int{-1, 1, 5} {
		if h.PositionAt(i).Valid() {
			t.Errorf("PositionAt(%d) is valid", i)
		}
	}
}
