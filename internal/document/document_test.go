package document

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/dshills/cmdlog/internal/history"
)

func TestExecuteAndRevert(t *testing.T) {
	tests := []struct {
		name  string
		start string
		edit  func(d *Document) Edit
		want  string
	}{
		{"insert at start", "world", func(*Document) Edit { return NewInsert(0, "hello ") }, "hello world"},
		{"insert at end", "hello", func(*Document) Edit { return NewInsert(5, "!") }, "hello!"},
		{"delete", "hello world", func(d *Document) Edit {
			e, _ := d.Delete(5, 6)
			return e
		}, "hello"},
		{"replace", "hello world", func(d *Document) Edit {
			e, _ := d.Replace(6, 5, "there")
			return e
		}, "hello there"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.start)
			e := tt.edit(d)

			if err := d.Execute(e); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if d.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", d.Text(), tt.want)
			}

			if err := d.Revert(e); err != nil {
				t.Fatalf("Revert() error = %v", err)
			}
			if d.Text() != tt.start {
				t.Errorf("Text() after revert = %q, want %q", d.Text(), tt.start)
			}
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	d := New("abc")

	if err := d.Execute(NewInsert(10, "x")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Execute() out of range error = %v, want %v", err, ErrOutOfRange)
	}
	if err := d.Execute(NewEdit(0, "zz", "y")); !errors.Is(err, ErrMismatch) {
		t.Errorf("Execute() mismatch error = %v, want %v", err, ErrMismatch)
	}
	if err := d.Revert(NewInsert(0, "q")); !errors.Is(err, ErrMismatch) {
		t.Errorf("Revert() mismatch error = %v, want %v", err, ErrMismatch)
	}
	if d.Text() != "abc" {
		t.Errorf("Text() = %q after failed edits, want \"abc\"", d.Text())
	}
}

func TestDeleteRange(t *testing.T) {
	d := New("abc")
	tests := []struct {
		pos, n int
		ok     bool
	}{
		{0, 3, true},
		{3, 0, true},
		{2, 2, false},
		{-1, 1, false},
		{0, -1, false},
		{4, 0, false},
	}
	for _, tt := range tests {
		_, err := d.Delete(tt.pos, tt.n)
		if (err == nil) != tt.ok {
			t.Errorf("Delete(%d, %d) error = %v, want ok %v", tt.pos, tt.n, err, tt.ok)
		}
	}
}

func TestMultiByteBoundaries(t *testing.T) {
	// "é" is two bytes; "aéb" is a, 0xC3 0xA9, b.
	d := New("aéb")
	tests := []struct {
		name   string
		pos, n int
		ok     bool
	}{
		{"whole rune", 1, 2, true},
		{"first half", 1, 1, false},
		{"second half", 2, 1, false},
		{"starts inside rune", 2, 2, false},
		{"empty inside rune", 2, 0, false},
		{"span across rune", 0, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Delete(tt.pos, tt.n)
			if (err == nil) != tt.ok {
				t.Errorf("Delete(%d, %d) error = %v, want ok %v", tt.pos, tt.n, err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Delete(%d, %d) error = %v, want %v", tt.pos, tt.n, err, ErrOutOfRange)
			}
		})
	}

	single := New("é")
	if _, err := single.Delete(0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Delete(0, 1) on %q error = %v, want %v", "é", err, ErrOutOfRange)
	}
	if err := single.Execute(NewEdit(0, "\xc3", "")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Execute() splitting a rune error = %v, want %v", err, ErrOutOfRange)
	}
	if err := single.Execute(NewInsert(1, "x")); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Execute() inserting inside a rune error = %v, want %v", err, ErrOutOfRange)
	}
	if err := single.Execute(NewInsert(0, "\xff")); !errors.Is(err, ErrInvalidText) {
		t.Errorf("Execute() with invalid text error = %v, want %v", err, ErrInvalidText)
	}
	if single.Text() != "é" || !utf8.ValidString(single.Text()) {
		t.Errorf("Text() = %q after rejected edits", single.Text())
	}
}

func TestInvert(t *testing.T) {
	e := NewEdit(3, "old", "new")
	inv := e.Invert()
	if inv.Old != "new" || inv.New != "old" || inv.Pos != 3 {
		t.Errorf("Invert() = %+v", inv)
	}
	if inv.ID != e.ID {
		t.Error("Invert() changed ID")
	}
	if e.BytesDelta() != 0 || NewInsert(0, "ab").BytesDelta() != 2 {
		t.Error("wrong BytesDelta")
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		edit Edit
		want string
	}{
		{NewInsert(0, "\n"), "Insert newline"},
		{NewInsert(2, "hi"), `Insert "hi" at 2`},
		{NewInsert(0, "this text is longer than twenty"), "Insert 31 characters at 0"},
		{NewEdit(1, "abc", ""), "Delete 3 characters at 1"},
		{NewEdit(1, "ab", "xyz"), "Replace 2 with 3 characters at 1"},
		{NewEdit(0, "", ""), "Empty edit"},
	}
	for _, tt := range tests {
		if got := tt.edit.Description(); got != tt.want {
			t.Errorf("Description() = %q, want %q", got, tt.want)
		}
	}
}

func TestHistoryOfEdits(t *testing.T) {
	d := New("")
	h := history.New[Edit](10)

	for _, s := range []string{"a", "b", "c"} {
		e := NewInsert(d.Len(), s)
		if err := d.Execute(e); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		h.Push(e)
	}

	_ = h.MoveBackward(d)
	_ = h.MoveBackward(d)
	if d.Text() != "a" {
		t.Errorf("Text() after two undos = %q, want \"a\"", d.Text())
	}

	_ = h.MoveForward(d)
	if d.Text() != "ab" {
		t.Errorf("Text() after redo = %q, want \"ab\"", d.Text())
	}

	// Tamper with the document so the next undo fails.
	d.text = "zz"
	if err := h.MoveBackward(d); !errors.Is(err, ErrMismatch) {
		t.Errorf("MoveBackward() error = %v, want %v", err, ErrMismatch)
	}
	if h.Cursor() != 2 {
		t.Errorf("Cursor() = %d after failed undo, want 2", h.Cursor())
	}
}
