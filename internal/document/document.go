package document

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/dshills/cmdlog/internal/history"
)

// Errors returned when an edit does not fit the document.
var (
	// ErrOutOfRange indicates an offset or length outside the document, or
	// an offset that falls inside a multi-byte character.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrInvalidText indicates inserted text that is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")

	// ErrMismatch indicates the document does not contain the text an edit expects.
	ErrMismatch = errors.New("document text does not match edit")
)

// Document is an in-memory text buffer.
// It executes and reverts Edits for a history.History[Edit].
type Document struct {
	text string
}

// New creates a document holding text.
func New(text string) *Document {
	return &Document{text: text}
}

// Text returns the document contents.
func (d *Document) Text() string {
	return d.text
}

// Len returns the document length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Execute applies e. The document must contain e.Old at e.Pos.
func (d *Document) Execute(e Edit) error {
	if err := d.apply(e); err != nil {
		return fmt.Errorf("apply %q: %w", e.Description(), err)
	}
	return nil
}

// Revert undoes e by applying its inverse. The document must contain e.New
// at e.Pos.
func (d *Document) Revert(e Edit) error {
	if err := d.apply(e.Invert()); err != nil {
		return fmt.Errorf("revert %q: %w", e.Description(), err)
	}
	return nil
}

// Delete creates an edit removing n bytes at pos, capturing the removed text.
// The edit is not applied.
func (d *Document) Delete(pos, n int) (Edit, error) {
	return d.Replace(pos, n, "")
}

// Replace creates an edit replacing n bytes at pos with text, capturing the
// replaced text. The edit is not applied.
func (d *Document) Replace(pos, n int, text string) (Edit, error) {
	if err := d.checkRange(pos, n); err != nil {
		return Edit{}, err
	}
	return NewEdit(pos, d.text[pos:pos+n], text), nil
}

// apply replaces e.Old with e.New at e.Pos.
func (d *Document) apply(e Edit) error {
	if err := d.checkRange(e.Pos, len(e.Old)); err != nil {
		return err
	}
	if d.text[e.Pos:e.Pos+len(e.Old)] != e.Old {
		return fmt.Errorf("at offset %d: %w", e.Pos, ErrMismatch)
	}
	if !utf8.ValidString(e.New) {
		return ErrInvalidText
	}
	d.text = d.text[:e.Pos] + e.New + d.text[e.Pos+len(e.Old):]
	return nil
}

// checkRange reports whether [pos, pos+n) lies in the document with both
// ends on character boundaries.
func (d *Document) checkRange(pos, n int) error {
	if pos < 0 || n < 0 || pos > len(d.text) || n > len(d.text)-pos ||
		!d.boundary(pos) || !d.boundary(pos+n) {
		return fmt.Errorf("range [%d,%d) in document of length %d: %w", pos, pos+n, len(d.text), ErrOutOfRange)
	}
	return nil
}

func (d *Document) boundary(off int) bool {
	return off == len(d.text) || utf8.RuneStart(d.text[off])
}

// Ensure Document can drive a history of edits.
var (
	_ history.Executor[Edit] = (*Document)(nil)
	_ history.Reverter[Edit] = (*Document)(nil)
)
