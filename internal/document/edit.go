// Package document provides a plain-text document whose edits can be
// recorded in a history.History.
package document

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Edit is a single reversible change to a Document.
// It replaces Old with New at byte offset Pos.
type Edit struct {
	ID  uuid.UUID
	Pos int // Byte offset of the change
	Old string
	New string

	Timestamp time.Time
}

// NewEdit creates an edit replacing oldText with newText at pos.
func NewEdit(pos int, oldText, newText string) Edit {
	return Edit{
		ID:        uuid.New(),
		Pos:       pos,
		Old:       oldText,
		New:       newText,
		Timestamp: time.Now(),
	}
}

// NewInsert creates an edit inserting text at pos.
func NewInsert(pos int, text string) Edit {
	return NewEdit(pos, "", text)
}

// IsInsert returns true if the edit only adds text.
func (e Edit) IsInsert() bool {
	return e.Old == "" && e.New != ""
}

// IsDelete returns true if the edit only removes text.
func (e Edit) IsDelete() bool {
	return e.Old != "" && e.New == ""
}

// BytesDelta returns the change in document length when the edit is applied.
func (e Edit) BytesDelta() int {
	return len(e.New) - len(e.Old)
}

// Invert returns the edit that undoes e. The inverse keeps the same ID.
func (e Edit) Invert() Edit {
	return Edit{
		ID:        e.ID,
		Pos:       e.Pos,
		Old:       e.New,
		New:       e.Old,
		Timestamp: e.Timestamp,
	}
}

// Description returns a human-readable description.
func (e Edit) Description() string {
	switch {
	case e.IsInsert():
		if e.New == "\n" {
			return "Insert newline"
		}
		if utf8.RuneCountInString(e.New) <= 20 {
			return fmt.Sprintf("Insert %q at %d", e.New, e.Pos)
		}
		return fmt.Sprintf("Insert %d characters at %d", utf8.RuneCountInString(e.New), e.Pos)
	case e.IsDelete():
		return fmt.Sprintf("Delete %d characters at %d", utf8.RuneCountInString(e.Old), e.Pos)
	case e.Old == "" && e.New == "":
		return "Empty edit"
	default:
		return fmt.Sprintf("Replace %d with %d characters at %d",
			utf8.RuneCountInString(e.Old), utf8.RuneCountInString(e.New), e.Pos)
	}
}
