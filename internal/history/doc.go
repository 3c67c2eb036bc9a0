// Package history provides a bounded, linear undo/redo log of commands.
//
// The log records opaque command values of any type and keeps a cursor that
// separates applied commands from redo candidates. Applying and reverting a
// command is delegated to caller-supplied capabilities, so the log never needs
// to know what a command does.
//
// # Commands
//
// A command is any value. The History only stores it. Its effect is performed by
// an Executor (redo) or a Reverter (undo) passed at each navigation call:
//
//	h := history.New[Edit](1000) // Keep at most 1000 commands
//
//	h.Push(edit)        // Record an edit the caller already applied
//	h.MoveBackward(doc) // Undo: doc.Revert(edit)
//	h.MoveForward(doc)  // Redo: doc.Execute(edit)
//
// # Linear History
//
// Pushing after one or more undos discards every command after the cursor.
// There is no redo tree.
//
// # Capacity
//
// When a push or a capacity change leaves more commands than MaxSize, the
// oldest commands are evicted and the cursor shifts down with them. A capacity
// of zero turns Push into a no-op.
//
// # Positions
//
// Current returns a Position naming the last applied command. Positions are
// resolved against the log on every access, so a Position whose command has
// since been evicted or truncated simply stops resolving.
//
// A History is not safe for concurrent use.
package history
