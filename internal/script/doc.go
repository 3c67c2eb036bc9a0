// Package script runs Lua against a document and its edit history.
//
// Scripts run in a restricted gopher-lua state: only the base, table, string
// and math libraries are opened, and functions that load code from disk or
// strings are removed. A global "history" table exposes the history:
//
//	history.insert(0, "hello")   -- apply and record an edit
//	history.delete(0, 1)
//	history.replace(0, 4, "J")
//	history.undo()               -- true if a command was reverted
//	history.redo()
//	history.set_max_size(10)
//	print(history.text(), history.size(), history.cursor())
//	history.show()               -- print the log with a cursor marker
//
// Offsets are zero-based byte offsets into the document. Functions that
// apply or revert an edit return nil and a message if the document rejects
// it; argument errors raise Lua errors.
//
// A Runtime is not safe for concurrent use. It must be driven from the
// goroutine that owns the history.
package script
