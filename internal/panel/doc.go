// Package panel holds the state a history view keeps alongside a
// history.History: when the last command was pushed and the capacity the user
// is currently editing. None of it lives inside the history itself.
//
// Tracked bundles a history with its panel state so callers that always push
// through the view get the timestamp bookkeeping for free:
//
//	t := panel.NewTracked[document.Edit](panel.DefaultMaxSize, logger)
//	t.Push(edit)
//	t.MoveBackward(doc)
//	entries := panel.Entries(t.History(), document.Edit.Description)
package panel
