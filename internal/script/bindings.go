package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/cmdlog/internal/document"
	"github.com/dshills/cmdlog/internal/panel"
)

// registerHistory installs the global history table.
func (r *Runtime) registerHistory() {
	funcs := map[string]lua.LGFunction{
		"insert":          r.luaInsert,
		"append":          r.luaAppend,
		"delete":          r.luaDelete,
		"replace":         r.luaReplace,
		"undo":            r.luaUndo,
		"redo":            r.luaRedo,
		"can_undo":        r.luaCanUndo,
		"can_redo":        r.luaCanRedo,
		"size":            r.luaSize,
		"cursor":          r.luaCursor,
		"undo_count":      r.luaUndoCount,
		"redo_count":      r.luaRedoCount,
		"max_size":        r.luaMaxSize,
		"set_max_size":    r.luaSetMaxSize,
		"text":            r.luaText,
		"commands":        r.luaCommands,
		"since_last_push": r.luaSinceLastPush,
		"last_push":       r.luaLastPush,
		"show":            r.luaShow,
		"clear":           r.luaClear,
	}
	r.L.SetGlobal("history", r.L.SetFuncs(r.L.NewTable(), funcs))
}

// charge counts one history call against the budget.
func (r *Runtime) charge(L *lua.LState) {
	r.calls++
	if r.callLimit > 0 && r.calls > r.callLimit {
		L.RaiseError("%s", ErrCallLimit.Error())
	}
}

// fail returns nil and the error message to Lua.
func fail(L *lua.LState, err error) int {
	L.Push(lua.LNil)
	L.Push(lua.LString(err.Error()))
	return 2
}

// apply executes e on the document and records it.
func (r *Runtime) apply(L *lua.LState, e document.Edit) int {
	if err := r.doc.Execute(e); err != nil {
		r.log.Debug("edit rejected: %v", err)
		return fail(L, err)
	}
	r.tracked.Push(e)
	L.Push(lua.LTrue)
	return 1
}

func (r *Runtime) luaInsert(L *lua.LState) int {
	r.charge(L)
	pos := L.CheckInt(1)
	text := L.CheckString(2)
	return r.apply(L, document.NewInsert(pos, text))
}

// luaAppend inserts text at the end of the document.
func (r *Runtime) luaAppend(L *lua.LState) int {
	r.charge(L)
	text := L.CheckString(1)
	return r.apply(L, document.NewInsert(r.doc.Len(), text))
}

func (r *Runtime) luaDelete(L *lua.LState) int {
	r.charge(L)
	pos := L.CheckInt(1)
	n := L.CheckInt(2)
	e, err := r.doc.Delete(pos, n)
	if err != nil {
		return fail(L, err)
	}
	return r.apply(L, e)
}

func (r *Runtime) luaReplace(L *lua.LState) int {
	r.charge(L)
	pos := L.CheckInt(1)
	n := L.CheckInt(2)
	text := L.CheckString(3)
	e, err := r.doc.Replace(pos, n, text)
	if err != nil {
		return fail(L, err)
	}
	return r.apply(L, e)
}

func (r *Runtime) luaUndo(L *lua.LState) int {
	r.charge(L)
	h := r.tracked.History()
	before := h.Cursor()
	if err := r.tracked.MoveBackward(r.doc); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LBool(h.Cursor() != before))
	return 1
}

func (r *Runtime) luaRedo(L *lua.LState) int {
	r.charge(L)
	h := r.tracked.History()
	before := h.Cursor()
	if err := r.tracked.MoveForward(r.doc); err != nil {
		return fail(L, err)
	}
	L.Push(lua.LBool(h.Cursor() != before))
	return 1
}

func (r *Runtime) luaCanUndo(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LBool(r.tracked.History().CanUndo()))
	return 1
}

func (r *Runtime) luaCanRedo(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LBool(r.tracked.History().CanRedo()))
	return 1
}

func (r *Runtime) luaSize(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(r.tracked.History().Size()))
	return 1
}

func (r *Runtime) luaCursor(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(r.tracked.History().Cursor()))
	return 1
}

func (r *Runtime) luaUndoCount(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(r.tracked.History().UndoCount()))
	return 1
}

func (r *Runtime) luaRedoCount(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(r.tracked.History().RedoCount()))
	return 1
}

func (r *Runtime) luaMaxSize(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(r.tracked.History().MaxSize()))
	return 1
}

func (r *Runtime) luaSetMaxSize(L *lua.LState) int {
	r.charge(L)
	n := L.CheckInt(1)
	if n < 0 {
		L.ArgError(1, "max size must not be negative")
	}
	r.tracked.SetMaxSize(n)
	return 0
}

func (r *Runtime) luaText(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LString(r.doc.Text()))
	return 1
}

// luaCommands returns an array of {id, text, applied, current, delta, time}
// tables. time is in Unix seconds.
func (r *Runtime) luaCommands(L *lua.LState) int {
	r.charge(L)
	h := r.tracked.History()

	tbl := L.NewTable()
	for _, entry := range panel.Entries(h, document.Edit.Description) {
		row := L.NewTable()
		if e, ok := h.At(entry.Position); ok {
			row.RawSetString("id", lua.LString(e.ID.String()))
			row.RawSetString("delta", lua.LNumber(e.BytesDelta()))
			row.RawSetString("time", lua.LNumber(float64(e.Timestamp.UnixMilli())/1000))
		}
		row.RawSetString("text", lua.LString(entry.Text))
		row.RawSetString("applied", lua.LBool(entry.Applied))
		row.RawSetString("current", lua.LBool(entry.Current))
		tbl.Append(row)
	}
	L.Push(tbl)
	return 1
}

func (r *Runtime) luaClear(L *lua.LState) int {
	r.charge(L)
	r.tracked.Clear()
	return 0
}

// luaLastPush returns the last push time in Unix seconds.
func (r *Runtime) luaLastPush(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(float64(r.tracked.Panel().LastPush().UnixMilli()) / 1000))
	return 1
}

func (r *Runtime) luaSinceLastPush(L *lua.LState) int {
	r.charge(L)
	L.Push(lua.LNumber(r.tracked.Panel().TimeSinceLastPush().Seconds()))
	return 1
}

// luaShow prints the log oldest first with a marker between applied and
// pending commands.
func (r *Runtime) luaShow(L *lua.LState) int {
	r.charge(L)
	h := r.tracked.History()

	fmt.Fprintf(r.out, "history %d/%d, cursor %d\n", h.Size(), h.MaxSize(), h.Cursor())
	entries := panel.Entries(h, document.Edit.Description)
	marked := false
	for _, e := range entries {
		if !marked && !e.Applied {
			fmt.Fprintln(r.out, "  ----")
			marked = true
		}
		fmt.Fprintf(r.out, "  %3d %s\n", e.Index+1, e.Text)
	}
	if !marked {
		fmt.Fprintln(r.out, "  ----")
	}
	return 0
}
