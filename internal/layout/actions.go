package layout

import (
	"github.com/strandwm/strand/internal/geometry"
)

// Actions are the engine's public mutation surface. Every operation
// validates its preconditions and degrades to a no-op when they fail;
// an action naming a tile that a concurrent close already removed is an
// expected race, not an error. Every mutating operation ends the same way:
// recompute derived positions, retarget changed animations, re-validate
// focus.

// ColumnWidth is a width request for a new column, typically resolved from
// a window rule.
type ColumnWidth struct {
	Mode  WidthMode
	Value float64 // proportion for WidthProportional, logical px for WidthFixed
}

// OpenRequest describes a new window arriving from the protocol layer.
type OpenRequest struct {
	Window WindowID

	// Output is a placement hint. Empty or unknown falls back to the
	// focused output.
	Output OutputID

	// Width overrides the default column width, e.g. from a window rule.
	Width *ColumnWidth

	// ContentSize is the client's initial committed size, if known.
	ContentSize geometry.Size
}

// OpenWindow inserts a new tile into a new column immediately after the
// focused column (or as the first column of an empty workspace), focuses
// it, and starts its insertion animation from a shrunk starting geometry.
// Returns the new tile's id, or 0 when no output is connected.
func (e *Engine) OpenWindow(req OpenRequest) TileID {
	outID := req.Output
	if _, ok := e.outputs[outID]; !ok {
		outID = e.focus.Output
	}
	m := e.monitors[outID]
	if m == nil {
		return 0
	}
	ws := e.workspaces[m.ActiveWorkspace()]
	if ws == nil {
		return 0
	}

	t := e.newTile(req.Window, ws.id)
	t.contentSize = req.ContentSize

	col := e.newColumn(ws)
	if req.Width != nil {
		switch req.Width.Mode {
		case WidthFixed:
			col.setFixedWidth(req.Width.Value)
		case WidthProportional:
			col.proportion = req.Width.Value
		case WidthAuto:
			col.mode = WidthAuto
		}
	}
	col.tiles = []TileID{t.id}
	t.column = col.id

	at := ws.activeColumn + 1
	if len(ws.columns) == 0 {
		at = 0
	}
	ws.insertColumn(col.id, at)
	ws.activeColumn = ws.columnIndex(col.id)

	e.maintainStack(m)
	e.layoutWorkspace(ws)

	// Insertion animation: grow out of a shrunk version of the resolved
	// geometry while fading in.
	resolved := t.targetRect()
	start := geometry.Rect{
		X:      resolved.X + resolved.Width*0.1,
		Y:      resolved.Y + resolved.Height*0.1,
		Width:  resolved.Width * 0.8,
		Height: resolved.Height * 0.8,
	}
	t.snapTo(start)
	t.setTarget(resolved, e.opts.MoveAnim, e.opts.ResizeAnim)
	t.opacity.Snap(0)
	t.opacity.Set(1, e.opts.FadeAnim)

	e.setFocusTile(t)
	if out := e.outputs[ws.output]; out != nil {
		ws.scrollToColumn(e, out.WorkArea().Width, ws.activeColumn)
	}
	e.validateFocus()
	return t.id
}

// CloseWindow removes a tile from the layout. If it held focus, focus moves
// to the next tile in the same column, else the same-index tile in a
// neighboring column, else the workspace's last focused tile, else none.
// Column and workspace cleanup follow the lifecycle rules.
func (e *Engine) CloseWindow(id TileID) {
	t := e.tiles[id]
	if t == nil {
		return
	}
	ws := e.workspaces[t.workspace]
	if ws == nil {
		delete(e.tiles, id)
		return
	}

	// Leave a fade-out ghost for the render list.
	ghost := closingTile{window: t.window, rect: t.currentRect(), floating: t.floating, opacity: newAnimated(t.opacity.Current())}
	ghost.opacity.Set(0, e.opts.FadeAnim)
	if ghost.opacity.Running() {
		ws.closing = append(ws.closing, ghost)
	}

	hadFocus := e.focus.Tile == id
	var next *Tile
	if hadFocus {
		next = e.closeFocusSuccessor(ws, t)
	}

	e.detachTile(t)
	delete(e.tiles, id)
	if ws.lastFocused == id {
		ws.lastFocused = 0
	}
	if e.focus.Tile == id {
		e.focus.Tile = 0
	}

	if m := e.monitors[ws.output]; m != nil {
		e.maintainStack(m)
	}
	if e.workspaces[ws.id] != nil {
		e.layoutWorkspace(ws)
	}
	if hadFocus && next != nil && e.tiles[next.id] != nil {
		e.setFocusTile(next)
	}
	e.validateFocus()
}

// WindowClosed handles the protocol layer reporting that a handle is gone,
// which the engine treats as an implicit close. Unknown handles are quietly
// ignored: the window may never have been mapped.
func (e *Engine) WindowClosed(win WindowID) {
	for id, t := range e.tiles {
		if t.window == win {
			e.CloseWindow(id)
			return
		}
	}
}

// closeFocusSuccessor picks the tile that inherits focus when t closes.
func (e *Engine) closeFocusSuccessor(ws *Workspace, t *Tile) *Tile {
	if t.floating {
		for i := len(ws.floating) - 1; i >= 0; i-- {
			if ws.floating[i] != t.id {
				return e.tiles[ws.floating[i]]
			}
		}
		return e.fallbackTile(ws)
	}
	col := e.columns[t.column]
	if col == nil {
		return nil
	}
	idx := col.tileIndex(t.id)

	// Next tile in the same column (the one after, else the one before).
	if len(col.tiles) > 1 {
		next := idx + 1
		if next >= len(col.tiles) {
			next = idx - 1
		}
		return e.tiles[col.tiles[next]]
	}

	// Same-index tile in the neighboring column.
	ci := ws.columnIndex(col.id)
	for _, ni := range []int{ci + 1, ci - 1} {
		if ni < 0 || ni >= len(ws.columns) {
			continue
		}
		ncol := e.columns[ws.columns[ni]]
		if ncol == nil || len(ncol.tiles) == 0 {
			continue
		}
		ti := idx
		if ti >= len(ncol.tiles) {
			ti = len(ncol.tiles) - 1
		}
		if ti < 0 {
			ti = 0
		}
		return e.tiles[ncol.tiles[ti]]
	}

	// Workspace's last focused tile, else none.
	if ws.lastFocused != 0 && ws.lastFocused != t.id {
		if lt := e.tiles[ws.lastFocused]; lt != nil && lt.workspace == ws.id {
			return lt
		}
	}
	return nil
}

// detachTile unlinks t from its column or floating set, destroying a
// now-empty column. The tile itself stays in the arena; callers decide
// whether it dies or re-parents.
func (e *Engine) detachTile(t *Tile) {
	ws := e.workspaces[t.workspace]
	if ws == nil {
		return
	}
	if t.floating {
		ws.removeFloating(t.id)
		return
	}
	if col := e.columns[t.column]; col != nil {
		col.removeTile(t.id)
		if len(col.tiles) == 0 {
			e.destroyColumn(col)
		}
	}
	t.column = 0
}

// ---- focus navigation ----

// FocusColumnLeft moves focus to the previous column. At the strip's left
// edge it is a no-op unless wrap is set.
func (e *Engine) FocusColumnLeft(wrap bool) { e.focusColumnDelta(-1, wrap) }

// FocusColumnRight moves focus to the next column. At the strip's right
// edge it is a no-op unless wrap is set.
func (e *Engine) FocusColumnRight(wrap bool) { e.focusColumnDelta(+1, wrap) }

func (e *Engine) focusColumnDelta(d int, wrap bool) {
	ws := e.focusedWorkspace()
	if ws == nil || len(ws.columns) == 0 {
		return
	}
	n := len(ws.columns)
	idx := ws.activeColumn + d
	if idx < 0 || idx >= n {
		if !wrap {
			return
		}
		idx = ((idx % n) + n) % n
	}
	col := e.columns[ws.columns[idx]]
	if col == nil || len(col.tiles) == 0 {
		return
	}
	ti := col.active
	if ti < 0 || ti >= len(col.tiles) {
		ti = 0
	}
	e.setFocusTile(e.tiles[col.tiles[ti]])
	if out := e.outputs[ws.output]; out != nil {
		ws.scrollToColumn(e, out.WorkArea().Width, idx)
	}
}

// FocusWindowUp moves focus to the tile above within the focused column.
func (e *Engine) FocusWindowUp(wrap bool) { e.focusWindowDelta(-1, wrap) }

// FocusWindowDown moves focus to the tile below within the focused column.
func (e *Engine) FocusWindowDown(wrap bool) { e.focusWindowDelta(+1, wrap) }

func (e *Engine) focusWindowDelta(d int, wrap bool) {
	t := e.FocusedTile()
	if t == nil || t.floating {
		return
	}
	col := e.columns[t.column]
	if col == nil {
		return
	}
	n := len(col.tiles)
	idx := col.tileIndex(t.id) + d
	if idx < 0 || idx >= n {
		if !wrap {
			return
		}
		idx = ((idx % n) + n) % n
	}
	e.setFocusTile(e.tiles[col.tiles[idx]])
}

// FocusTile points focus at an arbitrary tile, e.g. from pointer hit
// testing, and scrolls its column into view.
func (e *Engine) FocusTile(id TileID) {
	t := e.tiles[id]
	if t == nil {
		return
	}
	e.setFocusTile(t)
	ws := e.workspaces[t.workspace]
	if ws == nil || t.floating {
		return
	}
	if out := e.outputs[ws.output]; out != nil {
		if col := e.columns[t.column]; col != nil {
			ws.scrollToColumn(e, out.WorkArea().Width, ws.columnIndex(col.id))
		}
	}
}

// ---- moving windows within the strip ----

// MoveWindowLeft moves the focused tile one column slot to the left: a
// column of one leapfrogs the neighbor, otherwise the tile is extracted
// into a new column at the adjacent position.
func (e *Engine) MoveWindowLeft() { e.moveWindowDelta(-1) }

// MoveWindowRight is the mirror of MoveWindowLeft.
func (e *Engine) MoveWindowRight() { e.moveWindowDelta(+1) }

func (e *Engine) moveWindowDelta(d int) {
	t := e.FocusedTile()
	if t == nil || t.floating {
		return
	}
	ws := e.workspaces[t.workspace]
	col := e.columns[t.column]
	if ws == nil || col == nil {
		return
	}
	ci := ws.columnIndex(col.id)
	ni := ci + d

	if len(col.tiles) == 1 {
		// Column leapfrog.
		if ni < 0 || ni >= len(ws.columns) {
			return
		}
		ws.columns[ci], ws.columns[ni] = ws.columns[ni], ws.columns[ci]
		ws.activeColumn = ni
	} else {
		// Extract into a new column beside this one.
		col.removeTile(t.id)
		nc := e.newColumn(ws)
		nc.tiles = []TileID{t.id}
		t.column = nc.id
		at := ci
		if d > 0 {
			at = ci + 1
		}
		ws.insertColumn(nc.id, at)
		ws.activeColumn = ws.columnIndex(nc.id)
	}

	e.layoutWorkspace(ws)
	e.setFocusTile(t)
	if out := e.outputs[ws.output]; out != nil {
		ws.scrollToColumn(e, out.WorkArea().Width, ws.activeColumn)
	}
	e.validateFocus()
}

// ConsumeWindowLeft merges the focused window into the bottom of the
// column to its left, emptying (and thus destroying) its own column when it
// was alone there.
func (e *Engine) ConsumeWindowLeft() {
	t := e.FocusedTile()
	if t == nil || t.floating {
		return
	}
	ws := e.workspaces[t.workspace]
	col := e.columns[t.column]
	if ws == nil || col == nil {
		return
	}
	ci := ws.columnIndex(col.id)
	if ci <= 0 {
		return
	}
	dest := e.columns[ws.columns[ci-1]]
	if dest == nil {
		return
	}
	e.detachTile(t)
	dest.insertTile(t.id, len(dest.tiles))
	t.column = dest.id
	dest.active = len(dest.tiles) - 1

	e.layoutWorkspace(ws)
	e.setFocusTile(t)
	if out := e.outputs[ws.output]; out != nil {
		ws.scrollToColumn(e, out.WorkArea().Width, ws.columnIndex(dest.id))
	}
	e.validateFocus()
}

// ExpelWindowRight extracts the focused window from a shared column into
// its own new column on the right. A window already alone in its column
// stays put.
func (e *Engine) ExpelWindowRight() {
	t := e.FocusedTile()
	if t == nil || t.floating {
		return
	}
	col := e.columns[t.column]
	if col == nil || len(col.tiles) < 2 {
		return
	}
	e.moveWindowDelta(+1)
}

// MoveWindowUp swaps the focused tile with the one above it in its column.
func (e *Engine) MoveWindowUp() { e.moveWindowVertical(-1) }

// MoveWindowDown swaps the focused tile with the one below it in its column.
func (e *Engine) MoveWindowDown() { e.moveWindowVertical(+1) }

func (e *Engine) moveWindowVertical(d int) {
	t := e.FocusedTile()
	if t == nil || t.floating {
		return
	}
	ws := e.workspaces[t.workspace]
	col := e.columns[t.column]
	if ws == nil || col == nil {
		return
	}
	i := col.tileIndex(t.id)
	j := i + d
	if j < 0 || j >= len(col.tiles) {
		return
	}
	col.tiles[i], col.tiles[j] = col.tiles[j], col.tiles[i]
	col.active = j
	e.layoutWorkspace(ws)
	e.validateFocus()
}

// ---- sizing ----

// ResizeColumn adjusts the width of the column holding the given tile by
// delta logical px. A proportional or auto column converts to fixed at its
// current resolved width first, so a second resize never re-reads the
// original policy. Other columns are unaffected; there is no push or
// shrink propagation.
func (e *Engine) ResizeColumn(id TileID, delta float64) {
	t := e.tiles[id]
	if t == nil || t.floating {
		return
	}
	ws := e.workspaces[t.workspace]
	col := e.columns[t.column]
	if ws == nil || col == nil {
		return
	}
	out := e.outputs[ws.output]
	if out == nil {
		return
	}
	work := out.WorkArea()

	base := col.resolveWidth(e, work.Width)
	maxW := e.opts.MaxColumnWidth
	if maxW <= 0 || maxW > work.Width {
		maxW = work.Width
	}
	col.setFixedWidth(geometry.Clamp(base+delta, e.opts.MinColumnWidth, maxW))

	e.layoutWorkspace(ws)
	ws.scrollToColumn(e, work.Width, ws.columnIndex(col.id))
	e.validateFocus()
}

// SetTileHeight gives a tile an explicit manual height in logical px,
// clamping to what its column can satisfy. The remaining auto tiles in the
// column re-split the leftover space. A value <= 0 returns the tile to
// automatic height.
func (e *Engine) SetTileHeight(id TileID, h float64) {
	t := e.tiles[id]
	if t == nil || t.floating {
		return
	}
	ws := e.workspaces[t.workspace]
	if ws == nil {
		return
	}
	if h <= 0 {
		t.manualHeight = 0
	} else {
		t.manualHeight = geometry.Clamp(h, e.opts.MinTileHeight, h)
	}
	e.layoutWorkspace(ws)
	e.validateFocus()
}

// SetContentSize records a client's newly committed buffer size. Auto-width
// columns resolve against it on the next layout pass, which runs
// immediately.
func (e *Engine) SetContentSize(id TileID, size geometry.Size) {
	t := e.tiles[id]
	if t == nil {
		return
	}
	t.contentSize = size
	if ws := e.workspaces[t.workspace]; ws != nil {
		e.layoutWorkspace(ws)
	}
}

// ---- workspace switching ----

// FocusWorkspaceUp activates the workspace above the current one on the
// focused output, clamping at the top of the stack.
func (e *Engine) FocusWorkspaceUp() { e.switchWorkspaceDelta(-1) }

// FocusWorkspaceDown activates the workspace below, clamping at the
// trailing empty workspace.
func (e *Engine) FocusWorkspaceDown() { e.switchWorkspaceDelta(+1) }

func (e *Engine) switchWorkspaceDelta(d int) {
	m := e.monitors[e.focus.Output]
	if m == nil {
		return
	}
	e.SwitchToWorkspace(m.active + d)
}

// SwitchToWorkspace activates the workspace at idx on the focused output,
// clamped into the stack, and starts the vertical switch animation.
func (e *Engine) SwitchToWorkspace(idx int) {
	m := e.monitors[e.focus.Output]
	if m == nil {
		return
	}
	m.setActive(idx, e.opts.SwitchAnim)
	ws := e.workspaces[m.ActiveWorkspace()]
	if ws == nil {
		return
	}
	e.focus.Workspace = ws.id
	e.focus.Tile = 0
	if t := e.fallbackTile(ws); t != nil {
		e.setFocusTile(t)
	}
	e.validateFocus()
}

// ---- re-parenting ----

// MoveWindowToWorkspace re-parents a tile into the destination workspace,
// appended after its currently focused column. A vanished destination falls
// back to the active workspace of the focused output.
func (e *Engine) MoveWindowToWorkspace(id TileID, dest WorkspaceID) {
	t := e.tiles[id]
	if t == nil {
		return
	}
	ws := e.workspaces[dest]
	if ws == nil {
		if m := e.monitors[e.focus.Output]; m != nil {
			ws = e.workspaces[m.ActiveWorkspace()]
		}
	}
	if ws == nil || ws.id == t.workspace {
		return
	}
	e.reparentTile(t, ws)
}

// MoveWindowToOutput re-parents a tile into the active workspace of the
// given output. An unknown output falls back to the focused one.
func (e *Engine) MoveWindowToOutput(id TileID, dest OutputID) {
	t := e.tiles[id]
	if t == nil {
		return
	}
	m := e.monitors[dest]
	if m == nil {
		m = e.monitors[e.focus.Output]
	}
	if m == nil {
		return
	}
	ws := e.workspaces[m.ActiveWorkspace()]
	if ws == nil || ws.id == t.workspace {
		return
	}
	e.reparentTile(t, ws)
}

// reparentTile moves t from its source workspace into dest, running the
// source's lifecycle cleanup and both workspaces' layout passes.
func (e *Engine) reparentTile(t *Tile, dest *Workspace) {
	src := e.workspaces[t.workspace]
	e.detachTile(t)
	t.workspace = dest.id

	if t.floating {
		dest.floating = append(dest.floating, t.id)
	} else {
		col := e.newColumn(dest)
		col.tiles = []TileID{t.id}
		t.column = col.id
		at := dest.activeColumn + 1
		if len(dest.columns) == 0 {
			at = 0
		}
		dest.insertColumn(col.id, at)
		dest.activeColumn = dest.columnIndex(col.id)
	}

	// Focus follows the window, which also activates the destination
	// workspace on its monitor so the emptied source can be reaped.
	e.setFocusTile(t)
	if m := e.monitors[dest.output]; m != nil {
		if idx := m.workspaceIndex(dest.id); idx >= 0 {
			m.setActive(idx, e.opts.SwitchAnim)
		}
	}

	if src != nil {
		if src.lastFocused == t.id {
			src.lastFocused = 0
		}
		if m := e.monitors[src.output]; m != nil {
			e.maintainStack(m)
		}
		if e.workspaces[src.id] != nil {
			e.layoutWorkspace(src)
		}
	}
	if m := e.monitors[dest.output]; m != nil {
		e.maintainStack(m)
	}
	e.layoutWorkspace(dest)
	if out := e.outputs[dest.output]; out != nil && !t.floating {
		dest.scrollToColumn(e, out.WorkArea().Width, dest.activeColumn)
	}
	e.validateFocus()
}

// ---- per-tile overrides ----

// SetFullscreen toggles the fullscreen override. A fullscreen tile paints
// at full working-area size above its column without altering the column's
// stored width or the tile's manual height, so leaving fullscreen restores
// the exact prior geometry.
func (e *Engine) SetFullscreen(id TileID, on bool) {
	t := e.tiles[id]
	if t == nil || t.fullscreen == on {
		return
	}
	t.fullscreen = on
	if ws := e.workspaces[t.workspace]; ws != nil {
		e.layoutWorkspace(ws)
	}
	e.validateFocus()
}

// ToggleFloating moves a tile between its column and the workspace's
// floating set. The tile keeps its last known size; a first-time float
// centers on the workspace, later floats restore the cached position.
func (e *Engine) ToggleFloating(id TileID) {
	t := e.tiles[id]
	if t == nil {
		return
	}
	ws := e.workspaces[t.workspace]
	if ws == nil {
		return
	}

	if t.floating {
		// Back into the tiled layout: remember where it floated.
		cur := t.targetRect()
		t.floatingPos = &geometry.Point{X: cur.X, Y: cur.Y}
		t.floatingSize = cur.Size()
		ws.removeFloating(t.id)
		t.floating = false

		col := e.newColumn(ws)
		col.tiles = []TileID{t.id}
		t.column = col.id
		at := ws.activeColumn + 1
		if len(ws.columns) == 0 {
			at = 0
		}
		ws.insertColumn(col.id, at)
		ws.activeColumn = ws.columnIndex(col.id)
	} else {
		// Out of the tiled layout, preserving the last tiled size.
		cur := t.targetRect()
		if t.floatingSize.Width <= 0 {
			t.floatingSize = cur.Size()
		}
		e.detachTile(t)
		t.floating = true
		ws.floating = append(ws.floating, t.id)
	}

	if m := e.monitors[ws.output]; m != nil {
		e.maintainStack(m)
	}
	e.layoutWorkspace(ws)
	e.setFocusTile(t)
	e.validateFocus()
}

// MoveFloating repositions a floating tile, e.g. from an interactive move.
// The position is cached so later float toggles restore it.
func (e *Engine) MoveFloating(id TileID, pos geometry.Point) {
	t := e.tiles[id]
	if t == nil || !t.floating {
		return
	}
	t.floatingPos = &geometry.Point{X: pos.X, Y: pos.Y}
	if ws := e.workspaces[t.workspace]; ws != nil {
		e.layoutWorkspace(ws)
	}
}
