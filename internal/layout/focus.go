package layout

// Focus is the single source of truth for what has keyboard focus: an
// output, a workspace on it, and optionally a tile in that workspace. Zero
// values mean "none". The engine never leaves a dangling reference here;
// any mutation that removes the focused entity reassigns focus before it
// returns.
type Focus struct {
	Output    OutputID
	Workspace WorkspaceID
	Tile      TileID
}

// Focus returns the current focus state.
func (e *Engine) Focus() Focus { return e.focus }

// FocusedTile returns the focused tile, or nil.
func (e *Engine) FocusedTile() *Tile {
	if e.focus.Tile == 0 {
		return nil
	}
	return e.tiles[e.focus.Tile]
}

// focusedWorkspace returns the workspace focus points at, or nil.
func (e *Engine) focusedWorkspace() *Workspace {
	if e.focus.Workspace == 0 {
		return nil
	}
	return e.workspaces[e.focus.Workspace]
}

// setFocusTile points focus at t and records it as its workspace's last
// focused tile. The output/workspace legs follow the tile so the invariant
// "tile belongs to workspace belongs to output" holds by construction.
func (e *Engine) setFocusTile(t *Tile) {
	if t == nil {
		e.focus.Tile = 0
		return
	}
	ws := e.workspaces[t.workspace]
	if ws == nil {
		return
	}
	e.focus = Focus{Output: ws.output, Workspace: ws.id, Tile: t.id}
	ws.lastFocused = t.id
	if !t.floating {
		if col := e.columns[t.column]; col != nil {
			if i := col.tileIndex(t.id); i >= 0 {
				col.active = i
			}
			if wi := ws.columnIndex(col.id); wi >= 0 {
				ws.activeColumn = wi
			}
		}
	}
}

// validateFocus repairs the focus state after a mutation. Each leg is
// checked against the arena; a broken leg falls back to the nearest valid
// ancestor, and the tile leg falls back through the workspace's active
// column and last-focused memory.
func (e *Engine) validateFocus() {
	// Output leg.
	if e.focus.Output == "" || e.outputs[e.focus.Output] == nil {
		ids := e.sortedOutputs()
		if len(ids) == 0 {
			e.focus = Focus{}
			return
		}
		e.focus.Output = ids[0]
		e.focus.Workspace = 0
	}
	m := e.monitors[e.focus.Output]

	// Workspace leg: must exist and belong to the focused output.
	ws := e.workspaces[e.focus.Workspace]
	if ws == nil || ws.output != e.focus.Output {
		e.focus.Workspace = m.ActiveWorkspace()
		ws = e.workspaces[e.focus.Workspace]
		e.focus.Tile = 0
	}
	if ws == nil {
		e.focus.Tile = 0
		return
	}

	// Tile leg: must be reachable from the workspace.
	if e.focus.Tile != 0 {
		t := e.tiles[e.focus.Tile]
		if t == nil || t.workspace != ws.id {
			e.focus.Tile = 0
		}
	}
	if e.focus.Tile == 0 {
		if t := e.fallbackTile(ws); t != nil {
			e.setFocusTile(t)
		}
	}
}

// fallbackTile picks the tile focus should land on for ws: the last focused
// tile if it still exists here, else the active tile of the active column,
// else the topmost floating tile, else nil.
func (e *Engine) fallbackTile(ws *Workspace) *Tile {
	if ws.lastFocused != 0 {
		if t := e.tiles[ws.lastFocused]; t != nil && t.workspace == ws.id {
			return t
		}
		ws.lastFocused = 0
	}
	if ws.activeColumn >= 0 && ws.activeColumn < len(ws.columns) {
		if col := e.columns[ws.columns[ws.activeColumn]]; col != nil && len(col.tiles) > 0 {
			i := col.active
			if i < 0 || i >= len(col.tiles) {
				i = 0
			}
			return e.tiles[col.tiles[i]]
		}
	}
	if n := len(ws.floating); n > 0 {
		return e.tiles[ws.floating[n-1]]
	}
	return nil
}
