package layout

import (
	"time"

	"github.com/strandwm/strand/internal/geometry"
)

// Workspace is one scrollable column strip plus its floating set. It belongs
// to exactly one output at a time; ownership moves wholesale during hotplug
// and through the detached pool.
type Workspace struct {
	id     WorkspaceID
	name   string
	output OutputID

	columns  []ColumnID
	floating []TileID // paint order, last on top

	// viewOffset is the horizontal scroll position of the strip: the strip
	// x coordinate that maps to the working area's left edge.
	viewOffset animated

	// activeColumn is the index focus lands on when this workspace becomes
	// active. Kept clamped to the column list at all times.
	activeColumn int

	// lastFocused remembers the most recently focused tile so close-window
	// has a fallback focus target.
	lastFocused TileID

	// closing holds ghosts of recently closed tiles that are still fading
	// out. They exist only for the render list; the model has already
	// forgotten the tile.
	closing []closingTile
}

// closingTile is the render-only remnant of a closed tile.
type closingTile struct {
	window   WindowID
	rect     geometry.Rect
	floating bool
	opacity  animated
}

// ID returns the workspace identifier.
func (ws *Workspace) ID() WorkspaceID { return ws.id }

// Name returns the user-visible workspace name, possibly empty.
func (ws *Workspace) Name() string { return ws.name }

// Output returns the owning output.
func (ws *Workspace) Output() OutputID { return ws.output }

// Columns returns the strip's column order.
func (ws *Workspace) Columns() []ColumnID { return ws.columns }

// IsEmpty reports whether the workspace holds no tiles at all, tiled or
// floating. Empty trailing workspaces are what keep the stack scrollable
// past its content.
func (ws *Workspace) IsEmpty() bool {
	return len(ws.columns) == 0 && len(ws.floating) == 0
}

// columnIndex returns the strip position of id, or -1.
func (ws *Workspace) columnIndex(id ColumnID) int {
	for i, c := range ws.columns {
		if c == id {
			return i
		}
	}
	return -1
}

// insertColumn places id at strip index i, clamped.
func (ws *Workspace) insertColumn(id ColumnID, i int) {
	if i < 0 {
		i = 0
	}
	if i > len(ws.columns) {
		i = len(ws.columns)
	}
	ws.columns = append(ws.columns, 0)
	copy(ws.columns[i+1:], ws.columns[i:])
	ws.columns[i] = id
}

// removeColumn deletes id from the strip, keeping activeColumn in range.
func (ws *Workspace) removeColumn(id ColumnID) {
	i := ws.columnIndex(id)
	if i < 0 {
		return
	}
	ws.columns = append(ws.columns[:i], ws.columns[i+1:]...)
	if ws.activeColumn > i || ws.activeColumn >= len(ws.columns) {
		ws.activeColumn--
	}
	if ws.activeColumn < 0 {
		ws.activeColumn = 0
	}
}

// removeFloating deletes id from the floating set and reports presence.
func (ws *Workspace) removeFloating(id TileID) bool {
	for i, t := range ws.floating {
		if t == id {
			ws.floating = append(ws.floating[:i], ws.floating[i+1:]...)
			return true
		}
	}
	return false
}

// columnX derives the strip x position of the column at index idx as a pure
// fold over the preceding columns' resolved widths plus gaps. Positions are
// never stored, so they cannot drift from the column order.
func (ws *Workspace) columnX(e *Engine, workW float64, idx int) float64 {
	x := 0.0
	for i := 0; i < idx && i < len(ws.columns); i++ {
		if col := e.columns[ws.columns[i]]; col != nil {
			x += col.resolveWidth(e, workW) + e.opts.Gap
		}
	}
	return x
}

// stripWidth derives the total width of the strip's content.
func (ws *Workspace) stripWidth(e *Engine, workW float64) float64 {
	if len(ws.columns) == 0 {
		return 0
	}
	w := ws.columnX(e, workW, len(ws.columns))
	return w - e.opts.Gap
}

// scrollToColumn retargets the view offset so the column at idx is fully
// visible, scrolling the minimum distance. A column wider than the working
// area gets centered instead.
func (ws *Workspace) scrollToColumn(e *Engine, workW float64, idx int) {
	if idx < 0 || idx >= len(ws.columns) {
		return
	}
	col := e.columns[ws.columns[idx]]
	if col == nil {
		return
	}
	colX := ws.columnX(e, workW, idx)
	colW := col.resolveWidth(e, workW)

	target := ws.viewOffset.Target()
	switch {
	case colW >= workW:
		target = colX - (workW-colW)/2
	case colX < target:
		target = colX
	case colX+colW > target+workW:
		target = colX + colW - workW
	default:
		return
	}
	ws.viewOffset.Set(target, e.opts.ScrollAnim)
}

// pruneClosing drops fade-out ghosts that have finished.
func (ws *Workspace) pruneClosing() {
	kept := ws.closing[:0]
	for i := range ws.closing {
		if ws.closing[i].opacity.Running() {
			kept = append(kept, ws.closing[i])
		}
	}
	ws.closing = kept
}

// tick advances the workspace's own animations (view offset and ghosts).
func (ws *Workspace) tick(dt time.Duration) {
	ws.viewOffset.Tick(dt)
	for i := range ws.closing {
		ws.closing[i].opacity.Tick(dt)
	}
	ws.pruneClosing()
}

// animating reports whether the workspace itself is mid-transition.
func (ws *Workspace) animating() bool {
	if ws.viewOffset.Running() {
		return true
	}
	return len(ws.closing) > 0
}
