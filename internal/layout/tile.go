package layout

import (
	"time"

	"github.com/strandwm/strand/internal/geometry"
)

// Tile wraps one window in the layout. While tiled it belongs to exactly one
// column; while floating it belongs to its workspace directly and is painted
// above every tiled tile.
//
// A tile's resolved (target) geometry is always derived from the column
// list, width policies, and height distribution, never stored as
// independently mutable state. The only per-tile geometry the engine owns is
// the animated current value of each scalar, which trails the derived target.
type Tile struct {
	id        TileID
	window    WindowID
	column    ColumnID    // zero while floating
	workspace WorkspaceID

	floating   bool
	fullscreen bool

	// manualHeight is an explicit user height in logical px, 0 = auto.
	manualHeight float64

	// contentSize is the last-known size of the client's committed buffer,
	// used by auto-width columns.
	contentSize geometry.Size

	// floatingPos caches the last floating position so toggling a tile out
	// of the tiled layout and back restores where the user left it. nil
	// means "never floated": the tile centers on its workspace.
	floatingPos  *geometry.Point
	floatingSize geometry.Size

	// Animated geometry in workspace-strip coordinates: x/y are relative to
	// the strip origin (view offset not applied), so scrolling is the view
	// offset's animation rather than one animation per tile.
	x, y, w, h animated

	// opacity runs 0→1 while the open animation plays.
	opacity animated
}

// ID returns the tile's identifier.
func (t *Tile) ID() TileID { return t.id }

// Window returns the protocol-layer handle this tile represents.
func (t *Tile) Window() WindowID { return t.window }

// Floating reports whether the tile is in its workspace's floating set.
func (t *Tile) Floating() bool { return t.floating }

// Fullscreen reports whether the fullscreen override is active.
func (t *Tile) Fullscreen() bool { return t.fullscreen }

// targetRect returns the geometry the tile is animating toward.
func (t *Tile) targetRect() geometry.Rect {
	return geometry.Rect{X: t.x.Target(), Y: t.y.Target(), Width: t.w.Target(), Height: t.h.Target()}
}

// currentRect returns the in-flight animated geometry.
func (t *Tile) currentRect() geometry.Rect {
	return geometry.Rect{X: t.x.Current(), Y: t.y.Current(), Width: t.w.Current(), Height: t.h.Current()}
}

// setTarget retargets the tile's geometry animations toward r. Scalars whose
// target already equals the new value are untouched, so an unrelated action
// never restarts a finished animation.
func (t *Tile) setTarget(r geometry.Rect, move, resize AnimationParams) {
	t.x.Set(r.X, move)
	t.y.Set(r.Y, move)
	t.w.Set(r.Width, resize)
	t.h.Set(r.Height, resize)
}

// snapTo places the tile at r with no animation.
func (t *Tile) snapTo(r geometry.Rect) {
	t.x.Snap(r.X)
	t.y.Snap(r.Y)
	t.w.Snap(r.Width)
	t.h.Snap(r.Height)
}

// animating reports whether any geometry or opacity scalar is in flight.
func (t *Tile) animating() bool {
	return t.x.Running() || t.y.Running() || t.w.Running() || t.h.Running() || t.opacity.Running()
}

// tick advances all of the tile's animations.
func (t *Tile) tick(dt time.Duration) {
	t.x.Tick(dt)
	t.y.Tick(dt)
	t.w.Tick(dt)
	t.h.Tick(dt)
	t.opacity.Tick(dt)
}
