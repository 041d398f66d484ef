package layout

import "github.com/strandwm/strand/internal/geometry"

// WidthMode selects how a column's width is resolved against the working
// area on each layout pass.
type WidthMode int

const (
	// WidthProportional resolves to a fraction of the working-area width.
	WidthProportional WidthMode = iota
	// WidthFixed resolves to an explicit pixel width.
	WidthFixed
	// WidthAuto resolves to the widest current content in the column.
	WidthAuto
)

func (m WidthMode) String() string {
	switch m {
	case WidthProportional:
		return "proportional"
	case WidthFixed:
		return "fixed"
	case WidthAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Column is an ordered vertical stack of tiles sharing one horizontal slot
// in a workspace's strip. Its x position is never stored; the strip derives
// it left-to-right from the column order on every layout pass.
type Column struct {
	id        ColumnID
	workspace WorkspaceID
	tiles     []TileID

	mode       WidthMode
	proportion float64 // WidthProportional: fraction of working-area width
	fixedPx    float64 // WidthFixed: width in logical px

	// active is the index of the most recently focused tile in this column.
	// Focus moving into the column lands here.
	active int
}

// ID returns the column's identifier.
func (c *Column) ID() ColumnID { return c.id }

// Tiles returns the tile stack in top-to-bottom order.
func (c *Column) Tiles() []TileID { return c.tiles }

// Mode returns the column's width policy.
func (c *Column) Mode() WidthMode { return c.mode }

// tileIndex returns the position of id in the stack, or -1.
func (c *Column) tileIndex(id TileID) int {
	for i, t := range c.tiles {
		if t == id {
			return i
		}
	}
	return -1
}

// insertTile places id at index i, clamped to the stack bounds.
func (c *Column) insertTile(id TileID, i int) {
	if i < 0 {
		i = 0
	}
	if i > len(c.tiles) {
		i = len(c.tiles)
	}
	c.tiles = append(c.tiles, 0)
	copy(c.tiles[i+1:], c.tiles[i:])
	c.tiles[i] = id
}

// removeTile deletes id from the stack and reports whether it was present.
// The active index is pulled back inside the remaining stack.
func (c *Column) removeTile(id TileID) bool {
	i := c.tileIndex(id)
	if i < 0 {
		return false
	}
	c.tiles = append(c.tiles[:i], c.tiles[i+1:]...)
	if c.active > i || c.active >= len(c.tiles) {
		c.active--
	}
	if c.active < 0 {
		c.active = 0
	}
	return true
}

// resolveWidth computes the column's pixel width for the given working-area
// width, clamped to [minW, maxW]. The max never exceeds the working area, so
// a stale fixed width from a larger output cannot push the column off
// screen.
func (c *Column) resolveWidth(e *Engine, workW float64) float64 {
	minW := e.opts.MinColumnWidth
	maxW := e.opts.MaxColumnWidth
	if maxW <= 0 || maxW > workW {
		maxW = workW
	}

	var w float64
	switch c.mode {
	case WidthFixed:
		w = c.fixedPx
	case WidthProportional:
		w = c.proportion * workW
	case WidthAuto:
		for _, id := range c.tiles {
			if t := e.tiles[id]; t != nil && t.contentSize.Width > w {
				w = t.contentSize.Width
			}
		}
		if w == 0 {
			w = e.opts.DefaultColumnWidth * workW
		}
	}
	return geometry.Clamp(w, minW, maxW)
}

// distributeHeights splits workH between the column's tiles: tiles with a
// manual height keep it (clamped to the space left as the stack is walked),
// and the remainder is divided equally among the auto tiles. Gaps only run
// between tiles; the working-area insets already account for the edges.
func (c *Column) distributeHeights(e *Engine, workH float64) []float64 {
	n := len(c.tiles)
	if n == 0 {
		return nil
	}

	avail := workH - float64(n-1)*e.opts.Gap
	if avail < 0 {
		avail = 0
	}

	heights := make([]float64, n)
	autoCount := 0
	remaining := avail
	for i, id := range c.tiles {
		t := e.tiles[id]
		if t != nil && t.manualHeight > 0 {
			h := geometry.Clamp(t.manualHeight, e.opts.MinTileHeight, remaining)
			heights[i] = h
			remaining -= h
		} else {
			heights[i] = -1 // fill in below
			autoCount++
		}
	}
	if remaining < 0 {
		remaining = 0
	}
	if autoCount > 0 {
		share := remaining / float64(autoCount)
		if share < e.opts.MinTileHeight {
			share = e.opts.MinTileHeight
		}
		for i := range heights {
			if heights[i] < 0 {
				heights[i] = share
			}
		}
	}
	return heights
}

// setFixedWidth converts the column to the fixed width policy at w. Used by
// resize actions: once the user has resized a column it keeps an explicit
// pixel width and no longer tracks proportional or content changes.
func (c *Column) setFixedWidth(w float64) {
	c.mode = WidthFixed
	c.fixedPx = w
}
