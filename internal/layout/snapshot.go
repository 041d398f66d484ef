package layout

import (
	"sort"

	"github.com/strandwm/strand/internal/geometry"
)

// RenderTile is one entry of the per-output render list: a tile (or the
// fading ghost of a closed one) at its current animated geometry in global
// logical coordinates. Entries are ordered back to front and Z repeats that
// order numerically.
type RenderTile struct {
	Tile      TileID // 0 for closing ghosts
	Window    WindowID
	Workspace WorkspaceID
	Rect      geometry.Rect
	Z         int
	Opacity   float64
	Floating  bool
	Closing   bool
}

// RenderList returns the visible tiles of one output, back to front: tiled
// tiles in strip order, then fullscreen tiles, then closing ghosts, then
// floating tiles on top. During a workspace switch the lists of both
// workspaces sliding through the viewport are included. Recomputed from
// current animation state on every call.
func (e *Engine) RenderList(id OutputID) []RenderTile {
	out := e.outputs[id]
	m := e.monitors[id]
	if out == nil || m == nil {
		return nil
	}
	work := out.WorkArea()
	geo := out.Geometry()

	var list []RenderTile
	appendTile := func(rt RenderTile) {
		if !rt.Rect.Intersects(geo) {
			return
		}
		rt.Z = len(list)
		list = append(list, rt)
	}

	for wi, wsID := range m.workspaces {
		ws := e.workspaces[wsID]
		if ws == nil {
			continue
		}
		voff := (float64(wi) - m.switchPos.Current()) * work.Height
		if voff <= -work.Height || voff >= work.Height {
			continue
		}

		var fullscreen []RenderTile

		for _, cid := range ws.columns {
			col := e.columns[cid]
			if col == nil {
				continue
			}
			for _, tid := range col.tiles {
				t := e.tiles[tid]
				if t == nil {
					continue
				}
				r := t.currentRect()
				r.X += work.X - ws.viewOffset.Current()
				r.Y += work.Y + voff
				rt := RenderTile{Tile: t.id, Window: t.window, Workspace: ws.id, Rect: r, Opacity: t.opacity.Current()}
				if t.fullscreen {
					fullscreen = append(fullscreen, rt)
					continue
				}
				appendTile(rt)
			}
		}
		for _, rt := range fullscreen {
			appendTile(rt)
		}

		for i := range ws.closing {
			g := &ws.closing[i]
			if g.floating {
				continue // floating ghosts paint with the floating layer
			}
			r := g.rect
			r.X += work.X - ws.viewOffset.Current()
			r.Y += work.Y + voff
			appendTile(RenderTile{Window: g.window, Workspace: ws.id, Rect: r, Opacity: g.opacity.Current(), Closing: true})
		}

		for _, tid := range ws.floating {
			t := e.tiles[tid]
			if t == nil {
				continue
			}
			r := t.currentRect()
			r.X += work.X
			r.Y += work.Y + voff
			appendTile(RenderTile{Tile: t.id, Window: t.window, Workspace: ws.id, Rect: r, Opacity: t.opacity.Current(), Floating: true})
		}
		for i := range ws.closing {
			g := &ws.closing[i]
			if !g.floating {
				continue
			}
			r := g.rect
			r.X += work.X
			r.Y += work.Y + voff
			appendTile(RenderTile{Window: g.window, Workspace: ws.id, Rect: r, Opacity: g.opacity.Current(), Floating: true, Closing: true})
		}
	}
	return list
}

// HitTest translates a point in global logical coordinates into the
// topmost tile under it on the given output, for pointer focus and
// interactive moves. Closing ghosts are transparent to hits.
func (e *Engine) HitTest(id OutputID, p geometry.Point) (TileID, bool) {
	list := e.RenderList(id)
	for i := len(list) - 1; i >= 0; i-- {
		rt := list[i]
		if rt.Closing {
			continue
		}
		if rt.Rect.Contains(p) {
			return rt.Tile, true
		}
	}
	return 0, false
}

// ---- structural snapshot ----

// State is the read-only structural snapshot consumed by IPC clients:
// the ownership tree down to tile identifiers plus the focus path. It
// carries no animation timing state.
type State struct {
	Outputs  []OutputState   `json:"outputs"`
	Detached []DetachedState `json:"detached,omitempty"`
	Focus    FocusState      `json:"focus"`
}

// OutputState describes one output and its workspace stack.
type OutputState struct {
	Name            string           `json:"name"`
	Make            string           `json:"make,omitempty"`
	Model           string           `json:"model,omitempty"`
	Scale           float64          `json:"scale"`
	WorkArea        geometry.Rect    `json:"work_area"`
	ActiveWorkspace int              `json:"active_workspace"`
	Workspaces      []WorkspaceState `json:"workspaces"`
}

// WorkspaceState describes one workspace's strip and floating set.
type WorkspaceState struct {
	ID       uint64        `json:"id"`
	Idx      int           `json:"idx"`
	Name     string        `json:"name,omitempty"`
	IsActive bool          `json:"is_active"`
	Columns  []ColumnState `json:"columns"`
	Floating []TileState   `json:"floating,omitempty"`
}

// ColumnState describes one column: width policy plus its tile stack.
type ColumnState struct {
	Width string      `json:"width"`
	Tiles []TileState `json:"tiles"`
}

// TileState identifies one tile and its overrides.
type TileState struct {
	ID         uint64 `json:"id"`
	Window     uint64 `json:"window"`
	Fullscreen bool   `json:"fullscreen,omitempty"`
}

// DetachedState lists a parked workspace stack waiting for its output to
// reconnect.
type DetachedState struct {
	Origin     string           `json:"origin"`
	Workspaces []WorkspaceState `json:"workspaces"`
}

// FocusState is the focus path by identifier. Zero values mean "none".
type FocusState struct {
	Output    string `json:"output,omitempty"`
	Workspace uint64 `json:"workspace,omitempty"`
	Tile      uint64 `json:"tile,omitempty"`
}

// Snapshot builds the structural state. Outputs appear in id order so the
// result is deterministic.
func (e *Engine) Snapshot() State {
	var st State
	for _, id := range e.sortedOutputs() {
		out := e.outputs[id]
		m := e.monitors[id]
		os := OutputState{
			Name:            string(id),
			Make:            out.Make,
			Model:           out.Model,
			Scale:           out.Scale,
			WorkArea:        out.WorkArea(),
			ActiveWorkspace: m.ActiveIndex(),
		}
		for wi, wsID := range m.workspaces {
			if ws := e.workspaces[wsID]; ws != nil {
				os.Workspaces = append(os.Workspaces, e.workspaceState(ws, wi, wi == m.ActiveIndex()))
			}
		}
		st.Outputs = append(st.Outputs, os)
	}

	for origin, wsIDs := range e.detached {
		ds := DetachedState{Origin: string(origin)}
		for wi, wsID := range wsIDs {
			if ws := e.workspaces[wsID]; ws != nil {
				ds.Workspaces = append(ds.Workspaces, e.workspaceState(ws, wi, false))
			}
		}
		st.Detached = append(st.Detached, ds)
	}
	sort.Slice(st.Detached, func(i, j int) bool { return st.Detached[i].Origin < st.Detached[j].Origin })

	st.Focus = FocusState{
		Output:    string(e.focus.Output),
		Workspace: uint64(e.focus.Workspace),
		Tile:      uint64(e.focus.Tile),
	}
	return st
}

func (e *Engine) workspaceState(ws *Workspace, idx int, active bool) WorkspaceState {
	s := WorkspaceState{ID: uint64(ws.id), Idx: idx, Name: ws.name, IsActive: active}
	for _, cid := range ws.columns {
		col := e.columns[cid]
		if col == nil {
			continue
		}
		cs := ColumnState{Width: col.mode.String()}
		for _, tid := range col.tiles {
			if t := e.tiles[tid]; t != nil {
				cs.Tiles = append(cs.Tiles, TileState{ID: uint64(t.id), Window: uint64(t.window), Fullscreen: t.fullscreen})
			}
		}
		s.Columns = append(s.Columns, cs)
	}
	for _, tid := range ws.floating {
		if t := e.tiles[tid]; t != nil {
			s.Floating = append(s.Floating, TileState{ID: uint64(t.id), Window: uint64(t.window), Fullscreen: t.fullscreen})
		}
	}
	return s
}
