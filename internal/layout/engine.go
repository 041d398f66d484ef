// Package layout implements the scrollable-tiling layout engine: windows
// arranged into columns on an infinitely scrollable horizontal strip per
// workspace, workspaces stacked vertically per output, with every positional
// change animated.
//
// The engine is pure state plus algorithms. It performs no I/O, owns no
// protocol or GPU resources, and is single-threaded: the host delivers
// actions and output events synchronously, calls Tick once per frame, and
// reads snapshots back out. Entities live in an arena keyed by stable
// identifiers; cross-references are identifiers, never pointers.
package layout

import (
	"sort"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/strandwm/strand/internal/geometry"
)

// Options are the engine's tunables. Zero values are replaced by defaults
// in New.
type Options struct {
	// Gap is the spacing between adjacent columns and between tiles within
	// a column, in logical px. The working area already excludes panels, so
	// no outer padding is added.
	Gap float64

	// MinColumnWidth / MaxColumnWidth clamp every resolved column width.
	// MaxColumnWidth <= 0 means "working-area width".
	MinColumnWidth float64
	MaxColumnWidth float64

	// MinTileHeight is the smallest height a tile ever resolves to.
	MinTileHeight float64

	// DefaultColumnWidth is the proportion of the working area a new column
	// takes when no window rule says otherwise.
	DefaultColumnWidth float64

	// Animation classes. A zero duration disables that class.
	MoveAnim   AnimationParams // tile position changes
	ResizeAnim AnimationParams // tile/column size changes
	ScrollAnim AnimationParams // view-offset changes
	SwitchAnim AnimationParams // vertical workspace switches
	FadeAnim   AnimationParams // open/close opacity
}

// DefaultOptions returns the engine defaults used when the host passes a
// zero Options value.
func DefaultOptions() Options {
	return Options{
		Gap:                16,
		MinColumnWidth:     80,
		MinTileHeight:      40,
		DefaultColumnWidth: 0.5,
		MoveAnim:           AnimationParams{Duration: 250 * time.Millisecond, Ease: ease.OutCubic},
		ResizeAnim:         AnimationParams{Duration: 250 * time.Millisecond, Ease: ease.OutCubic},
		ScrollAnim:         AnimationParams{Duration: 250 * time.Millisecond, Ease: ease.OutCubic},
		SwitchAnim:         AnimationParams{Duration: 300 * time.Millisecond, Ease: ease.InOutCubic},
		FadeAnim:           AnimationParams{Duration: 150 * time.Millisecond, Ease: ease.OutQuad},
	}
}

// normalize fills unset fields with defaults and clamps nonsense.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.MinColumnWidth <= 0 {
		o.MinColumnWidth = def.MinColumnWidth
	}
	if o.MinTileHeight <= 0 {
		o.MinTileHeight = def.MinTileHeight
	}
	if o.DefaultColumnWidth <= 0 || o.DefaultColumnWidth > 1 {
		o.DefaultColumnWidth = def.DefaultColumnWidth
	}
	return o
}

// Engine is the arena of layout entities plus the output registry. All
// mutation goes through action methods (actions.go) and output-topology
// events below; all reads go through snapshots (snapshot.go).
type Engine struct {
	opts Options

	outputs    map[OutputID]*Output
	monitors   map[OutputID]*Monitor
	workspaces map[WorkspaceID]*Workspace
	columns    map[ColumnID]*Column
	tiles      map[TileID]*Tile

	// detached holds workspace stacks whose output disappeared while no
	// other output remained, keyed by the vanished output's identity so a
	// reconnect puts them back where they were.
	detached map[OutputID][]WorkspaceID

	focus  Focus
	nextID uint64
}

// New creates an empty engine. Outputs arrive later via AddOutput.
func New(opts Options) *Engine {
	return &Engine{
		opts:       opts.normalize(),
		outputs:    make(map[OutputID]*Output),
		monitors:   make(map[OutputID]*Monitor),
		workspaces: make(map[WorkspaceID]*Workspace),
		columns:    make(map[ColumnID]*Column),
		tiles:      make(map[TileID]*Tile),
		detached:   make(map[OutputID][]WorkspaceID),
	}
}

// Options returns the engine's normalized tunables.
func (e *Engine) Options() Options { return e.opts }

// SetOptions swaps the tunables, typically after a config reload, and
// recomputes every output's layout under the new policy.
func (e *Engine) SetOptions(opts Options) {
	e.opts = opts.normalize()
	for _, id := range e.sortedOutputs() {
		e.relayoutOutput(id)
	}
}

func (e *Engine) nextSerial() uint64 {
	e.nextID++
	return e.nextID
}

// sortedOutputs returns connected output ids in ascending order. Hotplug
// inheritance and snapshot ordering both use this so behavior stays
// deterministic regardless of map iteration.
func (e *Engine) sortedOutputs() []OutputID {
	ids := make([]OutputID, 0, len(e.outputs))
	for id := range e.outputs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ---- workspace / column / tile lifecycle ----

func (e *Engine) newWorkspace(output OutputID) *Workspace {
	ws := &Workspace{
		id:         WorkspaceID(e.nextSerial()),
		output:     output,
		viewOffset: newAnimated(0),
	}
	e.workspaces[ws.id] = ws
	return ws
}

func (e *Engine) newColumn(ws *Workspace) *Column {
	col := &Column{
		id:         ColumnID(e.nextSerial()),
		workspace:  ws.id,
		mode:       WidthProportional,
		proportion: e.opts.DefaultColumnWidth,
	}
	e.columns[col.id] = col
	return col
}

func (e *Engine) newTile(win WindowID, ws WorkspaceID) *Tile {
	t := &Tile{
		id:        TileID(e.nextSerial()),
		window:    win,
		workspace: ws,
		opacity:   newAnimated(1),
	}
	e.tiles[t.id] = t
	return t
}

// destroyColumn removes an empty column from its workspace and the arena.
func (e *Engine) destroyColumn(col *Column) {
	if ws := e.workspaces[col.workspace]; ws != nil {
		ws.removeColumn(col.id)
	}
	delete(e.columns, col.id)
}

// destroyWorkspace removes a workspace and everything it still holds.
func (e *Engine) destroyWorkspace(ws *Workspace) {
	for _, cid := range append([]ColumnID(nil), ws.columns...) {
		if col := e.columns[cid]; col != nil {
			for _, tid := range append([]TileID(nil), col.tiles...) {
				delete(e.tiles, tid)
			}
			delete(e.columns, cid)
		}
	}
	for _, tid := range ws.floating {
		delete(e.tiles, tid)
	}
	if m := e.monitors[ws.output]; m != nil {
		m.removeWorkspace(ws.id)
	}
	delete(e.workspaces, ws.id)
}

// maintainStack enforces the workspace-stack invariant for one monitor:
// exactly one empty workspace at the tail, no empty workspace elsewhere
// unless it is the active one.
func (e *Engine) maintainStack(m *Monitor) {
	// Destroy empty, non-trailing, non-active workspaces.
	for i := 0; i < len(m.workspaces); {
		wsID := m.workspaces[i]
		ws := e.workspaces[wsID]
		if ws == nil {
			m.workspaces = append(m.workspaces[:i], m.workspaces[i+1:]...)
			continue
		}
		last := i == len(m.workspaces)-1
		if ws.IsEmpty() && !last && wsID != m.ActiveWorkspace() {
			e.destroyWorkspace(ws)
			continue // removeWorkspace already shifted the slice
		}
		i++
	}

	// Collapse duplicate trailing empties down to one.
	for len(m.workspaces) >= 2 {
		n := len(m.workspaces)
		lastWS := e.workspaces[m.workspaces[n-1]]
		prevWS := e.workspaces[m.workspaces[n-2]]
		if lastWS != nil && prevWS != nil && lastWS.IsEmpty() && prevWS.IsEmpty() &&
			m.ActiveWorkspace() != lastWS.id {
			e.destroyWorkspace(lastWS)
			continue
		}
		break
	}

	// Guarantee one empty tail.
	needTail := len(m.workspaces) == 0
	if !needTail {
		tail := e.workspaces[m.workspaces[len(m.workspaces)-1]]
		needTail = tail == nil || !tail.IsEmpty()
	}
	if needTail {
		ws := e.newWorkspace(m.output)
		m.workspaces = append(m.workspaces, ws.id)
	}

	if m.active >= len(m.workspaces) {
		m.active = len(m.workspaces) - 1
	}
	if m.active < 0 {
		m.active = 0
	}
	if !m.switchPos.Running() {
		m.switchPos.Snap(float64(m.active))
	}
}

// ---- output topology events ----

// AddOutput registers a newly connected output. If the detached pool holds
// workspaces tagged for this identity they are reattached intact; otherwise
// the output starts with a fresh stack of one empty workspace.
func (e *Engine) AddOutput(out Output) {
	if out.Scale <= 0 {
		out.Scale = 1
	}
	if existing, ok := e.outputs[out.ID]; ok {
		// Re-announcement of a known output is a geometry update; panel
		// exclusive zones survive it just as they survive UpdateOutput.
		out.Reserved = existing.Reserved
		e.outputs[out.ID] = &out
		e.relayoutOutput(out.ID)
		return
	}
	e.outputs[out.ID] = &out

	m := &Monitor{output: out.ID, switchPos: newAnimated(0)}
	e.monitors[out.ID] = m

	if pooled, ok := e.detached[out.ID]; ok {
		delete(e.detached, out.ID)
		for _, wsID := range pooled {
			if ws := e.workspaces[wsID]; ws != nil {
				ws.output = out.ID
				m.workspaces = append(m.workspaces, wsID)
			}
		}
	}
	e.maintainStack(m)

	if e.focus.Output == "" {
		e.focus.Output = out.ID
		e.focus.Workspace = m.ActiveWorkspace()
	}
	e.relayoutOutput(out.ID)
	e.validateFocus()
}

// RemoveOutput handles a disconnect. The vanished output's non-empty
// workspaces move to the remaining output with the lowest id; if none
// remains they park in the detached pool under the old identity.
func (e *Engine) RemoveOutput(id OutputID) {
	m := e.monitors[id]
	if m == nil {
		return
	}
	delete(e.outputs, id)
	delete(e.monitors, id)

	survivors := e.sortedOutputs()
	if len(survivors) == 0 {
		// Park content; drop the empty tail rather than pooling it.
		var keep []WorkspaceID
		for _, wsID := range m.workspaces {
			ws := e.workspaces[wsID]
			if ws == nil {
				continue
			}
			if ws.IsEmpty() {
				delete(e.workspaces, wsID)
				continue
			}
			keep = append(keep, wsID)
		}
		if len(keep) > 0 {
			e.detached[id] = keep
		}
		e.focus = Focus{}
		return
	}

	heirID := survivors[0]
	heir := e.monitors[heirID]
	heirActive := heir.ActiveWorkspace()
	insert := len(heir.workspaces) - 1 // before the trailing empty
	if insert < 0 {
		insert = 0
	}
	for _, wsID := range m.workspaces {
		ws := e.workspaces[wsID]
		if ws == nil {
			continue
		}
		if ws.IsEmpty() {
			delete(e.workspaces, wsID)
			continue
		}
		ws.output = heirID
		heir.workspaces = append(heir.workspaces, 0)
		copy(heir.workspaces[insert+1:], heir.workspaces[insert:])
		heir.workspaces[insert] = wsID
		insert++
	}
	// Inserting above the active index must not change which workspace the
	// heir is showing.
	for i, wsID := range heir.workspaces {
		if wsID == heirActive {
			heir.active = i
			break
		}
	}
	e.maintainStack(heir)

	if e.focus.Output == id {
		e.focus.Output = heirID
		e.focus.Workspace = heir.ActiveWorkspace()
	}
	e.relayoutOutput(heirID)
	e.validateFocus()
}

// UpdateOutput applies a mode/scale/transform/position change. Stored width
// and height policies survive; only resolved pixel values change.
func (e *Engine) UpdateOutput(out Output) {
	existing := e.outputs[out.ID]
	if existing == nil {
		return
	}
	if out.Scale <= 0 {
		out.Scale = 1
	}
	out.Reserved = existing.Reserved
	e.outputs[out.ID] = &out
	e.relayoutOutput(out.ID)
}

// SetReserved updates the exclusive-zone insets for an output, e.g. when a
// panel maps or unmaps, and recomputes every workspace on it.
func (e *Engine) SetReserved(id OutputID, in geometry.Insets) {
	out := e.outputs[id]
	if out == nil {
		return
	}
	out.Reserved = in
	e.relayoutOutput(id)
}

// Outputs returns the connected outputs in id order.
func (e *Engine) Outputs() []Output {
	ids := e.sortedOutputs()
	outs := make([]Output, 0, len(ids))
	for _, id := range ids {
		outs = append(outs, *e.outputs[id])
	}
	return outs
}

// ---- layout pass ----

// relayoutOutput recomputes resolved geometry for every workspace on an
// output and pushes changed values as new animation targets.
func (e *Engine) relayoutOutput(id OutputID) {
	m := e.monitors[id]
	if m == nil {
		return
	}
	for _, wsID := range m.workspaces {
		if ws := e.workspaces[wsID]; ws != nil {
			e.layoutWorkspace(ws)
		}
	}
}

// layoutWorkspace derives target geometry for every tile on ws from the
// column order and sizing policies, then retargets animations where the
// result differs from the previous target. Pure recomputation: no position
// is read back from the tiles.
func (e *Engine) layoutWorkspace(ws *Workspace) {
	out := e.outputs[ws.output]
	if out == nil {
		return // detached; lays out on reattach
	}
	work := out.WorkArea()

	// Tiled columns, in strip coordinates (view offset not applied).
	x := 0.0
	for _, cid := range ws.columns {
		col := e.columns[cid]
		if col == nil {
			continue
		}
		colW := col.resolveWidth(e, work.Width)
		heights := col.distributeHeights(e, work.Height)
		y := 0.0
		for i, tid := range col.tiles {
			t := e.tiles[tid]
			if t == nil {
				continue
			}
			target := geometry.Rect{X: x, Y: y, Width: colW, Height: heights[i]}
			if t.fullscreen {
				// Fullscreen paints over the whole working area at the
				// current scroll position; the column keeps its stored
				// geometry underneath for restore.
				target = geometry.Rect{X: ws.viewOffset.Target(), Y: 0, Width: work.Width, Height: work.Height}
			}
			t.setTarget(target, e.opts.MoveAnim, e.opts.ResizeAnim)
			y += heights[i] + e.opts.Gap
		}
		x += colW + e.opts.Gap
	}

	// Floating tiles live in working-area coordinates and ignore scroll.
	for _, tid := range ws.floating {
		t := e.tiles[tid]
		if t == nil {
			continue
		}
		size := t.floatingSize
		if size.Width <= 0 || size.Height <= 0 {
			size = t.contentSize
		}
		if size.Width <= 0 || size.Height <= 0 {
			size = geometry.Size{Width: work.Width / 2, Height: work.Height / 2}
		}
		size.Width = geometry.Clamp(size.Width, 1, work.Width)
		size.Height = geometry.Clamp(size.Height, 1, work.Height)

		var pos geometry.Point
		if t.floatingPos != nil {
			pos = *t.floatingPos
		} else {
			pos = geometry.Point{X: (work.Width - size.Width) / 2, Y: (work.Height - size.Height) / 2}
		}
		pos.X = geometry.Clamp(pos.X, 0, work.Width-size.Width)
		pos.Y = geometry.Clamp(pos.Y, 0, work.Height-size.Height)

		target := geometry.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
		if t.fullscreen {
			target = geometry.Rect{X: 0, Y: 0, Width: work.Width, Height: work.Height}
		}
		t.setTarget(target, e.opts.MoveAnim, e.opts.ResizeAnim)
	}
}

// ---- frame tick ----

// Tick advances every running animation by elapsed wall-clock time. It is
// deterministic: the same cumulative elapsed time always yields the same
// values, and Tick(0) changes nothing. The host must not call Tick
// concurrently with an action.
func (e *Engine) Tick(elapsed time.Duration) {
	for _, m := range e.monitors {
		m.tick(elapsed)
	}
	for _, ws := range e.workspaces {
		ws.tick(elapsed)
	}
	for _, t := range e.tiles {
		t.tick(elapsed)
	}
}

// Animating reports whether any animation is still running, letting the
// host skip frame scheduling when the layout is at rest.
func (e *Engine) Animating() bool {
	for _, m := range e.monitors {
		if m.switchPos.Running() {
			return true
		}
	}
	for _, ws := range e.workspaces {
		if ws.animating() {
			return true
		}
	}
	for _, t := range e.tiles {
		if t.animating() {
			return true
		}
	}
	return false
}
