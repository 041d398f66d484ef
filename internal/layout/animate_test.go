package layout

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/strandwm/strand/internal/geometry"
)

func TestAnimatedSnapAndSet(t *testing.T) {
	p := AnimationParams{Duration: 100 * time.Millisecond, Ease: ease.Linear}

	a := newAnimated(10)
	if a.Running() {
		t.Fatalf("fresh value should be at rest")
	}
	a.Set(20, p)
	if !a.Running() || a.Target() != 20 || a.Current() != 10 {
		t.Fatalf("expected run 10→20, got current=%.1f target=%.1f running=%v", a.Current(), a.Target(), a.Running())
	}
	// Setting the same target again must not restart the animation.
	a.Tick(50 * time.Millisecond)
	mid := a.Current()
	a.Set(20, p)
	if a.Current() != mid {
		t.Fatalf("re-setting the target moved the value from %.2f to %.2f", mid, a.Current())
	}
}

func TestAnimatedConvergence(t *testing.T) {
	p := AnimationParams{Duration: 100 * time.Millisecond, Ease: ease.OutCubic}

	a := newAnimated(0)
	a.Set(100, p)
	for i := 0; i < 20; i++ {
		a.Tick(10 * time.Millisecond)
	}
	if a.Running() || a.Current() != 100 {
		t.Fatalf("expected convergence to 100, got %.3f running=%v", a.Current(), a.Running())
	}
}

func TestAnimatedRetargetKeepsInFlightValue(t *testing.T) {
	p := AnimationParams{Duration: 100 * time.Millisecond, Ease: ease.Linear}

	a := newAnimated(0)
	a.Set(100, p)
	a.Tick(50 * time.Millisecond)
	mid := a.Current() // linear: 50
	if mid != 50 {
		t.Fatalf("expected midpoint 50, got %.2f", mid)
	}

	// Retargeting restarts from the in-flight value, not from 0.
	a.Set(200, p)
	if a.Current() != mid {
		t.Fatalf("retarget jumped the current value to %.2f", a.Current())
	}
	a.Tick(50 * time.Millisecond)
	// Halfway through the new 50→200 run: 125.
	if got := a.Current(); got != 125 {
		t.Fatalf("expected 125 halfway through the retargeted run, got %.2f", got)
	}
}

func TestAnimatedDisabledSnaps(t *testing.T) {
	a := newAnimated(5)
	a.Set(9, AnimationParams{})
	if a.Running() || a.Current() != 9 {
		t.Fatalf("disabled animation should snap, got %.1f running=%v", a.Current(), a.Running())
	}
}

func TestTickZeroChangesNothing(t *testing.T) {
	e := New(DefaultOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	e.OpenWindow(OpenRequest{Window: 1})
	e.OpenWindow(OpenRequest{Window: 2})

	before := e.RenderList("DP-1")
	e.Tick(0)
	after := e.RenderList("DP-1")

	if len(before) != len(after) {
		t.Fatalf("tick(0) changed the render list length: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("tick(0) changed entry %d: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestEngineConvergence(t *testing.T) {
	e := New(DefaultOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	a := e.OpenWindow(OpenRequest{Window: 1})
	b := e.OpenWindow(OpenRequest{Window: 2})

	if !e.Animating() {
		t.Fatalf("open animations should be running")
	}
	// Cumulative elapsed time well past every duration.
	for i := 0; i < 100; i++ {
		e.Tick(16 * time.Millisecond)
	}
	if e.Animating() {
		t.Fatalf("expected all animations to converge")
	}
	for _, id := range []TileID{a, b} {
		tile := e.tiles[id]
		if tile.currentRect() != tile.targetRect() {
			t.Fatalf("tile %d did not converge: current %+v target %+v", id, tile.currentRect(), tile.targetRect())
		}
		if tile.opacity.Current() != 1 {
			t.Fatalf("tile %d opacity did not converge: %.2f", id, tile.opacity.Current())
		}
	}
}

func TestOpenAnimationGrowsAndFades(t *testing.T) {
	e := New(DefaultOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	a := e.OpenWindow(OpenRequest{Window: 1})

	tile := e.tiles[a]
	if tile.opacity.Current() != 0 {
		t.Fatalf("expected opening tile to start transparent, got %.2f", tile.opacity.Current())
	}
	if tile.currentRect().Width >= tile.targetRect().Width {
		t.Fatalf("expected opening tile to start shrunk")
	}
	e.Tick(time.Second)
	if tile.opacity.Current() != 1 || tile.currentRect() != tile.targetRect() {
		t.Fatalf("open animation did not settle")
	}
}

func TestCloseLeavesFadingGhost(t *testing.T) {
	e := New(DefaultOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	a := e.OpenWindow(OpenRequest{Window: 7})
	e.Tick(time.Second)

	e.CloseWindow(a)
	list := e.RenderList("DP-1")
	var ghost *RenderTile
	for i := range list {
		if list[i].Closing {
			ghost = &list[i]
		}
	}
	if ghost == nil {
		t.Fatalf("expected a closing ghost in the render list")
	}
	if ghost.Window != 7 || ghost.Tile != 0 {
		t.Fatalf("ghost should carry the window handle only, got %+v", ghost)
	}

	// The ghost fades out and disappears.
	e.Tick(time.Second)
	for _, rt := range e.RenderList("DP-1") {
		if rt.Closing {
			t.Fatalf("ghost should have been pruned after fading: %+v", rt)
		}
	}
}

func TestViewOffsetRetargetsOnRapidFocusChanges(t *testing.T) {
	opts := DefaultOptions()
	opts.ScrollAnim = AnimationParams{Duration: 200 * time.Millisecond, Ease: ease.Linear}
	e := New(opts)
	e.AddOutput(testOutput("DP-1", 1000, 800))

	// Three half-width columns: the strip is wider than the view, so
	// focusing the last column scrolls.
	e.OpenWindow(OpenRequest{Window: 1})
	e.OpenWindow(OpenRequest{Window: 2})
	e.OpenWindow(OpenRequest{Window: 3})
	ws := e.focusedWorkspace()

	e.Tick(100 * time.Millisecond)
	mid := ws.viewOffset.Current()
	target := ws.viewOffset.Target()
	if mid == target {
		t.Fatalf("expected the scroll to still be in flight")
	}

	// Focus back to the first column mid-scroll: the view offset retargets
	// from its in-flight position instead of snapping anywhere.
	e.FocusColumnLeft(false)
	e.FocusColumnLeft(false)
	if ws.viewOffset.Current() != mid {
		t.Fatalf("retarget moved the in-flight offset from %.2f to %.2f", mid, ws.viewOffset.Current())
	}
	if ws.viewOffset.Target() == target {
		t.Fatalf("expected a new scroll target")
	}
	e.Tick(time.Second)
	if ws.viewOffset.Current() != ws.viewOffset.Target() {
		t.Fatalf("scroll did not settle")
	}
}

func TestWorkspaceSwitchAnimates(t *testing.T) {
	e := New(DefaultOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	e.OpenWindow(OpenRequest{Window: 1})
	e.Tick(time.Second)

	m := e.monitors["DP-1"]
	e.FocusWorkspaceDown()
	if m.switchPos.Target() != 1 {
		t.Fatalf("expected switch target 1, got %.1f", m.switchPos.Target())
	}
	e.Tick(50 * time.Millisecond)
	pos := m.switchPos.Current()
	if pos <= 0 || pos >= 1 {
		t.Fatalf("expected switch mid-flight in (0,1), got %.3f", pos)
	}
	// Both workspaces are visible while the switch is in flight: the
	// content tile has slid partly off the top.
	list := e.RenderList("DP-1")
	if len(list) == 0 {
		t.Fatalf("expected the departing workspace to still render")
	}
	if list[0].Rect.Y >= 0 {
		t.Fatalf("expected the tile to slide upward, got y=%.1f", list[0].Rect.Y)
	}
	e.Tick(time.Second)
	if m.switchPos.Current() != 1 {
		t.Fatalf("switch did not settle")
	}
}

func TestFloatingRenderIgnoresScroll(t *testing.T) {
	e := newTestEngine()
	a := e.OpenWindow(OpenRequest{Window: 1})
	e.ToggleFloating(a)

	ws := e.workspaces[e.tiles[a].workspace]
	ws.viewOffset.Snap(500)
	e.layoutWorkspace(ws)

	tiles := renderByTile(e, "DP-1")
	r := tiles[a].Rect
	want := (1920 - r.Width) / 2
	if !geometry.ApproxEq(r.X, want) {
		t.Fatalf("floating tile moved with the scroll: x=%.1f want %.1f", r.X, want)
	}
}
