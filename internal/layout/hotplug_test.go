package layout

import (
	"testing"
)

func TestOutputRemovalReassignsWorkspaces(t *testing.T) {
	e := New(instantOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	e.AddOutput(testOutput("HDMI-A-1", 1280, 720))

	// Two windows on HDMI-A-1.
	a := e.OpenWindow(OpenRequest{Window: 1, Output: "HDMI-A-1"})
	b := e.OpenWindow(OpenRequest{Window: 2, Output: "HDMI-A-1"})
	srcWS := e.tiles[a].workspace

	e.RemoveOutput("HDMI-A-1")

	// The workspace reappears intact under the remaining output: same
	// workspace id, same column order, same tile set.
	ws := e.workspaces[srcWS]
	if ws == nil {
		t.Fatalf("workspace %d was destroyed on hotplug", srcWS)
	}
	if ws.output != "DP-1" {
		t.Fatalf("expected workspace on DP-1, got %s", ws.output)
	}
	if len(ws.columns) != 2 {
		t.Fatalf("expected 2 columns preserved, got %d", len(ws.columns))
	}
	first := e.columns[ws.columns[0]]
	second := e.columns[ws.columns[1]]
	if first.tiles[0] != a || second.tiles[0] != b {
		t.Fatalf("column order not preserved: %v %v", first.tiles, second.tiles)
	}
	if e.monitors["DP-1"].workspaceIndex(srcWS) < 0 {
		t.Fatalf("workspace missing from the inheriting stack")
	}
	checkInvariants(t, e)
}

func TestOutputRemovalKeepsHeirActiveWorkspace(t *testing.T) {
	e := New(instantOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	e.AddOutput(testOutput("DP-2", 1920, 1080))

	b := e.OpenWindow(OpenRequest{Window: 2, Output: "DP-2"})
	e.OpenWindow(OpenRequest{Window: 1, Output: "DP-1"})

	// Park the heir on its empty tail before the disconnect.
	e.FocusWorkspaceDown()
	heir := e.monitors["DP-1"]
	activeWS := heir.ActiveWorkspace()
	if !e.workspaces[activeWS].IsEmpty() {
		t.Fatalf("setup: expected the active workspace to be the empty tail")
	}

	e.RemoveOutput("DP-2")

	// The inherited workspace lands above the tail without stealing the
	// visible slot.
	if got := heir.ActiveWorkspace(); got != activeWS {
		t.Fatalf("active workspace changed on hotplug: %d, want %d", got, activeWS)
	}
	if idx := heir.workspaceIndex(e.tiles[b].workspace); idx != heir.active-1 {
		t.Fatalf("inherited workspace at index %d, active at %d", idx, heir.active)
	}
	checkInvariants(t, e)
}

func TestOutputRemovalPrefersLowestID(t *testing.T) {
	e := New(instantOptions())
	e.AddOutput(testOutput("DP-2", 1920, 1080))
	e.AddOutput(testOutput("DP-3", 1920, 1080))
	e.AddOutput(testOutput("DP-1", 1920, 1080))

	a := e.OpenWindow(OpenRequest{Window: 1, Output: "DP-3"})
	e.RemoveOutput("DP-3")

	if got := e.workspaces[e.tiles[a].workspace].output; got != "DP-1" {
		t.Fatalf("expected the lowest-id survivor DP-1, got %s", got)
	}
	checkInvariants(t, e)
}

func TestLastOutputRemovalParksInPool(t *testing.T) {
	e := New(instantOptions())
	e.AddOutput(testOutput("eDP-1", 1920, 1080))
	a := e.OpenWindow(OpenRequest{Window: 1})
	wsID := e.tiles[a].workspace

	e.RemoveOutput("eDP-1")

	if len(e.detached["eDP-1"]) != 1 || e.detached["eDP-1"][0] != wsID {
		t.Fatalf("expected workspace %d parked for eDP-1, got %v", wsID, e.detached)
	}
	if e.tiles[a] == nil {
		t.Fatalf("tile should survive in the detached pool")
	}
	if (e.focus != Focus{}) {
		t.Fatalf("expected focus cleared with no outputs, got %+v", e.focus)
	}
	st := e.Snapshot()
	if len(st.Detached) != 1 || st.Detached[0].Origin != "eDP-1" {
		t.Fatalf("snapshot should expose the detached pool, got %+v", st.Detached)
	}

	// The same output identity reconnecting reattaches the content.
	e.AddOutput(testOutput("eDP-1", 1920, 1080))
	if len(e.detached) != 0 {
		t.Fatalf("pool should be empty after reattach, got %v", e.detached)
	}
	ws := e.workspaces[wsID]
	if ws == nil || ws.output != "eDP-1" {
		t.Fatalf("workspace did not reattach: %+v", ws)
	}
	if e.focus.Tile != a {
		t.Fatalf("expected focus restored to %d, got %d", a, e.focus.Tile)
	}
	checkInvariants(t, e)
}

func TestUnrelatedOutputLeavesPoolAlone(t *testing.T) {
	e := New(instantOptions())
	e.AddOutput(testOutput("eDP-1", 1920, 1080))
	e.OpenWindow(OpenRequest{Window: 1})
	e.RemoveOutput("eDP-1")

	e.AddOutput(testOutput("DP-1", 1920, 1080))

	if len(e.detached["eDP-1"]) != 1 {
		t.Fatalf("pool for eDP-1 should survive an unrelated connect")
	}
	m := e.monitors["DP-1"]
	if len(m.workspaces) != 1 || !e.workspaces[m.workspaces[0]].IsEmpty() {
		t.Fatalf("new output should start with a fresh empty stack")
	}
	checkInvariants(t, e)
}

func TestRemoveUnknownOutputIsNoOp(t *testing.T) {
	e := newTestEngine()
	a := e.OpenWindow(OpenRequest{Window: 1})
	e.RemoveOutput("DP-9")
	if e.tiles[a] == nil || e.focus.Tile != a {
		t.Fatalf("removing an unknown output disturbed state")
	}
	checkInvariants(t, e)
}

func TestMoveWindowToOutput(t *testing.T) {
	e := New(instantOptions())
	e.AddOutput(testOutput("DP-1", 1920, 1080))
	e.AddOutput(testOutput("DP-2", 1280, 720))

	a := e.OpenWindow(OpenRequest{Window: 1, Output: "DP-1"})
	e.MoveWindowToOutput(a, "DP-2")

	ws := e.workspaces[e.tiles[a].workspace]
	if ws.output != "DP-2" {
		t.Fatalf("expected tile on DP-2, got %s", ws.output)
	}
	if e.focus.Output != "DP-2" || e.focus.Tile != a {
		t.Fatalf("focus should follow the window, got %+v", e.focus)
	}
	// The tile resolves against the destination's working area:
	// 0.5 × 1280 = 640.
	if got := e.tiles[a].targetRect().Width; got != 640 {
		t.Fatalf("expected width 640 on DP-2, got %.1f", got)
	}
	checkInvariants(t, e)
}

func TestOpenWindowWithNoOutputs(t *testing.T) {
	e := New(instantOptions())
	if id := e.OpenWindow(OpenRequest{Window: 1}); id != 0 {
		t.Fatalf("open with no outputs should be a no-op, got tile %d", id)
	}
}

func TestWindowClosedByHandle(t *testing.T) {
	e := newTestEngine()
	a := e.OpenWindow(OpenRequest{Window: 55})
	e.WindowClosed(55)
	if e.tiles[a] != nil {
		t.Fatalf("expected implicit close by handle")
	}
	// Unknown handles are tolerated: the window may never have mapped.
	e.WindowClosed(56)
	checkInvariants(t, e)
}
