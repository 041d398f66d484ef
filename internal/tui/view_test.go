package tui

import (
	"strings"
	"testing"

	"github.com/strandwm/strand/internal/layout"
)

func TestRenderStateShowsTree(t *testing.T) {
	st := &layout.State{
		Outputs: []layout.OutputState{
			{
				Name:  "DP-1",
				Scale: 1,
				Workspaces: []layout.WorkspaceState{
					{
						ID:       3,
						Idx:      0,
						IsActive: true,
						Columns: []layout.ColumnState{
							{Width: "proportional", Tiles: []layout.TileState{{ID: 5, Window: 100}}},
							{Width: "fixed", Tiles: []layout.TileState{{ID: 6, Window: 101, Fullscreen: true}}},
						},
						Floating: []layout.TileState{{ID: 7, Window: 102}},
					},
					{ID: 4, Idx: 1},
				},
			},
		},
		Focus: layout.FocusState{Output: "DP-1", Workspace: 3, Tile: 5},
	}

	out := renderState(st)
	for _, want := range []string{
		"DP-1",
		"workspace 0",
		"workspace 1",
		"col 0 [proportional]",
		"col 1 [fixed]",
		"tile 5 win 100",
		"[fullscreen]",
		"(floating)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("render missing %q in:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "> tile 5") {
		t.Fatalf("focused tile not marked:\n%s", out)
	}
}

func TestRenderStateDetachedPool(t *testing.T) {
	st := &layout.State{
		Detached: []layout.DetachedState{
			{
				Origin: "eDP-1",
				Workspaces: []layout.WorkspaceState{
					{ID: 2, Columns: []layout.ColumnState{{Width: "auto", Tiles: []layout.TileState{{ID: 9, Window: 7}}}}},
				},
			},
		},
	}

	out := renderState(st)
	if !strings.Contains(out, "detached (eDP-1)") {
		t.Fatalf("detached pool not shown:\n%s", out)
	}
	if !strings.Contains(out, "tile 9 win 7") {
		t.Fatalf("parked tile not shown:\n%s", out)
	}
}

func TestRenderStateEmpty(t *testing.T) {
	out := renderState(&layout.State{})
	if !strings.Contains(out, "no outputs connected") {
		t.Fatalf("empty state message missing:\n%s", out)
	}
}
