package mcp

import "testing"

func TestActionPayloadCarriesEveryArgument(t *testing.T) {
	in := LayoutActionInput{
		Action:    "update-output",
		Tile:      5,
		Window:    6,
		Workspace: 7,
		Output:    "DP-2",
		Wrap:      true,
		Delta:     120,
		Index:     2,
		X:         100,
		Y:         200,
		Width:     2560,
		Height:    1440,
		Scale:     2,
		On:        true,
		Top:       40,
		Bottom:    8,
		Left:      4,
		Right:     4,
	}

	p := actionPayload(in)
	if p.Action != "update-output" || p.Tile != 5 || p.Window != 6 || p.Workspace != 7 {
		t.Fatalf("entity references not carried over: %+v", p)
	}
	if p.Output != "DP-2" || !p.Wrap || p.Delta != 120 || p.Index != 2 {
		t.Fatalf("scalar arguments not carried over: %+v", p)
	}
	if p.X != 100 || p.Y != 200 || p.Width != 2560 || p.Height != 1440 {
		t.Fatalf("geometry arguments not carried over: %+v", p)
	}
	if p.Scale != 2 {
		t.Fatalf("scale = %v, want 2", p.Scale)
	}
	if !p.On || p.Top != 40 || p.Bottom != 8 || p.Left != 4 || p.Right != 4 {
		t.Fatalf("flag and reserved edges not carried over: %+v", p)
	}
}
