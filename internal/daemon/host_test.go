package daemon

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/strandwm/strand/internal/config"
	"github.com/strandwm/strand/internal/ipc"
)

func newTestHost(t *testing.T) *Host {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Animations.Enabled = false
	h, err := NewHost(cfg, "", log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	return h
}

func apply(t *testing.T, h *Host, a ipc.ActionPayload) {
	t.Helper()
	if err := h.Apply(a); err != nil {
		t.Fatalf("Apply(%s): %v", a.Action, err)
	}
}

func TestHostActionRoundTrip(t *testing.T) {
	h := newTestHost(t)
	apply(t, h, ipc.ActionPayload{Action: "add-output", Output: "DP-1", Width: 1920, Height: 1080, Scale: 1})
	apply(t, h, ipc.ActionPayload{Action: "open", Window: 1})
	apply(t, h, ipc.ActionPayload{Action: "open", Window: 2})

	st := h.State()
	if len(st.Outputs) != 1 || st.Outputs[0].Name != "DP-1" {
		t.Fatalf("unexpected outputs: %+v", st.Outputs)
	}
	ws := st.Outputs[0].Workspaces[0]
	if len(ws.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(ws.Columns))
	}
	if st.Focus.Tile == 0 {
		t.Fatalf("expected a focused tile")
	}

	status := h.Status()
	if status.Outputs != 1 || status.Tiles != 2 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if !status.DaemonRunning {
		t.Fatalf("status should report running")
	}
}

func TestHostUnknownActionErrors(t *testing.T) {
	h := newTestHost(t)
	if err := h.Apply(ipc.ActionPayload{Action: "does-not-exist"}); err == nil {
		t.Fatalf("expected an error for an unknown action")
	}
}

func TestHostWindowRuleOnOpen(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Animations.Enabled = false
	cfg.WindowRules = []config.WindowRule{
		{Match: config.WindowRuleMatch{AppID: "^editor$"}, DefaultColumnWidthFixed: 700},
	}
	h, err := NewHost(cfg, "", log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	apply(t, h, ipc.ActionPayload{Action: "add-output", Output: "DP-1", Width: 1920, Height: 1080, Scale: 1})
	apply(t, h, ipc.ActionPayload{Action: "open", Window: 1, AppID: "editor"})

	st := h.State()
	col := st.Outputs[0].Workspaces[0].Columns[0]
	if col.Width != "fixed" {
		t.Fatalf("expected rule to force a fixed width, got %q", col.Width)
	}
}

func TestHostApplyConfigSwapsOptions(t *testing.T) {
	h := newTestHost(t)
	apply(t, h, ipc.ActionPayload{Action: "add-output", Output: "DP-1", Width: 1920, Height: 1080, Scale: 1})
	apply(t, h, ipc.ActionPayload{Action: "open", Window: 1})

	cfg := config.DefaultConfig()
	cfg.Animations.Enabled = false
	cfg.Layout.DefaultColumnWidth = 0.25
	h.ApplyConfig(cfg)

	// New policy applies to windows opened after the swap.
	apply(t, h, ipc.ActionPayload{Action: "open", Window: 2})
	st := h.State()
	if len(st.Outputs[0].Workspaces[0].Columns) != 2 {
		t.Fatalf("expected 2 columns after reload")
	}
}
