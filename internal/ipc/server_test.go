package ipc_test

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strandwm/strand/internal/config"
	"github.com/strandwm/strand/internal/daemon"
	"github.com/strandwm/strand/internal/ipc"
	"github.com/strandwm/strand/internal/runtimepath"
)

// startServer runs a real server over a unix socket in a temp runtime dir
// so NewClient resolves the same path.
func startServer(t *testing.T) *ipc.Client {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Animations.Enabled = false
	host, err := daemon.NewHost(cfg, "", log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}

	client := ipc.NewClient()
	srv := ipc.NewServer(socketPath(t), host, log.New(io.Discard))
	host.OnStateChange(func() {
		srv.Broadcast(ipc.Event{Type: ipc.EventStateChanged})
	})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return client
}

func socketPath(t *testing.T) string {
	t.Helper()
	path, err := runtimepath.SocketPath()
	if err != nil {
		t.Fatalf("socket path: %v", err)
	}
	return path
}

func TestClientServerRoundTrip(t *testing.T) {
	client := startServer(t)

	if err := client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	err := client.Action(ipc.ActionPayload{Action: "add-output", Output: "DP-1", Width: 1920, Height: 1080, Scale: 1})
	if err != nil {
		t.Fatalf("add-output: %v", err)
	}
	if err := client.Action(ipc.ActionPayload{Action: "open", Window: 1}); err != nil {
		t.Fatalf("open: %v", err)
	}

	state, err := client.GetState()
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if len(state.Outputs) != 1 || state.Outputs[0].Name != "DP-1" {
		t.Fatalf("unexpected state: %+v", state.Outputs)
	}
	if state.Focus.Tile == 0 {
		t.Fatalf("expected a focused tile after open")
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.Tiles != 1 {
		t.Fatalf("expected 1 tile, got %d", status.Tiles)
	}
}

func TestGetOutputs(t *testing.T) {
	client := startServer(t)

	err := client.Action(ipc.ActionPayload{Action: "add-output", Output: "DP-1", Width: 1920, Height: 1080, Scale: 1})
	if err != nil {
		t.Fatalf("add-output: %v", err)
	}

	outputs, err := client.GetOutputs()
	if err != nil {
		t.Fatalf("GetOutputs: %v", err)
	}
	if len(outputs) != 1 || outputs[0].Name != "DP-1" {
		t.Fatalf("unexpected outputs: %+v", outputs)
	}
	if outputs[0].WorkArea.Width != 1920 {
		t.Fatalf("work area width = %v, want 1920", outputs[0].WorkArea.Width)
	}
}

func TestSubscribeStreamsChangeEvents(t *testing.T) {
	client := startServer(t)

	sub, err := client.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	err = client.Action(ipc.ActionPayload{Action: "add-output", Output: "DP-1", Width: 1920, Height: 1080, Scale: 1})
	if err != nil {
		t.Fatalf("add-output: %v", err)
	}

	select {
	case ev, ok := <-sub.Events:
		if !ok {
			t.Fatalf("event channel closed before an event arrived")
		}
		if ev.Type != ipc.EventStateChanged {
			t.Fatalf("event type = %q, want %q", ev.Type, ipc.EventStateChanged)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no event within 2s of an action")
	}
}

func TestClientSurfacesDaemonErrors(t *testing.T) {
	client := startServer(t)

	if err := client.Action(ipc.ActionPayload{Action: "no-such-action"}); err == nil {
		t.Fatalf("expected an error for an unknown action")
	}
}

func TestClientFailsWithoutDaemon(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	client := ipc.NewClient()
	if err := client.Ping(); err == nil {
		t.Fatalf("expected a connection error with no daemon")
	}
}
