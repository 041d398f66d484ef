// Package daemon runs the layout engine behind a single mutex and exposes
// it to the IPC and MCP servers. The engine itself is single-threaded; all
// concurrency lives here.
package daemon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/strandwm/strand/internal/config"
	"github.com/strandwm/strand/internal/geometry"
	"github.com/strandwm/strand/internal/ipc"
	"github.com/strandwm/strand/internal/layout"
)

// frameInterval is the Tick cadence while animations are running.
const frameInterval = 16 * time.Millisecond

// Host owns the engine and serializes every access to it.
type Host struct {
	mu     sync.Mutex
	engine *layout.Engine
	rules  *config.Rules
	cfg    *config.Config

	cfgPath   string
	logger    *log.Logger
	startTime time.Time
	onChange  func()
}

// OnStateChange registers a callback fired after every successful action or
// config swap. Set it before Run; the callback runs outside the engine lock.
func (h *Host) OnStateChange(fn func()) {
	h.onChange = fn
}

func (h *Host) notify() {
	if h.onChange != nil {
		h.onChange()
	}
}

// NewHost wraps a fresh engine configured from cfg. cfgPath is re-read on
// ReloadConfig.
func NewHost(cfg *config.Config, cfgPath string, logger *log.Logger) (*Host, error) {
	rules, err := config.CompileRules(cfg.WindowRules)
	if err != nil {
		return nil, err
	}
	return &Host{
		engine:    layout.New(cfg.EngineOptions()),
		rules:     rules,
		cfg:       cfg,
		cfgPath:   cfgPath,
		logger:    logger,
		startTime: time.Now(),
	}, nil
}

// Run drives the animation clock until ctx is cancelled. Ticking only
// happens while something is actually animating, so an idle session costs
// nothing per frame.
func (h *Host) Run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("host stopped")
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now

			h.mu.Lock()
			if h.engine.Animating() {
				h.engine.Tick(elapsed)
			}
			h.mu.Unlock()
		}
	}
}

// State returns a structural snapshot of the layout.
func (h *Host) State() layout.State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Snapshot()
}

// Status returns daemon status counters.
func (h *Host) Status() ipc.StatusData {
	h.mu.Lock()
	defer h.mu.Unlock()

	st := h.engine.Snapshot()
	tiles := 0
	workspaces := 0
	for _, out := range st.Outputs {
		workspaces += len(out.Workspaces)
		for _, ws := range out.Workspaces {
			tiles += len(ws.Floating)
			for _, col := range ws.Columns {
				tiles += len(col.Tiles)
			}
		}
	}
	for _, d := range st.Detached {
		workspaces += len(d.Workspaces)
		for _, ws := range d.Workspaces {
			tiles += len(ws.Floating)
			for _, col := range ws.Columns {
				tiles += len(col.Tiles)
			}
		}
	}

	return ipc.StatusData{
		Outputs:       len(st.Outputs),
		Workspaces:    workspaces,
		Tiles:         tiles,
		Animating:     h.engine.Animating(),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		DaemonRunning: true,
	}
}

// ReloadConfig re-reads the config file and applies it to the running
// engine. A file that fails validation leaves the current config in place.
func (h *Host) ReloadConfig() error {
	cfg, err := config.LoadFromPath(h.cfgPath)
	if err != nil {
		return err
	}
	h.ApplyConfig(cfg)
	return nil
}

// ApplyConfig swaps in an already-validated config, e.g. from the file
// watcher.
func (h *Host) ApplyConfig(cfg *config.Config) {
	rules, err := config.CompileRules(cfg.WindowRules)
	if err != nil {
		// Validate compiles the same regexes, so this cannot normally fail.
		h.logger.Warn("window rules failed to compile, keeping previous", "error", err)
		rules = nil
	}

	h.mu.Lock()
	h.cfg = cfg
	if rules != nil {
		h.rules = rules
	}
	h.engine.SetOptions(cfg.EngineOptions())
	h.mu.Unlock()

	h.logger.Info("config applied")
	h.notify()
}

// Apply dispatches a named action into the engine. Unknown action names are
// errors; actions whose target vanished are silent no-ops, matching the
// engine's own semantics.
func (h *Host) Apply(a ipc.ActionPayload) error {
	h.mu.Lock()
	err := h.dispatch(a)
	h.mu.Unlock()

	if err == nil {
		h.notify()
	}
	return err
}

func (h *Host) dispatch(a ipc.ActionPayload) error {
	e := h.engine
	switch a.Action {
	case "open":
		placement := h.rules.Resolve(a.AppID, a.Title)
		req := layout.OpenRequest{
			Window:      layout.WindowID(a.Window),
			Output:      layout.OutputID(a.Output),
			Width:       placement.Width,
			ContentSize: geometry.Size{Width: a.Width, Height: a.Height},
		}
		if req.Output == "" {
			req.Output = placement.Output
		}
		e.OpenWindow(req)
	case "close":
		e.CloseWindow(layout.TileID(a.Tile))
	case "window-closed":
		e.WindowClosed(layout.WindowID(a.Window))
	case "focus-column-left":
		e.FocusColumnLeft(a.Wrap)
	case "focus-column-right":
		e.FocusColumnRight(a.Wrap)
	case "focus-window-up":
		e.FocusWindowUp(a.Wrap)
	case "focus-window-down":
		e.FocusWindowDown(a.Wrap)
	case "focus-tile":
		e.FocusTile(layout.TileID(a.Tile))
	case "move-window-left":
		e.MoveWindowLeft()
	case "move-window-right":
		e.MoveWindowRight()
	case "move-window-up":
		e.MoveWindowUp()
	case "move-window-down":
		e.MoveWindowDown()
	case "consume-window-left":
		e.ConsumeWindowLeft()
	case "expel-window-right":
		e.ExpelWindowRight()
	case "resize-column":
		e.ResizeColumn(layout.TileID(a.Tile), a.Delta)
	case "set-tile-height":
		e.SetTileHeight(layout.TileID(a.Tile), a.Height)
	case "set-content-size":
		e.SetContentSize(layout.TileID(a.Tile), geometry.Size{Width: a.Width, Height: a.Height})
	case "focus-workspace-up":
		e.FocusWorkspaceUp()
	case "focus-workspace-down":
		e.FocusWorkspaceDown()
	case "switch-to-workspace":
		e.SwitchToWorkspace(a.Index)
	case "move-to-workspace":
		e.MoveWindowToWorkspace(layout.TileID(a.Tile), layout.WorkspaceID(a.Workspace))
	case "move-to-output":
		e.MoveWindowToOutput(layout.TileID(a.Tile), layout.OutputID(a.Output))
	case "fullscreen":
		e.SetFullscreen(layout.TileID(a.Tile), a.On)
	case "toggle-floating":
		e.ToggleFloating(layout.TileID(a.Tile))
	case "move-floating":
		e.MoveFloating(layout.TileID(a.Tile), geometry.Point{X: a.X, Y: a.Y})
	case "add-output":
		e.AddOutput(layout.Output{
			ID:       layout.OutputID(a.Output),
			Position: geometry.Point{X: a.X, Y: a.Y},
			Mode:     geometry.Size{Width: a.Width, Height: a.Height},
			Scale:    a.Scale,
		})
	case "remove-output":
		e.RemoveOutput(layout.OutputID(a.Output))
	case "update-output":
		e.UpdateOutput(layout.Output{
			ID:       layout.OutputID(a.Output),
			Position: geometry.Point{X: a.X, Y: a.Y},
			Mode:     geometry.Size{Width: a.Width, Height: a.Height},
			Scale:    a.Scale,
		})
	case "set-reserved":
		e.SetReserved(layout.OutputID(a.Output), geometry.Insets{
			Top:    a.Top,
			Bottom: a.Bottom,
			Left:   a.Left,
			Right:  a.Right,
		})
	default:
		return fmt.Errorf("unknown action: %s", a.Action)
	}
	return nil
}
