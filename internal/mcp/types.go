package mcp

import "github.com/strandwm/strand/internal/layout"

// GetStateInput is the input for the get_state tool.
type GetStateInput struct{}

// GetStateOutput is the output for the get_state tool.
type GetStateOutput struct {
	State layout.State `json:"state"`
}

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	Outputs       int   `json:"outputs"`
	Workspaces    int   `json:"workspaces"`
	Tiles         int   `json:"tiles"`
	Animating     bool  `json:"animating"`
	UptimeSeconds int64 `json:"uptime_seconds"`
}

// LayoutActionInput is the input for the layout_action tool.
type LayoutActionInput struct {
	Action    string  `json:"action" jsonschema:"required,The action name (e.g. focus-column-left, move-window-right, switch-to-workspace)"`
	Tile      uint64  `json:"tile,omitempty" jsonschema:"Tile id for tile-targeted actions"`
	Window    uint64  `json:"window,omitempty" jsonschema:"Window handle for open/window-closed"`
	Workspace uint64  `json:"workspace,omitempty" jsonschema:"Workspace id for move-to-workspace"`
	Output    string  `json:"output,omitempty" jsonschema:"Output connector name"`
	Wrap      bool    `json:"wrap,omitempty" jsonschema:"Wrap around at the strip edges for focus actions"`
	Delta     float64 `json:"delta,omitempty" jsonschema:"Pixel delta for resize-column"`
	Index     int     `json:"index,omitempty" jsonschema:"Workspace index for switch-to-workspace"`
	X         float64 `json:"x,omitempty" jsonschema:"X coordinate or output position"`
	Y         float64 `json:"y,omitempty" jsonschema:"Y coordinate or output position"`
	Width     float64 `json:"width,omitempty" jsonschema:"Width in logical px"`
	Height    float64 `json:"height,omitempty" jsonschema:"Height in logical px"`
	Scale     float64 `json:"scale,omitempty" jsonschema:"Output scale factor for add-output/update-output"`
	On        bool    `json:"on,omitempty" jsonschema:"Flag value for fullscreen"`
	Top       float64 `json:"top,omitempty" jsonschema:"Reserved top edge in px for set-reserved"`
	Bottom    float64 `json:"bottom,omitempty" jsonschema:"Reserved bottom edge in px for set-reserved"`
	Left      float64 `json:"left,omitempty" jsonschema:"Reserved left edge in px for set-reserved"`
	Right     float64 `json:"right,omitempty" jsonschema:"Reserved right edge in px for set-reserved"`
}

// LayoutActionOutput is the output for the layout_action tool.
type LayoutActionOutput struct {
	Applied bool              `json:"applied"`
	Focus   layout.FocusState `json:"focus"`
}

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	Window uint64 `json:"window" jsonschema:"required,Opaque window handle"`
	AppID  string `json:"app_id,omitempty" jsonschema:"Application id used for window-rule matching"`
	Title  string `json:"title,omitempty" jsonschema:"Window title used for window-rule matching"`
	Output string `json:"output,omitempty" jsonschema:"Output connector to open on (default: focused output)"`
}

// OpenWindowOutput is the output for the open_window tool.
type OpenWindowOutput struct {
	Focus layout.FocusState `json:"focus"`
}
