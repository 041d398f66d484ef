package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetState   CommandType = "GET_STATE"
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandGetOutputs CommandType = "GET_OUTPUTS"
	CommandAction     CommandType = "ACTION"
	CommandReload     CommandType = "RELOAD"
	CommandSubscribe  CommandType = "SUBSCRIBE"
)

// Event is pushed to subscribed connections after the OK response. Clients
// re-fetch whatever state they care about when one arrives.
type Event struct {
	Type string `json:"type"`
}

// EventStateChanged fires after any successful action or config reload.
const EventStateChanged = "state-changed"

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Outputs       int   `json:"outputs"`
	Workspaces    int   `json:"workspaces"`
	Tiles         int   `json:"tiles"`
	Animating     bool  `json:"animating"`
	UptimeSeconds int64 `json:"uptime_seconds"`
	DaemonRunning bool  `json:"daemon_running"`
}

// ActionPayload names an engine action plus its arguments. Unused fields
// stay zero; the daemon picks the ones the named action needs.
type ActionPayload struct {
	Action string `json:"action"`

	// Entity references.
	Tile      uint64 `json:"tile,omitempty"`
	Window    uint64 `json:"window,omitempty"`
	Workspace uint64 `json:"workspace,omitempty"`
	Output    string `json:"output,omitempty"`

	// Scalar arguments.
	Wrap   bool    `json:"wrap,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Index  int     `json:"index,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	On     bool    `json:"on,omitempty"`

	// Reserved edges for "set-reserved" (panels, docks).
	Top    float64 `json:"top,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
	Right  float64 `json:"right,omitempty"`

	// Window metadata, used by "open" to run the window rules.
	AppID string `json:"app_id,omitempty"`
	Title string `json:"title,omitempty"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
