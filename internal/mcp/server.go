// Package mcp exposes the running daemon's layout state and actions as MCP
// tools over stdio, talking to the daemon through the IPC socket.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/strandwm/strand/internal/ipc"
)

const (
	ServerName    = "strand"
	ServerVersion = "0.1.0"
)

// Server is the MCP server bridging tools onto the daemon's IPC surface.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates the MCP server. The daemon must already be running; tool
// calls surface connection errors per call rather than at startup.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_state",
		Description: "Get the full layout state: outputs, workspace stacks, columns, tiles, floating windows, detached workspaces, and the focus path.",
	}, s.handleGetState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Get daemon status counters: output/workspace/tile counts, whether animations are running, and uptime.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "layout_action",
		Description: "Apply a named layout action (focus, move, resize, workspace switch, fullscreen, floating, output hotplug). Actions on vanished targets are silent no-ops. Returns the resulting focus path.",
	}, s.handleLayoutAction)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a window in the layout. Window rules match on app_id and title to pick the column width and target output. Returns the resulting focus path.",
	}, s.handleOpenWindow)
}

func (s *Server) handleGetState(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStateInput) (*mcpsdk.CallToolResult, GetStateOutput, error) {
	state, err := s.client.GetState()
	if err != nil {
		return nil, GetStateOutput{}, err
	}
	return nil, GetStateOutput{State: *state}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		Outputs:       status.Outputs,
		Workspaces:    status.Workspaces,
		Tiles:         status.Tiles,
		Animating:     status.Animating,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

// actionPayload maps the tool arguments onto the IPC action payload. Every
// argument field carries over; the daemon picks the ones the action needs.
func actionPayload(args LayoutActionInput) ipc.ActionPayload {
	return ipc.ActionPayload{
		Action:    args.Action,
		Tile:      args.Tile,
		Window:    args.Window,
		Workspace: args.Workspace,
		Output:    args.Output,
		Wrap:      args.Wrap,
		Delta:     args.Delta,
		Index:     args.Index,
		X:         args.X,
		Y:         args.Y,
		Width:     args.Width,
		Height:    args.Height,
		Scale:     args.Scale,
		On:        args.On,
		Top:       args.Top,
		Bottom:    args.Bottom,
		Left:      args.Left,
		Right:     args.Right,
	}
}

func (s *Server) handleLayoutAction(_ context.Context, _ *mcpsdk.CallToolRequest, args LayoutActionInput) (*mcpsdk.CallToolResult, LayoutActionOutput, error) {
	err := s.client.Action(actionPayload(args))
	if err != nil {
		return nil, LayoutActionOutput{}, err
	}

	state, err := s.client.GetState()
	if err != nil {
		return nil, LayoutActionOutput{}, err
	}
	return nil, LayoutActionOutput{Applied: true, Focus: state.Focus}, nil
}

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, OpenWindowOutput, error) {
	err := s.client.Action(ipc.ActionPayload{
		Action: "open",
		Window: args.Window,
		AppID:  args.AppID,
		Title:  args.Title,
		Output: args.Output,
	})
	if err != nil {
		return nil, OpenWindowOutput{}, err
	}

	state, err := s.client.GetState()
	if err != nil {
		return nil, OpenWindowOutput{}, err
	}
	return nil, OpenWindowOutput{Focus: state.Focus}, nil
}
