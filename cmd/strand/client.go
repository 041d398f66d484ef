package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandwm/strand/internal/ipc"
)

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the daemon's layout state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := ipc.NewClient().GetState()
			if err != nil {
				return err
			}
			return printJSON(cmd, state)
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := ipc.NewClient().GetStatus()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "outputs:    %d\n", status.Outputs)
			fmt.Fprintf(out, "workspaces: %d\n", status.Workspaces)
			fmt.Fprintf(out, "tiles:      %d\n", status.Tiles)
			fmt.Fprintf(out, "animating:  %v\n", status.Animating)
			fmt.Fprintf(out, "uptime:     %ds\n", status.UptimeSeconds)
			return nil
		},
	}
}

func newOutputsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outputs",
		Short: "Print the connected outputs as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputs, err := ipc.NewClient().GetOutputs()
			if err != nil {
				return err
			}
			return printJSON(cmd, outputs)
		},
	}
}

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Stream layout change events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := ipc.NewClient().Subscribe()
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx := cmd.Context()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-sub.Events:
					if !ok {
						return fmt.Errorf("daemon closed the event stream")
					}
					fmt.Fprintln(cmd.OutOrStdout(), ev.Type)
				}
			}
		},
	}
}

func newMsgCmd() *cobra.Command {
	var payload ipc.ActionPayload

	cmd := &cobra.Command{
		Use:   "msg <action>",
		Short: "Send a layout action to the daemon",
		Long: `Send a named layout action to the running daemon.

Examples:
  strand msg focus-column-left
  strand msg resize-column --tile 5 --delta 100
  strand msg switch-to-workspace --index 2
  strand msg move-to-output --tile 5 --output DP-2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload.Action = args[0]
			return ipc.NewClient().Action(payload)
		},
	}

	f := cmd.Flags()
	f.Uint64Var(&payload.Tile, "tile", 0, "tile id")
	f.Uint64Var(&payload.Window, "window", 0, "window handle")
	f.Uint64Var(&payload.Workspace, "workspace", 0, "workspace id")
	f.StringVar(&payload.Output, "output", "", "output connector name")
	f.BoolVar(&payload.Wrap, "wrap", false, "wrap around at strip edges")
	f.Float64Var(&payload.Delta, "delta", 0, "pixel delta")
	f.IntVar(&payload.Index, "index", 0, "workspace index")
	f.Float64Var(&payload.X, "x", 0, "x coordinate")
	f.Float64Var(&payload.Y, "y", 0, "y coordinate")
	f.Float64Var(&payload.Width, "width", 0, "width in logical px")
	f.Float64Var(&payload.Height, "height", 0, "height in logical px")
	f.Float64Var(&payload.Scale, "scale", 0, "output scale factor")
	f.BoolVar(&payload.On, "on", false, "flag value for fullscreen")
	f.StringVar(&payload.AppID, "app-id", "", "app id for window-rule matching")
	f.StringVar(&payload.Title, "title", "", "title for window-rule matching")

	return cmd
}

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the daemon's config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ipc.NewClient().Reload()
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
