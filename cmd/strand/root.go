package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

var (
	configPath string
	verbose    bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "strand",
		Short:         "Scrollable-tiling layout daemon",
		Long:          `Strand arranges windows into columns on an infinitely scrollable horizontal strip per workspace, with workspaces stacked vertically per output.`,
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: ~/.config/strand/config.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newDaemonCmd())
	root.AddCommand(newStateCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newOutputsCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(newMsgCmd())
	root.AddCommand(newReloadCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newTUICmd())
	root.AddCommand(newMCPCmd())

	return root
}

// newLogger builds the process logger. Color and timestamps follow whether
// stderr is a terminal.
func newLogger(level string) *log.Logger {
	lvl := log.InfoLevel
	if parsed, err := log.ParseLevel(level); err == nil {
		lvl = parsed
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: term.IsTerminal(int(os.Stderr.Fd())),
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
	})
}
