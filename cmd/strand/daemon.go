package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strandwm/strand/internal/config"
	"github.com/strandwm/strand/internal/daemon"
	"github.com/strandwm/strand/internal/ipc"
	"github.com/strandwm/strand/internal/runtimepath"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the layout daemon (foreground)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd)
		},
	}
}

func runDaemon(cmd *cobra.Command) error {
	cfgPath := configPath
	if cfgPath == "" {
		var err error
		cfgPath, err = config.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.LoadFromPath(cfgPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	host, err := daemon.NewHost(cfg, cfgPath, logger)
	if err != nil {
		return err
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return err
	}
	srv := ipc.NewServer(socketPath, host, logger)
	host.OnStateChange(func() {
		srv.Broadcast(ipc.Event{Type: ipc.EventStateChanged})
	})
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	watcher, err := config.NewWatcher(cfgPath, logger)
	if err != nil {
		// The daemon still works without live reload; RELOAD over IPC
		// remains available.
		logger.Warn("config watcher unavailable", "error", err)
	} else {
		watcher.OnChange(host.ApplyConfig)
		defer watcher.Close()
	}

	logger.Info("strand daemon started", "config", cfgPath, "socket", socketPath)
	host.Run(cmd.Context())
	return nil
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := configPath
			if cfgPath == "" {
				var err error
				cfgPath, err = config.DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			if _, err := config.LoadFromPath(cfgPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", cfgPath)
			return nil
		},
	}
}
