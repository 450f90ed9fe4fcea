package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run resident, loading plugins as they appear",
	Long: `Watches the plugin directory and loads newly appearing plugins at
runtime. Plugins removed from the directory are deregistered, though their
code stays mapped until the process exits. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cfg.Watch.Enabled = true
		if err := os.MkdirAll(cfg.PluginDir, 0o755); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		manager, err := newManager(ctx, cfg)
		if err != nil {
			return err
		}
		defer manager.Stop()

		fmt.Printf("watching %s, press Ctrl-C to stop\n", cfg.PluginDir)
		<-ctx.Done()
		return nil
	},
}
