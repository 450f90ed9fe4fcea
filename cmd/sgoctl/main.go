// Package main provides the sgoctl CLI for inspecting and exercising sgo
// plugin libraries.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/sgo-ml/sgo/internal/config"
	_ "github.com/sgo-ml/sgo/internal/corelib" // registers the built-in manifest
	"github.com/sgo-ml/sgo/internal/pluginmodule"
)

var (
	// flagConfigFile is set by the --config flag.
	flagConfigFile string
	flagPluginDir  string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sgoctl",
	Short: "Inspect and exercise sgo plugin libraries",
	Long: `sgoctl loads the plugin libraries found in the configured plugin
directory, merges their manifests with the built-in class catalog, and lets
you list libraries, describe their exported classes, and mint instances by
registration name.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "config file (default: ./config.yaml or ~/.sgo/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagPluginDir, "plugin-dir", "", "plugin directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig resolves the host configuration, applying flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfigFile)
	if err != nil {
		return nil, err
	}
	if flagPluginDir != "" {
		cfg.PluginDir = flagPluginDir
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// newManager builds and starts a plugin manager from the resolved
// configuration.
func newManager(ctx context.Context, cfg *config.Config) (*pluginmodule.Manager, error) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "sgoctl",
		Level: hclog.LevelFromString(cfg.LogLevel),
	})

	manager := pluginmodule.NewManager(cfg.PluginModuleConfig(), logger)
	if err := manager.Start(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}
