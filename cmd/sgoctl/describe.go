package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sgo-ml/sgo/sdk"
)

var describeCmd = &cobra.Command{
	Use:   "describe <plugin-id>",
	Short: "Show one library's manifest and sidecar settings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		manager, err := newManager(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer manager.Stop()

		lib, ok := manager.Registry().Library(args[0])
		if !ok {
			return fmt.Errorf("no library registered under %q", args[0])
		}

		fmt.Printf("plugin:      %s\n", lib.PluginID)
		fmt.Printf("load id:     %s\n", lib.LoadID)
		fmt.Printf("description: %s\n", lib.Manifest.Description())
		if lib.Metadata != nil {
			fmt.Printf("version:     %s\n", lib.Metadata.Version)
			if lib.Metadata.Author != "" {
				fmt.Printf("author:      %s\n", lib.Metadata.Author)
			}
		}
		fmt.Println("classes:")
		for _, name := range lib.Manifest.ClassList() {
			fmt.Printf("  %s\n", name)
		}

		if lib.Path != "" {
			settings, err := sdk.NewConfigLoader(filepath.Dir(lib.Path)).Settings()
			if err != nil {
				return err
			}
			if len(settings) > 0 {
				keys := make([]string, 0, len(settings))
				for key := range settings {
					keys = append(keys, key)
				}
				sort.Strings(keys)

				fmt.Println("settings:")
				for _, key := range keys {
					fmt.Printf("  %s: %v\n", key, settings[key])
				}
			}
		}
		return nil
	},
}
