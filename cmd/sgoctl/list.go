package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded plugin libraries and their classes",
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

		libraries := manager.Registry().Libraries()
		if len(libraries) == 0 {
			fmt.Println("no plugin libraries loaded")
			return nil
		}

		for _, info := range libraries {
			kind := "plugin"
			if info.BuiltIn {
				kind = "built-in"
			}
			fmt.Printf("%s (%s)\n", info.PluginID, kind)
			fmt.Printf("  description: %s\n", info.Description)
			fmt.Printf("  classes:     %s\n", strings.Join(info.Classes, ", "))
			if info.Path != "" {
				fmt.Printf("  binary:      %s\n", info.Path)
			}
		}
		return nil
	},
}
