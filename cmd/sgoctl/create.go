package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <class-name>",
	Short: "Mint an instance of a registered class",
	Long: `Looks the class up across all loaded manifests and invokes its
factory, reporting the minted object. Both the plain identifier and its
"_sgo" form resolve.`,
	Args: cobra.ExactArgs(1),
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

		obj, err := manager.Registry().CreateObject(args[0])
		if err != nil {
			return err
		}

		lib, _ := manager.Registry().LookupClass(args[0])
		fmt.Printf("created %s (%T) from library %s\n", obj.Name(), obj, lib.PluginID)
		return nil
	},
}
