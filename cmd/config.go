package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prflow/prflow/config"
	"github.com/prflow/prflow/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage prflow configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			var err error
			path, err = paths.ConfigFilePath()
			if err != nil {
				return err
			}
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
