package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prflow/prflow/cli"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that required CLI tools are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		results := cli.CheckAll(cli.DefaultPrerequisites())

		for _, r := range results {
			if r.Found {
				version := r.Version
				if version == "" {
					version = "unknown version"
				}
				fmt.Printf("  ok  %-4s %s (%s)\n", r.Prerequisite.Name, r.Path, version)
			} else {
				fmt.Printf("  --  %-4s not found - install from %s\n", r.Prerequisite.Name, r.Prerequisite.InstallURL)
			}
		}

		if missing := cli.MissingRequired(results); len(missing) > 0 {
			return fmt.Errorf("%d required tool(s) missing", len(missing))
		}
		return nil
	},
}
