package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prflow/prflow/mcp"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the prflow version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("prflow %s\n", mcp.ServerVersion)
	},
}
