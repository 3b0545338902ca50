package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prflow/prflow/config"
	"github.com/prflow/prflow/logger"
)

var (
	cfgFile string
	debug   bool

	rootCmd = &cobra.Command{
		Use:   "prflow",
		Short: "prflow - MCP server for Git/GitHub contribution workflows",
		Long: `prflow exposes Git/GitHub contribution operations as MCP tools:
commit and push, pull request creation, pull request merge, and the
complete commit-to-merge sequence. It speaks JSON-RPC 2.0 over stdio.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Serving is the default action
			return runServe()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is the config directory's config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		if err := logger.Init(cfg.LogFile); err != nil {
			return nil, err
		}
	}
	logger.SetDebug(debug || cfg.Debug)

	return cfg, nil
}
