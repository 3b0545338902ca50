package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prflow/prflow/cli"
	"github.com/prflow/prflow/git"
	"github.com/prflow/prflow/logger"
	"github.com/prflow/prflow/mcp"
	"github.com/prflow/prflow/workflow"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Close()

	results := cli.CheckAll(cli.DefaultPrerequisites())
	if missing := cli.MissingRequired(results); len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}

	svc := workflow.NewService(
		git.NewService(),
		workflow.WithRemote(cfg.Remote),
		workflow.WithBaseBranch(cfg.BaseBranch),
	)

	server := mcp.NewServer(os.Stdin, os.Stdout, svc)
	return server.Run()
}
