package workflow

import (
	"context"
	"fmt"

	"github.com/prflow/prflow/logger"
)

// MergePullRequest merges the numbered pull request using the requested
// merge method, optionally deleting the head branch afterwards.
func (s *Service) MergePullRequest(ctx context.Context, p MergeParams) Result {
	if p.DryRun {
		return Ok("Dry run: no merge performed", map[string]any{
			"prNumber":     p.PRNumber,
			"mergeMethod":  p.MergeMethod,
			"deleteBranch": p.DeleteBranch,
			"workingDir":   p.WorkingDir,
			"dryRun":       true,
		})
	}

	output, err := s.git.MergePR(ctx, p.WorkingDir, p.PRNumber, p.MergeMethod, p.DeleteBranch)
	if err != nil {
		return Fail("Failed to merge pull request #%s: %v", p.PRNumber, err)
	}

	logger.WithComponent("workflow").Info("pull request merged", "prNumber", p.PRNumber, "method", p.MergeMethod)

	return Ok(
		fmt.Sprintf("Merged pull request #%s", p.PRNumber),
		map[string]any{
			"prNumber":    p.PRNumber,
			"mergeMethod": p.MergeMethod,
			"output":      output,
		},
	)
}
