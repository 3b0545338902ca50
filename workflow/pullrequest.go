package workflow

import (
	"context"
	"fmt"

	"github.com/prflow/prflow/logger"
)

// CreatePullRequest opens a pull request for the given head branch against
// the base branch. When no head branch is supplied, the current branch of
// the working directory is used.
func (s *Service) CreatePullRequest(ctx context.Context, p PullRequestParams) Result {
	if p.DryRun {
		return Ok("Dry run: no pull request created", map[string]any{
			"title":      p.Title,
			"body":       p.Body,
			"baseBranch": p.BaseBranch,
			"headBranch": p.HeadBranch,
			"workingDir": p.WorkingDir,
			"dryRun":     true,
		})
	}

	base := p.BaseBranch
	if base == "" {
		base = s.baseBranch
	}

	head := p.HeadBranch
	if head == "" {
		branch, err := s.git.CurrentBranch(ctx, p.WorkingDir)
		if err != nil {
			return Fail("Failed to create pull request: %v", err)
		}
		head = branch
	}

	url, err := s.git.CreatePR(ctx, p.WorkingDir, p.Title, p.Body, base, head)
	if err != nil {
		return Fail("Failed to create pull request: %v", err)
	}

	logger.WithComponent("workflow").Info("pull request created", "url", url, "head", head, "base", base)

	return Ok(
		fmt.Sprintf("Created pull request: %s", url),
		map[string]any{
			"url":        url,
			"title":      p.Title,
			"baseBranch": base,
			"headBranch": head,
		},
	)
}
