package workflow

import (
	"context"
	"fmt"

	"github.com/prflow/prflow/logger"
)

// CommitAndPush stages the requested files, commits them with the given
// message, and pushes the current branch to the remote.
//
// A commit that succeeds but whose push fails remains committed locally; no
// rollback is attempted. Recovery of partial states is left to the operator.
func (s *Service) CommitAndPush(ctx context.Context, p CommitParams) Result {
	log := logger.WithComponent("workflow")

	if p.DryRun {
		return Ok("Dry run: no changes made", map[string]any{
			"files":         p.Files,
			"commitMessage": p.CommitMessage,
			"branch":        p.Branch,
			"workingDir":    p.WorkingDir,
			"dryRun":        true,
		})
	}

	if !s.git.IsRepository(ctx, p.WorkingDir) {
		return Fail("not a git repository: %s", displayDir(p.WorkingDir))
	}

	if p.Branch != "" {
		if err := s.git.CreateBranch(ctx, p.WorkingDir, p.Branch); err != nil {
			// Branch may already exist; try a plain switch before giving up.
			if switchErr := s.git.SwitchBranch(ctx, p.WorkingDir, p.Branch); switchErr != nil {
				return Fail("failed to create or switch to branch %q: %v", p.Branch, switchErr)
			}
		}
	}

	if err := s.git.Stage(ctx, p.WorkingDir, p.Files); err != nil {
		return Fail("failed to stage files: %v", err)
	}

	stats, err := s.git.StagedStats(ctx, p.WorkingDir)
	if err != nil {
		return Fail("failed to read staged changes: %v", err)
	}

	if err := s.git.Commit(ctx, p.WorkingDir, p.CommitMessage); err != nil {
		return Fail("failed to commit: %v", err)
	}

	hash, err := s.git.Head(ctx, p.WorkingDir)
	if err != nil {
		return Fail("failed to resolve commit: %v", err)
	}

	branch, err := s.git.CurrentBranch(ctx, p.WorkingDir)
	if err != nil {
		return Fail("failed to resolve current branch: %v", err)
	}

	if err := s.git.Push(ctx, p.WorkingDir, s.remote, branch); err != nil {
		return Fail("failed to push branch %q: %v", branch, err)
	}

	log.Info("committed and pushed", "commit", hash, "branch", branch, "files", stats.FilesChanged)

	return Ok(
		fmt.Sprintf("Committed and pushed %s to %s/%s", hash, s.remote, branch),
		map[string]any{
			"commit":       hash,
			"branch":       branch,
			"filesChanged": stats.FilesChanged,
			"insertions":   stats.Insertions,
			"deletions":    stats.Deletions,
		},
	)
}

// displayDir renders a working directory for error messages, substituting
// the process default when none was given.
func displayDir(dir string) string {
	if dir == "" {
		return "current directory"
	}
	return dir
}
