package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/prflow/prflow/logger"
)

// IsRepository reports whether dir is inside a git working tree.
func (s *Service) IsRepository(ctx context.Context, dir string) bool {
	_, _, err := s.executor.Run(ctx, dir, "git", "rev-parse", "--git-dir")
	return err == nil
}

// HasRemoteOrigin checks if the repository has a remote named "origin".
func (s *Service) HasRemoteOrigin(ctx context.Context, dir string) bool {
	_, _, err := s.executor.Run(ctx, dir, "git", "remote", "get-url", "origin")
	return err == nil
}

// CurrentBranch returns the name of the currently checked out branch.
// Returns an error if HEAD is detached or the command fails.
func (s *Service) CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := s.executor.Output(ctx, dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("HEAD is detached (not on a branch)")
	}

	return branch, nil
}

// CreateBranch creates a new branch and switches to it.
// Fails if the branch already exists.
func (s *Service) CreateBranch(ctx context.Context, dir, branch string) error {
	output, err := s.executor.CombinedOutput(ctx, dir, "git", "checkout", "-b", branch)
	if err != nil {
		return fmt.Errorf("git checkout -b failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("created branch", "branch", branch, "dir", dir)
	return nil
}

// SwitchBranch checks out an existing branch.
func (s *Service) SwitchBranch(ctx context.Context, dir, branch string) error {
	output, err := s.executor.CombinedOutput(ctx, dir, "git", "checkout", branch)
	if err != nil {
		return fmt.Errorf("git checkout failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("checked out branch", "branch", branch, "dir", dir)
	return nil
}

// DefaultBranch returns the default branch name (main or master).
func (s *Service) DefaultBranch(ctx context.Context, dir string) string {
	// Try to get the default branch from origin
	output, err := s.executor.Output(ctx, dir, "git", "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		// Output is like "refs/remotes/origin/main"
		ref := strings.TrimSpace(string(output))
		parts := strings.Split(ref, "/")
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	// Fallback: check if main exists, otherwise use master
	_, _, err = s.executor.Run(ctx, dir, "git", "rev-parse", "--verify", "main")
	if err == nil {
		return "main"
	}

	return "master"
}
