package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/prflow/prflow/logger"
)

// Stage stages the given files for commit. An empty list stages everything
// modified or untracked under the working tree.
func (s *Service) Stage(ctx context.Context, dir string, files []string) error {
	args := []string{"add"}
	if len(files) == 0 {
		args = append(args, "-A")
	} else {
		args = append(args, "--")
		args = append(args, files...)
	}

	if output, err := s.executor.CombinedOutput(ctx, dir, "git", args...); err != nil {
		return fmt.Errorf("git add failed: %s - %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Commit creates a commit with the given message from the staged changes.
func (s *Service) Commit(ctx context.Context, dir, message string) error {
	logger.WithComponent("git").Info("committing staged changes", "dir", dir)

	if output, err := s.executor.CombinedOutput(ctx, dir, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %s - %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Head returns the abbreviated hash of the current HEAD commit.
func (s *Service) Head(ctx context.Context, dir string) (string, error) {
	output, err := s.executor.Output(ctx, dir, "git", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Push pushes the given branch to the named remote, setting the upstream
// tracking reference.
func (s *Service) Push(ctx context.Context, dir, remote, branch string) error {
	logger.WithComponent("git").Info("pushing branch", "remote", remote, "branch", branch, "dir", dir)

	output, err := s.executor.CombinedOutput(ctx, dir, "git", "push", "-u", remote, branch)
	if err != nil {
		return fmt.Errorf("git push failed: %s - %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}
