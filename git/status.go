package git

import (
	"context"
	"fmt"
	"strings"
)

// WorktreeStatus represents the status of changes in a working tree.
type WorktreeStatus struct {
	HasChanges bool
	Summary    string   // Short summary like "3 files changed"
	Files      []string // List of changed files
}

// DiffStats represents the statistics of staged changes.
type DiffStats struct {
	FilesChanged int // Number of files changed
	Insertions   int // Number of lines added
	Deletions    int // Number of lines deleted
}

// Status returns the status of uncommitted changes in the working tree.
func (s *Service) Status(ctx context.Context, dir string) (*WorktreeStatus, error) {
	status := &WorktreeStatus{}

	output, err := s.executor.Output(ctx, dir, "git", "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}

	// Only trim trailing whitespace - leading space is significant in porcelain format
	// (e.g., " M file.go" means modified in worktree, the leading space is part of status)
	lines := strings.Split(strings.TrimRight(string(output), "\n\r\t "), "\n")
	if len(lines) == 1 && lines[0] == "" {
		status.Summary = "No changes"
		return status, nil
	}

	status.HasChanges = true
	for _, line := range lines {
		if len(line) > 3 {
			status.Files = append(status.Files, strings.TrimSpace(line[3:]))
		}
	}

	if len(status.Files) == 1 {
		status.Summary = "1 file changed"
	} else {
		status.Summary = fmt.Sprintf("%d files changed", len(status.Files))
	}

	return status, nil
}

// StagedStats returns the diff statistics (files changed, insertions, deletions)
// for the currently staged changes in the given working tree.
func (s *Service) StagedStats(ctx context.Context, dir string) (*DiffStats, error) {
	output, err := s.executor.Output(ctx, dir, "git", "diff", "--cached", "--numstat")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached --numstat failed: %w", err)
	}

	stats := &DiffStats{}

	// Each numstat line is "additions<tab>deletions<tab>filename".
	// Binary files show "-" for additions/deletions.
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}
		stats.FilesChanged++
		if parts[0] != "-" {
			var add int
			fmt.Sscanf(parts[0], "%d", &add)
			stats.Insertions += add
		}
		if parts[1] != "-" {
			var del int
			fmt.Sscanf(parts[1], "%d", &del)
			stats.Deletions += del
		}
	}

	return stats, nil
}
