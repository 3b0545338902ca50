package git

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/prflow/prflow/logger"
)

// tokenEnvVars are the authentication overrides the gh CLI honors ahead of its
// own persisted credentials. Stale or scoped-wrong tokens in the server's
// environment must never silently take precedence, so every gh invocation
// runs with these removed.
var tokenEnvVars = []string{
	"GH_TOKEN",
	"GITHUB_TOKEN",
	"GH_ENTERPRISE_TOKEN",
	"GITHUB_ENTERPRISE_TOKEN",
}

// sanitizedEnv returns the current process environment with token overrides
// removed, so gh falls back to its keyring-based authentication.
func sanitizedEnv() []string {
	env := os.Environ()
	out := make([]string, 0, len(env))
	for _, kv := range env {
		drop := false
		for _, name := range tokenEnvVars {
			if strings.HasPrefix(kv, name+"=") {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, kv)
		}
	}
	return out
}

// CreatePR opens a pull request via the gh CLI and returns its URL.
//
// The body is free-form text and is delivered through a temporary file passed
// with --body-file; the file is removed on every exit path. All other values
// travel as discrete argv elements, so no shell interpretation happens at any
// point.
func (s *Service) CreatePR(ctx context.Context, dir, title, body, base, head string) (string, error) {
	log := logger.WithComponent("git")
	log.Info("creating PR", "base", base, "head", head, "dir", dir)

	bodyFile, err := os.CreateTemp("", "prflow-pr-body-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create PR body file: %w", err)
	}
	defer os.Remove(bodyFile.Name())

	if _, err := bodyFile.WriteString(body); err != nil {
		bodyFile.Close()
		return "", fmt.Errorf("failed to write PR body file: %w", err)
	}
	if err := bodyFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write PR body file: %w", err)
	}

	stdout, stderr, err := s.executor.RunEnv(ctx, dir, sanitizedEnv(), "gh",
		"pr", "create",
		"--base", base,
		"--head", head,
		"--title", title,
		"--body-file", bodyFile.Name(),
	)
	if err != nil {
		errMsg := strings.TrimSpace(string(stderr))
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", fmt.Errorf("gh pr create failed: %s", errMsg)
	}

	url := strings.TrimSpace(string(stdout))
	log.Info("created PR", "url", url)
	return url, nil
}

// MergePR merges a pull request via the gh CLI and returns the raw command
// output. Valid methods: "merge", "squash", "rebase"; anything else defaults
// to "merge". The deleteBranch parameter controls whether the head branch is
// deleted after merging.
func (s *Service) MergePR(ctx context.Context, dir, number, method string, deleteBranch bool) (string, error) {
	var flag string
	switch method {
	case "squash":
		flag = "--squash"
	case "rebase":
		flag = "--rebase"
	default:
		flag = "--merge"
	}
	args := []string{"pr", "merge", number, flag}
	if deleteBranch {
		args = append(args, "--delete-branch")
	}

	logger.WithComponent("git").Info("merging PR", "number", number, "method", method, "deleteBranch", deleteBranch)

	stdout, stderr, err := s.executor.RunEnv(ctx, dir, sanitizedEnv(), "gh", args...)
	if err != nil {
		errMsg := strings.TrimSpace(string(stderr))
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", fmt.Errorf("gh pr merge failed: %s", errMsg)
	}

	return strings.TrimSpace(string(stdout)), nil
}
