package workflow

import (
	"context"
	"regexp"

	"github.com/prflow/prflow/logger"
)

// prNumberPattern matches the trailing numeric identifier of a GitHub pull
// request URL. The literal "/pull/<digits>" at end of string is deliberate;
// other URL shapes skip auto-merge rather than fail the workflow.
var prNumberPattern = regexp.MustCompile(`/pull/(\d+)$`)

// extractPRNumber pulls the PR number out of a pull request URL.
func extractPRNumber(url string) (string, bool) {
	m := prNumberPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CompleteWorkflow runs the full contribution sequence: commit and push,
// create a pull request, and optionally merge it. The sequence short-circuits
// on the first failing step, returning that step's result unchanged so the
// caller sees which step failed. Effects of earlier steps are left in place.
func (s *Service) CompleteWorkflow(ctx context.Context, p CompleteParams) (result Result) {
	log := logger.WithComponent("workflow")

	defer func() {
		if r := recover(); r != nil {
			log.Error("workflow panicked", "panic", r)
			result = Fail("Git workflow failed: %v", r)
		}
	}()

	if p.DryRun {
		return Ok("Dry run: no changes made", map[string]any{
			"files":         p.Files,
			"commitMessage": p.CommitMessage,
			"branch":        p.Branch,
			"prTitle":       p.PRTitle,
			"prBody":        p.PRBody,
			"baseBranch":    p.BaseBranch,
			"autoMerge":     p.AutoMerge,
			"workingDir":    p.WorkingDir,
			"dryRun":        true,
		})
	}

	commitRes := s.CommitAndPush(ctx, CommitParams{
		Files:         p.Files,
		CommitMessage: p.CommitMessage,
		Branch:        p.Branch,
		WorkingDir:    p.WorkingDir,
	})
	if !commitRes.Success {
		return commitRes
	}

	head, _ := commitRes.Details["branch"].(string)
	prRes := s.CreatePullRequest(ctx, PullRequestParams{
		Title:      p.PRTitle,
		Body:       p.PRBody,
		BaseBranch: p.BaseBranch,
		HeadBranch: head,
		WorkingDir: p.WorkingDir,
	})
	if !prRes.Success {
		return prRes
	}

	details := map[string]any{
		"commit":      commitRes.Details,
		"pullRequest": prRes.Details,
	}

	if p.AutoMerge {
		url, _ := prRes.Details["url"].(string)
		number, ok := extractPRNumber(url)
		if !ok {
			// Soft failure: an unexpected URL shape must not abort an
			// otherwise-successful PR creation.
			log.Warn("could not extract PR number, skipping auto-merge", "url", url)
		} else {
			mergeRes := s.MergePullRequest(ctx, MergeParams{
				PRNumber:     number,
				MergeMethod:  "merge",
				DeleteBranch: true,
				WorkingDir:   p.WorkingDir,
			})
			if !mergeRes.Success {
				return mergeRes
			}
			details["merge"] = mergeRes.Details
		}
	}

	return Ok("Git workflow completed successfully", details)
}
