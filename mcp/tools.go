package mcp

import (
	"context"

	"github.com/prflow/prflow/workflow"
)

// defineTools binds the four workflow operations to their tool definitions.
// Parameter maps are validated into typed structs here, at the dispatch
// boundary, before any orchestration logic runs.
func defineTools(svc *workflow.Service) []Tool {
	return []Tool{
		{
			Definition: ToolDefinition{
				Name:        "git_commit_and_push",
				Description: "Stage files, commit them with the given message, and push the current branch to origin. Optionally creates or switches to a branch first.",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"commitMessage": {
							Type:        "string",
							Description: "Commit message (required)",
						},
						"files": {
							Type:        "array",
							Description: "Files to stage; empty stages all tracked and untracked changes",
							Items:       &Property{Type: "string"},
						},
						"branch": {
							Type:        "string",
							Description: "Branch to create or switch to before committing",
						},
						"workingDir": {
							Type:        "string",
							Description: "Repository working directory; defaults to the process working directory",
						},
						"dryRun": {
							Type:        "boolean",
							Description: "Validate and echo the intended action without side effects",
						},
					},
					Required: []string{"commitMessage"},
				},
			},
			Handle: func(ctx context.Context, args map[string]any) workflow.Result {
				p, err := workflow.ParseCommitParams(args)
				if err != nil {
					return workflow.Fail("invalid parameters: %v", err)
				}
				return svc.CommitAndPush(ctx, p)
			},
		},
		{
			Definition: ToolDefinition{
				Name:        "create_pull_request",
				Description: "Create a pull request via the GitHub CLI. The head branch defaults to the current branch of the working directory.",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"title": {
							Type:        "string",
							Description: "Pull request title (required)",
						},
						"body": {
							Type:        "string",
							Description: "Pull request body (required)",
						},
						"baseBranch": {
							Type:        "string",
							Description: "Base branch for the pull request (default \"main\")",
						},
						"headBranch": {
							Type:        "string",
							Description: "Head branch; defaults to the current branch",
						},
						"workingDir": {
							Type:        "string",
							Description: "Repository working directory; defaults to the process working directory",
						},
						"dryRun": {
							Type:        "boolean",
							Description: "Validate and echo the intended action without side effects",
						},
					},
					Required: []string{"title", "body"},
				},
			},
			Handle: func(ctx context.Context, args map[string]any) workflow.Result {
				p, err := workflow.ParsePullRequestParams(args)
				if err != nil {
					return workflow.Fail("invalid parameters: %v", err)
				}
				return svc.CreatePullRequest(ctx, p)
			},
		},
		{
			Definition: ToolDefinition{
				Name:        "merge_pull_request",
				Description: "Merge a pull request via the GitHub CLI using the given merge method.",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"prNumber": {
							Type:        "string",
							Description: "Pull request number (required)",
						},
						"mergeMethod": {
							Type:        "string",
							Description: "One of merge, squash, rebase (default \"merge\")",
						},
						"deleteBranch": {
							Type:        "boolean",
							Description: "Delete the head branch after merging (default true)",
						},
						"workingDir": {
							Type:        "string",
							Description: "Repository working directory; defaults to the process working directory",
						},
						"dryRun": {
							Type:        "boolean",
							Description: "Validate and echo the intended action without side effects",
						},
					},
					Required: []string{"prNumber"},
				},
			},
			Handle: func(ctx context.Context, args map[string]any) workflow.Result {
				p, err := workflow.ParseMergeParams(args)
				if err != nil {
					return workflow.Fail("invalid parameters: %v", err)
				}
				return svc.MergePullRequest(ctx, p)
			},
		},
		{
			Definition: ToolDefinition{
				Name:        "complete_git_workflow",
				Description: "Run the full contribution sequence: commit and push, create a pull request, and optionally merge it. Stops at the first failing step.",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"commitMessage": {
							Type:        "string",
							Description: "Commit message (required)",
						},
						"prTitle": {
							Type:        "string",
							Description: "Pull request title (required)",
						},
						"prBody": {
							Type:        "string",
							Description: "Pull request body (required)",
						},
						"files": {
							Type:        "array",
							Description: "Files to stage; empty stages all tracked and untracked changes",
							Items:       &Property{Type: "string"},
						},
						"branch": {
							Type:        "string",
							Description: "Branch to create or switch to before committing",
						},
						"baseBranch": {
							Type:        "string",
							Description: "Base branch for the pull request (default \"main\")",
						},
						"autoMerge": {
							Type:        "boolean",
							Description: "Merge the pull request after creation (default false)",
						},
						"workingDir": {
							Type:        "string",
							Description: "Repository working directory; defaults to the process working directory",
						},
						"dryRun": {
							Type:        "boolean",
							Description: "Validate and echo the intended action without side effects",
						},
					},
					Required: []string{"commitMessage", "prTitle", "prBody"},
				},
			},
			Handle: func(ctx context.Context, args map[string]any) workflow.Result {
				p, err := workflow.ParseCompleteParams(args)
				if err != nil {
					return workflow.Fail("invalid parameters: %v", err)
				}
				return svc.CompleteWorkflow(ctx, p)
			},
		},
	}
}
