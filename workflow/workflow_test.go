package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pexec "github.com/prflow/prflow/exec"
	"github.com/prflow/prflow/git"
	"github.com/prflow/prflow/logger"
)

var ctx = context.Background()

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "prflow-workflow-test-*")
	if err == nil {
		logger.Init(filepath.Join(dir, "test.log"))
		defer os.RemoveAll(dir)
	}
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

func newTestService(opts ...Option) (*Service, *pexec.MockExecutor) {
	mock := pexec.NewMockExecutor(nil)
	return NewService(git.NewServiceWithExecutor(mock), opts...), mock
}

// stubHappyCommit registers the command responses for a clean
// commit-and-push of a.txt on main.
func stubHappyCommit(mock *pexec.MockExecutor) {
	mock.AddExactMatch("git", []string{"rev-parse", "--git-dir"}, pexec.MockResponse{
		Stdout: []byte(".git\n"),
	})
	mock.AddExactMatch("git", []string{"diff", "--cached", "--numstat"}, pexec.MockResponse{
		Stdout: []byte("5\t2\ta.txt\n"),
	})
	mock.AddExactMatch("git", []string{"rev-parse", "--short", "HEAD"}, pexec.MockResponse{
		Stdout: []byte("abc1234\n"),
	})
	mock.AddExactMatch("git", []string{"rev-parse", "--abbrev-ref", "HEAD"}, pexec.MockResponse{
		Stdout: []byte("main\n"),
	})
}

func argLists(calls []pexec.MockCall) [][]string {
	out := make([][]string, 0, len(calls))
	for _, c := range calls {
		args := append([]string{c.Name}, c.Args...)
		out = append(out, args)
	}
	return out
}

func TestDryRun_NoCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(s *Service) Result
	}{
		{
			name: "commit and push",
			run: func(s *Service) Result {
				return s.CommitAndPush(ctx, CommitParams{
					CommitMessage: "msg", Files: []string{"a.txt"}, DryRun: true,
				})
			},
		},
		{
			name: "create pull request",
			run: func(s *Service) Result {
				return s.CreatePullRequest(ctx, PullRequestParams{
					Title: "t", Body: "b", DryRun: true,
				})
			},
		},
		{
			name: "merge pull request",
			run: func(s *Service) Result {
				return s.MergePullRequest(ctx, MergeParams{
					PRNumber: "42", MergeMethod: "merge", DryRun: true,
				})
			},
		},
		{
			name: "complete workflow",
			run: func(s *Service) Result {
				return s.CompleteWorkflow(ctx, CompleteParams{
					CommitMessage: "msg", PRTitle: "t", PRBody: "b", DryRun: true,
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock := newTestService()
			res := tt.run(svc)

			assert.True(t, res.Success)
			assert.Empty(t, res.Error)
			assert.Equal(t, true, res.Details["dryRun"])
			assert.Empty(t, mock.GetCalls(), "dry run must not execute commands")
		})
	}
}

func TestDryRun_EchoesParams(t *testing.T) {
	svc, _ := newTestService()
	res := svc.CommitAndPush(ctx, CommitParams{
		CommitMessage: "fix: typo",
		Files:         []string{"a.txt", "b.txt"},
		Branch:        "feature",
		DryRun:        true,
	})

	require.True(t, res.Success)
	assert.Equal(t, "fix: typo", res.Details["commitMessage"])
	assert.Equal(t, []string{"a.txt", "b.txt"}, res.Details["files"])
	assert.Equal(t, "feature", res.Details["branch"])
}

func TestResultInvariant(t *testing.T) {
	ok := Ok("done", map[string]any{"k": "v"})
	assert.True(t, ok.Success)
	assert.Empty(t, ok.Error)

	fail := Fail("broke: %s", "reason")
	assert.False(t, fail.Success)
	assert.Equal(t, "broke: reason", fail.Error)
	assert.Equal(t, "broke: reason", fail.Message)
	assert.Nil(t, fail.Details, "failures carry no details")
}

func TestCommitAndPush_EndToEnd(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)

	res := svc.CommitAndPush(ctx, CommitParams{
		CommitMessage: "fix: typo",
		Files:         []string{"a.txt"},
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "abc1234", res.Details["commit"])
	assert.Equal(t, "main", res.Details["branch"])
	assert.Equal(t, 1, res.Details["filesChanged"])
	assert.Equal(t, 5, res.Details["insertions"])
	assert.Equal(t, 2, res.Details["deletions"])

	assert.Equal(t, [][]string{
		{"git", "rev-parse", "--git-dir"},
		{"git", "add", "--", "a.txt"},
		{"git", "diff", "--cached", "--numstat"},
		{"git", "commit", "-m", "fix: typo"},
		{"git", "rev-parse", "--short", "HEAD"},
		{"git", "rev-parse", "--abbrev-ref", "HEAD"},
		{"git", "push", "-u", "origin", "main"},
	}, argLists(mock.GetCalls()))
}

func TestCommitAndPush_NotARepository(t *testing.T) {
	svc, mock := newTestService()
	mock.AddExactMatch("git", []string{"rev-parse", "--git-dir"}, pexec.MockResponse{
		Err: fmt.Errorf("exit status 128"),
	})

	res := svc.CommitAndPush(ctx, CommitParams{
		CommitMessage: "msg",
		WorkingDir:    "/tmp/nowhere",
	})

	require.False(t, res.Success)
	assert.Equal(t, "not a git repository: /tmp/nowhere", res.Error)
	assert.Nil(t, res.Details)
}

func TestCommitAndPush_BranchExistsFallsBackToSwitch(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)
	mock.AddExactMatch("git", []string{"checkout", "-b", "feature"}, pexec.MockResponse{
		Stderr: []byte("fatal: a branch named 'feature' already exists"),
		Err:    fmt.Errorf("exit status 128"),
	})

	res := svc.CommitAndPush(ctx, CommitParams{
		CommitMessage: "msg",
		Branch:        "feature",
	})

	require.True(t, res.Success, "error: %s", res.Error)

	args := argLists(mock.GetCalls())
	assert.Contains(t, args, []string{"git", "checkout", "-b", "feature"})
	assert.Contains(t, args, []string{"git", "checkout", "feature"})
}

func TestCommitAndPush_CustomRemote(t *testing.T) {
	svc, mock := newTestService(WithRemote("upstream"))
	stubHappyCommit(mock)

	res := svc.CommitAndPush(ctx, CommitParams{CommitMessage: "msg"})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Contains(t, argLists(mock.GetCalls()),
		[]string{"git", "push", "-u", "upstream", "main"})
}

func TestCreatePullRequest(t *testing.T) {
	svc, mock := newTestService()
	mock.AddExactMatch("git", []string{"rev-parse", "--abbrev-ref", "HEAD"}, pexec.MockResponse{
		Stdout: []byte("feature\n"),
	})
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stdout: []byte("https://github.com/org/repo/pull/42\n"),
	})

	res := svc.CreatePullRequest(ctx, PullRequestParams{
		Title: "Fix typo",
		Body:  "Fixes a typo.",
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "https://github.com/org/repo/pull/42", res.Details["url"])
	assert.Equal(t, "main", res.Details["baseBranch"], "base defaults from service config")
	assert.Equal(t, "feature", res.Details["headBranch"], "head resolved from current branch")
}

func TestCreatePullRequest_Failure(t *testing.T) {
	svc, mock := newTestService()
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stderr: []byte("pull request already exists"),
		Err:    fmt.Errorf("exit status 1"),
	})

	res := svc.CreatePullRequest(ctx, PullRequestParams{
		Title:      "t",
		Body:       "b",
		HeadBranch: "feature",
	})

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Failed to create pull request")
	assert.Contains(t, res.Error, "pull request already exists")
	assert.Nil(t, res.Details)
}

func TestMergePullRequest_MethodFlags(t *testing.T) {
	tests := []struct {
		method       string
		deleteBranch bool
		wantArgs     []string
	}{
		{"merge", true, []string{"pr", "merge", "42", "--merge", "--delete-branch"}},
		{"squash", true, []string{"pr", "merge", "42", "--squash", "--delete-branch"}},
		{"rebase", true, []string{"pr", "merge", "42", "--rebase", "--delete-branch"}},
		{"merge", false, []string{"pr", "merge", "42", "--merge"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s delete=%v", tt.method, tt.deleteBranch), func(t *testing.T) {
			svc, mock := newTestService()
			mock.AddPrefixMatch("gh", []string{"pr", "merge"}, pexec.MockResponse{
				Stdout: []byte("Merged pull request #42\n"),
			})

			res := svc.MergePullRequest(ctx, MergeParams{
				PRNumber:     "42",
				MergeMethod:  tt.method,
				DeleteBranch: tt.deleteBranch,
			})

			require.True(t, res.Success, "error: %s", res.Error)
			assert.Equal(t, "42", res.Details["prNumber"])

			calls := mock.GetCalls()
			require.Len(t, calls, 1)
			assert.Equal(t, "gh", calls[0].Name)
			assert.Equal(t, tt.wantArgs, calls[0].Args)
		})
	}
}

func TestMergePullRequest_Failure(t *testing.T) {
	svc, mock := newTestService()
	mock.AddPrefixMatch("gh", []string{"pr", "merge"}, pexec.MockResponse{
		Stderr: []byte("pull request is not mergeable"),
		Err:    fmt.Errorf("exit status 1"),
	})

	res := svc.MergePullRequest(ctx, MergeParams{
		PRNumber:    "7",
		MergeMethod: "merge",
	})

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Failed to merge pull request #7")
	assert.Contains(t, res.Error, "not mergeable")
}

func TestExtractPRNumber(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://github.com/org/repo/pull/42", "42", true},
		{"https://github.com/org/repo/pull/1", "1", true},
		{"https://example.com/org/repo/issues/42", "", false},
		{"https://github.com/org/repo/pull/42?query=1", "", false},
		{"https://github.com/org/repo/pull/42/files", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := extractPRNumber(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompleteWorkflow_CommitFailurePropagates(t *testing.T) {
	svc, mock := newTestService()
	mock.AddExactMatch("git", []string{"rev-parse", "--git-dir"}, pexec.MockResponse{
		Err: fmt.Errorf("exit status 128"),
	})

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
		WorkingDir:    "/tmp/nowhere",
	})

	// The leaf result passes through unchanged: same message, no wrapping.
	require.False(t, res.Success)
	assert.Equal(t, "not a git repository: /tmp/nowhere", res.Error)
	assert.Equal(t, "not a git repository: /tmp/nowhere", res.Message)

	for _, c := range mock.GetCalls() {
		assert.NotEqual(t, "gh", c.Name, "no gh commands after a commit failure")
	}
}

func TestCompleteWorkflow_PRFailurePropagates(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stderr: []byte("no commits between main and feature"),
		Err:    fmt.Errorf("exit status 1"),
	})

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
	})

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Failed to create pull request")
	assert.Contains(t, res.Error, "no commits between main and feature")
}

func TestCompleteWorkflow_AutoMerge(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stdout: []byte("https://github.com/org/repo/pull/42\n"),
	})
	mock.AddPrefixMatch("gh", []string{"pr", "merge"}, pexec.MockResponse{
		Stdout: []byte("Merged pull request #42\n"),
	})

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
		AutoMerge:     true,
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.Equal(t, "Git workflow completed successfully", res.Message)
	assert.NotNil(t, res.Details["commit"])
	assert.NotNil(t, res.Details["pullRequest"])
	assert.NotNil(t, res.Details["merge"])

	assert.Contains(t, argLists(mock.GetCalls()),
		[]string{"gh", "pr", "merge", "42", "--merge", "--delete-branch"})
}

func TestCompleteWorkflow_AutoMergeSkippedOnOddURL(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stdout: []byte("https://example.com/org/repo/issues/42\n"),
	})

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
		AutoMerge:     true,
	})

	// An unrecognized URL skips the merge without failing the workflow.
	require.True(t, res.Success, "error: %s", res.Error)
	assert.NotContains(t, res.Details, "merge")

	for _, c := range mock.GetCalls() {
		if c.Name == "gh" {
			assert.NotEqual(t, "merge", c.Args[1], "merge must be skipped")
		}
	}
}

func TestCompleteWorkflow_NoAutoMerge(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stdout: []byte("https://github.com/org/repo/pull/5\n"),
	})

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
	})

	require.True(t, res.Success, "error: %s", res.Error)
	assert.NotContains(t, res.Details, "merge")
	for _, c := range mock.GetCalls() {
		if c.Name == "gh" {
			assert.Equal(t, "create", c.Args[1])
		}
	}
}

func TestCompleteWorkflow_MergeFailurePropagates(t *testing.T) {
	svc, mock := newTestService()
	stubHappyCommit(mock)
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, pexec.MockResponse{
		Stdout: []byte("https://github.com/org/repo/pull/42\n"),
	})
	mock.AddPrefixMatch("gh", []string{"pr", "merge"}, pexec.MockResponse{
		Stderr: []byte("pull request is not mergeable"),
		Err:    fmt.Errorf("exit status 1"),
	})

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
		AutoMerge:     true,
	})

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Failed to merge pull request #42")
}

func TestCompleteWorkflow_RecoversPanic(t *testing.T) {
	// A nil git service makes CommitAndPush dereference nil, exercising
	// the recover path.
	svc := NewService(nil)

	res := svc.CompleteWorkflow(ctx, CompleteParams{
		CommitMessage: "msg",
		PRTitle:       "t",
		PRBody:        "b",
	})

	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Git workflow failed: ")
}
