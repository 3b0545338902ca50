package exec

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestBoundedBuffer_UnderLimit(t *testing.T) {
	var buf boundedBuffer
	n, err := buf.Write(bytes.Repeat([]byte("a"), MaxOutputBytes))
	require.NoError(t, err)
	assert.Equal(t, MaxOutputBytes, n)
}

func TestBoundedBuffer_OverLimit(t *testing.T) {
	var buf boundedBuffer
	_, err := buf.Write(bytes.Repeat([]byte("a"), MaxOutputBytes))
	require.NoError(t, err)

	_, err = buf.Write([]byte("b"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestRealExecutor_Run(t *testing.T) {
	e := NewRealExecutor()

	stdout, stderr, err := e.Run(ctx, "", "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(stdout))
	assert.Empty(t, stderr)
}

func TestRealExecutor_RunEnv(t *testing.T) {
	e := NewRealExecutor()

	stdout, _, err := e.RunEnv(ctx, "", []string{"PRFLOW_TEST_VAR=42"}, "sh", "-c", "echo $PRFLOW_TEST_VAR")
	require.NoError(t, err)
	assert.Equal(t, "42\n", string(stdout))
}

func TestMockExecutor_ExactMatch(t *testing.T) {
	mock := NewMockExecutor(nil)
	mock.AddExactMatch("git", []string{"status", "--porcelain"}, MockResponse{
		Stdout: []byte(" M file.go\n"),
	})

	stdout, err := mock.Output(ctx, "/repo", "git", "status", "--porcelain")
	require.NoError(t, err)
	assert.Equal(t, " M file.go\n", string(stdout))

	// Different args don't match; default is empty success
	stdout, err = mock.Output(ctx, "/repo", "git", "status")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestMockExecutor_PrefixMatch(t *testing.T) {
	mock := NewMockExecutor(nil)
	mock.AddPrefixMatch("gh", []string{"pr", "create"}, MockResponse{
		Stdout: []byte("https://github.com/org/repo/pull/7\n"),
	})

	stdout, _, err := mock.Run(ctx, "/repo", "gh", "pr", "create", "--base", "main")
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "/pull/7")
}

func TestMockExecutor_RulesMatchInOrder(t *testing.T) {
	mock := NewMockExecutor(nil)
	mock.AddPrefixMatch("git", []string{"checkout"}, MockResponse{Err: fmt.Errorf("first rule")})
	mock.AddExactMatch("git", []string{"checkout", "main"}, MockResponse{})

	_, _, err := mock.Run(ctx, "/repo", "git", "checkout", "main")
	require.Error(t, err)
	assert.Equal(t, "first rule", err.Error())
}

func TestMockExecutor_RecordsCalls(t *testing.T) {
	mock := NewMockExecutor(nil)

	mock.Run(ctx, "/repo", "git", "add", "-A")
	mock.RunEnv(ctx, "/repo", []string{"PATH=/bin"}, "gh", "pr", "merge", "42", "--merge")

	calls := mock.GetCalls()
	require.Len(t, calls, 2)

	assert.Equal(t, "git", calls[0].Name)
	assert.Equal(t, []string{"add", "-A"}, calls[0].Args)
	assert.Nil(t, calls[0].Env)

	assert.Equal(t, "gh", calls[1].Name)
	assert.Equal(t, []string{"PATH=/bin"}, calls[1].Env)

	mock.ClearCalls()
	assert.Empty(t, mock.GetCalls())
}
