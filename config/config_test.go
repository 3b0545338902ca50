package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prflow/prflow/paths"
)

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	paths.Reset()
	t.Cleanup(paths.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "main", cfg.BaseBranch)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"remote: upstream\nbase_branch: develop\ndebug: true\n",
	), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "develop", cfg.BaseBranch)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolateHome(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err, "an explicitly named config file must exist")
}

func TestLoad_Malformed(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolateHome(t)
	t.Setenv("PRFLOW_REMOTE", "fork")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "fork", cfg.Remote)
	assert.Equal(t, "main", cfg.BaseBranch)
}

func TestWriteDefault(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "main", cfg.BaseBranch)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: keep\n"), 0644))

	err := WriteDefault(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "remote: keep\n", string(data))
}
