package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("alice")
	cfg.Windows.ProjectionDays = 120
	cfg.Server.Addr = ":9000"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.User, got.User)
	assert.Equal(t, cfg.LogLevel, got.LogLevel)
	assert.Equal(t, 30, got.Windows.OverviewDays)
	assert.Equal(t, 120, got.Windows.ProjectionDays)
	assert.Equal(t, ":9000", got.Server.Addr)
	assert.Equal(t, cfg.Server.JWTSecret, got.Server.JWTSecret)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
}

func TestDefaults(t *testing.T) {
	cfg := Default("alice")

	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Windows.OverviewDays)
	assert.Equal(t, 90, cfg.Windows.ProjectionDays)
	assert.Equal(t, ":8087", cfg.Server.Addr)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("alice")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "user: alice")
	assert.Contains(t, contents, "overview_days: 30")
	assert.Contains(t, contents, "projection_days: 90")
	assert.Contains(t, contents, "auto_commit: false")
}
