package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, 50, cfg.Dashboard.BucketCap)
	assert.Equal(t, []int{1, 3, 7, 14}, cfg.Defer.QuickPickDays)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, "default", cfg.Theme)
	assert.Empty(t, cfg.Tracking)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("", "/tmp/data")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Database.BusyTimeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
dashboard:
  bucket_cap: 10
defer:
  quick_pick_days: [2, 5]
tracking:
  - materials
  - visitors
`)

	cfg, err := Load(path, "/tmp/data")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Dashboard.BucketCap)
	assert.Equal(t, []int{2, 5}, cfg.Defer.QuickPickDays)
	assert.Equal(t, []string{"materials", "visitors"}, cfg.Tracking)

	// Unset sections keep their defaults.
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "dashboard: [not a map")

	_, err := Load(path, "/tmp/data")
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative bucket cap", "dashboard:\n  bucket_cap: -1\n"},
		{"zero quick pick", "defer:\n  quick_pick_days: [0]\n"},
		{"negative conns", "database:\n  max_open_conns: -2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path, "/tmp/data")
			assert.Error(t, err)
		})
	}
}

func TestLoad_EmptyDataDir(t *testing.T) {
	_, err := Load("", "")
	assert.Error(t, err)
}
