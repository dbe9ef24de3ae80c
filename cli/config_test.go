package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig tests parsing of the optional .luzrc.yaml.
func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	yaml := "color: false\nseed: 99\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte(yaml), 0o644))

	cfg, err := LoadConfig(filepath.Join(dir, "script.luz"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(99), *cfg.Seed)
}

// TestLoadConfigMissing tests that absence of the file is not an error.
func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "script.luz"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Color)
	assert.Nil(t, cfg.Seed)
}

// TestLoadConfigMalformed tests that a broken file reports its path.
func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte("color: [oops\n"), 0o644))
	_, err := LoadConfig(filepath.Join(dir, "script.luz"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), configName)
}

// TestShouldUseColor tests the precedence of the colouring decision.
func TestShouldUseColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	on, off := true, false

	assert.False(t, ShouldUseColor(true, &Config{Color: &on}), "--no-color beats config")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ShouldUseColor(false, &Config{Color: &on}), "NO_COLOR beats config")

	t.Setenv("NO_COLOR", "")
	assert.True(t, ShouldUseColor(false, &Config{Color: &on}))
	assert.False(t, ShouldUseColor(false, &Config{Color: &off}))
}
