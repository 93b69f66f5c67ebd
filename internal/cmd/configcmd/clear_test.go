package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/cvgen/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "cvgen.yml")
	require.NoError(t, config.Default().Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runClear(&out, configPath, true))
	assert.Contains(t, out.String(), "Configuration cleared from "+configPath)

	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_Idempotent(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "cvgen.yml")

	var out bytes.Buffer
	require.NoError(t, runClear(&out, configPath, true))
	require.NoError(t, runClear(&out, configPath, true))
	assert.Contains(t, out.String(), "No config file to remove")
}

func TestRunClear_NotesActiveEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "x")

	var out bytes.Buffer
	require.NoError(t, runClear(&out, filepath.Join(t.TempDir(), "cvgen.yml"), true))
	assert.Contains(t, out.String(), "Environment variables will still be used: [GITHUB_TOKEN]")
}
