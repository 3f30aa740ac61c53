package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/binderlca/internal/cli"
	"github.com/rshade/binderlca/internal/config"
)

// TestConfigInit_InsideProject verifies that "config init" with a project
// directory creates .binderlca/config.yaml and .binderlca/.gitignore.
func TestConfigInit_InsideProject(t *testing.T) {
	setupCLITest(t)

	tmpDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, tmpDir)

	stdout, _, err := runCLI(t, "config", "init")
	require.NoError(t, err, "config init should succeed inside a project")
	assert.Contains(t, stdout, "Configuration initialized at")

	configPath := filepath.Join(tmpDir, ".binderlca", "config.yaml")
	_, statErr := os.Stat(configPath)
	require.NoError(t, statErr, ".binderlca/config.yaml should exist")

	gitignoreData, readErr := os.ReadFile(filepath.Join(tmpDir, ".binderlca", ".gitignore"))
	require.NoError(t, readErr)
	assert.Equal(t, config.GitignoreContent(), string(gitignoreData))
	assert.Contains(t, stdout, "Created .gitignore")
}

// TestConfigInit_ExistingGitignorePreserved verifies that "config init --force"
// never overwrites an existing .gitignore.
func TestConfigInit_ExistingGitignorePreserved(t *testing.T) {
	setupCLITest(t)

	tmpDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, tmpDir)

	dir := filepath.Join(tmpDir, ".binderlca")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	custom := "# my rules\n*.csv\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(custom), 0o600))

	stdout, _, err := runCLI(t, "config", "init", "--force")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Created .gitignore")

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

// TestConfigInit_RefusesOverwrite verifies that an existing file needs --force.
func TestConfigInit_RefusesOverwrite(t *testing.T) {
	setupCLITest(t)

	tmpDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, tmpDir)

	_, _, err := runCLI(t, "config", "init")
	require.NoError(t, err)

	_, _, err = runCLI(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	_, _, err = runCLI(t, "config", "init", "--force")
	require.NoError(t, err)
}

// TestConfigInit_GlobalFlag verifies that --global writes to BINDERLCA_HOME
// even when a project directory is set.
func TestConfigInit_GlobalFlag(t *testing.T) {
	setupCLITest(t)

	projectDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, projectDir)
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	stdout, _, err := runCLI(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized successfully")

	_, statErr := os.Stat(filepath.Join(home, "config.yaml"))
	require.NoError(t, statErr, "global config.yaml should exist")

	_, statErr = os.Stat(filepath.Join(projectDir, ".binderlca", "config.yaml"))
	assert.True(t, os.IsNotExist(statErr), "project config should not be created with --global")
}

// TestConfigInit_OutsideProject verifies that without a resolved project the
// command falls back to the global configuration file.
func TestConfigInit_OutsideProject(t *testing.T) {
	setupCLITest(t)

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)

	var buf bytes.Buffer
	cmd := cli.NewConfigInitCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), filepath.Join(home, "config.yaml"))

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "design:")
	assert.Contains(t, string(data), "exposure_class: XC2")
}
