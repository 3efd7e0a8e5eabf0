package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c0pp3rdru1d/C02-Monitor/internal/config"
)

// TestConfigInit_ProjectDir verifies that with a project directory resolved
// "config init" writes .co2-monitor/config.yaml and .co2-monitor/.gitignore.
func TestConfigInit_ProjectDir(t *testing.T) {
	setupCLITest(t)
	projectRoot := t.TempDir()
	t.Setenv("CO2MON_PROJECT_DIR", projectRoot)

	stdout, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized at")

	configPath := filepath.Join(projectRoot, config.ProjectDirName, "config.yaml")
	_, statErr := os.Stat(configPath)
	require.NoError(t, statErr)

	gitignoreData, readErr := os.ReadFile(filepath.Join(projectRoot, config.ProjectDirName, ".gitignore"))
	require.NoError(t, readErr)
	assert.Equal(t, config.GitignoreContent(), string(gitignoreData))
}

// TestConfigInit_ExistingGitignorePreserved verifies that --force rewrites
// config.yaml but never an existing .gitignore.
func TestConfigInit_ExistingGitignorePreserved(t *testing.T) {
	setupCLITest(t)
	projectRoot := t.TempDir()
	projectDir := filepath.Join(projectRoot, config.ProjectDirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))

	customContent := "# mine\n*.secret\n"
	gitignorePath := filepath.Join(projectDir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignorePath, []byte(customContent), 0o600))

	_, _, err := execute(t, "--project-dir", projectRoot, "config", "init", "--force")
	require.NoError(t, err)

	data, readErr := os.ReadFile(gitignorePath)
	require.NoError(t, readErr)
	assert.Equal(t, customContent, string(data))
}

// TestConfigInit_GlobalFlag verifies that --global writes to CO2MON_HOME
// even when a project directory is resolved.
func TestConfigInit_GlobalFlag(t *testing.T) {
	home := setupCLITest(t)
	projectRoot := t.TempDir()
	t.Setenv("CO2MON_PROJECT_DIR", projectRoot)

	stdout, _, err := execute(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration initialized successfully")

	_, statErr := os.Stat(filepath.Join(home, "config.yaml"))
	require.NoError(t, statErr)

	_, statErr = os.Stat(filepath.Join(projectRoot, config.ProjectDirName, "config.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

// TestConfigInit_RefusesOverwrite verifies an existing file is kept without --force.
func TestConfigInit_RefusesOverwrite(t *testing.T) {
	home := setupCLITest(t)
	configPath := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("dashboard:\n  budget: \"66\"\n  start_year: 2015\n"), 0o600))

	_, _, err := execute(t, "config", "init", "--global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--global", "--force")
	require.NoError(t, err)

	cfg, loadErr := config.Load(configPath)
	require.NoError(t, loadErr)
	assert.Equal(t, config.New().Dashboard, cfg.Dashboard)
}

func TestConfigShow(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("dashboard:\n  budget: \"66\"\n  start_year: 2015\n"), 0o600))
	t.Setenv("CO2MON_LOG_FORMAT", "json")

	stdout, _, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, filepath.Join(home, "config.yaml"))
	assert.Contains(t, stdout, "budget: \"66\"")
	assert.Contains(t, stdout, "start_year: 2015")
	assert.Contains(t, stdout, "format: json")
}

func TestConfigShow_ClampsOutOfRangeStartYear(t *testing.T) {
	home := setupCLITest(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"),
		[]byte("dashboard:\n  start_year: 1985\n"), 0o600))

	stdout, _, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "start_year: 1990")
}
