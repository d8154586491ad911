package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) func() {
	// save original values
	origConfigDir := configDir
	origConfigFile := configFile
	origEnvFile := envFile

	// create temp directory
	tmpDir, err := os.MkdirTemp("", "taskdash_config_test_*")
	require.NoError(t, err)

	configDir = tmpDir
	configFile = filepath.Join(tmpDir, "config.yaml")
	envFile = filepath.Join(tmpDir, ".env")

	return func() {
		os.RemoveAll(tmpDir)
		configDir = origConfigDir
		configFile = origConfigFile
		envFile = origEnvFile
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "", cfg.ThemeName) // empty until set
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Empty(t, cfg.ServerURL)
}

func TestLoadConfig_Default(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// should return default values when no config file exists
	assert.Equal(t, filepath.Join(configDir, "dashboard.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(configDir, "cache.db"), cfg.CachePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSaveAndLoadConfig(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	// create config
	cfg := GetDefaultConfig()
	cfg.DBPath = filepath.Join(configDir, "test.db")
	cfg.DBDriver = "sqlite"
	cfg.ThemeName = "dracula"
	cfg.ServerURL = "http://localhost:3000"
	cfg.MaxUploadMB = 25

	err := SaveConfig(cfg)
	require.NoError(t, err)

	loaded, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, cfg.DBPath, loaded.DBPath)
	assert.Equal(t, "sqlite", loaded.DBDriver)
	assert.Equal(t, cfg.ThemeName, loaded.ThemeName)
	assert.Equal(t, cfg.ServerURL, loaded.ServerURL)
	assert.Equal(t, int64(25), loaded.MaxUploadMB)
}

func TestSaveConfig_CreatesDirectory(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	// remove the config directory
	os.RemoveAll(configDir)

	cfg := GetDefaultConfig()
	err := SaveConfig(cfg)
	require.NoError(t, err)

	// verify directory was created
	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUpdateTheme(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	// save initial config
	cfg := GetDefaultConfig()
	err := SaveConfig(cfg)
	require.NoError(t, err)

	// update theme
	err = UpdateTheme("monokai")
	require.NoError(t, err)

	// verify update
	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "monokai", loaded.ThemeName)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	t.Setenv("TASKDASH_LISTEN_ADDR", ":8080")
	require.NoError(t, os.WriteFile(envFile, []byte("TASKDASH_SERVER_URL=http://example.test\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("TASKDASH_SERVER_URL") })

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://example.test", cfg.ServerURL)
}

func TestLoadConfig_ZeroUploadLimitGetsDefault(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	cfg := GetDefaultConfig()
	cfg.MaxUploadMB = 0
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(10), loaded.MaxUploadMB)
}
