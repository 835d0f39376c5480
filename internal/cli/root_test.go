// filepath: internal/cli/root_test.go
package cli

import (
	"os"
	"testing"

	"mediacatalog/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

// Helper to reset the global config and flags between tests
func resetGlobals() {
	cfg = nil
	logLevel = ""
	catalogPath = ""
	previewRoot = ""
	ffmpegPath = ""
	ffprobePath = ""
	cfgFile = "config.toml" // Default
}

func TestConfigPrecedence(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		resetGlobals()
		// Mock a non-existent config file to trigger defaults
		cfgFile = "nonexistent.toml"

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, "catalog.db", cfg.Catalog.Path)
		assert.Equal(t, "previews", cfg.Catalog.PreviewRoot)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("Environment Overrides Defaults", func(t *testing.T) {
		resetGlobals()
		cfgFile = "nonexistent.toml"

		os.Setenv("MEDIACATALOG_CATALOG_PATH", "/data/catalog.db")
		os.Setenv("MEDIACATALOG_LOG_LEVEL", "warn")
		defer os.Unsetenv("MEDIACATALOG_CATALOG_PATH")
		defer os.Unsetenv("MEDIACATALOG_LOG_LEVEL")

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, "/data/catalog.db", cfg.Catalog.Path)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("Flags Override Environment", func(t *testing.T) {
		resetGlobals()
		cfgFile = "nonexistent.toml"

		os.Setenv("MEDIACATALOG_LOG_LEVEL", "warn")
		defer os.Unsetenv("MEDIACATALOG_LOG_LEVEL")

		// Set Flag (Simulate parsing)
		logLevel = "debug"

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("Config File Loading", func(t *testing.T) {
		resetGlobals()

		content := []byte(`
[catalog]
path = "file_catalog.db"
[logging]
level = "error"
`)
		tmpFile := "test_config.toml"
		err := os.WriteFile(tmpFile, content, 0644)
		assert.NoError(t, err)
		defer os.Remove(tmpFile)

		cfgFile = tmpFile

		cmd := &cobra.Command{}
		err = initializeConfig(cmd)
		assert.NoError(t, err)

		assert.Equal(t, "file_catalog.db", cfg.Catalog.Path)
		assert.Equal(t, "error", cfg.Logging.Level)
	})

	t.Run("Remote Env Enables Mirror", func(t *testing.T) {
		resetGlobals()
		cfgFile = "nonexistent.toml"

		os.Setenv("MEDIACATALOG_REMOTE_BASE_URL", "https://records.example.com")
		defer os.Unsetenv("MEDIACATALOG_REMOTE_BASE_URL")

		cmd := &cobra.Command{}
		err := initializeConfig(cmd)
		assert.NoError(t, err)

		assert.True(t, cfg.Remote.Enabled)
		assert.Equal(t, "https://records.example.com", cfg.Remote.BaseURL)
	})
}

func TestApplyOverrides(t *testing.T) {
	// Direct test of the applyOverrides logic
	c := &config.Config{
		Logging: config.LoggingConfig{Level: "info"},
	}
	c.Catalog.Path = "catalog.db"

	logLevel = "debug"
	catalogPath = "/somewhere/else.db"
	defer resetGlobals()

	env := viper.New()
	env.SetEnvPrefix("MEDIACATALOG")
	env.AutomaticEnv()
	applyOverrides(c, env)

	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "/somewhere/else.db", c.Catalog.Path)
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCMD()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "album")
	assert.Contains(t, names, "media")
	assert.Contains(t, names, "resync")
}
