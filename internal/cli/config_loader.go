// filepath: internal/cli/config_loader.go
package cli

import (
	"fmt"
	"os"

	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags variables
	cfgFile     string
	logLevel    string
	catalogPath string
	previewRoot string
	ffmpegPath  string
	ffprobePath string
)

func registerGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: MEDIACATALOG_CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: MEDIACATALOG_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&catalogPath, "catalog-path", "", "Path to the catalog database file. (Env: MEDIACATALOG_CATALOG_PATH)")
	cmd.PersistentFlags().StringVar(&previewRoot, "preview-root", "", "Directory for derived previews. (Env: MEDIACATALOG_PREVIEW_ROOT)")
	cmd.PersistentFlags().StringVar(&ffmpegPath, "ffmpeg-path", "", "Path to ffmpeg executable. (Env: MEDIACATALOG_FFMPEG_PATH)")
	cmd.PersistentFlags().StringVar(&ffprobePath, "ffprobe-path", "", "Path to ffprobe executable. (Env: MEDIACATALOG_FFPROBE_PATH)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	env := viper.New()
	env.SetEnvPrefix("MEDIACATALOG")
	env.AutomaticEnv()

	// 1. Check environment variable for config path first
	if envPath := env.GetString("config_path"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file: rely on defaults, env and flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, env)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)
	goose.SetLogger(logging.Log)

	return nil
}

func applyOverrides(c *config.Config, env *viper.Viper) {
	// --- Environment Variables ---
	if v := env.GetString("log_level"); v != "" {
		c.Logging.Level = v
	}
	if v := env.GetString("catalog_path"); v != "" {
		c.Catalog.Path = v
	}
	if v := env.GetString("preview_root"); v != "" {
		c.Catalog.PreviewRoot = v
	}
	if v := env.GetString("ffmpeg_path"); v != "" {
		c.Media.FFmpegPath = v
	}
	if v := env.GetString("ffprobe_path"); v != "" {
		c.Media.FFprobePath = v
	}
	if v := env.GetString("cloud_name"); v != "" {
		c.Upload.CloudName = v
	}
	if v := env.GetString("upload_preset"); v != "" {
		c.Upload.UploadPreset = v
	}
	if v := env.GetString("remote_base_url"); v != "" {
		c.Remote.BaseURL = v
		c.Remote.Enabled = true
	}
	if v := env.GetString("remote_token"); v != "" {
		c.Remote.Token = v
	}

	// --- CLI Flags (take precedence) ---
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if catalogPath != "" {
		c.Catalog.Path = catalogPath
	}
	if previewRoot != "" {
		c.Catalog.PreviewRoot = previewRoot
	}
	if ffmpegPath != "" {
		c.Media.FFmpegPath = ffmpegPath
	}
	if ffprobePath != "" {
		c.Media.FFprobePath = ffprobePath
	}
}
