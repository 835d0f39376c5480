// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Upload  UploadConfig  `toml:"upload"`
	Remote  RemoteConfig  `toml:"remote"`
	Logging LoggingConfig `toml:"logging"`
	Media   MediaConfig   `toml:"media"`
}

// CatalogConfig holds the local catalog store configuration.
type CatalogConfig struct {
	Path             string      `toml:"path"`              // sqlite database file
	PreviewRoot      string      `toml:"preview_root"`      // derived previews live here
	PlaceholderCover string      `toml:"placeholder_cover"` // cover for albums without derivable media
	RetiredAlbums    []string    `toml:"retired_albums"`    // ids purged from the store on listing
	Seeds            []AlbumSeed `toml:"seeds"`
}

// AlbumSeed describes a pre-seeded album whose originals are not
// individually tracked. BaselinePhotos is added on top of computed stats.
type AlbumSeed struct {
	ID             string `toml:"id"`
	Title          string `toml:"title"`
	Cover          string `toml:"cover"`
	BaselinePhotos int    `toml:"baseline_photos"`
	IsDefault      bool   `toml:"is_default"`
}

// UploadConfig holds the settings of the external upload collaborator.
type UploadConfig struct {
	APIBase      string `toml:"api_base"`
	CloudName    string `toml:"cloud_name"`
	UploadPreset string `toml:"upload_preset"`
	DeliveryHost string `toml:"delivery_host"` // host whose /upload/ URLs can be rewritten in place
}

// RemoteConfig holds the optional record-of-truth mirror settings.
type RemoteConfig struct {
	Enabled bool   `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// MediaConfig holds media processing settings.
type MediaConfig struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate fills defaults and rejects inconsistent settings.
func (c *Config) ParseAndValidate() error {
	if c.Catalog.Path == "" {
		c.Catalog.Path = "catalog.db"
	}
	if c.Catalog.PreviewRoot == "" {
		c.Catalog.PreviewRoot = "previews"
	}
	if c.Catalog.PlaceholderCover == "" {
		c.Catalog.PlaceholderCover = "https://placehold.co/600x400/1e293b/475569?text=New+Album"
	}
	if c.Upload.APIBase == "" {
		c.Upload.APIBase = "https://api.cloudinary.com/v1_1"
	}
	if c.Upload.DeliveryHost == "" {
		c.Upload.DeliveryHost = "res.cloudinary.com"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	for _, seed := range c.Catalog.Seeds {
		if seed.ID == "" {
			return fmt.Errorf("catalog seed without an id")
		}
		if seed.BaselinePhotos < 0 {
			return fmt.Errorf("catalog seed %q: negative baseline_photos", seed.ID)
		}
	}

	if c.Remote.Enabled && c.Remote.BaseURL == "" {
		return fmt.Errorf("remote mirror enabled but base_url is empty")
	}
	return nil
}
