// filepath: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := &Config{}
		err := cfg.ParseAndValidate()
		assert.NoError(t, err)
		assert.Equal(t, "catalog.db", cfg.Catalog.Path)
		assert.Equal(t, "previews", cfg.Catalog.PreviewRoot)
		assert.Equal(t, "https://api.cloudinary.com/v1_1", cfg.Upload.APIBase)
		assert.Equal(t, "res.cloudinary.com", cfg.Upload.DeliveryHost)
		assert.Contains(t, cfg.Catalog.PlaceholderCover, "placehold.co")
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("Seed without id", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				Seeds: []AlbumSeed{{Title: "Legacy"}},
			},
		}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "seed without an id")
	})

	t.Run("Negative baseline", func(t *testing.T) {
		cfg := &Config{
			Catalog: CatalogConfig{
				Seeds: []AlbumSeed{{ID: "legacy-2025", BaselinePhotos: -1}},
			},
		}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
	})

	t.Run("Remote enabled needs base_url", func(t *testing.T) {
		cfg := &Config{Remote: RemoteConfig{Enabled: true}}
		err := cfg.ParseAndValidate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "base_url")
	})
}

func TestLoadConfig(t *testing.T) {
	content := `
[catalog]
path = "gallery.db"
preview_root = "/tmp/previews"
retired_albums = ["makrab-2025"]

[[catalog.seeds]]
id = "legacy-2025"
title = "Legacy Import"
baseline_photos = 258

[upload]
cloud_name = "demo"
upload_preset = "unsigned_demo"

[remote]
enabled = true
base_url = "https://records.example.com/api"

[logging]
level = "debug"
`
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.NoError(t, cfg.ParseAndValidate())

	assert.Equal(t, "gallery.db", cfg.Catalog.Path)
	assert.Equal(t, []string{"makrab-2025"}, cfg.Catalog.RetiredAlbums)
	assert.Len(t, cfg.Catalog.Seeds, 1)
	assert.Equal(t, 258, cfg.Catalog.Seeds[0].BaselinePhotos)
	assert.Equal(t, "demo", cfg.Upload.CloudName)
	assert.True(t, cfg.Remote.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
