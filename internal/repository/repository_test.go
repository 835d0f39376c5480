// filepath: internal/repository/repository_test.go
package repository

import (
	"path/filepath"
	"testing"

	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"

	"github.com/stretchr/testify/assert"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	cfg := &config.Config{}
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog_test.db")

	repo, err := NewRepository(cfg, logging.NewLogger("error"))
	if err != nil {
		t.Fatalf("Failed to create new repository: %v", err)
	}
	if err := repo.MigrateUp(); err != nil {
		t.Fatalf("Failed to apply test migrations: %v", err)
	}

	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestNewRepository(t *testing.T) {
	repo := setupTestDB(t)

	tables := []string{"albums", "media"}
	for _, table := range tables {
		var name string
		err := repo.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table '%s' was not created: %v", table, err)
		}
	}

	var indexName string
	err := repo.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_media_album'").Scan(&indexName)
	assert.NoError(t, err, "album_id index was not created")
}

func TestMigrateUp_Idempotent(t *testing.T) {
	repo := setupTestDB(t)
	assert.NoError(t, repo.MigrateUp())
}
