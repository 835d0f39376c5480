// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"fmt"
	"time"

	"mediacatalog/internal/config"
	"mediacatalog/internal/db/migrations"
	"mediacatalog/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

// Store is the durable local catalog store: media records keyed by id with a
// secondary index on album id, plus the consumer-visible album records.
type Store interface {
	Close() error

	// Media
	PutMedia(item *models.MediaItem) error
	ListMediaByAlbum(albumID string) ([]models.MediaItem, error)
	DeleteMedia(id string) error
	ClearAlbum(albumID string) error

	// Album
	CreateAlbum(album *models.Album) (*models.Album, error)
	GetAlbum(id string) (*models.Album, error)
	GetAlbums() ([]models.Album, error)
	UpdateAlbum(album *models.Album) error
	DeleteAlbum(id string) error

	// Migration
	MigrateUp() error
}

// Repository is the sqlite implementation of Store.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL Query Builder
	Logger  *logrus.Logger
}

var _ Store = (*Repository)(nil)

// NewRepository opens (or creates) the catalog database file.
// Call MigrateUp before first use.
func NewRepository(cfg *config.Config, logger *logrus.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure catalog database: %w", err)
	}

	return &Repository{
		DB:      db,
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		Logger:  logger,
	}, nil
}

// MigrateUp applies all pending schema migrations.
func (s *Repository) MigrateUp() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(s.DB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}
