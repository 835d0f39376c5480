// filepath: internal/services/interfaces.go
package services

import (
	"mediacatalog/internal/media"
	"mediacatalog/internal/models"
	"mediacatalog/internal/uploader"
)

// Uploader sends a local file to the hosting collaborator.
type Uploader interface {
	Upload(path string) (*uploader.Result, error)
}

// Deriver produces bounded preview URLs for media sources.
type Deriver interface {
	Derive(src media.Source, id string) (string, error)
}

// CatalogService is the single entry point consumers use; it orchestrates the
// store, the uploader and the deriver so no caller touches them directly.
type CatalogService interface {
	// Media
	AddMedia(albumID string, input models.MediaInput) (*models.MediaItem, *models.Album, error)
	GetAlbumMedia(albumID string) ([]models.MediaItem, error)
	DeleteMedia(albumID, mediaID string) (*models.Album, error)

	// Presentation
	ResyncAlbum(albumID string) (*models.Album, error)
	ResyncAll() error
	SetAlbumCover(albumID, src string) (*models.Album, error)
	UnlockCover(albumID string) (*models.Album, error)

	// Albums
	CreateAlbum(id, title string) (*models.Album, error)
	GetAlbum(id string) (*models.Album, error)
	GetAlbums() ([]models.Album, error)
	DeleteAlbum(id string) error
	EnsureSeeds() error
}
