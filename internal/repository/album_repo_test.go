// filepath: internal/repository/album_repo_test.go
package repository

import (
	"testing"

	"mediacatalog/internal/models"
	"mediacatalog/internal/shared"

	"github.com/stretchr/testify/assert"
)

func TestAlbumCRUD(t *testing.T) {
	repo := setupTestDB(t)

	album := &models.Album{
		ID:    "holiday",
		Title: "Holiday 2026",
		Cover: "https://placehold.co/600x400/1e293b/475569?text=New+Album",
	}
	created, err := repo.CreateAlbum(album)
	assert.NoError(t, err)
	assert.Equal(t, "holiday", created.ID)

	read, err := repo.GetAlbum("holiday")
	assert.NoError(t, err)
	assert.Equal(t, "Holiday 2026", read.Title)
	assert.NotNil(t, read.BgImages)
	assert.Empty(t, read.BgImages)

	read.Cover = "previews/01A.jpg"
	read.BgImages = []string{"previews/019.jpg", "previews/018.jpg"}
	read.Stats = models.Stats{Photos: 3, Videos: 1}
	read.IsManualCover = true
	assert.NoError(t, repo.UpdateAlbum(read))

	updated, err := repo.GetAlbum("holiday")
	assert.NoError(t, err)
	assert.Equal(t, "previews/01A.jpg", updated.Cover)
	assert.Equal(t, []string{"previews/019.jpg", "previews/018.jpg"}, updated.BgImages)
	assert.Equal(t, 3, updated.Stats.Photos)
	assert.Equal(t, 1, updated.Stats.Videos)
	assert.True(t, updated.IsManualCover)

	assert.NoError(t, repo.DeleteAlbum("holiday"))
	_, err = repo.GetAlbum("holiday")
	assert.ErrorIs(t, err, shared.ErrAlbumNotFound)
}

func TestCreateAlbum_DuplicateID(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.CreateAlbum(&models.Album{ID: "dup", Title: "One"})
	assert.NoError(t, err)

	_, err = repo.CreateAlbum(&models.Album{ID: "dup", Title: "Two"})
	assert.ErrorIs(t, err, shared.ErrDuplicateID)
}

func TestUpdateAlbum_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.UpdateAlbum(&models.Album{ID: "ghost"})
	assert.ErrorIs(t, err, shared.ErrAlbumNotFound)
}

func TestGetAlbums(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.CreateAlbum(&models.Album{ID: "a", Title: "A"})
	assert.NoError(t, err)
	_, err = repo.CreateAlbum(&models.Album{ID: "b", Title: "B", BaselinePhotos: 258})
	assert.NoError(t, err)

	albums, err := repo.GetAlbums()
	assert.NoError(t, err)
	assert.Len(t, albums, 2)
	assert.Equal(t, 258, albums[1].BaselinePhotos)
}

func TestGetAlbum_CacheInvalidation(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.CreateAlbum(&models.Album{ID: "cached", Title: "Before"})
	assert.NoError(t, err)

	// Warm the cache, then update and re-read.
	first, err := repo.GetAlbum("cached")
	assert.NoError(t, err)
	assert.Equal(t, "Before", first.Title)

	first.Title = "After"
	assert.NoError(t, repo.UpdateAlbum(first))

	second, err := repo.GetAlbum("cached")
	assert.NoError(t, err)
	assert.Equal(t, "After", second.Title)

	// A cached read must return a copy, not a shared pointer target.
	second.Title = "Mutated"
	third, err := repo.GetAlbum("cached")
	assert.NoError(t, err)
	assert.Equal(t, "After", third.Title)
}
