// filepath: internal/repository/album_repo.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"mediacatalog/internal/models"
	"mediacatalog/internal/shared"

	"github.com/Masterminds/squirrel"
)

const albumCachePrefix = "album:"

func albumCacheKey(id string) string { return albumCachePrefix + id }

func marshalBgImages(bg []string) (string, error) {
	if bg == nil {
		bg = []string{}
	}
	raw, err := json.Marshal(bg)
	if err != nil {
		return "", fmt.Errorf("failed to encode bg_images: %w", err)
	}
	return string(raw), nil
}

// CreateAlbum inserts an album record and returns it.
func (s *Repository) CreateAlbum(album *models.Album) (*models.Album, error) {
	bgJSON, err := marshalBgImages(album.BgImages)
	if err != nil {
		return nil, err
	}

	query := s.Builder.Insert("albums").
		Columns("id", "title", "cover", "is_manual_cover", "bg_images", "is_default",
			"photos", "videos", "baseline_photos").
		Values(album.ID, album.Title, album.Cover, album.IsManualCover, bgJSON, album.IsDefault,
			album.Stats.Photos, album.Stats.Videos, album.BaselinePhotos)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := s.DB.Exec(sqlQuery, args...); err != nil {
		if isUniqueViolation(err) {
			return nil, shared.ErrDuplicateID
		}
		s.Logger.Errorf("Repository: Failed to create album %s: %v", album.ID, err)
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	s.Cache.SetDefault(albumCacheKey(album.ID), *album)
	return album, nil
}

// GetAlbum reads a single album record, serving repeated reads from cache.
func (s *Repository) GetAlbum(id string) (*models.Album, error) {
	if cached, found := s.Cache.Get(albumCacheKey(id)); found {
		album := cached.(models.Album)
		return &album, nil
	}

	query := s.Builder.Select(albumColumns()...).
		From("albums").
		Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	row := s.DB.QueryRow(sqlQuery, args...)
	album, err := scanAlbum(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, shared.ErrAlbumNotFound
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	s.Cache.SetDefault(albumCacheKey(id), *album)
	return album, nil
}

// GetAlbums returns all album records.
func (s *Repository) GetAlbums() ([]models.Album, error) {
	query := s.Builder.Select(albumColumns()...).From("albums").OrderBy("id ASC")

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	albums := make([]models.Album, 0)
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album row: %w", err)
		}
		albums = append(albums, *album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return albums, nil
}

// UpdateAlbum writes the album record back wholesale.
func (s *Repository) UpdateAlbum(album *models.Album) error {
	bgJSON, err := marshalBgImages(album.BgImages)
	if err != nil {
		return err
	}

	query := s.Builder.Update("albums").
		Set("title", album.Title).
		Set("cover", album.Cover).
		Set("is_manual_cover", album.IsManualCover).
		Set("bg_images", bgJSON).
		Set("is_default", album.IsDefault).
		Set("photos", album.Stats.Photos).
		Set("videos", album.Stats.Videos).
		Set("baseline_photos", album.BaselinePhotos).
		Where(squirrel.Eq{"id": album.ID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	res, err := s.DB.Exec(sqlQuery, args...)
	if err != nil {
		s.Logger.Errorf("Repository: Failed to update album %s: %v", album.ID, err)
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return shared.ErrAlbumNotFound
	}

	s.Cache.SetDefault(albumCacheKey(album.ID), *album)
	return nil
}

// DeleteAlbum removes an album record. Media rows referencing the album are
// left in place; orphans simply never appear in any listing.
func (s *Repository) DeleteAlbum(id string) error {
	query := s.Builder.Delete("albums").Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.DB.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	s.Cache.Delete(albumCacheKey(id))
	return nil
}

func albumColumns() []string {
	return []string{"id", "title", "cover", "is_manual_cover", "bg_images", "is_default",
		"photos", "videos", "baseline_photos"}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlbum(row rowScanner) (*models.Album, error) {
	var album models.Album
	var bgJSON string
	err := row.Scan(&album.ID, &album.Title, &album.Cover, &album.IsManualCover, &bgJSON,
		&album.IsDefault, &album.Stats.Photos, &album.Stats.Videos, &album.BaselinePhotos)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(bgJSON), &album.BgImages); err != nil {
		return nil, fmt.Errorf("failed to decode bg_images for album %s: %w", album.ID, err)
	}
	return &album, nil
}
