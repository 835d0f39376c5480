// filepath: internal/repository/media_repo.go
package repository

import (
	"fmt"
	"strings"

	"mediacatalog/internal/models"
	"mediacatalog/internal/shared"

	"github.com/Masterminds/squirrel"
)

// isUniqueViolation detects a primary-key collision from the sqlite driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// PutMedia inserts a media record. Returns shared.ErrDuplicateID when the id
// already exists; callers regenerate the id and retry.
func (s *Repository) PutMedia(item *models.MediaItem) error {
	query := s.Builder.Insert("media").
		Columns("id", "album_id", "src", "type", "name", "created_at").
		Values(item.ID, item.AlbumID, item.Src, string(item.Type), item.Name, item.CreatedAt)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := s.DB.Exec(sqlQuery, args...); err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicateID
		}
		s.Logger.Errorf("Repository: Failed to insert media %s: %v", item.ID, err)
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return nil
}

// ListMediaByAlbum returns all media records for an album. The result is
// unordered with respect to insertion; callers sort. An unknown album yields
// an empty slice, never an error.
func (s *Repository) ListMediaByAlbum(albumID string) ([]models.MediaItem, error) {
	query := s.Builder.Select("id", "album_id", "src", "type", "name", "created_at").
		From("media").
		Where(squirrel.Eq{"album_id": albumID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := s.DB.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	items := make([]models.MediaItem, 0)
	for rows.Next() {
		var item models.MediaItem
		var mediaType string
		if err := rows.Scan(&item.ID, &item.AlbumID, &item.Src, &mediaType, &item.Name, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan media row: %w", err)
		}
		item.Type = models.MediaType(mediaType)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return items, nil
}

// DeleteMedia removes a media record by id. Deleting a non-existent id is a
// no-op; the UI issues optimistic deletes.
func (s *Repository) DeleteMedia(id string) error {
	query := s.Builder.Delete("media").Where(squirrel.Eq{"id": id})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := s.DB.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return nil
}

// ClearAlbum removes every media record of an album via the album index.
func (s *Repository) ClearAlbum(albumID string) error {
	query := s.Builder.Delete("media").Where(squirrel.Eq{"album_id": albumID})

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build clear query: %w", err)
	}

	if _, err := s.DB.Exec(sqlQuery, args...); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	return nil
}
