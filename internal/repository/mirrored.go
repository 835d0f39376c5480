// filepath: internal/repository/mirrored.go
package repository

import (
	"mediacatalog/internal/models"

	"github.com/sirupsen/logrus"
)

// RemoteCatalog is the optional server-side record-of-truth collaborator.
// When deployed, media writes are projected to it and reads prefer its view.
type RemoteCatalog interface {
	PutMedia(item *models.MediaItem) error
	DeleteMedia(id string) error
	ListMediaByAlbum(albumID string) ([]models.MediaItem, error)
}

// Mirrored decorates a local Store with projection to a RemoteCatalog.
// The local write is authoritative for durability; a failed projection is
// logged and left for the next resync, never surfaced to the caller.
type Mirrored struct {
	Store
	Remote RemoteCatalog
	Logger *logrus.Logger
}

var _ Store = (*Mirrored)(nil)

// NewMirrored wraps local with remote projection.
func NewMirrored(local Store, remote RemoteCatalog, logger *logrus.Logger) *Mirrored {
	return &Mirrored{Store: local, Remote: remote, Logger: logger}
}

func (m *Mirrored) PutMedia(item *models.MediaItem) error {
	if err := m.Store.PutMedia(item); err != nil {
		return err
	}
	if err := m.Remote.PutMedia(item); err != nil {
		m.Logger.Warnf("Mirror: failed to project media %s to remote: %v", item.ID, err)
	}
	return nil
}

func (m *Mirrored) DeleteMedia(id string) error {
	if err := m.Store.DeleteMedia(id); err != nil {
		return err
	}
	if err := m.Remote.DeleteMedia(id); err != nil {
		m.Logger.Warnf("Mirror: failed to project delete of media %s to remote: %v", id, err)
	}
	return nil
}

// ClearAlbum clears locally and projects per-item deletes; the remote side
// has no bulk clear.
func (m *Mirrored) ClearAlbum(albumID string) error {
	items, err := m.Store.ListMediaByAlbum(albumID)
	if err != nil {
		return err
	}
	if err := m.Store.ClearAlbum(albumID); err != nil {
		return err
	}
	for _, item := range items {
		if err := m.Remote.DeleteMedia(item.ID); err != nil {
			m.Logger.Warnf("Mirror: failed to project delete of media %s to remote: %v", item.ID, err)
		}
	}
	return nil
}

// ListMediaByAlbum prefers the remote view and falls back to the local store
// when the collaborator is unreachable.
func (m *Mirrored) ListMediaByAlbum(albumID string) ([]models.MediaItem, error) {
	items, err := m.Remote.ListMediaByAlbum(albumID)
	if err == nil {
		return items, nil
	}
	m.Logger.Warnf("Mirror: remote listing for album %s failed, using local store: %v", albumID, err)
	return m.Store.ListMediaByAlbum(albumID)
}
