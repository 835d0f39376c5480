// filepath: internal/services/mocks/store_mock.go
package mocks

import (
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of repository.Store
type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockStore) PutMedia(item *models.MediaItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockStore) ListMediaByAlbum(albumID string) ([]models.MediaItem, error) {
	args := m.Called(albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func (m *MockStore) DeleteMedia(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) ClearAlbum(albumID string) error {
	args := m.Called(albumID)
	return args.Error(0)
}

func (m *MockStore) CreateAlbum(album *models.Album) (*models.Album, error) {
	args := m.Called(album)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockStore) GetAlbum(id string) (*models.Album, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Album), args.Error(1)
}

func (m *MockStore) GetAlbums() ([]models.Album, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Album), args.Error(1)
}

func (m *MockStore) UpdateAlbum(album *models.Album) error {
	args := m.Called(album)
	return args.Error(0)
}

func (m *MockStore) DeleteAlbum(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStore) MigrateUp() error {
	args := m.Called()
	return args.Error(0)
}
