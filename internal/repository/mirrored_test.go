// filepath: internal/repository/mirrored_test.go
package repository

import (
	"errors"
	"testing"

	"mediacatalog/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockRemote is a mock implementation of RemoteCatalog
type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) PutMedia(item *models.MediaItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *mockRemote) DeleteMedia(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockRemote) ListMediaByAlbum(albumID string) ([]models.MediaItem, error) {
	args := m.Called(albumID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func newMirroredForTest(t *testing.T) (*Mirrored, *mockRemote) {
	t.Helper()
	repo := setupTestDB(t)
	remote := new(mockRemote)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewMirrored(repo, remote, logger), remote
}

func TestMirrored_PutProjectsToRemote(t *testing.T) {
	mirrored, remote := newMirroredForTest(t)

	item := testMediaItem("01M1", "travel", models.MediaTypeImage)
	remote.On("PutMedia", item).Return(nil).Once()

	assert.NoError(t, mirrored.PutMedia(item))
	remote.AssertExpectations(t)

	// Remote failure is swallowed; the local write already succeeded.
	item2 := testMediaItem("01M2", "travel", models.MediaTypeImage)
	remote.On("PutMedia", item2).Return(errors.New("network down")).Once()
	assert.NoError(t, mirrored.PutMedia(item2))

	items, err := mirrored.Store.ListMediaByAlbum("travel")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestMirrored_ListPrefersRemote(t *testing.T) {
	mirrored, remote := newMirroredForTest(t)

	assert.NoError(t, mirrored.Store.PutMedia(testMediaItem("01LOCAL", "travel", models.MediaTypeImage)))

	remoteItems := []models.MediaItem{*testMediaItem("01REMOTE", "travel", models.MediaTypeImage)}
	remote.On("ListMediaByAlbum", "travel").Return(remoteItems, nil).Once()

	items, err := mirrored.ListMediaByAlbum("travel")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "01REMOTE", items[0].ID)

	// Unreachable remote falls back to the local store.
	remote.On("ListMediaByAlbum", "travel").Return(nil, errors.New("timeout")).Once()
	items, err = mirrored.ListMediaByAlbum("travel")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "01LOCAL", items[0].ID)
}

func TestMirrored_ClearAlbumProjectsPerItemDeletes(t *testing.T) {
	mirrored, remote := newMirroredForTest(t)

	assert.NoError(t, mirrored.Store.PutMedia(testMediaItem("01A", "travel", models.MediaTypeImage)))
	assert.NoError(t, mirrored.Store.PutMedia(testMediaItem("01B", "travel", models.MediaTypeImage)))

	remote.On("DeleteMedia", "01A").Return(nil).Once()
	remote.On("DeleteMedia", "01B").Return(nil).Once()

	assert.NoError(t, mirrored.ClearAlbum("travel"))
	remote.AssertExpectations(t)

	items, err := mirrored.Store.ListMediaByAlbum("travel")
	assert.NoError(t, err)
	assert.Empty(t, items)
}
