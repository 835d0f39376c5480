// filepath: internal/services/catalog_service.go
package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"mediacatalog/internal/config"
	"mediacatalog/internal/media"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
	"mediacatalog/internal/shared"

	"github.com/oklog/ulid/v2"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// resyncDepth is how many of the newest items feed cover and background
// derivation during a resync: one cover plus maxBgImages backgrounds.
const resyncDepth = maxBgImages + 1

// Catalog orchestrates the store, the uploader and the deriver. Mutations on
// the same album are serialized through a per-album lock so interleaved adds
// cannot lose cover rotations or stats.
type Catalog struct {
	Store    repository.Store
	Uploader Uploader
	Deriver  Deriver
	Config   *config.Config
	Logger   *logrus.Logger
	Stats    StatsAggregator

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

var _ CatalogService = (*Catalog)(nil)

// NewCatalog creates the catalog facade.
func NewCatalog(store repository.Store, up Uploader, der Deriver, cfg *config.Config, logger *logrus.Logger) *Catalog {
	return &Catalog{
		Store:    store,
		Uploader: up,
		Deriver:  der,
		Config:   cfg,
		Logger:   logger,
		locks:    make(map[string]*sync.Mutex),
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// covers builds the cover policy against the currently configured
// placeholder.
func (c *Catalog) covers() coverPolicy {
	return coverPolicy{placeholder: c.Config.Catalog.PlaceholderCover}
}

// albumLock returns the mutex serializing mutations of one album.
func (c *Catalog) albumLock(albumID string) *sync.Mutex {
	c.locksMu.Lock()
	defer c.locksMu.Unlock()
	lock, ok := c.locks[albumID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[albumID] = lock
	}
	return lock
}

// newMediaID mints a ULID. Monotonic entropy keeps ids strictly increasing
// within a millisecond, so id order is insertion order.
func (c *Catalog) newMediaID() string {
	c.entropyMu.Lock()
	defer c.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String()
}

// putWithFreshID stores the item, regenerating the id on the (practically
// impossible) ULID collision.
func (c *Catalog) putWithFreshID(item *models.MediaItem) error {
	backoff := retry.WithMaxRetries(3, retry.NewConstant(time.Millisecond))
	return retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		err := c.Store.PutMedia(item)
		if errors.Is(err, shared.ErrDuplicateID) {
			c.Logger.Warnf("Catalog: media id %s collided, regenerating", item.ID)
			item.ID = c.newMediaID()
			return retry.RetryableError(err)
		}
		return err
	})
}

// AddMedia uploads (if needed), stores and presents one media item. The
// hosted URL is secured before anything touches the local store, so a failed
// upload leaves no partial record. Preview derivation is best-effort: on
// failure the item is kept and the album presentation stays as it was.
func (c *Catalog) AddMedia(albumID string, input models.MediaInput) (*models.MediaItem, *models.Album, error) {
	item, err := c.resolveInput(albumID, input)
	if err != nil {
		return nil, nil, err
	}

	lock := c.albumLock(albumID)
	lock.Lock()
	defer lock.Unlock()

	album, err := c.Store.GetAlbum(albumID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.putWithFreshID(item); err != nil {
		return nil, nil, err
	}

	preview, err := c.Deriver.Derive(media.SourceFor(item), item.ID)
	if err != nil {
		c.Logger.Warnf("Catalog: no preview for media %s: %v", item.ID, err)
		preview = ""
	}
	c.covers().applyNewPreview(album, preview)

	items, err := c.Store.ListMediaByAlbum(albumID)
	if err != nil {
		return nil, nil, err
	}
	c.Stats.Apply(album, items)

	if err := c.Store.UpdateAlbum(album); err != nil {
		return nil, nil, err
	}

	c.Logger.WithFields(logrus.Fields{
		"album": albumID,
		"media": item.ID,
		"type":  item.Type,
	}).Info("Added media to catalog")
	return item, album, nil
}

// resolveInput turns an AddMedia input into a storable record. Raw files are
// uploaded first; hosted media is validated and taken as-is.
func (c *Catalog) resolveInput(albumID string, input models.MediaInput) (*models.MediaItem, error) {
	item := &models.MediaItem{
		ID:        c.newMediaID(),
		AlbumID:   albumID,
		CreatedAt: time.Now().UnixMilli(),
	}

	switch in := input.(type) {
	case models.RawFile:
		result, err := c.Uploader.Upload(in.Path)
		if err != nil {
			return nil, err
		}
		item.Src = result.SecureURL
		item.Type = result.Type
		item.Name = filepath.Base(in.Path)
	case models.HostedMedia:
		if !in.Type.Valid() {
			return nil, shared.ErrInvalidMediaType
		}
		if in.Src == "" {
			return nil, fmt.Errorf("hosted media without a src")
		}
		item.Src = in.Src
		item.Type = in.Type
		item.Name = in.Name
	default:
		return nil, fmt.Errorf("unsupported media input %T", input)
	}
	return item, nil
}

// GetAlbumMedia lists an album's media, newest first.
func (c *Catalog) GetAlbumMedia(albumID string) ([]models.MediaItem, error) {
	items, err := c.Store.ListMediaByAlbum(albumID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)
	return items, nil
}

// DeleteMedia removes one item and recomputes the album stats. The cover and
// backgrounds are left alone; stale presentation is cleaned up by the next
// resync, which keeps deletion cheap.
func (c *Catalog) DeleteMedia(albumID, mediaID string) (*models.Album, error) {
	lock := c.albumLock(albumID)
	lock.Lock()
	defer lock.Unlock()

	album, err := c.Store.GetAlbum(albumID)
	if err != nil {
		return nil, err
	}
	if err := c.Store.DeleteMedia(mediaID); err != nil {
		return nil, err
	}

	items, err := c.Store.ListMediaByAlbum(albumID)
	if err != nil {
		return nil, err
	}
	c.Stats.Apply(album, items)

	if err := c.Store.UpdateAlbum(album); err != nil {
		return nil, err
	}
	c.Logger.Infof("Catalog: deleted media %s from album %s", mediaID, albumID)
	return album, nil
}

// ResyncAlbum rebuilds an album's stats, cover and backgrounds from its
// stored media. Running it twice in a row is a no-op.
func (c *Catalog) ResyncAlbum(albumID string) (*models.Album, error) {
	lock := c.albumLock(albumID)
	lock.Lock()
	defer lock.Unlock()
	return c.resyncLocked(albumID)
}

func (c *Catalog) resyncLocked(albumID string) (*models.Album, error) {
	album, err := c.Store.GetAlbum(albumID)
	if err != nil {
		return nil, err
	}
	items, err := c.Store.ListMediaByAlbum(albumID)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(items)

	depth := resyncDepth
	if len(items) < depth {
		depth = len(items)
	}
	previews := make([]string, 0, depth)
	for _, item := range items[:depth] {
		preview, err := c.Deriver.Derive(media.SourceFor(&item), item.ID)
		if err != nil {
			c.Logger.Warnf("Catalog: no preview for media %s during resync: %v", item.ID, err)
			preview = ""
		}
		previews = append(previews, preview)
	}
	c.covers().applyHistory(album, previews)
	c.Stats.Apply(album, items)

	if err := c.Store.UpdateAlbum(album); err != nil {
		return nil, err
	}
	c.Logger.Debugf("Catalog: resynced album %s (%d items)", albumID, len(items))
	return album, nil
}

// ResyncAll resyncs every album. Failures are collected so one broken album
// does not stop the rest.
func (c *Catalog) ResyncAll() error {
	albums, err := c.GetAlbums()
	if err != nil {
		return err
	}
	var errs []error
	for _, album := range albums {
		if _, err := c.ResyncAlbum(album.ID); err != nil {
			c.Logger.Errorf("Catalog: resync of album %s failed: %v", album.ID, err)
			errs = append(errs, fmt.Errorf("album %s: %w", album.ID, err))
		}
	}
	return errors.Join(errs...)
}

// SetAlbumCover derives a preview from the given source and locks it in as
// the album cover. Manual covers survive subsequent adds and resyncs until
// UnlockCover.
func (c *Catalog) SetAlbumCover(albumID, src string) (*models.Album, error) {
	lock := c.albumLock(albumID)
	lock.Lock()
	defer lock.Unlock()

	album, err := c.Store.GetAlbum(albumID)
	if err != nil {
		return nil, err
	}

	source, err := c.coverSource(src)
	if err != nil {
		return nil, err
	}
	preview, err := c.Deriver.Derive(source, albumID+"-cover")
	if err != nil {
		return nil, fmt.Errorf("could not derive cover preview: %w", err)
	}

	album.Cover = preview
	album.IsManualCover = true
	if err := c.Store.UpdateAlbum(album); err != nil {
		return nil, err
	}
	c.Logger.Infof("Catalog: album %s cover locked to manual choice", albumID)
	return album, nil
}

// coverSource classifies a manual cover source: a hosted URL or a local file.
func (c *Catalog) coverSource(src string) (media.Source, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return media.Source{URL: src, Type: media.TypeFromURL(src)}, nil
	}
	mediaType, err := media.DetectType(src)
	if err != nil {
		return media.Source{}, err
	}
	return media.Source{Path: src, Type: mediaType}, nil
}

// UnlockCover clears the manual cover flag and immediately resyncs so the
// cover reflects the newest media again.
func (c *Catalog) UnlockCover(albumID string) (*models.Album, error) {
	lock := c.albumLock(albumID)
	lock.Lock()
	defer lock.Unlock()

	album, err := c.Store.GetAlbum(albumID)
	if err != nil {
		return nil, err
	}
	album.IsManualCover = false
	if err := c.Store.UpdateAlbum(album); err != nil {
		return nil, err
	}
	return c.resyncLocked(albumID)
}

// CreateAlbum creates an empty album with the placeholder cover.
func (c *Catalog) CreateAlbum(id, title string) (*models.Album, error) {
	album := &models.Album{
		ID:       id,
		Title:    title,
		Cover:    c.Config.Catalog.PlaceholderCover,
		BgImages: []string{},
	}
	created, err := c.Store.CreateAlbum(album)
	if err != nil {
		return nil, err
	}
	c.Logger.Infof("Catalog: created album %s (%q)", id, title)
	return created, nil
}

// GetAlbum returns one album.
func (c *Catalog) GetAlbum(id string) (*models.Album, error) {
	return c.Store.GetAlbum(id)
}

// GetAlbums lists all albums, purging retired ones on the way. Retirement is
// config-driven so decommissioned albums disappear from every device without
// a coordinated delete.
func (c *Catalog) GetAlbums() ([]models.Album, error) {
	for _, id := range c.Config.Catalog.RetiredAlbums {
		if _, err := c.Store.GetAlbum(id); errors.Is(err, shared.ErrAlbumNotFound) {
			continue
		}
		c.Logger.Infof("Catalog: purging retired album %s", id)
		if err := c.Store.ClearAlbum(id); err != nil {
			return nil, err
		}
		if err := c.Store.DeleteAlbum(id); err != nil {
			return nil, err
		}
	}
	return c.Store.GetAlbums()
}

// DeleteAlbum removes an album and all of its media records.
func (c *Catalog) DeleteAlbum(id string) error {
	lock := c.albumLock(id)
	lock.Lock()
	defer lock.Unlock()

	if err := c.Store.ClearAlbum(id); err != nil {
		return err
	}
	if err := c.Store.DeleteAlbum(id); err != nil {
		return err
	}
	c.Logger.Infof("Catalog: deleted album %s", id)
	return nil
}

// EnsureSeeds creates the configured seed albums that do not exist yet.
// Existing albums are left untouched, so re-running at every startup is safe.
func (c *Catalog) EnsureSeeds() error {
	for _, seed := range c.Config.Catalog.Seeds {
		if _, err := c.Store.GetAlbum(seed.ID); err == nil {
			continue
		} else if !errors.Is(err, shared.ErrAlbumNotFound) {
			return err
		}

		cover := seed.Cover
		if cover == "" {
			cover = c.Config.Catalog.PlaceholderCover
		}
		album := &models.Album{
			ID:             seed.ID,
			Title:          seed.Title,
			Cover:          cover,
			BgImages:       []string{},
			IsDefault:      seed.IsDefault,
			BaselinePhotos: seed.BaselinePhotos,
			Stats:          models.Stats{Photos: seed.BaselinePhotos},
		}
		if _, err := c.Store.CreateAlbum(album); err != nil {
			return err
		}
		c.Logger.Infof("Catalog: seeded album %s (%q)", seed.ID, seed.Title)
	}
	return nil
}

// sortNewestFirst orders items by id descending. ULIDs are time-ordered, so
// this is newest-first without consulting timestamps.
func sortNewestFirst(items []models.MediaItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID > items[j].ID
	})
}
