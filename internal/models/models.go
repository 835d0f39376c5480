// filepath: internal/models/models.go
package models

import "strings"

// MediaType classifies a media item. The catalog only stores images and videos.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Valid reports whether t is one of the supported media types.
func (t MediaType) Valid() bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// Stats holds the per-album media counts shown in listings.
type Stats struct {
	Photos int `json:"photos"`
	Videos int `json:"videos"`
}

// Total returns the combined item count.
func (s Stats) Total() int { return s.Photos + s.Videos }

// Album is the consumer-visible record for a collection of media items.
// Cover and BgImages are derived presentation state; Stats mirrors the
// repository content plus the baseline for seeded albums.
type Album struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Cover         string   `json:"cover"`
	IsManualCover bool     `json:"isManualCover"`
	BgImages      []string `json:"bgImages"`
	IsDefault     bool     `json:"isDefault"`
	Stats         Stats    `json:"stats"`

	// BaselinePhotos is a fixed count for legacy imports whose originals
	// were never individually cataloged. Not derived from any record.
	BaselinePhotos int `json:"-"`
}

// MediaItem is a single image or video belonging to exactly one album.
// IDs are ULIDs: globally unique and lexicographically time-ordered, so
// sorting by id descending yields newest-first.
type MediaItem struct {
	ID        string    `json:"id"`
	AlbumID   string    `json:"albumId"`
	Src       string    `json:"src"`
	Type      MediaType `json:"type"`
	Name      string    `json:"name"`
	CreatedAt int64     `json:"createdAt"`
}

// MediaInput is the tagged union of accepted AddMedia inputs: a raw local
// file still to be uploaded, or media the collaborator already hosts.
type MediaInput interface {
	mediaInput()
}

// RawFile is a not-yet-uploaded local file.
type RawFile struct {
	Path string
}

// HostedMedia is media that already has a durable public URL.
type HostedMedia struct {
	Src  string
	Type MediaType
	Name string
}

func (RawFile) mediaInput()     {}
func (HostedMedia) mediaInput() {}

// IsPlaceholder reports whether url is a placeholder cover. Placeholders
// never rotate into BgImages.
func IsPlaceholder(url string) bool {
	return strings.Contains(url, "placehold.co")
}
