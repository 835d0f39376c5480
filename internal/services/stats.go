// filepath: internal/services/stats.go
package services

import "mediacatalog/internal/models"

// StatsAggregator recomputes album stats from stored media records. Stats are
// never incremented in place; a full tally is cheap and self-healing after
// partial failures.
type StatsAggregator struct{}

// Tally counts photos and videos in the given records.
func (StatsAggregator) Tally(items []models.MediaItem) models.Stats {
	var stats models.Stats
	for _, item := range items {
		switch item.Type {
		case models.MediaTypeVideo:
			stats.Videos++
		default:
			stats.Photos++
		}
	}
	return stats
}

// Apply writes the tally onto the album, adding the fixed baseline for
// seeded albums whose originals were never individually cataloged.
func (a StatsAggregator) Apply(album *models.Album, items []models.MediaItem) {
	stats := a.Tally(items)
	stats.Photos += album.BaselinePhotos
	album.Stats = stats
}
