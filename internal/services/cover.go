// filepath: internal/services/cover.go
package services

import "mediacatalog/internal/models"

// maxBgImages caps the background rotation behind an album cover.
const maxBgImages = 3

// coverPolicy folds derived previews into an album's presentation state.
// It knows the configured placeholder so placeholders never enter the
// background rotation, whatever URL they are configured to.
type coverPolicy struct {
	placeholder string
}

func (p coverPolicy) isPlaceholder(url string) bool {
	if url == "" {
		return false
	}
	return url == p.placeholder || models.IsPlaceholder(url)
}

// applyNewPreview folds a freshly derived preview into the album's
// presentation state. An empty preview (derivation failed or degraded)
// changes nothing. A locked manual cover is never displaced; the preview
// rotates into the backgrounds instead.
func (p coverPolicy) applyNewPreview(album *models.Album, preview string) {
	if preview == "" {
		return
	}
	if album.IsManualCover {
		p.pushBg(album, preview)
		return
	}
	if album.Cover != "" && !p.isPlaceholder(album.Cover) {
		p.pushBg(album, album.Cover)
	}
	album.Cover = preview
}

// pushBg prepends a URL to the background rotation, dropping the oldest
// entry past the cap. Placeholders never enter the rotation.
func (p coverPolicy) pushBg(album *models.Album, url string) {
	if url == "" || p.isPlaceholder(url) {
		return
	}
	bg := append([]string{url}, album.BgImages...)
	if len(bg) > maxBgImages {
		bg = bg[:maxBgImages]
	}
	album.BgImages = bg
}

// applyHistory rebuilds cover and backgrounds from previews derived for the
// newest items (newest first). No items or a failed head preview keeps the
// prior state untouched, so an empty album retains its static cover and a
// transient derivation failure never blanks one.
func (p coverPolicy) applyHistory(album *models.Album, previews []string) {
	if len(previews) == 0 || previews[0] == "" {
		return
	}

	if !album.IsManualCover {
		album.Cover = previews[0]
	}

	bg := make([]string, 0, maxBgImages)
	for _, preview := range previews[1:] {
		if preview == "" || p.isPlaceholder(preview) {
			continue
		}
		bg = append(bg, preview)
		if len(bg) == maxBgImages {
			break
		}
	}
	album.BgImages = bg
}
