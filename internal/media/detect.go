// filepath: internal/media/detect.go
package media

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"mediacatalog/internal/models"
	"mediacatalog/internal/shared"
)

// videoExtensions covers containers http.DetectContentType cannot sniff.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

// DetectType classifies a local file as image or video by its content,
// falling back to the file extension for containers the sniffer misses.
func DetectType(path string) (models.MediaType, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	contentType := http.DetectContentType(buf[:n])

	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage, nil
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo, nil
	}

	if videoExtensions[strings.ToLower(filepath.Ext(path))] {
		return models.MediaTypeVideo, nil
	}
	return "", shared.ErrInvalidMediaType
}

// TypeFromURL guesses the media type of a hosted source from its URL: the
// collaborator's /video/ path segment or a known video extension means
// video, anything else is treated as an image.
func TypeFromURL(src string) models.MediaType {
	if strings.Contains(src, "/video/") {
		return models.MediaTypeVideo
	}
	if videoExtensions[strings.ToLower(filepath.Ext(strings.TrimRight(src, "/")))] {
		return models.MediaTypeVideo
	}
	return models.MediaTypeImage
}
