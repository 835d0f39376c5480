// filepath: internal/media/deriver.go
package media

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mediacatalog/internal/config"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"

	"github.com/disintegration/imaging"

	// Register decoders for the formats browsers hand us
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	// PreviewMaxSide caps the longer side of a derived preview.
	// The aspect ratio is maintained; smaller sources keep their native size.
	PreviewMaxSide = 500
	// previewQuality is the JPEG quality of derived previews (0.7 lossy).
	previewQuality = 70
)

// Source identifies a derivable input: a local file or a hosted URL, plus
// the declared media type.
type Source struct {
	Path string // local file; exclusive with URL
	URL  string
	Type models.MediaType
}

// SourceFor builds the derivation source for a stored media item.
func SourceFor(item *models.MediaItem) Source {
	if strings.HasPrefix(item.Src, "http://") || strings.HasPrefix(item.Src, "https://") {
		return Source{URL: item.Src, Type: item.Type}
	}
	return Source{Path: item.Src, Type: item.Type}
}

// Deriver produces bounded preview images for still images and video frames.
// Previews are written under PreviewRoot and named by media id, so deriving
// the same item twice yields the same preview URL.
type Deriver struct {
	PreviewRoot  string
	DeliveryHost string // upload collaborator's CDN; enables the rewrite shortcut
	Client       *http.Client
}

// NewDeriver creates a Deriver from the configuration.
func NewDeriver(cfg *config.Config) *Deriver {
	Initialize(cfg.Media.FFmpegPath, cfg.Media.FFprobePath)
	return &Deriver{
		PreviewRoot:  cfg.Catalog.PreviewRoot,
		DeliveryHost: cfg.Upload.DeliveryHost,
		Client:       &http.Client{Timeout: 30 * time.Second},
	}
}

// Derive produces a bounded-size preview for the source and returns its URL.
// Any error means "no new preview is available": callers log it and keep
// prior state, they never treat it as fatal.
func (d *Deriver) Derive(src Source, id string) (string, error) {
	if !src.Type.Valid() {
		return "", fmt.Errorf("cannot derive preview for type %q", src.Type)
	}

	if src.URL != "" {
		// CDN shortcut: the collaborator can resize on delivery, skip pixel work.
		if d.IsDeliveryURL(src.URL) {
			return RewriteDeliveryURL(src.URL, src.Type == models.MediaTypeVideo), nil
		}
		return d.deriveFromURL(src, id)
	}

	switch src.Type {
	case models.MediaTypeVideo:
		return d.deriveVideoFile(src.Path, id)
	default:
		return d.deriveImageFile(src.Path, id)
	}
}

// IsDeliveryURL reports whether the URL is served by the upload collaborator
// and carries the rewritable /upload/ segment.
func (d *Deriver) IsDeliveryURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(u.Host, d.DeliveryHost) && strings.Contains(u.Path, "/upload/")
}

func (d *Deriver) deriveImageFile(path, id string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("could not decode image for preview: %w", err)
	}
	return d.encodePreview(img, id)
}

func (d *Deriver) deriveVideoFile(path, id string) (string, error) {
	meta, err := ProbeVideo(path)
	if err != nil {
		return "", fmt.Errorf("could not probe video for preview: %w", err)
	}
	if meta.Width == 0 || meta.Height == 0 {
		// Frame never becomes ready; degrade.
		return "", fmt.Errorf("video has zero dimensions")
	}

	frameData, err := ExtractFrameJPEG(path, seekOffset(meta.DurationSec))
	if err != nil {
		return "", err
	}

	frame, _, err := image.Decode(bytes.NewReader(frameData))
	if err != nil {
		return "", fmt.Errorf("could not decode poster frame: %w", err)
	}
	return d.encodePreview(frame, id)
}

// deriveFromURL fetches a non-CDN hosted source and runs the pixel path on it.
func (d *Deriver) deriveFromURL(src Source, id string) (string, error) {
	resp, err := d.Client.Get(src.URL)
	if err != nil {
		return "", fmt.Errorf("could not fetch source for preview: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("source fetch returned status %d", resp.StatusCode)
	}

	if src.Type == models.MediaTypeImage {
		img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
		if err != nil {
			return "", fmt.Errorf("could not decode fetched image: %w", err)
		}
		return d.encodePreview(img, id)
	}

	// Video: ffmpeg needs a seekable input, spool to a temp file first.
	tmp, err := os.CreateTemp("", "catalog-video-*")
	if err != nil {
		return "", fmt.Errorf("could not spool video: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return "", fmt.Errorf("could not spool video: %w", err)
	}
	return d.deriveVideoFile(tmp.Name(), id)
}

// seekOffset picks the poster frame timestamp: 1s in, or the midpoint of
// clips shorter than a second.
func seekOffset(durationSec float64) float64 {
	if durationSec > 0 && durationSec < 1.0 {
		return durationSec / 2
	}
	return 1.0
}

// fitWithin computes the preview dimensions: downscale so the longer side is
// exactly maxSide, never upscale.
func fitWithin(width, height, maxSide int) (int, int) {
	if width <= maxSide && height <= maxSide {
		return width, height
	}
	if width > height {
		return maxSide, (height * maxSide) / width
	}
	return (width * maxSide) / height, maxSide
}

// encodePreview scales the image into the preview bounding box and writes it
// as a JPEG under PreviewRoot.
func (d *Deriver) encodePreview(img image.Image, id string) (string, error) {
	bounds := img.Bounds()
	origWidth := bounds.Dx()
	origHeight := bounds.Dy()
	if origWidth == 0 || origHeight == 0 {
		return "", fmt.Errorf("cannot create preview for zero-dimension source")
	}

	newWidth, newHeight := fitWithin(origWidth, origHeight, PreviewMaxSide)

	thumb := img
	if newWidth != origWidth || newHeight != origHeight {
		thumb = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	if err := os.MkdirAll(d.PreviewRoot, 0755); err != nil {
		return "", fmt.Errorf("could not create preview directory: %w", err)
	}
	previewPath := filepath.Join(d.PreviewRoot, id+".jpg")

	if err := imaging.Save(thumb, previewPath, imaging.JPEGQuality(previewQuality)); err != nil {
		os.Remove(previewPath) // Clean up failed write
		return "", fmt.Errorf("failed to encode preview to jpeg: %w", err)
	}

	logging.Log.Debugf("Derived preview %s (%dx%d -> %dx%d)", previewPath, origWidth, origHeight, newWidth, newHeight)
	return previewPath, nil
}
