// filepath: internal/uploader/cloudinary.go
package uploader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"mediacatalog/internal/config"
	"mediacatalog/internal/media"
	"mediacatalog/internal/models"
	"mediacatalog/internal/shared"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
)

const (
	// uploadMaxSide caps the longer side of an image before upload. Full-size
	// camera output is wasted bandwidth; the catalog never displays more.
	uploadMaxSide = 1920
	// uploadQuality is the JPEG quality used when recompressing for upload.
	uploadQuality = 80
)

// Result is the hosting response the catalog cares about.
type Result struct {
	SecureURL    string           `json:"secure_url"`
	ResourceType string           `json:"resource_type"`
	Type         models.MediaType `json:"-"`
}

type uploadError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client uploads local files to the hosting collaborator using an unsigned
// upload preset. No credentials are stored; the preset scopes what the
// endpoint accepts.
type Client struct {
	APIBase      string
	CloudName    string
	UploadPreset string
	HTTPClient   *http.Client
	Logger       *logrus.Logger
}

// NewClient creates an upload client from the configuration.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		APIBase:      cfg.Upload.APIBase,
		CloudName:    cfg.Upload.CloudName,
		UploadPreset: cfg.Upload.UploadPreset,
		HTTPClient:   &http.Client{Timeout: 120 * time.Second},
		Logger:       logger,
	}
}

// Upload sends a local file to the hosting endpoint and returns the hosted
// URL. Images are recompressed to bounded JPEGs first; videos go up as-is.
func (c *Client) Upload(path string) (*Result, error) {
	mediaType, err := media.DetectType(path)
	if err != nil {
		return nil, err
	}

	var payload io.Reader
	filename := filepath.Base(path)

	switch mediaType {
	case models.MediaTypeImage:
		data, err := c.recompressImage(path)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(data)
		filename = replaceExt(filename, ".jpg")
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
		}
		defer f.Close()
		payload = f
	}

	result, err := c.post(resourceType(mediaType), filename, payload)
	if err != nil {
		return nil, err
	}
	result.Type = mediaType
	c.Logger.WithFields(logrus.Fields{
		"file": path,
		"url":  result.SecureURL,
	}).Info("Uploaded media to hosting endpoint")
	return result, nil
}

// recompressImage decodes, bounds and re-encodes an image as JPEG for upload.
func (c *Client) recompressImage(path string) ([]byte, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image: %v", shared.ErrUpload, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > uploadMaxSide || bounds.Dy() > uploadMaxSide {
		if bounds.Dx() >= bounds.Dy() {
			img = imaging.Resize(img, uploadMaxSide, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, uploadMaxSide, imaging.Lanczos)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(uploadQuality)); err != nil {
		return nil, fmt.Errorf("%w: could not encode image: %v", shared.ErrUpload, err)
	}
	return buf.Bytes(), nil
}

func (c *Client) post(resource, filename string, payload io.Reader) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}
	if _, err := io.Copy(part, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}
	if err := writer.WriteField("upload_preset", c.UploadPreset); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/upload", c.APIBase, c.CloudName, resource)
	req, err := http.NewRequest(http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpload, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr uploadError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrUpload, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: endpoint returned status %d", shared.ErrUpload, resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: unexpected response: %v", shared.ErrUpload, err)
	}
	if result.SecureURL == "" {
		return nil, fmt.Errorf("%w: response carried no secure_url", shared.ErrUpload)
	}
	return &result, nil
}

func resourceType(t models.MediaType) string {
	if t == models.MediaTypeVideo {
		return "video"
	}
	return "image"
}

func replaceExt(filename, ext string) string {
	old := filepath.Ext(filename)
	return filename[:len(filename)-len(old)] + ext
}
