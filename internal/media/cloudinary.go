// internal/media/cloudinary.go
//
// Unsigned uploads to the hosted media store. Images and documents travel
// as inline base64 data URIs; videos stream from disk as a file part. The
// preset names and cloud name come from configuration, never from the
// server.

package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/propseller/propseller/internal/api"
	"github.com/propseller/propseller/internal/config"
)

const defaultStorageBase = "https://api.cloudinary.com/v1_1"

// Storage uploads local media and returns its durable remote URL.
type Storage interface {
	UploadImage(ctx context.Context, dataURI string) (string, error)
	UploadVideo(ctx context.Context, path string) (string, error)
}

// Cloudinary is the production Storage backed by unsigned upload presets.
type Cloudinary struct {
	baseURL     string
	cloudName   string
	imagePreset string
	videoPreset string
	http        *http.Client
}

// NewCloudinary creates a Storage from the media configuration.
func NewCloudinary(cfg config.MediaConfig, timeout time.Duration) *Cloudinary {
	return &Cloudinary{
		baseURL:     defaultStorageBase,
		cloudName:   cfg.CloudName,
		imagePreset: cfg.ImageUploadPreset,
		videoPreset: cfg.VideoUploadPreset,
		http:        &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// UploadImage uploads a base64 data URI as an unsigned image upload.
// Documents take this path too; the store treats them as images.
func (c *Cloudinary) UploadImage(ctx context.Context, dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		dataURI = "data:image/jpeg;base64," + dataURI
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"file":          dataURI,
		"upload_preset": c.imagePreset,
		"cloud_name":    c.cloudName,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", fmt.Errorf("media: build upload form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("media: close upload form: %w", err)
	}
	return c.post(ctx, "image", &buf, w.FormDataContentType())
}

// UploadVideo streams a local file as an unsigned video upload.
func (c *Cloudinary) UploadVideo(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("media: open video: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "video.mp4")
	if err != nil {
		return "", fmt.Errorf("media: build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("media: read video: %w", err)
	}
	fields := map[string]string{
		"upload_preset": c.videoPreset,
		"cloud_name":    c.cloudName,
		"resource_type": "video",
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", fmt.Errorf("media: build upload form: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("media: close upload form: %w", err)
	}
	return c.post(ctx, "video", &buf, w.FormDataContentType())
}

func (c *Cloudinary) post(ctx context.Context, resource string, body io.Reader, contentType string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/upload", c.baseURL, c.cloudName, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("media: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("media: %s upload: %w", resource, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("media: read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &api.RemoteError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s upload rejected", resource),
		}
	}
	var out uploadResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("media: decode upload response: %w", err)
	}
	if out.SecureURL != "" {
		return out.SecureURL, nil
	}
	if out.URL != "" {
		return out.URL, nil
	}
	return "", fmt.Errorf("media: upload response carried no URL")
}
