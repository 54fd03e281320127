package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"examforge/internal/model"
)

// MediaClient wraps the external media host: one multipart file upload
// plus a fixed preset identifier per request.
type MediaClient struct {
	uploadURL  string
	preset     string
	httpClient *http.Client
}

// NewMediaClient creates a new media host client
func NewMediaClient(uploadURL, preset string) *MediaClient {
	return &MediaClient{
		uploadURL: uploadURL,
		preset:    preset,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// mediaUploadResponse is the media host's reply
type mediaUploadResponse struct {
	SecureURL    string  `json:"secure_url"`
	Duration     float64 `json:"duration,omitempty"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload sends one file to the media host and returns the canonical
// asset. Failures come back as *UploadError so callers can leave the
// draft's asset field untouched.
func (c *MediaClient) Upload(ctx context.Context, kind model.AssetKind, filename, contentType string, file io.Reader) (*model.UploadedAsset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("upload_preset", c.preset); err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := createFilePart(mw, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload payload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish upload form: %w", err)
	}

	log.Printf("[Media] Uploading %s (%s, preset=%s)", filename, contentType, c.preset)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UploadError{Message: err.Error()}
	}

	var result mediaUploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &UploadError{Message: fmt.Sprintf("unreadable media host response (%d)", resp.StatusCode)}
	}
	if result.Error != nil {
		return nil, &UploadError{Message: result.Error.Message}
	}
	if resp.StatusCode >= 400 || result.SecureURL == "" {
		return nil, &UploadError{Message: fmt.Sprintf("media host error %d", resp.StatusCode)}
	}

	log.Printf("[Media] Upload complete: %s", result.SecureURL)
	return &model.UploadedAsset{
		URL:             result.SecureURL,
		Kind:            kind,
		DurationSeconds: result.Duration,
		ThumbnailURL:    result.ThumbnailURL,
	}, nil
}

// createFilePart keeps the payload's real content type on the file part
func createFilePart(mw *multipart.Writer, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	h.Set("Content-Type", contentType)
	return mw.CreatePart(h)
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
