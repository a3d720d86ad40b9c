// Package media uploads images to the media host and returns durable URLs.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Uploader turns a fetchable source image into a durable hosted URL.
type Uploader interface {
	Upload(ctx context.Context, sourceURL string) (string, error)
}

// UploadError marks failures of the media host itself (transport, quota),
// as opposed to bad input.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("media upload failed: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }

// CloudinaryUploader uploads images into a Cloudinary folder by remote URL.
// Cloudinary fetches the source itself, so we never stream image bytes
// through this process.
type CloudinaryUploader struct {
	cloudName    string
	uploadPreset string
	folder       string
	client       *http.Client
}

// NewCloudinaryUploader creates an uploader for an unsigned upload preset.
func NewCloudinaryUploader(cloudName, uploadPreset, folder string) *CloudinaryUploader {
	return &CloudinaryUploader{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		folder:       folder,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload submits the source URL to the upload endpoint and returns the
// hosted secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, sourceURL string) (string, error) {
	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.cloudName)

	form := url.Values{}
	form.Set("file", sourceURL)
	form.Set("upload_preset", u.uploadPreset)
	if u.folder != "" {
		form.Set("folder", u.folder)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &UploadError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &UploadError{Err: err}
	}

	var parsed cloudinaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &UploadError{Err: fmt.Errorf("decode response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK || parsed.SecureURL == "" {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return "", &UploadError{Err: fmt.Errorf("%s", msg)}
	}

	return parsed.SecureURL, nil
}
