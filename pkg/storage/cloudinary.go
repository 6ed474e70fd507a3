package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// FileStorage stores session material and returns a public URL for it.
type FileStorage interface {
	// Upload stores the content of r under folder and returns its secure URL.
	Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// Delete removes a previously uploaded file by its URL.
	Delete(ctx context.Context, fileURL string) error
}

type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage builds the Cloudinary-backed FileStorage. cloudinaryURL
// follows the cloudinary://<key>:<secret>@<cloud> format; when empty the SDK
// falls back to CLOUDINARY_URL in the environment.
func NewCloudinaryStorage(cloudinaryURL string) (FileStorage, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	return &cloudinaryStorage{cld: cld}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	publicID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), base)

	params := uploader.UploadParams{
		Folder:         folder,
		PublicID:       publicID,
		UniqueFilename: api.Bool(true),
		Overwrite:      api.Bool(false),
		ResourceType:   resourceType(ext),
	}
	if params.ResourceType == "image" {
		params.Transformation = "q_auto"
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but secure URL is empty")
	}

	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, fileURL string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	publicID, resource := ParsePublicID(fileURL)
	if publicID == "" {
		return fmt.Errorf("could not extract public ID from URL: %s", fileURL)
	}

	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resource,
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}

	return nil
}

func resourceType(ext string) string {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg":
		return "image"
	case ".mp4", ".mov", ".webm", ".mp3", ".wav":
		return "video"
	default:
		return "raw"
	}
}

// ParsePublicID extracts the public ID and resource type from a Cloudinary
// delivery URL such as
// https://res.cloudinary.com/demo/raw/upload/v1712/docs/123-slides.pdf.
// Raw resources keep their extension in the public ID; images and videos
// do not.
func ParsePublicID(fileURL string) (string, string) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", ""
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	uploadIndex := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex < 1 || uploadIndex+1 >= len(parts) {
		return "", ""
	}
	resource := parts[uploadIndex-1]

	rest := parts[uploadIndex+1:]
	if len(rest) > 1 && isVersion(rest[0]) {
		rest = rest[1:]
	}

	publicID := strings.Join(rest, "/")
	if resource != "raw" {
		publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))
	}
	return publicID, resource
}

func isVersion(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
