package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"crime-report-server/config"
)

// Uploader stores a named byte stream and returns an opaque path that is
// recorded verbatim on a complaint.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename string, userID uint) (string, error)
}

// CloudinaryUploader stores complaint evidence images in Cloudinary
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryUploader creates an uploader from the application configuration
func NewCloudinaryUploader() (*CloudinaryUploader, error) {
	cfg := config.AppConfig.Upload
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryUploader{cld: cld, folder: cfg.Folder}, nil
}

// Upload stores one image and returns its secure URL
func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader, filename string, userID uint) (string, error) {
	overwrite := true
	unique := true

	result, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         fmt.Sprintf("%s/%d", u.folder, userID),
		PublicID:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return "", err
	}

	return result.SecureURL, nil
}
