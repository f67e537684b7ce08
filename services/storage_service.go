package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"tourlink-server/config"
)

// StorageService uploads user files to object storage and derives their
// public URLs
type StorageService struct {
	cld      *cloudinary.Cloudinary
	bucket   string
	endpoint string
}

func NewStorageService() (*StorageService, error) {
	storageCfg := config.AppConfig.Storage
	if storageCfg.CloudName == "" || storageCfg.APIKey == "" || storageCfg.APISecret == "" {
		return nil, fmt.Errorf("storage is not configured")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s",
		storageCfg.APIKey, storageCfg.APISecret, storageCfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	return &StorageService{
		cld:      cld,
		bucket:   storageCfg.Bucket,
		endpoint: storageCfg.Endpoint,
	}, nil
}

// BuildObjectKey builds the storage key for an upload:
// uploads/{userID}/{fileType}/{year}/{month}/{uuid}.{ext}
func BuildObjectKey(userID uint, fileType, ext string) string {
	now := time.Now().UTC()
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("uploads/%d/%s/%d/%02d/%s.%s",
		userID, fileType, now.Year(), int(now.Month()), uuid.NewString(), ext)
}

// PublicURL derives the public URL for a stored object key
func (s *StorageService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
}

// Upload stores a file under the given key and returns its public URL
func (s *StorageService) Upload(ctx context.Context, file multipart.File, key string) (string, error) {
	overwrite := false
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:  key,
		Overwrite: &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if result.SecureURL != "" {
		return result.SecureURL, nil
	}
	return s.PublicURL(key), nil
}
