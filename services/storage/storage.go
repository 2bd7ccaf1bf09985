package storage

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorage uploads registration documents to Cloudinary. Files are
// uploaded under their semantic tag and associated to the pending wizard
// session; no user id exists yet at upload time.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStorage creates a CloudinaryStorage from credentials.
func NewCloudinaryStorage(cloudName, apiKey, apiSecret string) (*CloudinaryStorage, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorage{cld: cld}, nil
}

// Upload sends a staged file to Cloudinary and returns its secure URL.
// Documents land under registration/<tag>/ keyed by the session so retries
// for the same session overwrite rather than multiply.
func (s *CloudinaryStorage) Upload(ctx context.Context, localPath, tag, sessionID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		Folder:   "registration/" + tag,
		PublicID: sessionID + "-" + tag,
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload %s document: %w", tag, err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for %s document", tag)
	}
	return result.SecureURL, nil
}

// Delete removes an uploaded document given its public ID.
func (s *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete file: %w", err)
	}
	return nil
}
