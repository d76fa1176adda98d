package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"content-manager/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service handles puzzle image uploads to object storage.
type Service struct {
	client    storage.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// NewService creates a new media service.
func NewService(client storage.Client, bucket, publicURL string, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger,
	}
}

// UploadPuzzleImage stores an uploaded image and returns the public URL to
// put in the puzzle's imageUrl field. Objects are keyed by a fresh UUID so
// re-uploading the same filename never overwrites an existing image.
func (s *Service) UploadPuzzleImage(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	objectName := "puzzles/" + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err = s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName)
	s.logger.Info("Uploaded puzzle image", zap.String("object", objectName))
	return url, nil
}
