package photo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"media-admin-backend/pkg/logger"
)

// cleanupTimeout bounds object removal that runs after the request's own
// work is done.
const cleanupTimeout = 10 * time.Second

// Service stores photo rows together with their binaries.
type Service struct {
	repo    Repository
	objects ObjectStore
	images  ImageInspector
}

func NewService(repo Repository, objects ObjectStore, images ImageInspector) *Service {
	return &Service{repo: repo, objects: objects, images: images}
}

func (s *Service) Repository() Repository {
	return s.repo
}

// MaxUploadBytes is the size cap applied to uploaded files.
func (s *Service) MaxUploadBytes() int64 {
	return s.images.MaxBytes()
}

// CreateWithFile stores file under photos/<uuid>/ with a thumbnail next to it,
// then inserts the row with file_path pointing at the original. The objects
// are removed again when the insert fails.
func (s *Service) CreateWithFile(ctx context.Context, in Input, file []byte) (*Photo, error) {
	format, err := s.images.Inspect(file)
	if err != nil {
		return nil, err
	}
	thumb, err := s.images.Thumbnail(file)
	if err != nil {
		return nil, fmt.Errorf("failed to render thumbnail: %w", err)
	}

	prefix := ObjectPrefix + uuid.NewString() + "/"
	key, err := s.objects.Upload(ctx, prefix+"original."+extension(format), file, "image/"+format)
	if err != nil {
		return nil, err
	}
	if _, err := s.objects.Upload(ctx, prefix+"thumbnail.jpg", thumb, "image/jpeg"); err != nil {
		s.removeObjects(ctx, prefix)
		return nil, err
	}

	in.FilePath = key
	created, err := s.repo.Create(ctx, in)
	if err != nil {
		s.removeObjects(ctx, prefix)
		return nil, err
	}

	logger.Info("Photo uploaded", map[string]interface{}{
		"photo_id": created.ID.String(),
		"key":      key,
		"bytes":    len(file),
	})
	return created, nil
}

// Delete removes the row, then the stored binaries. Object removal is best
// effort: the row is already gone.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*Photo, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if prefix, ok := StoragePrefix(removed.FilePath); ok {
		s.removeObjects(ctx, prefix)
	}
	return removed, nil
}

func (s *Service) removeObjects(ctx context.Context, prefix string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.objects.DeleteByPrefix(ctx, prefix); err != nil {
		logger.ErrorWithFields("Failed to remove photo objects", err, map[string]interface{}{
			"prefix": prefix,
		})
	}
}

func extension(format string) string {
	if format == "jpeg" {
		return "jpg"
	}
	return format
}
