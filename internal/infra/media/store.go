package media

import (
	"context"

	"news-portal/internal/domain/entity"
)

// Store uploads and deletes media assets.
//
// Failures are reported as *entity.UploadError. Delete succeeds when the
// asset is already gone.
type Store interface {
	Upload(ctx context.Context, file entity.MediaFile, folder string) (entity.MediaAsset, error)
	Delete(ctx context.Context, publicID string) error
}
