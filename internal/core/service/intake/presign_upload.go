package intake

import (
	"context"
	"fmt"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// PresignUpload issues a time-limited write grant for a single storage object.
// The grant is bound to the exact object key and the declared content type, so
// the storage layer rejects a PUT that lies about either.
func (s *intakeService) PresignUpload(ctx context.Context, fileName string, fileType string) (*domain.UploadGrant, error) {
	if fileName == "" || fileType == "" {
		return nil, domain.ErrMissingPresignFields
	}

	key := buildStorageKey(fileName)

	url, expiresAt, err := s.storage.PresignPutObject(ctx, key, fileType, s.cfg.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("could not generate presigned upload url: %w", err)
	}

	grant := &domain.UploadGrant{
		URL: url,
		Key: key,
	}
	if expiresAt != nil {
		grant.ExpiresAt = *expiresAt
	}

	return grant, nil
}
