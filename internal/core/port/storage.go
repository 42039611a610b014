package port

import (
	"context"
	"io"
	"time"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// ObjectStorage is an interface to define object storage interactions
type ObjectStorage interface {
	PresignPutObject(ctx context.Context, key string, contentType string, expiry time.Duration) (string, *time.Time, error)
	PutObject(ctx context.Context, key string, contentType string, body io.Reader, size int64) error
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
	StatObject(ctx context.Context, key string) (*domain.StoredObject, error)
	ListObjects(ctx context.Context, prefix string) ([]domain.StoredObject, error)
	DeleteObject(ctx context.Context, key string) error
}
