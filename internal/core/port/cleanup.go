package port

import (
	"context"
	"time"
)

// CleanupService is a service that reaps storage objects no job ever claimed
type CleanupService interface {
	CleanupOrphanedUploads(ctx context.Context, olderThan time.Time) error
}
