package cleanup

import (
	"context"
	"fmt"
	"time"
)

// CleanupOrphanedUploads deletes objects under uploads/ that are older than
// olderThan and were never claimed by a job. A client on the presigned path
// can die between its PUT and the job-creation call, that object is otherwise
// never referenced again.
func (c *cleanupService) CleanupOrphanedUploads(ctx context.Context, olderThan time.Time) error {
	objects, err := c.storage.ListObjects(ctx, "uploads/")
	if err != nil {
		return fmt.Errorf("could not list uploads: %w", err)
	}

	var stale []string
	for _, object := range objects {
		if object.LastModified.Before(olderThan) {
			stale = append(stale, object.Key)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	referenced, err := c.jobs.ReferencedSourceKeys(ctx, stale)
	if err != nil {
		return fmt.Errorf("could not resolve referenced keys: %w", err)
	}

	for _, key := range stale {
		if _, ok := referenced[key]; ok {
			continue
		}
		if err := c.storage.DeleteObject(ctx, key); err != nil {
			c.logger.Error("failed to delete orphaned upload", "key", key, "error", err)
			continue
		}
		c.logger.Info("orphaned upload deleted", "key", key)
	}

	return nil
}
