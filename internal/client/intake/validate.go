package intake

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// ValidateFile checks a local file against the size and duration limits.
// A rejected file raises a destructive notification and returns the matching
// domain error. An accepted file raises a "Video selected" notification.
//
// The duration probe is bounded by ProbeTimeout. A file whose metadata
// cannot be read in time is rejected, an unprobeable container could
// otherwise slip past the duration ceiling.
func (c *Client) ValidateFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if info.Size() > c.opts.MaxFileSizeBytes {
		c.notifier.Notify(fmt.Sprintf("File too large. Maximum size is %s.", formatSize(c.opts.MaxFileSizeBytes)), notify.SeverityDestructive)
		return domain.ErrFileSizeTooBig
	}

	duration, probeErr := c.probeDuration(ctx, path)
	if probeErr != nil {
		c.logger.Warn("duration probe failed", "path", path, "error", probeErr)
		c.notifier.Notify("Could not read video metadata. Please choose a different file.", notify.SeverityDestructive)
		return fmt.Errorf("%w: %w", domain.ErrUnreadableMedia, probeErr)
	}

	if duration > c.opts.MaxDuration {
		c.notifier.Notify(fmt.Sprintf("Video too long. Maximum duration is %s.", formatDuration(c.opts.MaxDuration)), notify.SeverityDestructive)
		return domain.ErrVideoTooLong
	}

	c.notifier.Notify("Video selected", notify.SeverityDefault)
	return nil
}

func (c *Client) probeDuration(ctx context.Context, path string) (time.Duration, error) {
	probeCtx, cancel := context.WithTimeout(ctx, c.opts.ProbeTimeout)
	defer cancel()
	return c.prober.Duration(probeCtx, path)
}

// formatSize renders a byte ceiling the way users see it, in whole MB
// when it divides evenly and in bytes otherwise.
func formatSize(bytes int64) string {
	const mb = 1 << 20
	if bytes >= mb && bytes%mb == 0 {
		return fmt.Sprintf("%dMB", bytes/mb)
	}
	return fmt.Sprintf("%d bytes", bytes)
}

// formatDuration renders a duration ceiling in whole minutes when it
// divides evenly and falls back to the standard form otherwise.
func formatDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		minutes := int(d / time.Minute)
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	return d.String()
}
