package intake

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/client/notify"
	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

type statusResponse struct {
	Status domain.JobStatus `json:"status"`
}

// JobStatus fetches the current status of a job.
func (c *Client) JobStatus(ctx context.Context, jobID uuid.UUID) (domain.JobStatus, error) {
	endpoint := fmt.Sprintf("%s/job-status?id=%s", c.serverURL, url.QueryEscape(jobID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching job status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", domain.ErrJobNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching job status: %s", readErrorBody(resp))
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("decoding status response: %w", err)
	}
	return status.Status, nil
}

// WatchJob polls a job at the configured interval until it reaches a
// terminal status, the context is cancelled, or too many consecutive
// polls fail. Starting a new watch cancels any watch already running.
func (c *Client) WatchJob(ctx context.Context, jobID uuid.UUID) (domain.JobStatus, error) {
	watchCtx, handle := c.supersedeWatch(ctx)
	defer c.releaseWatch(handle)

	ticker := time.NewTicker(c.opts.PollInterval)
	defer ticker.Stop()

	failures := 0
	for {
		select {
		case <-watchCtx.Done():
			return "", watchCtx.Err()
		case <-ticker.C:
		}

		status, err := c.JobStatus(watchCtx, jobID)
		if err != nil {
			if watchCtx.Err() != nil {
				return "", watchCtx.Err()
			}

			failures++
			c.logger.Warn("job status poll failed", "job_id", jobID, "attempt", failures, "error", err)
			if failures >= c.opts.MaxPollFailures {
				c.notifier.Notify("Failed to check processing status.", notify.SeverityDestructive)
				return "", fmt.Errorf("polling job %s: %w", jobID, err)
			}
			continue
		}
		failures = 0

		if c.opts.OnStatus != nil {
			c.opts.OnStatus(status)
		}

		if !status.Terminal() {
			continue
		}

		switch status {
		case domain.JobStatusCompleted:
			c.notifier.Notify("Processing complete. Your video is ready.", notify.SeveritySuccess)
		case domain.JobStatusFailed:
			c.notifier.Notify("Processing failed. Please try again.", notify.SeverityDestructive)
		}
		return status, nil
	}
}

// supersedeWatch cancels the previous watch, if any, and installs a fresh
// cancelable context for the new one.
func (c *Client) supersedeWatch(ctx context.Context) (context.Context, *watchHandle) {
	watchCtx, cancel := context.WithCancel(ctx)
	handle := &watchHandle{cancel: cancel}

	c.mu.Lock()
	if c.watch != nil {
		c.watch.cancel()
	}
	c.watch = handle
	c.mu.Unlock()

	return watchCtx, handle
}

// releaseWatch tears down a finished watch. It leaves the client state
// alone when the watch has already been superseded by a newer one.
func (c *Client) releaseWatch(handle *watchHandle) {
	c.mu.Lock()
	handle.cancel()
	if c.watch == handle {
		c.watch = nil
	}
	c.mu.Unlock()
}

// StopWatching cancels a running watch without starting a new one.
func (c *Client) StopWatching() {
	c.mu.Lock()
	if c.watch != nil {
		c.watch.cancel()
		c.watch = nil
	}
	c.mu.Unlock()
}
