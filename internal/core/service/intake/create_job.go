package intake

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// CreateJobFromUpload relays a file body through the server into storage and
// queues a processing job for it. videoURL, when also present, is kept on the
// job as auxiliary metadata but the uploaded file is what gets processed.
func (s *intakeService) CreateJobFromUpload(ctx context.Context, fileName string, contentType string, sizeBytes int64, body io.Reader, videoURL string) (uuid.UUID, error) {
	if body == nil {
		return uuid.Nil, domain.ErrNoInput
	}
	if sizeBytes > s.cfg.MaxFileSizeBytes {
		return uuid.Nil, domain.ErrFileSizeTooBig
	}

	key := buildStorageKey(fileName)

	if err := s.storage.PutObject(ctx, key, contentType, body, sizeBytes); err != nil {
		return uuid.Nil, fmt.Errorf("could not store uploaded file: %w", err)
	}

	job := domain.Job{
		ID:          uuid.New(),
		Filename:    fileName,
		ContentType: contentType,
		SizeBytes:   sizeBytes,
		SourceKey:   key,
		SourceURL:   videoURL,
		Status:      domain.JobStatusQueued,
	}

	return s.enqueue(ctx, job)
}

// CreateJobFromKey queues a processing job for an object the client already
// wrote to storage through a presigned grant.
func (s *intakeService) CreateJobFromKey(ctx context.Context, storageKey string) (uuid.UUID, error) {
	if storageKey == "" {
		return uuid.Nil, domain.ErrNoInput
	}

	info, err := s.storage.StatObject(ctx, storageKey)
	if err != nil {
		return uuid.Nil, fmt.Errorf("could not stat uploaded object: %w", err)
	}
	if info.Size > s.cfg.MaxFileSizeBytes {
		return uuid.Nil, domain.ErrFileSizeTooBig
	}

	job := domain.Job{
		ID:          uuid.New(),
		Filename:    path.Base(storageKey),
		ContentType: info.ContentType,
		SizeBytes:   info.Size,
		SourceKey:   storageKey,
		Status:      domain.JobStatusQueued,
	}

	return s.enqueue(ctx, job)
}

// CreateJobFromURL queues a processing job for a remotely hosted video.
func (s *intakeService) CreateJobFromURL(ctx context.Context, videoURL string) (uuid.UUID, error) {
	if videoURL == "" {
		return uuid.Nil, domain.ErrNoInput
	}

	job := domain.Job{
		ID:        uuid.New(),
		SourceURL: videoURL,
		Status:    domain.JobStatusQueued,
	}

	return s.enqueue(ctx, job)
}

func (s *intakeService) enqueue(ctx context.Context, job domain.Job) (uuid.UUID, error) {
	if err := s.jobs.Create(ctx, job); err != nil {
		return uuid.Nil, fmt.Errorf("could not create job: %w", err)
	}

	event := domain.JobEvent{
		JobID:     job.ID,
		SourceKey: job.SourceKey,
		SourceURL: job.SourceURL,
	}
	if err := s.events.PublishJobSubmitted(ctx, event); err != nil {
		// the record exists but no worker will ever see it, fail it right away
		if failErr := s.jobs.MarkFailed(ctx, job.ID, "could not enqueue job"); failErr != nil {
			s.logger.Error("failed to mark unpublishable job as failed", "job_id", job.ID, "error", failErr)
		}
		return uuid.Nil, fmt.Errorf("could not publish job event: %w", err)
	}

	s.logger.Info("job queued", "job_id", job.ID, "source_key", job.SourceKey, "source_url", job.SourceURL)

	return job.ID, nil
}
