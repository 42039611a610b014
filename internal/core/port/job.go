package port

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// JobRepository is an interface to define job repository interactions
type JobRepository interface {
	Create(ctx context.Context, job domain.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
	MarkCompleted(ctx context.Context, id uuid.UUID, outputKey string) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	ReferencedSourceKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
}

// IntakeService is an interface to define the video intake service
type IntakeService interface {
	PresignUpload(ctx context.Context, fileName string, fileType string) (*domain.UploadGrant, error)
	CreateJobFromUpload(ctx context.Context, fileName string, contentType string, sizeBytes int64, body io.Reader, videoURL string) (uuid.UUID, error)
	CreateJobFromKey(ctx context.Context, storageKey string) (uuid.UUID, error)
	CreateJobFromURL(ctx context.Context, videoURL string) (uuid.UUID, error)
	JobStatus(ctx context.Context, id uuid.UUID) (domain.JobStatus, error)
}
