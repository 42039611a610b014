package intake

import (
	"context"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// JobStatus returns the current status of a job
func (s *intakeService) JobStatus(ctx context.Context, id uuid.UUID) (domain.JobStatus, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return job.Status, nil
}
