package cleanup

import (
	"log/slog"

	"github.com/victoramevor/ai-video-transcoder/internal/core/port"
)

type cleanupService struct {
	jobs    port.JobRepository
	storage port.ObjectStorage
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(jobs port.JobRepository, storage port.ObjectStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		jobs:    jobs,
		storage: storage,
		logger:  logger,
	}
}
