package pipeline

import (
	"log/slog"

	"github.com/victoramevor/ai-video-transcoder/internal/core/port"
)

type pipelineService struct {
	jobs      port.JobRepository
	storage   port.ObjectStorage
	processor port.VideoProcessor
	logger    *slog.Logger
}

// NewPipelineService creates the service that drives jobs through processing
func NewPipelineService(jobs port.JobRepository, storage port.ObjectStorage, processor port.VideoProcessor, logger *slog.Logger) port.MessageService {
	return &pipelineService{
		jobs:      jobs,
		storage:   storage,
		processor: processor,
		logger:    logger,
	}
}
