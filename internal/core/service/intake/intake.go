package intake

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/victoramevor/ai-video-transcoder/internal/config"
	"github.com/victoramevor/ai-video-transcoder/internal/core/port"
)

type intakeService struct {
	jobs    port.JobRepository
	storage port.ObjectStorage
	events  port.EventPublisher
	cfg     config.IntakeConfig
	logger  *slog.Logger
}

// NewIntakeService creates a new intake service
func NewIntakeService(jobs port.JobRepository, storage port.ObjectStorage, events port.EventPublisher, cfg config.IntakeConfig, logger *slog.Logger) port.IntakeService {
	return &intakeService{
		jobs:    jobs,
		storage: storage,
		events:  events,
		cfg:     cfg,
		logger:  logger,
	}
}

// buildStorageKey derives the object key every upload lands under. The epoch
// millisecond prefix keeps identically named files from clobbering each other.
func buildStorageKey(fileName string) string {
	name := path.Base(strings.TrimSpace(fileName))
	name = strings.ReplaceAll(name, "\\", "-")
	return fmt.Sprintf("uploads/%d-%s", time.Now().UnixMilli(), name)
}
