package intake

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/victoramevor/ai-video-transcoder/internal/core/port"
)

// HandlerV1 is the handler for v1 intake routes
type HandlerV1 struct {
	intakeService port.IntakeService
	logger        *slog.Logger
}

// NewIntakeHandlerV1 creates HandlerV1
func NewIntakeHandlerV1(service port.IntakeService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		intakeService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/presign-upload", h.PresignUploadV1)
	router.Post("/process-video", h.ProcessVideoV1)
	router.Get("/job-status", h.JobStatusV1)

	return router
}
