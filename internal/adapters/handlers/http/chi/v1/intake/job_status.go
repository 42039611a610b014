package intake

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// V1JobStatusResponse is the response to a job status poll
type V1JobStatusResponse struct {
	Status domain.JobStatus `json:"status"`
}

func (h *HandlerV1) JobStatusV1(w http.ResponseWriter, r *http.Request) {

	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		h.writeError(w, http.StatusBadRequest, "Missing job id")
		return
	}

	jobID, err := uuid.Parse(rawID)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	status, statusErr := h.intakeService.JobStatus(r.Context(), jobID)
	switch {
	case errors.Is(statusErr, domain.ErrJobNotFound):
		h.writeError(w, http.StatusNotFound, "Job not found")
		return
	case statusErr != nil:
		h.logger.Error("error fetching job status", "error", statusErr)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch job status")
		return
	default:
		resp := V1JobStatusResponse{Status: status}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
