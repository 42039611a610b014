package intake

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// V1PresignUploadRequest is the request to presign a direct upload
type V1PresignUploadRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// V1PresignUploadResponse is the response to presign a direct upload
type V1PresignUploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// V1ErrorResponse is the JSON error body returned by intake routes
type V1ErrorResponse struct {
	Error string `json:"error"`
}

func (h *HandlerV1) PresignUploadV1(w http.ResponseWriter, r *http.Request) {

	var req V1PresignUploadRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.logger.Error("error decoding presign upload request", "error", err)
		h.writeError(w, http.StatusBadRequest, "Missing fileName or fileType")
		return
	}

	grant, presignErr := h.intakeService.PresignUpload(r.Context(), req.FileName, req.FileType)
	switch {
	case errors.Is(presignErr, domain.ErrMissingPresignFields):
		h.writeError(w, http.StatusBadRequest, "Missing fileName or fileType")
		return
	case presignErr != nil:
		h.logger.Error("error presigning upload", "error", presignErr)
		h.writeError(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	default:
		resp := V1PresignUploadResponse{
			URL: grant.URL,
			Key: grant.Key,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

func (h *HandlerV1) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(V1ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("error encoding error response", "error", err)
	}
}
