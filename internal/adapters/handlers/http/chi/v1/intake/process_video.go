package intake

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// V1ProcessVideoJSONRequest is the JSON body referencing an already uploaded object
type V1ProcessVideoJSONRequest struct {
	S3Key string `json:"s3Key"`
}

// V1ProcessVideoResponse is the response to a job submission
type V1ProcessVideoResponse struct {
	JobID uuid.UUID `json:"jobId"`
}

func (h *HandlerV1) ProcessVideoV1(w http.ResponseWriter, r *http.Request) {

	contentType := r.Header.Get("Content-Type")

	var jobID uuid.UUID
	var submitErr error

	if strings.HasPrefix(contentType, "application/json") {
		var req V1ProcessVideoJSONRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error("error decoding process video request", "error", err)
			h.writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		jobID, submitErr = h.intakeService.CreateJobFromKey(r.Context(), req.S3Key)
	} else {
		jobID, submitErr = h.submitFromMultipart(r)
	}

	switch {
	case errors.Is(submitErr, domain.ErrNoInput):
		h.writeError(w, http.StatusBadRequest, "No video file or URL provided")
		return
	case errors.Is(submitErr, domain.ErrFileSizeTooBig):
		h.writeError(w, http.StatusBadRequest, "File size exceeds 500MB limit")
		return
	case errors.Is(submitErr, domain.ErrObjectNotFound):
		h.writeError(w, http.StatusNotFound, "Uploaded object not found")
		return
	case submitErr != nil:
		h.logger.Error("error submitting job", "error", submitErr)
		h.writeError(w, http.StatusInternalServerError, "Failed to process video")
		return
	default:
		resp := V1ProcessVideoResponse{JobID: jobID}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}

// submitFromMultipart reads the video part or the videoUrl form field.
// The uploaded file wins when both are present.
func (h *HandlerV1) submitFromMultipart(r *http.Request) (uuid.UUID, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return uuid.Nil, domain.ErrNoInput
	}

	videoURL := r.FormValue("videoUrl")

	file, header, err := r.FormFile("video")
	if err != nil {
		if videoURL == "" {
			return uuid.Nil, domain.ErrNoInput
		}
		return h.intakeService.CreateJobFromURL(r.Context(), videoURL)
	}
	defer file.Close()

	return h.intakeService.CreateJobFromUpload(
		r.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
		videoURL,
	)
}
