package domain

import "github.com/google/uuid"

// JobEvent is the message published when a job is submitted for processing
type JobEvent struct {
	JobID     uuid.UUID `json:"job_id"`
	SourceKey string    `json:"source_key"`
	SourceURL string    `json:"source_url"`
}
