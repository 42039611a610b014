package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the status of a processing job
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further status transitions are allowed
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job represents a video processing job
type Job struct {
	ID          uuid.UUID
	Filename    string
	ContentType string
	SizeBytes   int64
	SourceKey   string
	SourceURL   string
	OutputKey   string
	Status      JobStatus
	Error       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
