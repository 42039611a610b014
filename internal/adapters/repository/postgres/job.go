package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
	"github.com/victoramevor/ai-video-transcoder/internal/core/port"
)

// SQLQuerier abstracts *sql.DB and *sql.Tx
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlJobRepository struct {
	db SQLQuerier
}

// NewSqlJobRepository creates sqlJobRepository that implements port.JobRepository
func NewSqlJobRepository(db SQLQuerier) port.JobRepository {
	return &sqlJobRepository{
		db: db,
	}
}

// Create creates a new job entry
func (s *sqlJobRepository) Create(ctx context.Context, job domain.Job) error {
	query := `INSERT INTO jobs (id, filename, content_type, size_bytes, source_key, source_url, status)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query, job.ID, job.Filename, job.ContentType, job.SizeBytes, job.SourceKey, job.SourceURL, job.Status)
	if err != nil {
		return fmt.Errorf("error inserting job: %w", err)
	}
	return nil
}

// FindByID finds a job by id
func (s *sqlJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	query := `SELECT id, filename, content_type, size_bytes, source_key, source_url,
                     output_key, status, error, created_at, updated_at
              FROM jobs
              WHERE id = $1`

	var dbJob dbJob
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dbJob.ID,
		&dbJob.Filename,
		&dbJob.ContentType,
		&dbJob.SizeBytes,
		&dbJob.SourceKey,
		&dbJob.SourceURL,
		&dbJob.OutputKey,
		&dbJob.Status,
		&dbJob.Error,
		&dbJob.CreatedAt,
		&dbJob.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}

	return dbJob.ToDomain(), nil
}

// UpdateStatus moves a job to status. Terminal rows are never touched, which
// keeps the status progression monotonic even under event redelivery.
func (s *sqlJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	query := `UPDATE jobs
              SET status = $1, updated_at = now()
              WHERE id = $2 AND status NOT IN ('completed', 'failed')`

	return s.guardedUpdate(ctx, id, query, status, id)
}

// MarkCompleted moves a job to completed and records where the outputs live
func (s *sqlJobRepository) MarkCompleted(ctx context.Context, id uuid.UUID, outputKey string) error {
	query := `UPDATE jobs
              SET status = 'completed', output_key = $1, updated_at = now()
              WHERE id = $2 AND status NOT IN ('completed', 'failed')`

	return s.guardedUpdate(ctx, id, query, outputKey, id)
}

// MarkFailed moves a job to failed with a reason
func (s *sqlJobRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	query := `UPDATE jobs
              SET status = 'failed', error = $1, updated_at = now()
              WHERE id = $2 AND status NOT IN ('completed', 'failed')`

	return s.guardedUpdate(ctx, id, query, reason, id)
}

func (s *sqlJobRepository) guardedUpdate(ctx context.Context, id uuid.UUID, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// nothing updated: either the job does not exist or it is terminal
	var status domain.JobStatus
	err = s.db.QueryRowContext(ctx, `SELECT status FROM jobs WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrJobNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrJobTerminal
}

// ReferencedSourceKeys returns which of keys are claimed by a job
func (s *sqlJobRepository) ReferencedSourceKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	if len(keys) == 0 {
		return map[string]struct{}{}, nil
	}

	query := `SELECT source_key FROM jobs WHERE source_key = ANY($1)`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("error querying referenced source keys: %w", err)
	}
	defer rows.Close()

	referenced := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("error scanning source key: %w", err)
		}
		referenced[key] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source keys: %w", err)
	}

	return referenced, nil
}

// dbJob represents a job row
type dbJob struct {
	ID          uuid.UUID `db:"id"`
	Filename    string    `db:"filename"`
	ContentType string    `db:"content_type"`
	SizeBytes   int64     `db:"size_bytes"`
	SourceKey   string    `db:"source_key"`
	SourceURL   string    `db:"source_url"`
	OutputKey   string    `db:"output_key"`
	Status      string    `db:"status"`
	Error       string    `db:"error"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ToDomain converts to domain.Job
func (j *dbJob) ToDomain() *domain.Job {
	return &domain.Job{
		ID:          j.ID,
		Filename:    j.Filename,
		ContentType: j.ContentType,
		SizeBytes:   j.SizeBytes,
		SourceKey:   j.SourceKey,
		SourceURL:   j.SourceURL,
		OutputKey:   j.OutputKey,
		Status:      domain.JobStatus(j.Status),
		Error:       j.Error,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}
