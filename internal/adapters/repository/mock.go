package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

type MockJobRepository struct {
	mock.Mock
}

func NewMockJobRepository() *MockJobRepository {
	return &MockJobRepository{}
}

func (m *MockJobRepository) Create(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockJobRepository) MarkCompleted(ctx context.Context, id uuid.UUID, outputKey string) error {
	args := m.Called(ctx, id, outputKey)
	return args.Error(0)
}

func (m *MockJobRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockJobRepository) ReferencedSourceKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	args := m.Called(ctx, keys)
	refs, _ := args.Get(0).(map[string]struct{})
	return refs, args.Error(1)
}
