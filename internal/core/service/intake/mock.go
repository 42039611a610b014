package intake

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

type MockIntakeService struct {
	mock.Mock
}

func NewMockIntakeService() *MockIntakeService {
	return &MockIntakeService{}
}

func (m *MockIntakeService) PresignUpload(ctx context.Context, fileName string, fileType string) (*domain.UploadGrant, error) {
	args := m.Called(ctx, fileName, fileType)
	grant, _ := args.Get(0).(*domain.UploadGrant)
	return grant, args.Error(1)
}

func (m *MockIntakeService) CreateJobFromUpload(ctx context.Context, fileName string, contentType string, sizeBytes int64, body io.Reader, videoURL string) (uuid.UUID, error) {
	args := m.Called(ctx, fileName, contentType, sizeBytes, body, videoURL)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockIntakeService) CreateJobFromKey(ctx context.Context, storageKey string) (uuid.UUID, error) {
	args := m.Called(ctx, storageKey)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockIntakeService) CreateJobFromURL(ctx context.Context, videoURL string) (uuid.UUID, error) {
	args := m.Called(ctx, videoURL)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockIntakeService) JobStatus(ctx context.Context, id uuid.UUID) (domain.JobStatus, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.JobStatus), args.Error(1)
}
