package intake_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/victoramevor/ai-video-transcoder/internal/adapters/eventbroker"
	"github.com/victoramevor/ai-video-transcoder/internal/adapters/repository"
	"github.com/victoramevor/ai-video-transcoder/internal/adapters/storage"
	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

func TestIntakeService_CreateJobFromUpload_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	body := strings.NewReader("fake video bytes")
	sizeBytes := int64(10 * 1024 * 1024)

	mockStorage.
		On("PutObject", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "uploads/") && strings.HasSuffix(key, "-clip.mp4")
		}), "video/mp4", body, sizeBytes).
		Return(nil)

	mockJobs.
		On("Create", ctx, mock.MatchedBy(func(job domain.Job) bool {
			return job.Status == domain.JobStatusQueued &&
				job.Filename == "clip.mp4" &&
				job.SizeBytes == sizeBytes &&
				strings.HasPrefix(job.SourceKey, "uploads/")
		})).
		Return(nil)

	mockEvents.
		On("PublishJobSubmitted", ctx, mock.MatchedBy(func(event domain.JobEvent) bool {
			return event.JobID != uuid.Nil && strings.HasPrefix(event.SourceKey, "uploads/")
		})).
		Return(nil)

	// Act
	jobID, err := service.CreateJobFromUpload(ctx, "clip.mp4", "video/mp4", sizeBytes, body, "")

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, jobID)
	mockJobs.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestIntakeService_CreateJobFromUpload_FileTooBig(t *testing.T) {
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	sizeBytes := int64(600 * 1024 * 1024) // over the 500 MiB ceiling

	jobID, err := service.CreateJobFromUpload(ctx, "big.mp4", "video/mp4", sizeBytes, strings.NewReader("x"), "")

	assert.ErrorIs(t, err, domain.ErrFileSizeTooBig)
	assert.Equal(t, uuid.Nil, jobID)
	mockStorage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIntakeService_CreateJobFromUpload_KeepsAuxiliaryURL(t *testing.T) {
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	body := strings.NewReader("bytes")

	mockStorage.
		On("PutObject", ctx, mock.Anything, "video/mp4", body, int64(5)).
		Return(nil)
	mockJobs.
		On("Create", ctx, mock.MatchedBy(func(job domain.Job) bool {
			// the file drives processing, the URL rides along as metadata
			return job.SourceKey != "" && job.SourceURL == "https://example.com/alt.mp4"
		})).
		Return(nil)
	mockEvents.
		On("PublishJobSubmitted", ctx, mock.Anything).
		Return(nil)

	_, err := service.CreateJobFromUpload(ctx, "clip.mp4", "video/mp4", 5, body, "https://example.com/alt.mp4")

	require.NoError(t, err)
	mockJobs.AssertExpectations(t)
}

func TestIntakeService_CreateJobFromUpload_StorageError(t *testing.T) {
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	storageErr := errors.New("bucket unavailable")
	body := strings.NewReader("bytes")

	mockStorage.
		On("PutObject", ctx, mock.Anything, "video/mp4", body, int64(5)).
		Return(storageErr)

	jobID, err := service.CreateJobFromUpload(ctx, "clip.mp4", "video/mp4", 5, body, "")

	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, uuid.Nil, jobID)
	mockJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockEvents.AssertNotCalled(t, "PublishJobSubmitted", mock.Anything, mock.Anything)
}

func TestIntakeService_CreateJobFromUpload_PublishFailureMarksJobFailed(t *testing.T) {
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	body := strings.NewReader("bytes")
	publishErr := errors.New("nats unreachable")

	mockStorage.
		On("PutObject", ctx, mock.Anything, "video/mp4", body, int64(5)).
		Return(nil)
	mockJobs.
		On("Create", ctx, mock.Anything).
		Return(nil)
	mockEvents.
		On("PublishJobSubmitted", ctx, mock.Anything).
		Return(publishErr)
	mockJobs.
		On("MarkFailed", ctx, mock.Anything, "could not enqueue job").
		Return(nil)

	jobID, err := service.CreateJobFromUpload(ctx, "clip.mp4", "video/mp4", 5, body, "")

	assert.ErrorIs(t, err, publishErr)
	assert.Equal(t, uuid.Nil, jobID)
	mockJobs.AssertExpectations(t)
}

func TestIntakeService_CreateJobFromKey_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	key := "uploads/1700000000000-clip.mp4"
	info := &domain.StoredObject{
		Key:         key,
		Size:        42 * 1024 * 1024,
		ContentType: "video/mp4",
	}

	mockStorage.On("StatObject", ctx, key).Return(info, nil)
	mockJobs.
		On("Create", ctx, mock.MatchedBy(func(job domain.Job) bool {
			return job.SourceKey == key &&
				job.Filename == "1700000000000-clip.mp4" &&
				job.SizeBytes == info.Size &&
				job.Status == domain.JobStatusQueued
		})).
		Return(nil)
	mockEvents.
		On("PublishJobSubmitted", ctx, mock.MatchedBy(func(event domain.JobEvent) bool {
			return event.SourceKey == key
		})).
		Return(nil)

	// Act
	jobID, err := service.CreateJobFromKey(ctx, key)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, jobID)
	mockJobs.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestIntakeService_CreateJobFromKey_ObjectMissing(t *testing.T) {
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	key := "uploads/1700000000000-ghost.mp4"
	mockStorage.On("StatObject", ctx, key).Return(nil, domain.ErrObjectNotFound)

	jobID, err := service.CreateJobFromKey(ctx, key)

	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	assert.Equal(t, uuid.Nil, jobID)
	mockJobs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestIntakeService_CreateJobFromKey_EmptyKey(t *testing.T) {
	ctx := context.Background()
	service := newService(repository.NewMockJobRepository(), storage.NewMockStorage(), eventbroker.NewMockPublisher())

	jobID, err := service.CreateJobFromKey(ctx, "")

	assert.ErrorIs(t, err, domain.ErrNoInput)
	assert.Equal(t, uuid.Nil, jobID)
}

func TestIntakeService_CreateJobFromURL_Success(t *testing.T) {
	ctx := context.Background()
	mockJobs := repository.NewMockJobRepository()
	mockStorage := storage.NewMockStorage()
	mockEvents := eventbroker.NewMockPublisher()
	service := newService(mockJobs, mockStorage, mockEvents)

	videoURL := "https://example.com/video.mp4"

	mockJobs.
		On("Create", ctx, mock.MatchedBy(func(job domain.Job) bool {
			return job.SourceURL == videoURL && job.SourceKey == ""
		})).
		Return(nil)
	mockEvents.
		On("PublishJobSubmitted", ctx, mock.MatchedBy(func(event domain.JobEvent) bool {
			return event.SourceURL == videoURL
		})).
		Return(nil)

	jobID, err := service.CreateJobFromURL(ctx, videoURL)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, jobID)
	mockJobs.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
}

func TestIntakeService_CreateJobFromURL_Empty(t *testing.T) {
	ctx := context.Background()
	service := newService(repository.NewMockJobRepository(), storage.NewMockStorage(), eventbroker.NewMockPublisher())

	jobID, err := service.CreateJobFromURL(ctx, "")

	assert.ErrorIs(t, err, domain.ErrNoInput)
	assert.Equal(t, uuid.Nil, jobID)
}
