package storage

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) PresignPutObject(ctx context.Context, key string, contentType string, expiry time.Duration) (string, *time.Time, error) {
	args := m.Called(ctx, key, contentType, expiry)
	expiresAt, _ := args.Get(1).(*time.Time)
	return args.String(0), expiresAt, args.Error(2)
}

func (m *MockStorage) PutObject(ctx context.Context, key string, contentType string, body io.Reader, size int64) error {
	args := m.Called(ctx, key, contentType, body, size)
	return args.Error(0)
}

func (m *MockStorage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStorage) StatObject(ctx context.Context, key string) (*domain.StoredObject, error) {
	args := m.Called(ctx, key)
	info, _ := args.Get(0).(*domain.StoredObject)
	return info, args.Error(1)
}

func (m *MockStorage) ListObjects(ctx context.Context, prefix string) ([]domain.StoredObject, error) {
	args := m.Called(ctx, prefix)
	objs, _ := args.Get(0).([]domain.StoredObject)
	return objs, args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
