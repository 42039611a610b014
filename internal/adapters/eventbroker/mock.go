package eventbroker

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

type MockPublisher struct {
	mock.Mock
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishJobSubmitted(ctx context.Context, event domain.JobEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
