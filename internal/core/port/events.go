package port

import (
	"context"

	"github.com/victoramevor/ai-video-transcoder/internal/core/domain"
)

// EventPublisher is an interface to publish job submission events
type EventPublisher interface {
	PublishJobSubmitted(ctx context.Context, event domain.JobEvent) error
}

// EventConsumer is an interface to define an event consumer (kafka, nats, ...)
type EventConsumer interface {
	Subscribe(ctx context.Context, handler MessageService) error
	Close() error
}

// MessageService is an interface to define message handling
type MessageService interface {
	HandleMessage(ctx context.Context, data []byte) error
}
