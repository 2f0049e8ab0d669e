package messaging

import (
	"context"

	"go.uber.org/zap"

	"pay-chain.backend/internal/domain/events"
	"pay-chain.backend/pkg/logger"
)

// NoopBus stands in when RabbitMQ is unreachable at startup. The bus is an
// optional dependency: the service keeps serving requests and logs the
// notifications it would have published.
type NoopBus struct{}

// NewNoopBus creates the disconnected-bus stand-in
func NewNoopBus() *NoopBus {
	return &NoopBus{}
}

// Publish logs the event that would have been published and reports success
func (b *NoopBus) Publish(ctx context.Context, event string, data interface{}) error {
	logger.Warn(ctx, "Event bus unavailable, dropping event",
		zap.String("event", event))
	return nil
}

// Subscribe logs that the subscription is inactive
func (b *NoopBus) Subscribe(queue, pattern string, handler events.Handler) error {
	logger.Warn(context.Background(), "Event bus unavailable, subscription inactive",
		zap.String("queue", queue),
		zap.String("pattern", pattern))
	return nil
}

// Close is a no-op
func (b *NoopBus) Close() {}
