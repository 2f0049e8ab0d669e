package messaging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"pay-chain.backend/internal/domain/events"
)

func TestNoopBus(t *testing.T) {
	bus := NewNoopBus()

	assert.NoError(t, bus.Publish(context.Background(), events.ProfileUpdated, nil))
	assert.NoError(t, bus.Subscribe("q", events.UserRegistered, func(context.Context, events.Envelope) error {
		t.Fatal("noop bus must never deliver")
		return nil
	}))
	bus.Close()
}
