package usecases

import (
	"context"
	"encoding/json"

	"pay-chain.backend/internal/domain/events"
)

const registrationQueue = "profile-service.user-registered"

// RegisterConsumers binds this service's event handlers to the bus. Handlers
// run under at-least-once delivery; each one must be idempotent.
func RegisterConsumers(sub events.Subscriber, profiles *ProfileUsecase) error {
	return sub.Subscribe(registrationQueue, events.UserRegistered, func(ctx context.Context, env events.Envelope) error {
		var payload events.UserRegisteredPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return err
		}
		return profiles.HandleUserRegistered(ctx, payload)
	})
}
