package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names produced and consumed by this service. Routing key = event name.
const (
	ProfileCreated      = "user.profile.created"
	ProfileUpdated      = "user.profile.updated"
	ApplicationCreated  = "seller.application.created"
	ApplicationApproved = "seller.application.approved"
	ApplicationRejected = "seller.application.rejected"
	UserSuspended       = "user.suspended"
	UserUnsuspended     = "user.unsuspended"
	UserRoleUpdated     = "user.role.updated"

	// Emitted by the identity service; triggers idempotent profile creation.
	UserRegistered = "user.registered"
)

// Envelope is the transient wire format carried on the bus
type Envelope struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher publishes events best-effort: implementations must not fail the
// caller when the bus is unreachable.
type Publisher interface {
	Publish(ctx context.Context, event string, data interface{}) error
}

// Handler processes one delivered envelope. Returning an error triggers
// redelivery (bounded, then dead-letter).
type Handler func(ctx context.Context, env Envelope) error

// Subscriber binds handlers to event patterns on durable queues
type Subscriber interface {
	Subscribe(queue, pattern string, handler Handler) error
}

// UserRegisteredPayload is the identity service's registration event body
type UserRegisteredPayload struct {
	UserID   uuid.UUID `json:"userId"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"fullName"`
}

// ProfileEventPayload is the body of profile lifecycle events
type ProfileEventPayload struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
}

// ApplicationEventPayload is the body of seller application events
type ApplicationEventPayload struct {
	ApplicationID   uuid.UUID `json:"applicationId"`
	UserID          uuid.UUID `json:"userId"`
	ShopName        string    `json:"shopName"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
}

// SuspensionEventPayload is the body of user.suspended / user.unsuspended
type SuspensionEventPayload struct {
	UserID uuid.UUID `json:"userId"`
	Reason string    `json:"reason,omitempty"`
}

// RoleEventPayload is the body of user.role.updated
type RoleEventPayload struct {
	UserID uuid.UUID `json:"userId"`
	Role   string    `json:"role"`
}
