package interfaces

import "context"

// EventType identifies the type of event
type EventType string

const (
	// EventTypeProjectStatus is published on every project status transition
	EventTypeProjectStatus EventType = "project_status_changed"
	// EventTypeSyncFailed is published when a sync fails with alert severity
	EventTypeSyncFailed EventType = "sync_failed"
	// EventTypePlanItemUpdated is published when a plan item changes state
	EventTypePlanItemUpdated EventType = "plan_item_updated"
)

// Event represents a published event with its payload
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventHandler processes a published event
type EventHandler func(ctx context.Context, event Event) error

// EventService provides pub/sub event distribution
type EventService interface {
	Subscribe(eventType EventType, handler EventHandler) error
	Publish(ctx context.Context, event Event) error
	PublishSync(ctx context.Context, event Event) error
	Close() error
}
