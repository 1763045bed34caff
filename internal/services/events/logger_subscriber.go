package events

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
)

// NewLoggerSubscriber creates an event handler that logs all events
func NewLoggerSubscriber(logger arbor.ILogger) interfaces.EventHandler {
	return func(ctx context.Context, event interfaces.Event) error {
		var projectID, folderID, itemID, status string
		if payload, ok := event.Payload.(map[string]interface{}); ok {
			if id, ok := payload["projectId"].(string); ok {
				projectID = id
			}
			if id, ok := payload["folderId"].(string); ok {
				folderID = id
			}
			if id, ok := payload["itemId"].(string); ok {
				itemID = id
			}
			if s, ok := payload["status"].(string); ok {
				status = s
			}
		}

		logEvent := logger.Debug().
			Str("event_type", string(event.Type))

		if projectID != "" {
			logEvent = logEvent.Str("project_id", projectID)
		}
		if folderID != "" {
			logEvent = logEvent.Str("folder_id", folderID)
		}
		if itemID != "" {
			logEvent = logEvent.Str("item_id", itemID)
		}
		if status != "" {
			logEvent = logEvent.Str("status", status)
		}

		logEvent.Msg("Event published")

		return nil
	}
}

// SubscribeLoggerToAllEvents subscribes the logger to all known event types
func SubscribeLoggerToAllEvents(eventService interfaces.EventService, logger arbor.ILogger) error {
	subscriber := NewLoggerSubscriber(logger)

	eventTypes := []interfaces.EventType{
		interfaces.EventTypeProjectStatus,
		interfaces.EventTypeSyncFailed,
		interfaces.EventTypePlanItemUpdated,
	}

	for _, eventType := range eventTypes {
		if err := eventService.Subscribe(eventType, subscriber); err != nil {
			return fmt.Errorf("failed to subscribe logger to event type %s: %w", eventType, err)
		}
	}

	return nil
}
