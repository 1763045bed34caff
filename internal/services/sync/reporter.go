package sync

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// Reporter receives sync failures together with their severity
type Reporter interface {
	ReportFailure(ctx context.Context, project *models.Project, severity Severity, err error)
}

// eventReporter publishes alert-severity failures to the event bus and
// logs silent ones
type eventReporter struct {
	events interfaces.EventService
	logger arbor.ILogger
}

// NewEventReporter creates the default Reporter backed by the event bus
func NewEventReporter(events interfaces.EventService, logger arbor.ILogger) Reporter {
	return &eventReporter{events: events, logger: logger}
}

func (r *eventReporter) ReportFailure(ctx context.Context, project *models.Project, severity Severity, err error) {
	r.logger.Warn().
		Err(err).
		Str("project_id", project.ID).
		Str("severity", severity.String()).
		Msg("Project sync failed")

	if severity != SeverityAlert {
		return
	}

	r.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventTypeSyncFailed,
		Payload: map[string]interface{}{
			"projectId": project.ID,
			"name":      project.Name,
			"error":     err.Error(),
		},
	})
}
