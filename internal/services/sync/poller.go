package sync

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// Poller drives the background sync cycle. Each tick syncs connected
// projects sequentially with silent severity; projects in the error
// state are skipped until a manual reconnect succeeds.
type Poller struct {
	service  *Service
	projects interfaces.ProjectStorage
	schedule string
	cron     *cron.Cron
	logger   arbor.ILogger
}

// NewPoller creates the background poller with the given cron schedule
// (e.g. "@every 30s")
func NewPoller(service *Service, projects interfaces.ProjectStorage, schedule string, logger arbor.ILogger) *Poller {
	return &Poller{
		service:  service,
		projects: projects,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers the tick function and starts the cron scheduler
func (p *Poller) Start() error {
	if _, err := p.cron.AddFunc(p.schedule, p.tick); err != nil {
		return err
	}
	p.cron.Start()
	p.logger.Info().Str("schedule", p.schedule).Msg("Background sync poller started")
	return nil
}

// Stop stops the cron scheduler and waits for a running tick to finish
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info().Msg("Background sync poller stopped")
}

// tick syncs every connected project. Failures flip the project into
// the error state, which excludes it from subsequent ticks. No retries.
func (p *Poller) tick() {
	ctx := context.Background()

	projects, err := p.projects.List(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Poll tick failed to list projects")
		return
	}

	for _, project := range projects {
		if project.Status != models.ProjectStatusConnected {
			continue
		}
		if _, err := p.service.Sync(ctx, project.ID, SeveritySilent); err != nil {
			p.logger.Error().Err(err).Str("project_id", project.ID).Msg("Poll sync errored")
		}
	}
}
