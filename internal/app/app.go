package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/common"
	"github.com/podut/wp-ai-studio/internal/handlers"
	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/services/ai"
	"github.com/podut/wp-ai-studio/internal/services/events"
	"github.com/podut/wp-ai-studio/internal/services/planner"
	syncsvc "github.com/podut/wp-ai-studio/internal/services/sync"
	"github.com/podut/wp-ai-studio/internal/storage/badger"
)

// App wires together configuration, storage, services and handlers
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager
	EventService   interfaces.EventService
	AIService      interfaces.AIService
	SyncService    *syncsvc.Service
	PlannerService *planner.Service
	Poller         *syncsvc.Poller

	APIHandler       *handlers.APIHandler
	ProjectHandler   *handlers.ProjectHandler
	PlannerHandler   *handlers.PlannerHandler
	AIHandler        *handlers.AIHandler
	SettingsHandler  *handlers.SettingsHandler
	WebSocketHandler *handlers.WebSocketHandler
}

// New builds the application dependency graph
func New(cfg *common.Config) (*App, error) {
	logger := common.GetLogger()

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// One-time migration of the pre-folder keyword list
	if err := storageManager.MigrateLegacyKeywords(context.Background()); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("legacy keyword migration failed: %w", err)
	}

	eventService := events.NewService(logger)
	if err := events.SubscribeLoggerToAllEvents(eventService, logger); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to subscribe event logger: %w", err)
	}

	aiService, err := ai.NewService(logger, storageManager.SettingsStorage(), &cfg.AI)
	if err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize AI service: %w", err)
	}

	requestTimeout := cfg.Sync.RequestTimeoutDuration()
	reporter := syncsvc.NewEventReporter(eventService, logger)
	syncService := syncsvc.NewService(storageManager.ProjectStorage(), eventService, reporter, requestTimeout, logger)
	poller := syncsvc.NewPoller(syncService, storageManager.ProjectStorage(), cfg.Sync.PollSchedule, logger)

	plannerService := planner.NewService(storageManager.PlannerStorage(), aiService, syncService, eventService, logger)

	app := &App{
		Config:         cfg,
		Logger:         logger,
		StorageManager: storageManager,
		EventService:   eventService,
		AIService:      aiService,
		SyncService:    syncService,
		PlannerService: plannerService,
		Poller:         poller,

		APIHandler:       handlers.NewAPIHandler(),
		ProjectHandler:   handlers.NewProjectHandler(storageManager.ProjectStorage(), syncService, requestTimeout, logger),
		PlannerHandler:   handlers.NewPlannerHandler(plannerService, logger),
		AIHandler:        handlers.NewAIHandler(aiService, storageManager.ProjectStorage(), logger),
		SettingsHandler:  handlers.NewSettingsHandler(aiService, storageManager.SettingsStorage(), logger),
		WebSocketHandler: handlers.NewWebSocketHandler(eventService, logger),
	}

	return app, nil
}

// Start launches background services
func (a *App) Start() error {
	return a.Poller.Start()
}

// Close shuts down background services and storage in reverse
// dependency order
func (a *App) Close() error {
	a.Poller.Stop()

	if err := a.EventService.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Event service close failed")
	}
	if err := a.StorageManager.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Storage close failed")
		return err
	}
	return nil
}
