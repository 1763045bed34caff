package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/podut/wp-ai-studio/internal/common"
	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// Service is the multi-provider AI gateway. All content operations go
// through Run, which dispatches to the provider captured in the settings
// snapshot taken at call start. Reconfiguration swaps the settings
// atomically and never affects in-flight calls.
type Service struct {
	mu       sync.RWMutex
	settings models.AISettings

	limiter    *rate.Limiter
	timeout    time.Duration
	httpClient *http.Client
	storage    interfaces.SettingsStorage
	logger     arbor.ILogger
}

// NewService creates the AI gateway. Persisted settings take precedence
// over the config file defaults; storage may be nil in tests.
func NewService(logger arbor.ILogger, storage interfaces.SettingsStorage, cfg *common.AIConfig) (*Service, error) {
	settings := models.AISettings{
		Provider: models.Provider(cfg.Provider),
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  cfg.BaseURL,
	}

	if storage != nil {
		stored, err := storage.GetAISettings(context.Background())
		if err == nil {
			settings = *stored
		} else if err != interfaces.ErrNotFound {
			return nil, fmt.Errorf("failed to load AI settings: %w", err)
		}
	}

	interval, err := time.ParseDuration(cfg.RateLimit)
	if err != nil || interval <= 0 {
		interval = time.Second
	}
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 2 * time.Minute
	}

	service := &Service{
		settings:   settings,
		limiter:    rate.NewLimiter(rate.Every(interval), 1),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		storage:    storage,
		logger:     logger,
	}

	logger.Debug().
		Str("provider", string(settings.Provider)).
		Str("model", settings.Model).
		Dur("timeout", timeout).
		Msg("AI gateway initialized")

	return service, nil
}

// Configure atomically replaces the provider settings and persists them.
// Operations already running keep the snapshot they captured.
func (s *Service) Configure(ctx context.Context, settings models.AISettings) error {
	if settings.Provider == "" {
		settings.Provider = models.ProviderGoogle
	}

	if s.storage != nil {
		if err := s.storage.SaveAISettings(ctx, &settings); err != nil {
			return fmt.Errorf("failed to persist AI settings: %w", err)
		}
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	s.logger.Info().
		Str("provider", string(settings.Provider)).
		Str("model", settings.Model).
		Msg("AI settings updated")

	return nil
}

// Settings returns a copy of the active settings
func (s *Service) Settings() models.AISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// snapshot captures the settings for a single operation
func (s *Service) snapshot() models.AISettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Run sends a prompt to the active provider and returns the raw text
// response. When structured is true the provider is asked for JSON
// output where its API supports that.
func (s *Service) Run(ctx context.Context, prompt string, structured bool) (string, error) {
	snapshot := s.snapshot()
	if snapshot.APIKey == "" {
		return "", ErrMissingCredential
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	var (
		response string
		err      error
	)
	switch snapshot.Provider {
	case models.ProviderOpenAI, models.ProviderDeepSeek:
		response, err = s.callOpenAICompatible(callCtx, snapshot, prompt, structured)
	case models.ProviderAnthropic:
		response, err = s.callAnthropic(callCtx, snapshot, prompt)
	default:
		// Google, and any unrecognized provider value
		response, err = s.callGemini(callCtx, snapshot, prompt, structured)
	}
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", string(snapshot.Provider)).
			Msg("AI provider call failed")
		return "", err
	}

	s.logger.Debug().
		Str("provider", string(snapshot.Provider)).
		Int("prompt_length", len(prompt)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(start)).
		Msg("AI provider call completed")

	return response, nil
}

// runStructured runs a prompt in JSON mode and extracts the document
func (s *Service) runStructured(ctx context.Context, prompt string) (json.RawMessage, error) {
	response, err := s.Run(ctx, prompt, true)
	if err != nil {
		return nil, err
	}
	return ExtractJSON(response)
}
