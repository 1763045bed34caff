package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// SettingsHandler handles AI settings and user profile requests
type SettingsHandler struct {
	ai       interfaces.AIService
	settings interfaces.SettingsStorage
	logger   arbor.ILogger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(aiService interfaces.AIService, settings interfaces.SettingsStorage, logger arbor.ILogger) *SettingsHandler {
	return &SettingsHandler{
		ai:       aiService,
		settings: settings,
		logger:   logger,
	}
}

// GetAISettings returns the active AI provider settings
func (h *SettingsHandler) GetAISettings(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.ai.Settings())
}

// UpdateAISettings replaces the AI provider settings. The new settings
// are persisted and applied atomically; in-flight operations finish
// with the settings they started with.
func (h *SettingsHandler) UpdateAISettings(w http.ResponseWriter, r *http.Request) {
	var settings models.AISettings
	if !DecodeJSONBody(w, r, &settings) {
		return
	}

	if err := h.ai.Configure(r.Context(), settings); err != nil {
		h.logger.Error().Err(err).Msg("Failed to update AI settings")
		WriteError(w, http.StatusInternalServerError, "Failed to update AI settings")
		return
	}
	WriteJSON(w, http.StatusOK, h.ai.Settings())
}

// GetProfile returns the user profile, falling back to defaults when
// none has been saved yet
func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.settings.GetProfile(r.Context())
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			WriteJSON(w, http.StatusOK, models.NewDefaultProfile())
			return
		}
		h.logger.Error().Err(err).Msg("Failed to get profile")
		WriteError(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// UpdateProfile saves the user profile
func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if !DecodeJSONBody(w, r, &profile) {
		return
	}
	if profile.Name == "" {
		WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := h.settings.SaveProfile(r.Context(), &profile); err != nil {
		h.logger.Error().Err(err).Msg("Failed to save profile")
		WriteError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}
