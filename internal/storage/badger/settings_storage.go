package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

const (
	aiSettingsKey  = "ai_settings"
	userProfileKey = "user_profile"
)

// aiSettingsRecord wraps AISettings with a fixed storage key
type aiSettingsRecord struct {
	Key       string            `badgerhold:"key"`
	Settings  models.AISettings `json:"settings"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// profileRecord wraps UserProfile with a fixed storage key
type profileRecord struct {
	Key       string             `badgerhold:"key"`
	Profile   models.UserProfile `json:"profile"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// SettingsStorage implements interfaces.SettingsStorage for Badger
type SettingsStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSettingsStorage creates a new SettingsStorage instance
func NewSettingsStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SettingsStorage {
	return &SettingsStorage{
		db:     db,
		logger: logger,
	}
}

// GetAISettings returns the stored AI settings
func (s *SettingsStorage) GetAISettings(ctx context.Context) (*models.AISettings, error) {
	var record aiSettingsRecord
	err := s.db.Store().Get(aiSettingsKey, &record)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get AI settings: %w", err)
	}
	return &record.Settings, nil
}

// SaveAISettings replaces the stored AI settings
func (s *SettingsStorage) SaveAISettings(ctx context.Context, settings *models.AISettings) error {
	record := aiSettingsRecord{
		Key:       aiSettingsKey,
		Settings:  *settings,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Store().Upsert(aiSettingsKey, &record); err != nil {
		return fmt.Errorf("failed to save AI settings: %w", err)
	}
	return nil
}

// GetProfile returns the stored user profile
func (s *SettingsStorage) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var record profileRecord
	err := s.db.Store().Get(userProfileKey, &record)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &record.Profile, nil
}

// SaveProfile replaces the stored user profile
func (s *SettingsStorage) SaveProfile(ctx context.Context, profile *models.UserProfile) error {
	record := profileRecord{
		Key:       userProfileKey,
		Profile:   *profile,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Store().Upsert(userProfileKey, &record); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
