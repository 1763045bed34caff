package interfaces

import (
	"context"
	"errors"

	"github.com/podut/wp-ai-studio/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// ProjectStorage persists projects and their synced WordPress mirrors
type ProjectStorage interface {
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]*models.Project, error)
	Save(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
}

// PlannerStorage persists planner folders and the legacy keyword record
type PlannerStorage interface {
	GetFolder(ctx context.Context, id string) (*models.PlannerFolder, error)
	ListFolders(ctx context.Context) ([]*models.PlannerFolder, error)
	SaveFolder(ctx context.Context, folder *models.PlannerFolder) error
	DeleteFolder(ctx context.Context, id string) error

	// Legacy flat keyword list from releases before folders existed.
	// GetLegacyKeywords returns ErrNotFound when no record is stored.
	GetLegacyKeywords(ctx context.Context) ([]string, error)
	DeleteLegacyKeywords(ctx context.Context) error
}

// SettingsStorage persists AI settings and the user profile
type SettingsStorage interface {
	GetAISettings(ctx context.Context) (*models.AISettings, error)
	SaveAISettings(ctx context.Context, settings *models.AISettings) error
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, profile *models.UserProfile) error
}

// StorageManager provides access to all storage implementations
type StorageManager interface {
	ProjectStorage() ProjectStorage
	PlannerStorage() PlannerStorage
	SettingsStorage() SettingsStorage
	Close() error
}
