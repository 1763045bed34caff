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

// legacyKeywordsKey is where releases before planner folders stored the
// flat saved-keywords list.
const legacyKeywordsKey = "saved_keywords"

// legacyKeywordRecord is the stored shape of the pre-folder keyword list
type legacyKeywordRecord struct {
	Key       string    `badgerhold:"key"`
	Keywords  []string  `json:"keywords"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlannerStorage implements interfaces.PlannerStorage for Badger
type PlannerStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewPlannerStorage creates a new PlannerStorage instance
func NewPlannerStorage(db *BadgerDB, logger arbor.ILogger) interfaces.PlannerStorage {
	return &PlannerStorage{
		db:     db,
		logger: logger,
	}
}

// GetFolder retrieves a planner folder by ID
func (s *PlannerStorage) GetFolder(ctx context.Context, id string) (*models.PlannerFolder, error) {
	var folder models.PlannerFolder
	err := s.db.Store().Get(id, &folder)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return &folder, nil
}

// ListFolders returns all planner folders ordered by creation time
func (s *PlannerStorage) ListFolders(ctx context.Context) ([]*models.PlannerFolder, error) {
	var folders []*models.PlannerFolder
	err := s.db.Store().Find(&folders, badgerhold.Where("ID").Ne("").SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// SaveFolder inserts or updates a planner folder. The full record is
// replaced, including all plan items.
func (s *PlannerStorage) SaveFolder(ctx context.Context, folder *models.PlannerFolder) error {
	if folder.ID == "" {
		return fmt.Errorf("folder ID cannot be empty")
	}
	if err := s.db.Store().Upsert(folder.ID, folder); err != nil {
		return fmt.Errorf("failed to save folder: %w", err)
	}
	return nil
}

// DeleteFolder removes a planner folder
func (s *PlannerStorage) DeleteFolder(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.PlannerFolder{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}

// GetLegacyKeywords returns the pre-folder keyword list if one is stored
func (s *PlannerStorage) GetLegacyKeywords(ctx context.Context) ([]string, error) {
	var record legacyKeywordRecord
	err := s.db.Store().Get(legacyKeywordsKey, &record)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get legacy keywords: %w", err)
	}
	return record.Keywords, nil
}

// DeleteLegacyKeywords removes the pre-folder keyword record
func (s *PlannerStorage) DeleteLegacyKeywords(ctx context.Context) error {
	err := s.db.Store().Delete(legacyKeywordsKey, &legacyKeywordRecord{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete legacy keywords: %w", err)
	}
	return nil
}

// SaveLegacyKeywords stores a flat keyword list under the legacy key.
// Used by tests and by imports of old data dumps.
func (s *PlannerStorage) SaveLegacyKeywords(ctx context.Context, keywords []string) error {
	record := legacyKeywordRecord{
		Key:       legacyKeywordsKey,
		Keywords:  keywords,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Store().Upsert(legacyKeywordsKey, &record); err != nil {
		return fmt.Errorf("failed to save legacy keywords: %w", err)
	}
	return nil
}
