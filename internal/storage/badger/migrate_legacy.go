package badger

import (
	"context"
	"time"

	"github.com/podut/wp-ai-studio/internal/common"
	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// MigrateLegacyKeywords converts the pre-folder saved-keywords record
// into an archive folder. The migration runs only when no folders exist
// yet; the legacy record is removed afterwards so it runs at most once.
func (m *Manager) MigrateLegacyKeywords(ctx context.Context) error {
	keywords, err := m.plannerStorage.GetLegacyKeywords(ctx)
	if err == interfaces.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	folders, err := m.plannerStorage.ListFolders(ctx)
	if err != nil {
		return err
	}
	if len(folders) > 0 {
		// Folders already exist, just drop the stale record
		return m.plannerStorage.DeleteLegacyKeywords(ctx)
	}

	folder := &models.PlannerFolder{
		ID:        common.NewFolderID(),
		Name:      "Archived Keywords",
		CreatedAt: time.Now(),
		Keywords:  keywords,
		PlanItems: []models.PlanItem{},
	}
	if err := m.plannerStorage.SaveFolder(ctx, folder); err != nil {
		return err
	}

	m.logger.Info().
		Int("keywords", len(keywords)).
		Str("folder_id", folder.ID).
		Msg("Migrated legacy keyword list into archive folder")

	return m.plannerStorage.DeleteLegacyKeywords(ctx)
}
