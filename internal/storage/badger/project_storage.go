package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/podut/wp-ai-studio/internal/interfaces"
	"github.com/podut/wp-ai-studio/internal/models"
)

// ProjectStorage implements interfaces.ProjectStorage for Badger
type ProjectStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewProjectStorage creates a new ProjectStorage instance
func NewProjectStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ProjectStorage {
	return &ProjectStorage{
		db:     db,
		logger: logger,
	}
}

// Get retrieves a project by ID
func (s *ProjectStorage) Get(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := s.db.Store().Get(id, &project)
	if err == badgerhold.ErrNotFound {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// List returns all projects ordered by creation time
func (s *ProjectStorage) List(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := s.db.Store().Find(&projects, badgerhold.Where("ID").Ne("").SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Save inserts or updates a project. The full record is replaced,
// including the post, category and tag mirrors.
func (s *ProjectStorage) Save(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		return fmt.Errorf("project ID cannot be empty")
	}
	if err := s.db.Store().Upsert(project.ID, project); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// Delete removes a project
func (s *ProjectStorage) Delete(ctx context.Context, id string) error {
	err := s.db.Store().Delete(id, &models.Project{})
	if err == badgerhold.ErrNotFound {
		return interfaces.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
