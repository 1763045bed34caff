package badger

import (
	"github.com/ternarybob/arbor"

	"github.com/podut/wp-ai-studio/internal/common"
	"github.com/podut/wp-ai-studio/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db              *BadgerDB
	logger          arbor.ILogger
	projectStorage  interfaces.ProjectStorage
	plannerStorage  interfaces.PlannerStorage
	settingsStorage interfaces.SettingsStorage
}

// NewManager creates a new Badger storage manager with all storages wired
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	return &Manager{
		db:              db,
		logger:          logger,
		projectStorage:  NewProjectStorage(db, logger),
		plannerStorage:  NewPlannerStorage(db, logger),
		settingsStorage: NewSettingsStorage(db, logger),
	}, nil
}

// ProjectStorage returns the project storage
func (m *Manager) ProjectStorage() interfaces.ProjectStorage {
	return m.projectStorage
}

// PlannerStorage returns the planner storage
func (m *Manager) PlannerStorage() interfaces.PlannerStorage {
	return m.plannerStorage
}

// SettingsStorage returns the settings storage
func (m *Manager) SettingsStorage() interfaces.SettingsStorage {
	return m.settingsStorage
}

// DB returns the underlying database connection
func (m *Manager) DB() *BadgerDB {
	return m.db
}

// Close closes the underlying database
func (m *Manager) Close() error {
	return m.db.Close()
}
