package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	content  interfaces.ContentStorage
	status   interfaces.StatusStorage
	analysis interfaces.AnalysisStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		content:  NewContentStorage(db, logger),
		status:   NewStatusStorage(db, logger),
		analysis: NewAnalysisStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// ContentStorage returns the content item storage interface
func (m *Manager) ContentStorage() interfaces.ContentStorage {
	return m.content
}

// StatusStorage returns the processing status storage interface
func (m *Manager) StatusStorage() interfaces.StatusStorage {
	return m.status
}

// AnalysisStorage returns the analysis bundle storage interface
func (m *Manager) AnalysisStorage() interfaces.AnalysisStorage {
	return m.analysis
}

// RunGC reclaims value-log space in the underlying database
func (m *Manager) RunGC() error {
	return m.db.RunGC()
}

// Close closes the underlying database
func (m *Manager) Close() error {
	m.logger.Debug().Msg("Closing Badger storage manager")
	return m.db.Close()
}
