package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/garagehq/repairshop/internal/shared/logger"
)

// DefaultScriptsPath is where `migrate create` places new scripts.
const DefaultScriptsPath = "./internal/infrastructure/migration/scripts"

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks the strategy for the connected database: versioned goose
// scripts for MySQL, AutoMigrate for SQLite or when autoMigrate is set.
func NewManager(db *gorm.DB, autoMigrate bool) *Manager {
	var strategy Strategy
	if autoMigrate || db.Dialector.Name() == "sqlite" {
		strategy = NewGormAutoMigrateStrategy()
	} else {
		strategy = NewGooseStrategy("mysql", DefaultScriptsPath)
	}
	return NewManagerWithStrategy(strategy)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.WithComponent("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed", "strategy", m.strategy.GetName(), "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
