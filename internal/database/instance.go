package database

import (
	"context"
	"fmt"

	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
)

// instance implements DataManager interface
type instance struct {
	db           *DB
	guildRepo    contract.GuildConfigRepo
	templateRepo contract.TemplateRepo
	scheduleRepo contract.ScheduleRepo
}

// NewInstance creates a new database instance with all repositories
func NewInstance(db *DB) contract.DataManager {
	instance := &instance{
		db: db,
	}
	instance.repoInstances()
	return instance
}

// repoInstances initializes all repositories
func (i *instance) repoInstances() {
	i.guildRepo = newGuildConfigRepo(i.db.conn)
	i.templateRepo = newTemplateRepo(i.db.conn)
	i.scheduleRepo = newScheduleRepo(i.db.conn)
}

// repoInstancesWithConn creates repository instances with custom dbConn
func repoInstancesWithConn(db dbConn) *instance {
	return &instance{
		guildRepo:    newGuildConfigRepo(db),
		templateRepo: newTemplateRepo(db),
		scheduleRepo: newScheduleRepo(db),
	}
}

// GuildConfig returns the guild configuration repository
func (i *instance) GuildConfig() contract.GuildConfigRepo {
	return i.guildRepo
}

// Template returns the template repository
func (i *instance) Template() contract.TemplateRepo {
	return i.templateRepo
}

// Schedule returns the schedule repository
func (i *instance) Schedule() contract.ScheduleRepo {
	return i.scheduleRepo
}

// WithTransaction executes a function within a database transaction
func (i *instance) WithTransaction(ctx context.Context, fn func(dm contract.DataManager) error) error {
	tx, err := i.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txInstance := repoInstancesWithConn(tx)
	err = fn(txInstance)
	if err != nil {
		rbErr := tx.Rollback()
		if rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v, original error: %w", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}
