package repository

import (
	"context"
	"errors"
	"fmt"

	"symmbot/application"
	"symmbot/database"
	"symmbot/domain/interfaces"
	"symmbot/events"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements application.UnitOfWork
type unitOfWork struct {
	db                *database.DB
	tx                pgx.Tx
	ctx               context.Context
	guildID           int64
	transactionalBus  *events.TransactionalBus
	serverConfigRepo  interfaces.ServerConfigRepository
	roleMenuRepo      interfaces.RoleMenuRepository
	roleBlockRepo     interfaces.RoleBlockRepository
	documentationRepo interfaces.DocumentationRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a factory whose units of work flush events into eventBus
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

// CreateForGuild creates a unit of work whose repositories only see guildID
func (f *unitOfWorkFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		guildID:          guildID,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	u.serverConfigRepo = newServerConfigRepository(tx, u.guildID)
	u.roleMenuRepo = newRoleMenuRepository(tx, u.guildID)
	u.roleBlockRepo = newRoleBlockRepository(tx, u.guildID)
	u.documentationRepo = newDocumentationRepository(tx, u.guildID)

	return nil
}

// Commit commits the transaction and then delivers queued events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	return u.transactionalBus.Flush(u.ctx)
}

// Rollback rolls back the transaction; safe to call after Commit
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil
	u.transactionalBus.Discard()

	return nil
}

func (u *unitOfWork) ServerConfigRepository() interfaces.ServerConfigRepository {
	if u.serverConfigRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.serverConfigRepo
}

func (u *unitOfWork) RoleMenuRepository() interfaces.RoleMenuRepository {
	if u.roleMenuRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.roleMenuRepo
}

func (u *unitOfWork) RoleBlockRepository() interfaces.RoleBlockRepository {
	if u.roleBlockRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.roleBlockRepo
}

func (u *unitOfWork) DocumentationRepository() interfaces.DocumentationRepository {
	if u.documentationRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.documentationRepo
}

// EventBus returns the transactional bus for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalBus
}
