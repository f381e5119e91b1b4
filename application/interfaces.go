package application

import (
	"context"

	"symmbot/domain/interfaces"
)

// UnitOfWork groups guild-scoped repositories behind one database transaction.
// Events published through EventBus are delivered only after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ServerConfigRepository() interfaces.ServerConfigRepository
	RoleMenuRepository() interfaces.RoleMenuRepository
	RoleBlockRepository() interfaces.RoleBlockRepository
	DocumentationRepository() interfaces.DocumentationRepository

	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory creates units of work scoped to a guild
type UnitOfWorkFactory interface {
	CreateForGuild(guildID int64) UnitOfWork
}
