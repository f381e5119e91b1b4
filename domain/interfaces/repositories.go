package interfaces

import (
	"context"

	"symmbot/domain/entities"
	"symmbot/domain/events"
)

// ServerConfigRepository defines the interface for per-guild configuration storage
type ServerConfigRepository interface {
	// GetByGuildID returns the guild's config, or nil when none exists
	GetByGuildID(ctx context.Context) (*entities.ServerConfig, error)

	// GetOrCreate returns the guild's config, inserting an empty one if needed
	GetOrCreate(ctx context.Context) (*entities.ServerConfig, error)

	// Update persists every field of the config
	Update(ctx context.Context, config *entities.ServerConfig) error
}

// RoleMenuRepository defines the interface for role menu storage
type RoleMenuRepository interface {
	// Create inserts the menu and one button per role, grouped by row; returns the menu ID
	Create(ctx context.Context, menu *entities.RoleMenu, roleGroups [][]int64) (int64, error)

	// GetByMessageID returns the menu posted as messageID with its buttons, or nil
	GetByMessageID(ctx context.Context, messageID int64) (*entities.RoleMenu, error)

	// GetByRoleID returns the first menu of the guild offering roleID, or nil
	GetByRoleID(ctx context.Context, roleID int64) (*entities.RoleMenu, error)

	// DeleteByMessageID removes the menu; reports whether a menu existed
	DeleteByMessageID(ctx context.Context, messageID int64) (bool, error)

	// ListByGuild returns all menus of the guild with their buttons
	ListByGuild(ctx context.Context) ([]*entities.RoleMenu, error)
}

// RoleBlockRepository defines the interface for role block storage
type RoleBlockRepository interface {
	// Add records the block; adding an existing block is a no-op
	Add(ctx context.Context, blockingRoleID, blockedRoleID int64) error

	// Remove deletes the block; reports whether a row was removed
	Remove(ctx context.Context, blockingRoleID, blockedRoleID int64) (bool, error)

	// GetBlockedRoles returns the distinct roles blocked by any of userRoles
	GetBlockedRoles(ctx context.Context, userRoles []int64) ([]int64, error)

	// GetBlockingRole returns one of userRoles that blocks roleID, or nil
	GetBlockingRole(ctx context.Context, userRoles []int64, roleID int64) (*int64, error)

	// List returns every block of the guild
	List(ctx context.Context) ([]*entities.RoleBlock, error)
}

// DocumentationRepository defines the interface for guild documentation storage
type DocumentationRepository interface {
	// Upsert creates or replaces the document with the given title; returns its ID
	Upsert(ctx context.Context, title, content string, createdBy int64) (int64, error)

	// Delete removes the document; reports whether it existed
	Delete(ctx context.Context, title string) (bool, error)

	// Get returns the document with the given title, or nil
	Get(ctx context.Context, title string) (*entities.ServerDocumentation, error)

	// List returns all documents ordered by title
	List(ctx context.Context) ([]*entities.ServerDocumentation, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}
