package interfaces

import (
	"context"

	"symmbot/domain/entities"
)

// ServerConfigService defines the interface for guild configuration
type ServerConfigService interface {
	GetConfig(ctx context.Context, guildID int64) (*entities.ServerConfig, error)
	SetMemberCountChannel(ctx context.Context, guildID int64, channelID *int64) (*entities.ServerConfig, error)
	SetNotificationsChannel(ctx context.Context, guildID int64, channelID *int64) (*entities.ServerConfig, error)
	SetNewUserRoles(ctx context.Context, guildID int64, roleIDs []int64) (*entities.ServerConfig, error)
	SetBotRoles(ctx context.Context, guildID int64, roleIDs []int64) (*entities.ServerConfig, error)

	// SeedFromEnvironment applies only the provided fields, creating the config if needed
	SeedFromEnvironment(ctx context.Context, guildID int64, update entities.ServerConfigUpdate) (*entities.ServerConfig, error)
}

// RoleMenuService defines the interface for role menus
type RoleMenuService interface {
	CreateMenu(ctx context.Context, menu *entities.RoleMenu, roleGroups [][]int64) (*entities.RoleMenu, error)
	GetMenuByMessage(ctx context.Context, messageID int64) (*entities.RoleMenu, error)
	GetMenuByRole(ctx context.Context, roleID int64) (*entities.RoleMenu, error)
	DeleteMenu(ctx context.Context, guildID, messageID int64) (bool, error)
	ListMenus(ctx context.Context) ([]*entities.RoleMenu, error)
}

// RoleBlockService defines the interface for role blocks
type RoleBlockService interface {
	AddBlock(ctx context.Context, guildID, blockingRoleID, blockedRoleID int64) error
	RemoveBlock(ctx context.Context, guildID, blockingRoleID, blockedRoleID int64) (bool, error)
	ListBlocks(ctx context.Context) ([]*entities.RoleBlock, error)
	BlockingRole(ctx context.Context, memberRoles []int64, roleID int64) (*int64, error)
	BlockedRoles(ctx context.Context, memberRoles []int64) ([]int64, error)
}

// DocumentationService defines the interface for guild documentation
type DocumentationService interface {
	Save(ctx context.Context, guildID int64, title, content string, userID int64) (*entities.ServerDocumentation, error)
	Delete(ctx context.Context, guildID int64, title string, userID int64) error
	Get(ctx context.Context, title string) (*entities.ServerDocumentation, error)
	List(ctx context.Context) ([]*entities.ServerDocumentation, error)
	CombinedContent(ctx context.Context) (string, error)
}

// DocumentationProvider supplies the combined documentation of a guild outside of a unit of work
type DocumentationProvider interface {
	CombinedDocumentation(ctx context.Context, guildID int64) (string, error)
}

// CompletionClient generates text with a hosted language model
type CompletionClient interface {
	Complete(ctx context.Context, req entities.CompletionRequest) (string, error)
}
