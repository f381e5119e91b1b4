package application

import (
	"context"
	"fmt"

	"symmbot/domain/entities"
	"symmbot/domain/services"
)

// GuildReader runs read-only lookups in short-lived units of work, for
// event handlers and workers that are not tied to a command
type GuildReader struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildReader creates a reader over uowFactory
func NewGuildReader(uowFactory UnitOfWorkFactory) *GuildReader {
	return &GuildReader{uowFactory: uowFactory}
}

// ServerConfig returns the guild's config, or nil when none is stored
func (r *GuildReader) ServerConfig(ctx context.Context, guildID int64) (*entities.ServerConfig, error) {
	uow := r.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	configService := services.NewServerConfigService(uow.ServerConfigRepository(), uow.EventBus())
	return configService.GetConfig(ctx, guildID)
}

// MemberCountChannelID returns the configured member count channel, or nil
func (r *GuildReader) MemberCountChannelID(ctx context.Context, guildID int64) (*int64, error) {
	config, err := r.ServerConfig(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if !config.HasMemberCountChannel() {
		return nil, nil
	}
	return config.MemberCountChannelID, nil
}

// CombinedDocumentation returns every document of the guild rendered for the help prompt
func (r *GuildReader) CombinedDocumentation(ctx context.Context, guildID int64) (string, error) {
	uow := r.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	docService := services.NewDocumentationService(uow.DocumentationRepository(), uow.EventBus())
	return docService.CombinedContent(ctx)
}
