package services

import (
	"context"
	"fmt"

	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// serverConfigService implements the ServerConfigService interface
type serverConfigService struct {
	configRepo     interfaces.ServerConfigRepository
	eventPublisher interfaces.EventPublisher
}

// NewServerConfigService creates a new server config service
func NewServerConfigService(configRepo interfaces.ServerConfigRepository, eventPublisher interfaces.EventPublisher) interfaces.ServerConfigService {
	return &serverConfigService{
		configRepo:     configRepo,
		eventPublisher: eventPublisher,
	}
}

// GetConfig returns the guild's config, or nil if it was never configured
func (s *serverConfigService) GetConfig(ctx context.Context, guildID int64) (*entities.ServerConfig, error) {
	config, err := s.configRepo.GetByGuildID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get server config for guild %d: %w", guildID, err)
	}
	return config, nil
}

// SetMemberCountChannel sets or clears the channel renamed with the member count
func (s *serverConfigService) SetMemberCountChannel(ctx context.Context, guildID int64, channelID *int64) (*entities.ServerConfig, error) {
	return s.update(ctx, guildID, func(c *entities.ServerConfig) {
		c.MemberCountChannelID = channelID
	})
}

// SetNotificationsChannel sets or clears the join/leave announcement channel
func (s *serverConfigService) SetNotificationsChannel(ctx context.Context, guildID int64, channelID *int64) (*entities.ServerConfig, error) {
	return s.update(ctx, guildID, func(c *entities.ServerConfig) {
		c.NotificationsChannelID = channelID
	})
}

// SetNewUserRoles replaces the roles given to new human members
func (s *serverConfigService) SetNewUserRoles(ctx context.Context, guildID int64, roleIDs []int64) (*entities.ServerConfig, error) {
	return s.update(ctx, guildID, func(c *entities.ServerConfig) {
		c.NewUserRoleIDs = nonNilIDs(roleIDs)
	})
}

// SetBotRoles replaces the roles given to new bot members
func (s *serverConfigService) SetBotRoles(ctx context.Context, guildID int64, roleIDs []int64) (*entities.ServerConfig, error) {
	return s.update(ctx, guildID, func(c *entities.ServerConfig) {
		c.BotRoleIDs = nonNilIDs(roleIDs)
	})
}

// SeedFromEnvironment copies legacy environment values into the database.
// Only provided fields change; an empty update leaves the guild untouched.
func (s *serverConfigService) SeedFromEnvironment(ctx context.Context, guildID int64, update entities.ServerConfigUpdate) (*entities.ServerConfig, error) {
	if update.IsEmpty() {
		return s.GetConfig(ctx, guildID)
	}

	config, err := s.update(ctx, guildID, update.Apply)
	if err != nil {
		return nil, err
	}

	log.WithField("guildID", guildID).Info("Seeded server config from environment")
	return config, nil
}

func (s *serverConfigService) update(ctx context.Context, guildID int64, mutate func(*entities.ServerConfig)) (*entities.ServerConfig, error) {
	config, err := s.configRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get server config: %w", err)
	}

	mutate(config)

	if err := s.configRepo.Update(ctx, config); err != nil {
		return nil, fmt.Errorf("failed to update server config: %w", err)
	}

	if err := s.eventPublisher.Publish(events.ServerConfigUpdatedEvent{
		GuildID:                guildID,
		MemberCountChannelID:   config.MemberCountChannelID,
		NotificationsChannelID: config.NotificationsChannelID,
		NewUserRoleIDs:         config.NewUserRoleIDs,
		BotRoleIDs:             config.BotRoleIDs,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish config update: %w", err)
	}

	return config, nil
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
