package notifications

import (
	"context"
	"fmt"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ConfigSource loads the configuration of a guild
type ConfigSource interface {
	ServerConfig(ctx context.Context, guildID int64) (*entities.ServerConfig, error)
}

// MemberCounter tracks human member counts
type MemberCounter interface {
	MemberJoined(guildID int64)
	MemberLeft(guildID int64, isBot bool)
}

// Member is the platform-independent view of a joining or leaving member
type Member struct {
	UserID      string
	Username    string
	DisplayName string
	IsBot       bool
}

// Feature assigns join roles and announces joins and leaves
type Feature struct {
	platform  Platform
	configs   ConfigSource
	counter   MemberCounter
	publisher interfaces.EventPublisher
}

// NewFeature creates a new notifications feature instance
func NewFeature(platform Platform, configs ConfigSource, counter MemberCounter, publisher interfaces.EventPublisher) *Feature {
	return &Feature{
		platform:  platform,
		configs:   configs,
		counter:   counter,
		publisher: publisher,
	}
}

// HandleMemberAdd is the gateway handler for member joins
func (f *Feature) HandleMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.Member == nil || m.User == nil {
		return
	}
	guildID, err := common.ParseID(m.GuildID)
	if err != nil {
		log.WithError(err).Error("Failed to parse guild ID on member join")
		return
	}
	f.MemberJoined(context.Background(), guildID, memberFrom(m.Member))
}

// HandleMemberRemove is the gateway handler for member leaves
func (f *Feature) HandleMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.Member == nil || m.User == nil {
		return
	}
	guildID, err := common.ParseID(m.GuildID)
	if err != nil {
		log.WithError(err).Error("Failed to parse guild ID on member leave")
		return
	}
	f.MemberLeft(context.Background(), guildID, memberFrom(m.Member))
}

// MemberJoined assigns the configured roles, posts the announcement and updates the count
func (f *Feature) MemberJoined(ctx context.Context, guildID int64, member Member) {
	logger := log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  member.UserID,
		"isBot":   member.IsBot,
	})
	logger.Info("Member joined")

	config := f.loadConfig(ctx, guildID)

	f.assignRoles(ctx, guildID, member, config.JoinRoles(member.IsBot))

	message := fmt.Sprintf("Welcome to the server, %s!", common.UserMention(member.UserID))
	if member.IsBot {
		message = fmt.Sprintf("Bot %s has joined the server.", member.Username)
	}
	f.announce(ctx, config, message)

	if !member.IsBot {
		f.counter.MemberJoined(guildID)
	}

	f.publish(events.MemberJoinedEvent{
		GuildID:  guildID,
		UserID:   parseUserID(member.UserID),
		Username: member.Username,
		IsBot:    member.IsBot,
	})
}

// MemberLeft posts the farewell and updates the count
func (f *Feature) MemberLeft(ctx context.Context, guildID int64, member Member) {
	log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  member.UserID,
		"isBot":   member.IsBot,
	}).Info("Member left")

	config := f.loadConfig(ctx, guildID)
	f.announce(ctx, config, fmt.Sprintf("%s has left the server.", member.Username))

	f.counter.MemberLeft(guildID, member.IsBot)

	f.publish(events.MemberLeftEvent{
		GuildID:  guildID,
		UserID:   parseUserID(member.UserID),
		Username: member.Username,
		IsBot:    member.IsBot,
	})
}

// loadConfig returns nil on failure so that joins proceed with defaults
func (f *Feature) loadConfig(ctx context.Context, guildID int64) *entities.ServerConfig {
	configCtx, cancel := context.WithTimeout(ctx, common.PlatformTimeout)
	defer cancel()

	config, err := f.configs.ServerConfig(configCtx, guildID)
	if err != nil {
		log.WithError(err).WithField("guildID", guildID).Error("Failed to load server config")
		return nil
	}
	return config
}

func (f *Feature) assignRoles(ctx context.Context, guildID int64, member Member, roleIDs []int64) {
	for _, roleID := range roleIDs {
		logger := log.WithFields(log.Fields{
			"guildID": guildID,
			"userID":  member.UserID,
			"roleID":  roleID,
		})

		if !f.platform.RoleExists(guildID, roleID) {
			logger.Error("Configured join role not found in guild")
			continue
		}

		roleCtx, cancel := context.WithTimeout(ctx, common.PlatformTimeout)
		err := f.platform.AddRole(roleCtx, guildID, member.UserID, roleID)
		cancel()
		if err != nil {
			logger.WithError(err).Error("Failed to assign join role")
			continue
		}
		logger.Info("Assigned join role")
	}
}

func (f *Feature) announce(ctx context.Context, config *entities.ServerConfig, message string) {
	if !config.HasNotificationsChannel() {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, common.PlatformTimeout)
	defer cancel()

	if err := f.platform.SendMessage(sendCtx, *config.NotificationsChannelID, message); err != nil {
		log.WithError(err).WithField("channelID", *config.NotificationsChannelID).Error("Failed to send notification")
	}
}

func (f *Feature) publish(event events.Event) {
	if f.publisher == nil {
		return
	}
	if err := f.publisher.Publish(event); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Warn("Failed to publish member event")
	}
}

func memberFrom(m *discordgo.Member) Member {
	return Member{
		UserID:      m.User.ID,
		Username:    m.User.Username,
		DisplayName: common.GetDisplayName(m),
		IsBot:       m.User.Bot,
	}
}

func parseUserID(userID string) int64 {
	id, _ := common.ParseID(userID)
	return id
}
