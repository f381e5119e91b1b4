package settings

import (
	"context"
	"fmt"
	"strings"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/interfaces"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleMemberCountChannel handles /config member-count-channel
func (f *Feature) handleMemberCountChannel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) {
	channelID := optionalID(opts, "channel")

	f.update(s, i, func(ctx context.Context, guildID int64, svc interfaces.ServerConfigService) error {
		_, err := svc.SetMemberCountChannel(ctx, guildID, channelID)
		return err
	}, channelMessage("Member count channel", channelID))
}

// handleNotificationsChannel handles /config notifications-channel
func (f *Feature) handleNotificationsChannel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) {
	channelID := optionalID(opts, "channel")

	f.update(s, i, func(ctx context.Context, guildID int64, svc interfaces.ServerConfigService) error {
		_, err := svc.SetNotificationsChannel(ctx, guildID, channelID)
		return err
	}, channelMessage("Notifications channel", channelID))
}

// handleNewUserRoles handles /config new-user-roles
func (f *Feature) handleNewUserRoles(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) {
	roleIDs, ok := f.parseRoles(s, i, opts.String("roles"))
	if !ok {
		return
	}

	f.update(s, i, func(ctx context.Context, guildID int64, svc interfaces.ServerConfigService) error {
		_, err := svc.SetNewUserRoles(ctx, guildID, roleIDs)
		return err
	}, fmt.Sprintf("✅ New members will receive: %s", common.FormatRoleList(roleIDs)))
}

// handleBotRoles handles /config bot-roles
func (f *Feature) handleBotRoles(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) {
	roleIDs, ok := f.parseRoles(s, i, opts.String("roles"))
	if !ok {
		return
	}

	f.update(s, i, func(ctx context.Context, guildID int64, svc interfaces.ServerConfigService) error {
		_, err := svc.SetBotRoles(ctx, guildID, roleIDs)
		return err
	}, fmt.Sprintf("✅ New bots will receive: %s", common.FormatRoleList(roleIDs)))
}

// handleShow handles /config show
func (f *Feature) handleShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), common.PlatformTimeout)
	defer cancel()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to begin transaction"), false)
		return
	}
	defer uow.Rollback()

	config, err := services.NewServerConfigService(uow.ServerConfigRepository(), uow.EventBus()).GetConfig(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to load server config"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:          []*discordgo.MessageEmbed{BuildConfigEmbed(config)},
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to config show")
	}
}

// update runs one setter in a guild unit of work and confirms with message
func (f *Feature) update(s *discordgo.Session, i *discordgo.InteractionCreate, apply func(ctx context.Context, guildID int64, svc interfaces.ServerConfigService) error, message string) {
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), common.PlatformTimeout)
	defer cancel()

	// Create guild-scoped unit of work
	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to begin transaction"), false)
		return
	}
	defer uow.Rollback()

	svc := services.NewServerConfigService(uow.ServerConfigRepository(), uow.EventBus())
	if err := apply(ctx, guildID, svc); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to update server config"), false)
		return
	}

	// Commit the transaction; the config update event is published afterwards
	if err := uow.Commit(); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to commit server config"), false)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"setting": common.InteractionName(i),
		"userID":  common.InteractionUserID(i),
	}).Info("Updated server config")

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         message,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.Errorf("Failed to respond to interaction: %v", err)
	}
}

// parseRoles reads role mentions from input and rejects IDs that are not roles of the guild.
// Blank input yields no roles, which clears the setting.
func (f *Feature) parseRoles(s *discordgo.Session, i *discordgo.InteractionCreate, input string) ([]int64, bool) {
	roleIDs := common.ParseRoleMentions(input)
	if len(roleIDs) == 0 && strings.TrimSpace(input) != "" {
		common.HandleError(s, i, common.NewUserError(
			"Mention the roles (for example @Member) or paste their IDs", "No roles in config input"), false)
		return nil, false
	}

	missing := unknownRoles(roleIDs, func(roleID int64) bool {
		_, err := s.State.Role(i.GuildID, common.FormatID(roleID))
		return err == nil
	})
	if len(missing) > 0 {
		common.HandleError(s, i, common.NewUserError(
			fmt.Sprintf("These IDs are not roles in this server: %s", formatIDs(missing)),
			"Config input references unknown roles"), false)
		return nil, false
	}
	return roleIDs, true
}

// unknownRoles returns the IDs for which exists reports false, in input order
func unknownRoles(roleIDs []int64, exists func(roleID int64) bool) []int64 {
	var missing []int64
	for _, roleID := range roleIDs {
		if !exists(roleID) {
			missing = append(missing, roleID)
		}
	}
	return missing
}

func formatIDs(ids []int64) string {
	formatted := make([]string, len(ids))
	for n, id := range ids {
		formatted[n] = "`" + common.FormatID(id) + "`"
	}
	return strings.Join(formatted, ", ")
}

// optionalID returns nil when the option was omitted, which clears the setting
func optionalID(opts common.OptionMap, name string) *int64 {
	id := opts.ID(name)
	if id == 0 {
		return nil
	}
	return &id
}

func channelMessage(setting string, channelID *int64) string {
	if channelID == nil {
		return fmt.Sprintf("✅ %s disabled", setting)
	}
	return fmt.Sprintf("✅ %s updated to %s", setting, common.ChannelMention(*channelID))
}

// BuildConfigEmbed renders the current configuration of a guild
func BuildConfigEmbed(config *entities.ServerConfig) *discordgo.MessageEmbed {
	channel := func(id *int64) string {
		if id == nil || *id == 0 {
			return "Not set"
		}
		return common.ChannelMention(*id)
	}

	var newUserRoles, botRoles []int64
	var memberCount, notifications *int64
	if config != nil {
		newUserRoles, botRoles = config.NewUserRoleIDs, config.BotRoleIDs
		memberCount, notifications = config.MemberCountChannelID, config.NotificationsChannelID
	}

	return &discordgo.MessageEmbed{
		Title: "Server Configuration",
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Member count channel", Value: channel(memberCount), Inline: true},
			{Name: "Notifications channel", Value: channel(notifications), Inline: true},
			{Name: "New user roles", Value: common.FormatRoleList(newUserRoles)},
			{Name: "Bot roles", Value: common.FormatRoleList(botRoles)},
		},
	}
}
