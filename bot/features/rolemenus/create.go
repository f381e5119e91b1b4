package rolemenus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleCreate handles /rolemenu create
func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}
	userID, _ := common.ParseID(common.InteractionUserID(i))

	_, opts := common.Subcommand(i)
	groups, err := services.NormalizeRoleGroups(common.ParseRoleGroups(opts.String("roles")))
	if err != nil {
		common.HandleError(s, i, roleGroupError(err), false)
		return
	}

	for _, group := range groups {
		for _, roleID := range group {
			if _, err := s.State.Role(i.GuildID, common.FormatID(roleID)); err != nil {
				common.HandleError(s, i, common.NewUserError(
					fmt.Sprintf("Role `%d` does not exist in this server", roleID),
					"Role menu references unknown role"), false)
				return
			}
		}
	}

	channelID := opts.ID("channel")
	if channelID == 0 {
		channelID, _ = common.ParseID(i.ChannelID)
	}
	title := strings.TrimSpace(opts.String("title"))
	exclusive := opts.Bool("exclusive", false)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.WithError(err).Error("Failed to defer rolemenu create")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*common.PlatformTimeout)
	defer cancel()

	message, err := s.ChannelMessageSendComplex(common.FormatID(channelID), &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{BuildMenuEmbed(title, groups, exclusive)},
		Components: BuildMenuComponents(groups, f.roleNamer(i.GuildID)),
	}, discordgo.WithContext(ctx))
	if err != nil {
		common.HandleError(s, i, &common.BotError{
			UserMessage: "I couldn't post the role menu in that channel. Check my permissions.",
			LogMessage:  "Failed to post role menu message",
			Ephemeral:   true,
			Err:         err,
		}, true)
		return
	}

	messageID, _ := common.ParseID(message.ID)
	menu := &entities.RoleMenu{
		MessageID: messageID,
		GuildID:   guildID,
		ChannelID: channelID,
		Title:     title,
		Exclusive: exclusive,
		CreatedBy: userID,
	}

	shared, err := f.persistMenu(ctx, guildID, menu, groups)
	if err != nil {
		// An orphaned menu message would have dead buttons
		if delErr := s.ChannelMessageDelete(message.ChannelID, message.ID); delErr != nil {
			log.WithError(delErr).WithField("messageID", message.ID).Error("Failed to delete unsaved role menu message")
		}
		common.HandleError(s, i, common.NewSystemError(err, "Failed to save role menu"), true)
		return
	}

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"messageID": messageID,
		"roles":     len(menu.Buttons),
		"exclusive": exclusive,
	}).Info("Created role menu")

	content := fmt.Sprintf("✅ Role menu created in %s with %d roles.", common.ChannelMention(channelID), len(menu.Buttons))
	if len(shared) > 0 {
		content += "\nAlso offered by another menu: " + common.FormatRoleList(shared)
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.WithError(err).Error("Failed to send rolemenu create result")
	}
}

// persistMenu stores the menu and returns its roles that older menus already offer
func (f *Feature) persistMenu(ctx context.Context, guildID int64, menu *entities.RoleMenu, groups [][]int64) ([]int64, error) {
	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	menuService := services.NewRoleMenuService(uow.RoleMenuRepository(), uow.EventBus())

	var shared []int64
	for _, group := range groups {
		for _, roleID := range group {
			existing, err := menuService.GetMenuByRole(ctx, roleID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				shared = append(shared, roleID)
			}
		}
	}

	if _, err := menuService.CreateMenu(ctx, menu, groups); err != nil {
		return nil, err
	}

	return shared, uow.Commit()
}

func (f *Feature) roleNamer(guildID string) RoleNamer {
	return func(roleID int64) string {
		role, err := f.session.State.Role(guildID, common.FormatID(roleID))
		if err != nil || role.Name == "" {
			return common.FormatID(roleID)
		}
		return role.Name
	}
}

func roleGroupError(err error) error {
	switch {
	case errors.Is(err, entities.ErrNoRoles):
		return common.NewUserError("Mention at least one role, separating rows with `|`", err.Error())
	case errors.Is(err, entities.ErrTooManyRoles):
		return common.NewUserError(
			fmt.Sprintf("A role menu holds at most %d roles in %d rows of %d", entities.MaxRolesPerMenu, entities.MaxRoleGroups, entities.MaxRolesPerRow),
			err.Error())
	default:
		return common.NewSystemError(err, "Failed to validate role groups")
	}
}
