package rolemenus

import (
	"context"
	"errors"
	"fmt"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleDelete handles /rolemenu delete
func (f *Feature) handleDelete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}

	_, opts := common.Subcommand(i)
	messageID := opts.ID("message_id")
	if messageID == 0 {
		common.RespondWithError(s, i, "Provide the ID of the role menu message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), common.PlatformTimeout)
	defer cancel()

	menu, err := f.deleteMenu(ctx, guildID, messageID)
	if err != nil {
		common.HandleError(s, i, err, false)
		return
	}

	if err := s.ChannelMessageDelete(common.FormatID(menu.ChannelID), common.FormatID(messageID), discordgo.WithContext(ctx)); err != nil {
		// The record is gone already; a leftover message only has dead buttons
		log.WithError(err).WithField("messageID", messageID).Warn("Failed to delete role menu message")
	}

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"messageID": messageID,
	}).Info("Deleted role menu")

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "✅ Role menu deleted.",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to rolemenu delete")
	}
}

func (f *Feature) deleteMenu(ctx context.Context, guildID, messageID int64) (*entities.RoleMenu, error) {
	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "Failed to begin transaction")
	}
	defer uow.Rollback()

	menuService := services.NewRoleMenuService(uow.RoleMenuRepository(), uow.EventBus())
	menu, err := menuService.GetMenuByMessage(ctx, messageID)
	if errors.Is(err, entities.ErrMenuNotFound) {
		return nil, common.NewUserError(fmt.Sprintf("No role menu found for message `%d`", messageID), "Delete of unknown role menu")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to load role menu")
	}

	if _, err := menuService.DeleteMenu(ctx, guildID, messageID); err != nil {
		return nil, common.NewSystemError(err, "Failed to delete role menu")
	}
	if err := uow.Commit(); err != nil {
		return nil, common.NewSystemError(err, "Failed to commit role menu deletion")
	}
	return menu, nil
}

// HandleMessageDelete drops the record of a menu whose message was deleted
func (f *Feature) HandleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	if m.GuildID == "" {
		return
	}
	guildID, err := common.ParseID(m.GuildID)
	if err != nil {
		return
	}
	messageID, err := common.ParseID(m.ID)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), common.PlatformTimeout)
	defer cancel()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).Error("Failed to begin transaction for message delete")
		return
	}
	defer uow.Rollback()

	menuService := services.NewRoleMenuService(uow.RoleMenuRepository(), uow.EventBus())
	deleted, err := menuService.DeleteMenu(ctx, guildID, messageID)
	if err != nil {
		log.WithError(err).WithField("messageID", messageID).Error("Failed to delete role menu for deleted message")
		return
	}
	if !deleted {
		return
	}
	if err := uow.Commit(); err != nil {
		log.WithError(err).Error("Failed to commit role menu cleanup")
		return
	}

	log.WithFields(log.Fields{
		"guildID":   guildID,
		"messageID": messageID,
	}).Info("Removed role menu after its message was deleted")
}
