package rolemenus

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/interfaces"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleInteraction handles clicks on role menu buttons
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Message == nil {
		common.RespondWithError(s, i, "Role menus only work inside a server")
		return
	}

	roleID, err := ParseButtonCustomID(i.MessageComponentData().CustomID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Invalid role menu button"), false)
		return
	}
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}
	messageID, err := common.ParseID(i.Message.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse message ID"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.WithError(err).Error("Failed to defer role button click")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*common.PlatformTimeout)
	defer cancel()

	selection, err := f.resolveClick(ctx, guildID, messageID, common.MemberRoleIDs(i.Member), roleID)
	if err != nil {
		common.HandleError(s, i, err, true)
		return
	}

	if err := applySelection(ctx, s, i.GuildID, i.Member.User.ID, selection); err != nil {
		common.HandleError(s, i, &common.BotError{
			UserMessage: "I couldn't update your roles. My role may be below the one you picked.",
			LogMessage:  "Failed to apply role selection",
			Ephemeral:   true,
			Err:         err,
			Context:     selection,
		}, true)
		return
	}

	log.WithFields(log.Fields{
		"guildID": guildID,
		"userID":  i.Member.User.ID,
		"roleID":  roleID,
		"action":  selection.Action,
	}).Debug("Applied role selection")

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:         SelectionMessage(selection),
		Flags:           discordgo.MessageFlagsEphemeral,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}); err != nil {
		log.WithError(err).Error("Failed to send role selection result")
	}
}

// resolveClick loads the menu and the member's blocking role in one read-only unit of work
func (f *Feature) resolveClick(ctx context.Context, guildID, messageID int64, memberRoles []int64, roleID int64) (*entities.RoleSelection, error) {
	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return nil, common.NewSystemError(err, "Failed to begin transaction")
	}
	defer uow.Rollback()

	menuService := services.NewRoleMenuService(uow.RoleMenuRepository(), uow.EventBus())
	menu, err := menuService.GetMenuByMessage(ctx, messageID)
	if errors.Is(err, entities.ErrMenuNotFound) {
		return nil, common.NewUserError("This role menu is no longer active", "Click on unknown role menu")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to load role menu")
	}

	blocking, err := blockingRole(ctx, services.NewRoleBlockService(uow.RoleBlockRepository(), uow.EventBus()), memberRoles, roleID)
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to check role blocks")
	}

	selection, err := services.ResolveSelection(menu, memberRoles, blocking, roleID)
	var blocked *entities.RoleBlockedError
	if errors.As(err, &blocked) {
		return nil, common.NewUserError(BlockedMessage(blocked), "Role selection blocked")
	}
	if errors.Is(err, entities.ErrRoleNotInMenu) {
		return nil, common.NewUserError("That role is no longer part of this menu", "Click on stale role button")
	}
	if err != nil {
		return nil, common.NewSystemError(err, "Failed to resolve role selection")
	}
	return selection, nil
}

// blockingRole loads the blocks of the member's roles and, when they cover
// roleID, looks up which held role is responsible
func blockingRole(ctx context.Context, blocks interfaces.RoleBlockService, memberRoles []int64, roleID int64) (*int64, error) {
	blocked, err := blocks.BlockedRoles(ctx, memberRoles)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(blocked, roleID) {
		return nil, nil
	}
	return blocks.BlockingRole(ctx, memberRoles, roleID)
}

// applySelection removes before adding so exclusive menus never hold two roles at once
func applySelection(ctx context.Context, s *discordgo.Session, guildID, userID string, selection *entities.RoleSelection) error {
	for _, roleID := range selection.RolesToRemove {
		if err := s.GuildMemberRoleRemove(guildID, userID, common.FormatID(roleID), discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to remove role %d: %w", roleID, err)
		}
	}
	for _, roleID := range selection.RolesToAdd {
		if err := s.GuildMemberRoleAdd(guildID, userID, common.FormatID(roleID), discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to add role %d: %w", roleID, err)
		}
	}
	return nil
}
