package roleblocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/interfaces"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleAdd handles /roleblock add
func (f *Feature) handleAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) {
	guildID, blockingRoleID, blockedRoleID, ok := f.parseRoles(s, i, opts)
	if !ok {
		return
	}

	err := f.withService(guildID, func(ctx context.Context, svc interfaces.RoleBlockService) error {
		return svc.AddBlock(ctx, guildID, blockingRoleID, blockedRoleID)
	})
	if errors.Is(err, entities.ErrSelfBlock) {
		common.HandleError(s, i, common.NewUserError("A role can't block itself", err.Error()), false)
		return
	}
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to add role block"), false)
		return
	}

	log.WithFields(log.Fields{
		"guildID":  guildID,
		"blocking": blockingRoleID,
		"blocked":  blockedRoleID,
	}).Info("Added role block")

	respond(s, i, fmt.Sprintf("✅ Members with %s can no longer select %s from role menus.",
		common.RoleMention(blockingRoleID), common.RoleMention(blockedRoleID)))
}

// handleRemove handles /roleblock remove
func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) {
	guildID, blockingRoleID, blockedRoleID, ok := f.parseRoles(s, i, opts)
	if !ok {
		return
	}

	var removed bool
	err := f.withService(guildID, func(ctx context.Context, svc interfaces.RoleBlockService) error {
		var err error
		removed, err = svc.RemoveBlock(ctx, guildID, blockingRoleID, blockedRoleID)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to remove role block"), false)
		return
	}
	if !removed {
		common.RespondWithError(s, i, fmt.Sprintf("%s does not block %s",
			common.RoleMention(blockingRoleID), common.RoleMention(blockedRoleID)))
		return
	}

	respond(s, i, fmt.Sprintf("✅ %s no longer blocks %s.",
		common.RoleMention(blockingRoleID), common.RoleMention(blockedRoleID)))
}

// handleList handles /roleblock list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}

	var blocks []*entities.RoleBlock
	err = f.withService(guildID, func(ctx context.Context, svc interfaces.RoleBlockService) error {
		var err error
		blocks, err = svc.ListBlocks(ctx)
		return err
	})
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to list role blocks"), false)
		return
	}

	common.RespondEphemeralChunks(s, i, FormatBlockList(blocks))
}

// withService runs fn in a guild unit of work and commits when it succeeds
func (f *Feature) withService(guildID int64, fn func(ctx context.Context, svc interfaces.RoleBlockService) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), common.PlatformTimeout)
	defer cancel()

	uow := f.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(ctx, services.NewRoleBlockService(uow.RoleBlockRepository(), uow.EventBus())); err != nil {
		return err
	}
	return uow.Commit()
}

func (f *Feature) parseRoles(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.OptionMap) (guildID, blocking, blocked int64, ok bool) {
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return 0, 0, 0, false
	}
	blocking = opts.ID("blocking")
	blocked = opts.ID("blocked")
	if blocking == 0 || blocked == 0 {
		common.RespondWithError(s, i, "Pick both the blocking role and the blocked role")
		return 0, 0, 0, false
	}
	return guildID, blocking, blocked, true
}

// FormatBlockList renders blocks grouped by blocking role, in list order
func FormatBlockList(blocks []*entities.RoleBlock) string {
	if len(blocks) == 0 {
		return "No role blocks are configured."
	}

	var order []int64
	blockedBy := make(map[int64][]int64)
	for _, block := range blocks {
		if _, ok := blockedBy[block.BlockingRoleID]; !ok {
			order = append(order, block.BlockingRoleID)
		}
		blockedBy[block.BlockingRoleID] = append(blockedBy[block.BlockingRoleID], block.BlockedRoleID)
	}

	var b strings.Builder
	b.WriteString("**Role blocks**\n")
	for _, blocking := range order {
		fmt.Fprintf(&b, "%s blocks %s\n", common.RoleMention(blocking), common.FormatRoleList(blockedBy[blocking]))
	}
	return strings.TrimRight(b.String(), "\n")
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         content,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to roleblock command")
	}
}
