package rolemenus

import (
	"context"
	"fmt"
	"strings"
	"time"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// handleList handles /rolemenu list
func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

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

	menus, err := services.NewRoleMenuService(uow.RoleMenuRepository(), uow.EventBus()).ListMenus(ctx)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to list role menus"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:          []*discordgo.MessageEmbed{BuildMenuListEmbed(menus)},
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.WithError(err).Error("Failed to respond to rolemenu list")
	}
}

// BuildMenuListEmbed summarizes the menus of a guild
func BuildMenuListEmbed(menus []*entities.RoleMenu) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Role Menus",
		Color: common.ColorInfo,
	}
	if len(menus) == 0 {
		embed.Description = "No role menus yet. Create one with `/rolemenu create`."
		return embed
	}

	var lines strings.Builder
	for n, menu := range menus {
		entry := menuListEntry(menu)
		remaining := len(menus) - n - 1
		// keep room for the overflow line unless this is the last entry
		budget := common.MaxEmbedDescriptionLength - len(overflowLine(len(menus)))
		if remaining == 0 {
			budget = common.MaxEmbedDescriptionLength
		}
		if lines.Len()+len(entry) > budget {
			lines.WriteString(overflowLine(len(menus) - n))
			break
		}
		lines.WriteString(entry)
	}
	embed.Description = strings.TrimRight(lines.String(), "\n")
	return embed
}

func menuListEntry(menu *entities.RoleMenu) string {
	title := menu.Title
	if title == "" {
		title = defaultMenuTitle
	}
	mode := ""
	if menu.Exclusive {
		mode = " (exclusive)"
	}
	return fmt.Sprintf("**[%s](%s)**%s in %s, created %s\n%s\n",
		title, menuLink(menu), mode, common.ChannelMention(menu.ChannelID),
		formatCreatedAt(menu.CreatedAt), common.FormatRoleList(menu.RoleIDs()))
}

func overflowLine(hidden int) string {
	return fmt.Sprintf("…and %d more", hidden)
}

// menuLink renders a jump link to a menu message
func menuLink(menu *entities.RoleMenu) string {
	return fmt.Sprintf("https://discord.com/channels/%d/%d/%d", menu.GuildID, menu.ChannelID, menu.MessageID)
}

func formatCreatedAt(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
