package notifications

import (
	"context"

	"symmbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Platform is the subset of Discord used for join and leave handling
type Platform interface {
	RoleExists(guildID, roleID int64) bool
	AddRole(ctx context.Context, guildID int64, userID string, roleID int64) error
	SendMessage(ctx context.Context, channelID int64, content string) error
}

type sessionPlatform struct {
	session *discordgo.Session
}

// NewSessionPlatform adapts a discordgo session
func NewSessionPlatform(session *discordgo.Session) Platform {
	return &sessionPlatform{session: session}
}

func (p *sessionPlatform) RoleExists(guildID, roleID int64) bool {
	_, err := p.session.State.Role(common.FormatID(guildID), common.FormatID(roleID))
	return err == nil
}

func (p *sessionPlatform) AddRole(ctx context.Context, guildID int64, userID string, roleID int64) error {
	return p.session.GuildMemberRoleAdd(common.FormatID(guildID), userID, common.FormatID(roleID), discordgo.WithContext(ctx))
}

func (p *sessionPlatform) SendMessage(ctx context.Context, channelID int64, content string) error {
	_, err := p.session.ChannelMessageSend(common.FormatID(channelID), content, discordgo.WithContext(ctx))
	return err
}
