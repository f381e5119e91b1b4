package membercount

import (
	"context"
	"fmt"

	"symmbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

const membersPageSize = 1000

// Platform is the subset of Discord the tracker depends on
type Platform interface {
	// ListMembers returns every member of the guild through REST pagination
	ListMembers(ctx context.Context, guildID int64) ([]*discordgo.Member, error)
	// ApproximateMemberCount returns the platform's approximate total, bots included
	ApproximateMemberCount(ctx context.Context, guildID int64) (int, error)
	// CachedMembers returns the members currently held in the gateway state
	CachedMembers(guildID int64) []*discordgo.Member
	Channel(ctx context.Context, channelID int64) (*discordgo.Channel, error)
	CanManageChannel(channelID int64) bool
	RenameChannel(ctx context.Context, channelID int64, name string) error
	GuildIDs() []int64
}

// sessionPlatform implements Platform over a discordgo session
type sessionPlatform struct {
	session *discordgo.Session
}

// NewSessionPlatform adapts a discordgo session
func NewSessionPlatform(session *discordgo.Session) Platform {
	return &sessionPlatform{session: session}
}

func (p *sessionPlatform) ListMembers(ctx context.Context, guildID int64) ([]*discordgo.Member, error) {
	var members []*discordgo.Member
	after := ""
	for {
		page, err := p.session.GuildMembers(common.FormatID(guildID), after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list members after %q: %w", after, err)
		}
		members = append(members, page...)
		if len(page) < membersPageSize {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func (p *sessionPlatform) ApproximateMemberCount(ctx context.Context, guildID int64) (int, error) {
	guild, err := p.session.GuildWithCounts(common.FormatID(guildID), discordgo.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to fetch guild counts: %w", err)
	}
	return guild.ApproximateMemberCount, nil
}

func (p *sessionPlatform) CachedMembers(guildID int64) []*discordgo.Member {
	id := common.FormatID(guildID)

	p.session.State.RLock()
	defer p.session.State.RUnlock()
	for _, guild := range p.session.State.Guilds {
		if guild.ID == id {
			members := make([]*discordgo.Member, len(guild.Members))
			copy(members, guild.Members)
			return members
		}
	}
	return nil
}

func (p *sessionPlatform) Channel(ctx context.Context, channelID int64) (*discordgo.Channel, error) {
	id := common.FormatID(channelID)
	if channel, err := p.session.State.Channel(id); err == nil {
		return channel, nil
	}
	return p.session.Channel(id, discordgo.WithContext(ctx))
}

func (p *sessionPlatform) CanManageChannel(channelID int64) bool {
	if p.session.State.User == nil {
		return false
	}
	perms, err := p.session.State.UserChannelPermissions(p.session.State.User.ID, common.FormatID(channelID))
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionManageChannels != 0 || perms&discordgo.PermissionAdministrator != 0
}

func (p *sessionPlatform) RenameChannel(ctx context.Context, channelID int64, name string) error {
	_, err := p.session.ChannelEdit(common.FormatID(channelID), &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	return err
}

func (p *sessionPlatform) GuildIDs() []int64 {
	p.session.State.RLock()
	defer p.session.State.RUnlock()

	ids := make([]int64, 0, len(p.session.State.Guilds))
	for _, guild := range p.session.State.Guilds {
		if id, err := common.ParseID(guild.ID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
