package common

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GetDisplayName returns the server nickname of a member, falling back to the username
func GetDisplayName(member *discordgo.Member) string {
	if member == nil {
		return "Unknown"
	}
	if member.Nick != "" {
		return member.Nick
	}
	if member.User == nil {
		return "Unknown"
	}
	if member.User.GlobalName != "" {
		return member.User.GlobalName
	}
	return member.User.Username
}

// ParseID converts a Discord snowflake string to int64
func ParseID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

// FormatID converts an int64 snowflake to string
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// IsUserAdmin reports whether userID may run administrative commands in guildID.
// The bot owner, the guild owner and members with an Administrator role qualify.
func IsUserAdmin(s *discordgo.Session, guildID, userID string, ownerID int64) bool {
	if ownerID != 0 && FormatID(ownerID) == userID {
		return true
	}

	if guild, err := s.State.Guild(guildID); err == nil && guild.OwnerID == userID {
		return true
	}

	member, err := s.State.Member(guildID, userID)
	if err != nil {
		member, err = s.GuildMember(guildID, userID)
		if err != nil {
			log.Errorf("Failed to get guild member: %v", err)
			return false
		}
	}

	for _, roleID := range member.Roles {
		role, err := s.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

// MemberRoleIDs converts the member's role snowflakes, skipping malformed ones
func MemberRoleIDs(member *discordgo.Member) []int64 {
	if member == nil {
		return nil
	}
	ids := make([]int64, 0, len(member.Roles))
	for _, roleID := range member.Roles {
		if id, err := ParseID(roleID); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
