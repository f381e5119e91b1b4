package common

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// User and channel mentions are matched whole so their IDs never reach the bare-ID branch
var roleMentionPattern = regexp.MustCompile(`<(@&|@!?|#)(\d+)>|\b(\d{15,21})\b`)

// RoleMention returns the mention markup for a role
func RoleMention(roleID int64) string {
	return fmt.Sprintf("<@&%d>", roleID)
}

// ChannelMention returns the mention markup for a channel
func ChannelMention(channelID int64) string {
	return fmt.Sprintf("<#%d>", channelID)
}

// UserMention returns the mention markup for a user
func UserMention(userID string) string {
	return "<@" + userID + ">"
}

// FormatRoleList renders roles as mentions, or "None"
func FormatRoleList(roleIDs []int64) string {
	if len(roleIDs) == 0 {
		return "None"
	}
	mentions := make([]string, len(roleIDs))
	for i, roleID := range roleIDs {
		mentions[i] = RoleMention(roleID)
	}
	return strings.Join(mentions, ", ")
}

// ParseRoleMentions extracts role IDs from mentions or bare snowflakes, in order
func ParseRoleMentions(input string) []int64 {
	var ids []int64
	for _, match := range roleMentionPattern.FindAllStringSubmatch(input, -1) {
		raw := match[3]
		switch match[1] {
		case "":
		case "@&":
			raw = match[2]
		default:
			continue
		}
		if id, err := ParseID(raw); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// ParseRoleGroups splits input on "|" and parses the role mentions of each group
func ParseRoleGroups(input string) [][]int64 {
	var groups [][]int64
	for _, part := range strings.Split(input, "|") {
		if ids := ParseRoleMentions(part); len(ids) > 0 {
			groups = append(groups, ids)
		}
	}
	return groups
}

// Truncate shortens text to at most max runes, ending with an ellipsis when cut
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max-1]) + "…"
}

// ChunkMessage splits text into pieces of at most limit bytes, preferring line
// breaks, then spaces, then any rune boundary
func ChunkMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MaxMessageLength
	}
	if len(text) <= limit {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], " ")
		}
		if cut <= 0 {
			cut = limit
			// never split a multi-byte rune
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
		}
		chunks = append(chunks, text[:cut])
		text = text[cut:]
		if text[0] == '\n' || text[0] == ' ' {
			text = text[1:]
		}
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
