package rolemenus

import (
	"fmt"
	"strconv"
	"strings"

	"symmbot/bot/common"
	"symmbot/domain/entities"

	"github.com/bwmarrin/discordgo"
)

const defaultMenuTitle = "Role Selection"

// RoleNamer resolves role IDs to display names
type RoleNamer func(roleID int64) string

// ButtonCustomID returns the custom ID of the button toggling roleID
func ButtonCustomID(roleID int64) string {
	return CustomIDPrefix + strconv.FormatInt(roleID, 10)
}

// ParseButtonCustomID extracts the role ID from a role button custom ID
func ParseButtonCustomID(customID string) (int64, error) {
	raw, ok := strings.CutPrefix(customID, CustomIDPrefix)
	if !ok {
		return 0, fmt.Errorf("not a role menu button: %q", customID)
	}
	return strconv.ParseInt(raw, 10, 64)
}

// BuildMenuEmbed renders the menu description
func BuildMenuEmbed(title string, groups [][]int64, exclusive bool) *discordgo.MessageEmbed {
	if strings.TrimSpace(title) == "" {
		title = defaultMenuTitle
	}

	var description strings.Builder
	description.WriteString("Click a button to add or remove a role.")
	if exclusive {
		description.WriteString("\nYou can only hold **one** role from this menu at a time.")
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(groups))
	for i, group := range groups {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Group %d", i+1),
			Value: common.FormatRoleList(group),
		})
	}
	if len(fields) == 1 {
		fields[0].Name = "Roles"
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description.String(),
		Color:       common.ColorPrimary,
		Fields:      fields,
	}
}

// BuildMenuComponents renders one action row per group with one button per role
func BuildMenuComponents(groups [][]int64, name RoleNamer) []discordgo.MessageComponent {
	rows := make([]discordgo.MessageComponent, 0, len(groups))
	for _, group := range groups {
		buttons := make([]discordgo.MessageComponent, 0, len(group))
		for _, roleID := range group {
			buttons = append(buttons, discordgo.Button{
				Label:    common.Truncate(name(roleID), common.MaxButtonLabelLength),
				Style:    discordgo.SecondaryButton,
				CustomID: ButtonCustomID(roleID),
			})
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}
	return rows
}

// BlockedMessage explains why a role could not be selected
func BlockedMessage(blocked *entities.RoleBlockedError) string {
	return fmt.Sprintf("You can't select %s while you have %s",
		common.RoleMention(blocked.RoleID), common.RoleMention(blocked.BlockingRoleID))
}

// SelectionMessage renders the ephemeral answer to a click
func SelectionMessage(selection *entities.RoleSelection) string {
	switch selection.Action {
	case entities.SelectionAdded:
		message := fmt.Sprintf("Added %s", common.RoleMention(selection.RoleID))
		if len(selection.RolesToRemove) > 0 {
			message += fmt.Sprintf(" and removed %s", common.FormatRoleList(selection.RolesToRemove))
		}
		return message
	case entities.SelectionRemoved:
		return fmt.Sprintf("Removed %s", common.RoleMention(selection.RoleID))
	default:
		return "Nothing changed."
	}
}
