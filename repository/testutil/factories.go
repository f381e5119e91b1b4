package testutil

import (
	"symmbot/domain/entities"
)

// NewRoleMenu returns an unsaved menu posted in channelID as messageID
func NewRoleMenu(messageID, channelID int64, exclusive bool) *entities.RoleMenu {
	return &entities.RoleMenu{
		MessageID: messageID,
		ChannelID: channelID,
		Title:     "Pick your roles",
		Exclusive: exclusive,
		CreatedBy: 999,
	}
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}
