package settings

import (
	"symmbot/application"
	"symmbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature handles guild settings management
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	ownerID    int64
}

// NewFeature creates a new settings feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, ownerID int64) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		ownerID:    ownerID,
	}
}

// HandleCommand routes /config subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	name, opts := common.Subcommand(i)
	switch name {
	case "member-count-channel":
		f.handleMemberCountChannel(s, i, opts)
	case "notifications-channel":
		f.handleNotificationsChannel(s, i, opts)
	case "new-user-roles":
		f.handleNewUserRoles(s, i, opts)
	case "bot-roles":
		f.handleBotRoles(s, i, opts)
	case "show":
		f.handleShow(s, i)
	}
}
