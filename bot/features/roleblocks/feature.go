package roleblocks

import (
	"symmbot/application"
	"symmbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

// Feature handles role block management
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	ownerID    int64
}

// NewFeature creates a new role blocks feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, ownerID int64) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		ownerID:    ownerID,
	}
}

// HandleCommand routes /roleblock subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	name, opts := common.Subcommand(i)
	switch name {
	case "add":
		f.handleAdd(s, i, opts)
	case "remove":
		f.handleRemove(s, i, opts)
	case "list":
		f.handleList(s, i)
	}
}
