package rolemenus

import (
	"symmbot/application"

	"github.com/bwmarrin/discordgo"
)

// CustomIDPrefix prefixes the custom ID of every role button
const CustomIDPrefix = "rolemenu_"

// Feature handles role menu commands, button clicks and menu message deletion
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	ownerID    int64
}

// NewFeature creates a new role menus feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, ownerID int64) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		ownerID:    ownerID,
	}
}

// HandleCommand routes /rolemenu subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "create":
		f.handleCreate(s, i)
	case "delete":
		f.handleDelete(s, i)
	case "list":
		f.handleList(s, i)
	}
}
