package docs

import (
	"symmbot/application"

	"github.com/bwmarrin/discordgo"
)

// Feature manages the documentation /help answers from
type Feature struct {
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	ownerID    int64
}

// NewFeature creates a new documentation feature instance
func NewFeature(session *discordgo.Session, uowFactory application.UnitOfWorkFactory, ownerID int64) *Feature {
	return &Feature{
		session:    session,
		uowFactory: uowFactory,
		ownerID:    ownerID,
	}
}

// HandleCommand routes /docs subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "add":
		f.handleAdd(s, i)
	case "delete":
		f.handleDelete(s, i)
	case "list":
		f.handleList(s, i)
	case "view":
		f.handleView(s, i)
	}
}
