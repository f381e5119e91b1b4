package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestSubcommand(t *testing.T) {
	t.Parallel()

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: "docs",
			Options: []*discordgo.ApplicationCommandInteractionDataOption{{
				Name: "add",
				Type: discordgo.ApplicationCommandOptionSubCommand,
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "title", Type: discordgo.ApplicationCommandOptionString, Value: "Rules"},
					{Name: "pinned", Type: discordgo.ApplicationCommandOptionBoolean, Value: true},
					{Name: "channel", Type: discordgo.ApplicationCommandOptionChannel, Value: "123"},
				},
			}},
		},
	}}

	name, opts := Subcommand(i)
	assert.Equal(t, "add", name)
	assert.Equal(t, "Rules", opts.String("title"))
	assert.Equal(t, "", opts.String("content"))
	assert.True(t, opts.Bool("pinned", false))
	assert.True(t, opts.Bool("missing", true))
	assert.Equal(t, int64(123), opts.ID("channel"))
	assert.Equal(t, int64(0), opts.ID("missing"))
}
