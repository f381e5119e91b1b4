package common

import (
	"github.com/bwmarrin/discordgo"
)

// OptionMap indexes command options by name
type OptionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

// Subcommand returns the invoked subcommand name and its options
func Subcommand(i *discordgo.InteractionCreate) (string, OptionMap) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return "", OptionMap{}
	}
	if options[0].Type != discordgo.ApplicationCommandOptionSubCommand {
		return "", NewOptionMap(options)
	}
	return options[0].Name, NewOptionMap(options[0].Options)
}

// NewOptionMap indexes options by name
func NewOptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) OptionMap {
	m := make(OptionMap, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// String returns a string option or ""
func (m OptionMap) String(name string) string {
	if opt, ok := m[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// Bool returns a boolean option or def when absent
func (m OptionMap) Bool(name string, def bool) bool {
	if opt, ok := m[name]; ok {
		return opt.BoolValue()
	}
	return def
}

// ID returns a role, channel or user option as a snowflake, or 0 when absent
func (m OptionMap) ID(name string) int64 {
	opt, ok := m[name]
	if !ok {
		return 0
	}
	raw, ok := opt.Value.(string)
	if !ok {
		return 0
	}
	id, err := ParseID(raw)
	if err != nil {
		return 0
	}
	return id
}
