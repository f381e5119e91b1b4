package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var (
	adminPermission int64 = discordgo.PermissionAdministrator
	guildOnly             = false
)

// commandDefinitions returns every slash command the bot serves
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "update_member_count",
			Description:              "Recount members and refresh the member count channel",
			DefaultMemberPermissions: &adminPermission,
			DMPermission:             &guildOnly,
		},
		{
			Name:                     "rolemenu",
			Description:              "Create and manage role menus",
			DefaultMemberPermissions: &adminPermission,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Post a role menu with one button per role",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "roles",
							Description: "Role mentions; separate button rows with |",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "title",
							Description: "Menu title",
							MaxLength:   256,
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "exclusive",
							Description: "Members may only hold one role of this menu",
						},
						{
							Type:         discordgo.ApplicationCommandOptionChannel,
							Name:         "channel",
							Description:  "Channel to post in (defaults to this one)",
							ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a role menu and its message",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "message_id",
							Description: "ID of the role menu message",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the role menus of this server",
				},
			},
		},
		{
			Name:                     "roleblock",
			Description:              "Stop holders of one role from selecting another",
			DefaultMemberPermissions: &adminPermission,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Block a role for holders of another role",
					Options:     roleBlockOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "remove",
					Description: "Remove a role block",
					Options:     roleBlockOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the role blocks of this server",
				},
			},
		},
		{
			Name:                     "config",
			Description:              "Configure the bot for this server",
			DefaultMemberPermissions: &adminPermission,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "member-count-channel",
					Description: "Set the channel renamed with the member count (omit to disable)",
					Options:     []*discordgo.ApplicationCommandOption{channelOption("Channel to rename")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "notifications-channel",
					Description: "Set the channel for join and leave messages (omit to disable)",
					Options:     []*discordgo.ApplicationCommandOption{channelOption("Channel to announce in")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "new-user-roles",
					Description: "Set the roles given to new members",
					Options:     []*discordgo.ApplicationCommandOption{rolesOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bot-roles",
					Description: "Set the roles given to new bots",
					Options:     []*discordgo.ApplicationCommandOption{rolesOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "show",
					Description: "Show the current configuration",
				},
			},
		},
		{
			Name:         "docs",
			Description:  "Server documentation used to answer /help",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add or replace a document (administrators)",
					Options: []*discordgo.ApplicationCommandOption{
						titleOption(),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "content",
							Description: "Document text",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a document (administrators)",
					Options:     []*discordgo.ApplicationCommandOption{titleOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List documents",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Show a document",
					Options:     []*discordgo.ApplicationCommandOption{titleOption()},
				},
			},
		},
		{
			Name:         "help",
			Description:  "Ask the server butler a question",
			DMPermission: &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "question",
					Description: "What would you like to know?",
					Required:    true,
				},
			},
		},
	}
}

func roleBlockOptions() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "blocking",
			Description: "Members holding this role...",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "blocked",
			Description: "...can't select this role",
			Required:    true,
		},
	}
}

func channelOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         "channel",
		Description:  description,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText, discordgo.ChannelTypeGuildVoice},
	}
}

func rolesOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "roles",
		Description: "Role mentions (omit to clear)",
	}
}

func titleOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "title",
		Description: "Document title",
		Required:    true,
		MaxLength:   255,
	}
}

// registerCommands replaces the global command set with commandDefinitions
func (b *Bot) registerCommands() error {
	commands := commandDefinitions()
	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commands)
	if err != nil {
		return fmt.Errorf("cannot register commands: %w", err)
	}

	log.WithField("count", len(registered)).Info("Registered slash commands")
	return nil
}
