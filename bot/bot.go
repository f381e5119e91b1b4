package bot

import (
	"context"
	"fmt"
	"strings"

	"symmbot/application"
	"symmbot/bot/common"
	"symmbot/bot/features/docs"
	"symmbot/bot/features/help"
	"symmbot/bot/features/membercount"
	"symmbot/bot/features/notifications"
	"symmbot/bot/features/roleblocks"
	"symmbot/bot/features/rolemenus"
	"symmbot/bot/features/settings"
	"symmbot/domain/entities"
	"symmbot/domain/services"
	"symmbot/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token    string
	OwnerID  int64
	Schedule membercount.Schedule

	// LegacyGuildID receives LegacySeed when the bot sees the guild; 0 disables seeding
	LegacyGuildID int64
	LegacySeed    entities.ServerConfigUpdate
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	// Core components
	config     Config
	session    *discordgo.Session
	uowFactory application.UnitOfWorkFactory
	eventBus   *events.Bus

	// Feature modules
	memberCount   *membercount.Feature
	notifications *notifications.Feature
	roleMenus     *rolemenus.Feature
	roleBlocks    *roleblocks.Feature
	settings      *settings.Feature
	docs          *docs.Feature
	help          *help.Feature

	// Background work is bound to this context
	ctx    context.Context
	cancel context.CancelFunc

	// Worker cleanup functions
	stopMemberCountWorker func()
}

// New creates the bot, connects to the gateway and registers commands
func New(config Config, uowFactory application.UnitOfWorkFactory, eventBus *events.Bus, helpService *services.HelpService) (*Bot, error) {
	// Create Discord session
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent
	dg.State.TrackMembers = true
	configureSessionLogging(dg)

	ctx, cancel := context.WithCancel(context.Background())
	reader := application.NewGuildReader(uowFactory)

	bot := &Bot{
		config:     config,
		session:    dg,
		uowFactory: uowFactory,
		eventBus:   eventBus,
		ctx:        ctx,
		cancel:     cancel,
	}

	// Create feature modules
	tracker := membercount.NewTracker(membercount.NewSessionPlatform(dg), reader, membercount.NewCache())
	bot.memberCount = membercount.NewFeature(dg, tracker, config.OwnerID)
	bot.notifications = notifications.NewFeature(notifications.NewSessionPlatform(dg), reader, bot.memberCount, eventBus)
	bot.roleMenus = rolemenus.NewFeature(dg, uowFactory, config.OwnerID)
	bot.roleBlocks = roleblocks.NewFeature(dg, uowFactory, config.OwnerID)
	bot.settings = settings.NewFeature(dg, uowFactory, config.OwnerID)
	bot.docs = docs.NewFeature(dg, uowFactory, config.OwnerID)
	bot.help = help.NewFeature(helpService)

	// Event subscriptions
	bot.registerSubscriptions()

	// Register handlers
	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleInteractions)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleGuildDelete)
	dg.AddHandler(bot.notifications.HandleMemberAdd)
	dg.AddHandler(bot.notifications.HandleMemberRemove)
	dg.AddHandler(bot.help.HandleMessageCreate)
	dg.AddHandler(bot.roleMenus.HandleMessageDelete)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		cancel()
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		cancel()
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start background workers
	bot.startWorkers()
	log.Info("Background workers started")

	return bot, nil
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	b.cancel()

	// Stop background workers
	if b.stopMemberCountWorker != nil {
		b.stopMemberCountWorker()
	}
	log.Info("Background workers stopped")

	return b.session.Close()
}

// handleReady starts the member count initialization for every guild
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.WithFields(log.Fields{
		"user":   r.User.Username,
		"guilds": len(r.Guilds),
	}).Info("Connected to Discord")

	go b.memberCount.Tracker().InitializeAll(b.ctx, b.config.Schedule)
}

// handleInteractions routes commands and components to appropriate features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.routeCommand(s, i)
	case discordgo.InteractionMessageComponent:
		b.routeComponentInteraction(s, i, i.MessageComponentData().CustomID)
	}
}

// routeCommand routes slash commands to appropriate handlers
func (b *Bot) routeCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		common.RespondWithError(s, i, "Commands only work inside a server")
		return
	}

	switch i.ApplicationCommandData().Name {
	case "update_member_count":
		b.memberCount.HandleCommand(s, i)
	case "rolemenu":
		b.roleMenus.HandleCommand(s, i)
	case "roleblock":
		b.roleBlocks.HandleCommand(s, i)
	case "config":
		b.settings.HandleCommand(s, i)
	case "docs":
		b.docs.HandleCommand(s, i)
	case "help":
		b.help.HandleCommand(s, i)
	}
}

// routeComponentInteraction routes button interactions
func (b *Bot) routeComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	switch {
	case strings.HasPrefix(customID, rolemenus.CustomIDPrefix):
		b.roleMenus.HandleInteraction(s, i)
	default:
		log.WithField("customID", customID).Debug("Ignoring unknown component interaction")
	}
}

// handleGuildCreate tracks the guild and applies the legacy environment seed
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	guildID, err := common.ParseID(g.ID)
	if err != nil {
		log.Errorf("Failed to parse guild ID %s: %v", g.ID, err)
		return
	}

	var seed entities.ServerConfigUpdate
	if b.config.LegacyGuildID == guildID {
		seed = b.config.LegacySeed
	}

	ctx, cancel := context.WithTimeout(b.ctx, common.PlatformTimeout)
	defer cancel()

	// Create guild-scoped unit of work
	uow := b.uowFactory.CreateForGuild(guildID)
	if err := uow.Begin(ctx); err != nil {
		log.Errorf("Failed to begin transaction: %v", err)
		return
	}
	defer uow.Rollback()

	configService := services.NewServerConfigService(uow.ServerConfigRepository(), uow.EventBus())
	config, err := configService.SeedFromEnvironment(ctx, guildID, seed)
	if err != nil {
		log.Errorf("Failed to load config for guild %s (%s): %v", g.Name, g.ID, err)
		return
	}

	if err := uow.Commit(); err != nil {
		log.Errorf("Failed to commit transaction: %v", err)
		return
	}

	log.WithFields(log.Fields{
		"guildID":    guildID,
		"name":       g.Name,
		"members":    g.MemberCount,
		"configured": config != nil,
	}).Info("Guild available")
}

// handleGuildDelete forgets per-guild memory once the bot is removed
func (b *Bot) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	b.memberCount.HandleGuildDelete(s, g)
	b.help.HandleGuildDelete(s, g)
}
