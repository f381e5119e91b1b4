package cmd

import (
	"context"
	"fmt"
	"time"

	"symmbot/application"
	"symmbot/bot"
	"symmbot/bot/features/membercount"
	"symmbot/config"
	"symmbot/database"
	"symmbot/domain/entities"
	"symmbot/domain/interfaces"
	"symmbot/domain/services"
	"symmbot/events"
	"symmbot/infrastructure"
	"symmbot/repository"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the bot (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// Run initializes and starts the application, blocking until ctx is cancelled
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.Info("Starting symmbot...")

	// Apply pending migrations before anything touches the schema
	log.Info("Running database migrations...")
	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("Closing database connection...")
		db.Close()
	}()
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Optional event export
	natsClient := connectNATS(ctx, cfg, eventBus)
	if natsClient != nil {
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS connection")
			}
		}()
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize AI help
	helpService := services.NewHelpService(
		newCompletionClient(ctx, cfg),
		application.NewGuildReader(uowFactory),
		services.NewChannelHistory(services.DefaultHistorySize),
		services.HelpServiceConfig{
			Model:             cfg.GeminiModel,
			RequestsPerMinute: cfg.HelpRateLimitPerMinute,
		},
	)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(botConfig(cfg), uowFactory, eventBus, helpService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}
	return nil
}

// botConfig maps application configuration onto the bot
func botConfig(cfg *config.Config) bot.Config {
	schedule := membercount.DefaultSchedule()
	schedule.Interval = cfg.MemberCountInterval
	schedule.FullRefresh = cfg.MemberCountFullRefresh

	return bot.Config{
		Token:         cfg.DiscordToken,
		OwnerID:       cfg.OwnerID,
		Schedule:      schedule,
		LegacyGuildID: cfg.LegacyGuildID,
		LegacySeed:    legacySeed(cfg),
	}
}

// legacySeed copies the single-guild environment values that were provided
func legacySeed(cfg *config.Config) entities.ServerConfigUpdate {
	var seed entities.ServerConfigUpdate
	if !cfg.HasLegacyGuildSeed() {
		return seed
	}
	if cfg.MemberCountChannelID != 0 {
		id := cfg.MemberCountChannelID
		seed.MemberCountChannelID = &id
	}
	if cfg.NotificationsChannelID != 0 {
		id := cfg.NotificationsChannelID
		seed.NotificationsChannelID = &id
	}
	seed.NewUserRoleIDs = cfg.NewUserRoleIDs
	seed.BotRoleIDs = cfg.BotRoleIDs
	return seed
}

// newCompletionClient returns nil when no API key is configured, which disables /help answers
func newCompletionClient(ctx context.Context, cfg *config.Config) interfaces.CompletionClient {
	if !cfg.AIEnabled() {
		log.Warn("GEMINI_API_KEY not set, /help answers are disabled")
		return nil
	}

	client, err := infrastructure.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.WithError(err).Error("Failed to create Gemini client, /help answers are disabled")
		return nil
	}
	log.WithField("model", cfg.GeminiModel).Info("Gemini client initialized")
	return client
}

// connectNATS attaches the NATS event exporter to the bus; export is skipped when unavailable
func connectNATS(ctx context.Context, cfg *config.Config, eventBus *events.Bus) *infrastructure.NATSClient {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, event export disabled")
		return nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := client.Connect(connectCtx); err != nil {
		log.WithError(err).Error("Failed to connect to NATS, event export disabled")
		return nil
	}
	if err := client.EnsureEventStream(); err != nil {
		log.WithError(err).Error("Failed to ensure NATS event stream, event export disabled")
		client.Close()
		return nil
	}

	infrastructure.NewNATSEventPublisher(client).Attach(eventBus)
	log.WithField("servers", cfg.NATSServers).Info("Exporting events to NATS")
	return client
}
