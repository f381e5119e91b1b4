package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"symmbot/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	OwnerID      int64 // Bot owner, always treated as an administrator

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// AI help configuration
	GeminiAPIKey           string // Empty disables /help answers
	GeminiModel            string
	HelpRateLimitPerMinute int

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables event export

	// Member count configuration
	MemberCountInterval    time.Duration
	MemberCountFullRefresh time.Duration

	// Legacy single-guild values, seeded into server_configs on startup
	LegacyGuildID          int64
	MemberCountChannelID   int64
	NotificationsChannelID int64
	NewUserRoleIDs         []int64
	BotRoleIDs             []int64

	// Logging
	LogLevel string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// AIEnabled reports whether a Gemini API key was configured
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// HasLegacyGuildSeed reports whether legacy environment values should be copied into the database
func (c *Config) HasLegacyGuildSeed() bool {
	return c.LegacyGuildID != 0
}

// load loads configuration from the environment, after applying a .env file if one exists
func load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to load .env file")
	}

	config := &Config{
		// Discord
		DiscordToken: getEnvWithDefault("DISCORD_BOT_TOKEN", os.Getenv("DISCORD_TOKEN")),
		OwnerID:      parseInt64(os.Getenv("OWNER_ID")),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// AI help
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		GeminiModel:            getEnvWithDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		HelpRateLimitPerMinute: 3,

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Member count
		MemberCountInterval:    15 * time.Minute,
		MemberCountFullRefresh: time.Hour,

		// Legacy seed
		LegacyGuildID:          parseInt64(os.Getenv("LEGACY_GUILD_ID")),
		MemberCountChannelID:   parseInt64(os.Getenv("MEMBER_COUNT_CHANNEL_ID")),
		NotificationsChannelID: parseInt64(os.Getenv("NOTIFICATIONS_CHANNEL_ID")),
		NewUserRoleIDs:         parseIDList(os.Getenv("ROLE_NEW_ARRIVAL")),
		BotRoleIDs:             parseIDList(os.Getenv("ROLE_BOT")),

		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	// Override defaults if environment variables are set
	if limit := os.Getenv("HELP_RATE_LIMIT"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			config.HelpRateLimitPerMinute = parsed
		}
	}
	if interval := os.Getenv("MEMBER_COUNT_INTERVAL"); interval != "" {
		if parsed, err := time.ParseDuration(interval); err == nil && parsed > 0 {
			config.MemberCountInterval = parsed
		}
	}
	if refresh := os.Getenv("MEMBER_COUNT_FULL_REFRESH"); refresh != "" {
		if parsed, err := time.ParseDuration(refresh); err == nil && parsed > 0 {
			config.MemberCountFullRefresh = parsed
		}
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseInt64 returns 0 for empty or malformed values
func parseInt64(value string) int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// parseIDList parses a comma-separated list of snowflakes, skipping invalid entries
func parseIDList(value string) []int64 {
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		if id := parseInt64(part); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:            "test",
		GeminiModel:            "gemini-2.0-flash",
		HelpRateLimitPerMinute: 3,
		MemberCountInterval:    15 * time.Minute,
		MemberCountFullRefresh: time.Hour,
		LogLevel:               "info",
	}
}
