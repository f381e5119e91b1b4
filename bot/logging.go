package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// configureSessionLogging routes discordgo's internal logging through logrus
func configureSessionLogging(s *discordgo.Session) {
	s.LogLevel = sessionLogLevel(log.GetLevel())
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		entry := log.WithField("component", "discordgo")
		message := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			entry.Error(message)
		case discordgo.LogWarning:
			entry.Warn(message)
		case discordgo.LogInformational:
			entry.Info(message)
		default:
			entry.Debug(message)
		}
	}
}

func sessionLogLevel(level log.Level) int {
	switch {
	case level >= log.DebugLevel:
		return discordgo.LogDebug
	case level >= log.InfoLevel:
		return discordgo.LogInformational
	case level >= log.WarnLevel:
		return discordgo.LogWarning
	default:
		return discordgo.LogError
	}
}
