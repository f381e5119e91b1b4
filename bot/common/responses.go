package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// RespondEphemeralChunks answers with the first chunk of text and sends the
// rest as ephemeral follow-ups, keeping every message under MaxMessageLength
func RespondEphemeralChunks(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	chunks := ChunkMessage(text, MaxMessageLength)
	if len(chunks) == 0 {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         chunks[0],
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		},
	})
	if err != nil {
		log.WithError(err).WithField("command", InteractionName(i)).Error("Failed to respond to interaction")
		return
	}

	for n, chunk := range chunks[1:] {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content:         chunk,
			Flags:           discordgo.MessageFlagsEphemeral,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}); err != nil {
			log.WithError(err).WithFields(log.Fields{
				"command": InteractionName(i),
				"chunk":   n + 2,
				"chunks":  len(chunks),
			}).Error("Failed to send follow-up chunk")
			return
		}
	}
}
