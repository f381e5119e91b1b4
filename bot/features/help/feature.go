package help

import (
	"context"
	"strings"
	"time"

	"symmbot/bot/common"
	"symmbot/domain/entities"
	"symmbot/domain/services"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const answerTimeout = 60 * time.Second

// Feature answers /help questions and records channel history for them
type Feature struct {
	help *services.HelpService
}

// NewFeature creates a new help feature instance
func NewFeature(help *services.HelpService) *Feature {
	return &Feature{help: help}
}

// HandleCommand handles /help
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.NewOptionMap(i.ApplicationCommandData().Options)
	question := strings.TrimSpace(opts.String("question"))
	if question == "" {
		common.RespondWithError(s, i, "Please ask a question")
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.WithError(err).Error("Failed to defer help command")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), answerTimeout)
	defer cancel()

	req := services.HelpRequest{
		Question: question,
		UserName: "Someone",
	}
	req.GuildID, _ = common.ParseID(i.GuildID)
	req.ChannelID, _ = common.ParseID(i.ChannelID)
	req.UserID, _ = common.ParseID(common.InteractionUserID(i))
	if i.Member != nil {
		req.UserName = common.GetDisplayName(i.Member)
	} else if i.User != nil {
		req.UserName = i.User.Username
	}

	for n, chunk := range f.Reply(ctx, req) {
		if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content:         chunk,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}); err != nil {
			log.WithError(err).WithField("chunk", n).Error("Failed to send help answer")
			return
		}
	}
}

// Reply answers a question, split into messages the platform accepts
func (f *Feature) Reply(ctx context.Context, req services.HelpRequest) []string {
	return common.ChunkMessage(f.help.Answer(ctx, req), common.MaxMessageLength)
}

// HandleMessageCreate records guild messages from humans for /help context
func (f *Feature) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	f.Record(m.Message)
}

// Record adds m to the channel history; reports whether it was kept
func (f *Feature) Record(m *discordgo.Message) bool {
	if m == nil || m.GuildID == "" || m.Author == nil || m.Author.Bot {
		return false
	}
	if strings.TrimSpace(m.Content) == "" {
		return false
	}

	guildID, err := common.ParseID(m.GuildID)
	if err != nil {
		return false
	}
	channelID, err := common.ParseID(m.ChannelID)
	if err != nil {
		return false
	}
	authorID, _ := common.ParseID(m.Author.ID)

	name := m.Author.GlobalName
	if m.Member != nil && m.Member.Nick != "" {
		name = m.Member.Nick
	}
	if name == "" {
		name = m.Author.Username
	}

	timestamp := m.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	f.help.History().Add(guildID, channelID, entities.HistoryMessage{
		AuthorID:   authorID,
		AuthorName: name,
		Content:    m.Content,
		Timestamp:  timestamp,
	})
	return true
}

// HandleGuildDelete forgets the history of a guild the bot left
func (f *Feature) HandleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	if guildID, err := common.ParseID(g.ID); err == nil {
		f.help.History().Forget(guildID)
	}
}
