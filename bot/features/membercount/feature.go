package membercount

import (
	"context"
	"fmt"
	"time"

	"symmbot/bot/common"
	"symmbot/domain/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const asyncUpdateTimeout = 30 * time.Second

// Feature exposes the member count tracker to the gateway and the command layer
type Feature struct {
	session *discordgo.Session
	tracker *Tracker
	ownerID int64
}

// NewFeature creates a new member count feature instance
func NewFeature(session *discordgo.Session, tracker *Tracker, ownerID int64) *Feature {
	return &Feature{
		session: session,
		tracker: tracker,
		ownerID: ownerID,
	}
}

// Tracker returns the underlying tracker
func (f *Feature) Tracker() *Tracker {
	return f.tracker
}

// HandleCommand handles /update_member_count
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, common.InteractionUserID(i), f.ownerID) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to parse guild ID"), false)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		log.WithError(err).Error("Failed to defer update_member_count")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), asyncUpdateTimeout)
	defer cancel()

	updated, err := f.tracker.UpdateChannel(ctx, guildID, true)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "Failed to update member count channel"), true)
		return
	}

	message := "⚠️ Member count channel was not updated. Check that it is configured with `/config member-count-channel` and that I can manage it."
	if updated {
		entry, _ := f.tracker.Cache().Get(guildID)
		message = fmt.Sprintf("✅ Member count updated: **%d** members", entry.HumanCount)
	}

	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		log.WithError(err).Error("Failed to send update_member_count result")
	}
}

// MemberJoined counts a new human member and refreshes the channel in the background
func (f *Feature) MemberJoined(guildID int64) {
	if count, ok := f.tracker.Cache().Increment(guildID); ok {
		log.WithFields(log.Fields{"guildID": guildID, "humanCount": count}).Debug("Incremented human member count")
	}
	f.updateAsync(guildID)
}

// MemberLeft uncounts a human member and refreshes the channel in the background
func (f *Feature) MemberLeft(guildID int64, isBot bool) {
	if !isBot {
		if count, ok := f.tracker.Cache().Decrement(guildID); ok {
			log.WithFields(log.Fields{"guildID": guildID, "humanCount": count}).Debug("Decremented human member count")
		}
	}
	f.updateAsync(guildID)
}

// HandleGuildDelete drops the cached count when the bot is removed from a guild
func (f *Feature) HandleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}
	guildID, err := common.ParseID(g.ID)
	if err != nil {
		return
	}
	f.tracker.Cache().Delete(guildID)
	log.WithField("guildID", guildID).Info("Removed member count cache for departed guild")
}

// HandleConfigUpdated refreshes the channel after the configuration changed
func (f *Feature) HandleConfigUpdated(ctx context.Context, event events.Event) {
	if _, ok := event.(events.ServerConfigUpdatedEvent); !ok {
		return
	}
	f.updateAsync(event.GuildScope())
}

func (f *Feature) updateAsync(guildID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncUpdateTimeout)
		defer cancel()
		if _, err := f.tracker.UpdateChannel(ctx, guildID, false); err != nil {
			log.WithError(err).WithField("guildID", guildID).Error("Failed to update member count channel")
		}
	}()
}
