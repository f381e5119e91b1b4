package membercount

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const defaultCallTimeout = 10 * time.Second

// ChannelConfigSource resolves the member count channel of a guild
type ChannelConfigSource interface {
	MemberCountChannelID(ctx context.Context, guildID int64) (*int64, error)
}

// Tracker keeps the cached human counts reconciled and renames member count channels
type Tracker struct {
	platform Platform
	configs  ChannelConfigSource
	cache    *Cache
	group    singleflight.Group
	timeout  time.Duration
	now      func() time.Time
}

// NewTracker creates a tracker over the platform and config source
func NewTracker(platform Platform, configs ChannelConfigSource, cache *Cache) *Tracker {
	return &Tracker{
		platform: platform,
		configs:  configs,
		cache:    cache,
		timeout:  defaultCallTimeout,
		now:      time.Now,
	}
}

// Cache returns the tracker's cache
func (t *Tracker) Cache() *Cache {
	return t.cache
}

// ChannelName renders the member count channel name
func ChannelName(humanCount int) string {
	return "Members: " + strconv.Itoa(humanCount)
}

// HumanCount returns the cached count, recounting when forced or unknown.
// Concurrent recounts of one guild share a single platform round trip.
func (t *Tracker) HumanCount(ctx context.Context, guildID int64, force bool) (int, error) {
	if !force {
		if entry, ok := t.cache.Get(guildID); ok {
			return entry.HumanCount, nil
		}
	}

	v, err, shared := t.group.Do(strconv.FormatInt(guildID, 10), func() (interface{}, error) {
		return t.recount(ctx, guildID)
	})
	if err != nil {
		return 0, err
	}
	if shared {
		log.WithField("guildID", guildID).Debug("Joined in-flight member recount")
	}
	return v.(int), nil
}

// recount tries the full member list, then the approximate count scaled by the
// cached bot ratio, then the cached members alone
func (t *Tracker) recount(ctx context.Context, guildID int64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	logger := log.WithField("guildID", guildID)

	humans, err := t.countFromMemberList(ctx, guildID)
	if err == nil {
		logger.WithField("humanCount", humans).Info("Counted human members from member list")
		t.cache.Set(guildID, humans, t.now())
		return humans, nil
	}
	logger.WithError(err).Warn("Could not fetch complete member list, using approximation")

	humans, err = t.estimateFromApproximateCount(ctx, guildID)
	if err == nil {
		logger.WithField("humanCount", humans).Info("Estimated human members from approximate count")
		t.cache.Set(guildID, humans, t.now())
		return humans, nil
	}
	logger.WithError(err).Warn("Could not fetch approximate count, using cached members only")

	humans = countHumans(t.platform.CachedMembers(guildID))
	t.cache.Set(guildID, humans, t.now())
	return humans, nil
}

func (t *Tracker) countFromMemberList(ctx context.Context, guildID int64) (int, error) {
	members, err := t.platform.ListMembers(ctx, guildID)
	if err != nil {
		return 0, err
	}
	return countHumans(members), nil
}

func (t *Tracker) estimateFromApproximateCount(ctx context.Context, guildID int64) (int, error) {
	total, err := t.platform.ApproximateMemberCount(ctx, guildID)
	if err != nil {
		return 0, err
	}

	cached := t.platform.CachedMembers(guildID)
	if len(cached) == 0 {
		return total, nil
	}

	botRatio := float64(len(cached)-countHumans(cached)) / float64(len(cached))
	return int(float64(total) - float64(total)*botRatio), nil
}

func countHumans(members []*discordgo.Member) int {
	humans := 0
	for _, member := range members {
		if member != nil && member.User != nil && !member.User.Bot {
			humans++
		}
	}
	return humans
}

// UpdateChannel renames the guild's member count channel. It reports false
// without error when there is nothing it is allowed to update.
func (t *Tracker) UpdateChannel(ctx context.Context, guildID int64, force bool) (bool, error) {
	logger := log.WithField("guildID", guildID)

	configCtx, cancel := context.WithTimeout(ctx, t.timeout)
	channelID, err := t.configs.MemberCountChannelID(configCtx, guildID)
	cancel()
	if err != nil {
		return false, fmt.Errorf("failed to load member count channel: %w", err)
	}
	if channelID == nil {
		logger.Debug("No member count channel configured")
		return false, nil
	}
	logger = logger.WithField("channelID", *channelID)

	channelCtx, cancel := context.WithTimeout(ctx, t.timeout)
	channel, err := t.platform.Channel(channelCtx, *channelID)
	cancel()
	if err != nil {
		logger.WithError(err).Warn("Member count channel not found")
		return false, nil
	}

	countCtx, cancel := context.WithTimeout(ctx, t.timeout)
	humans, err := t.HumanCount(countCtx, guildID, force)
	cancel()
	if err != nil {
		return false, fmt.Errorf("failed to count members: %w", err)
	}

	if !t.platform.CanManageChannel(*channelID) {
		logger.Warn("Missing Manage Channels permission for member count channel")
		return false, nil
	}

	name := ChannelName(humans)
	if channel.Name == name {
		return true, nil
	}

	editCtx, cancel := context.WithTimeout(ctx, t.timeout)
	err = t.platform.RenameChannel(editCtx, *channelID, name)
	cancel()
	if err != nil {
		return false, fmt.Errorf("failed to rename member count channel: %w", err)
	}

	logger.WithField("name", name).Info("Updated member count channel")
	return true, nil
}
