package membercount

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Schedule configures startup initialization and the periodic update loop
type Schedule struct {
	StartupDelay    time.Duration
	PerGuildTimeout time.Duration
	GuildsPerSecond float64
	Interval        time.Duration
	FullRefresh     time.Duration
}

// DefaultSchedule returns the production timings
func DefaultSchedule() Schedule {
	return Schedule{
		StartupDelay:    2 * time.Second,
		PerGuildTimeout: 15 * time.Second,
		GuildsPerSecond: 1,
		Interval:        15 * time.Minute,
		FullRefresh:     time.Hour,
	}
}

// InitializeAll force-refreshes every guild one after another, paced by the schedule
func (t *Tracker) InitializeAll(ctx context.Context, schedule Schedule) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(schedule.StartupDelay):
	}

	guildIDs := t.platform.GuildIDs()
	log.WithField("guildCount", len(guildIDs)).Info("Initializing member counts")

	limiter := rate.NewLimiter(rate.Limit(schedule.GuildsPerSecond), 1)
	updated := 0
	for _, guildID := range guildIDs {
		if err := limiter.Wait(ctx); err != nil {
			return
		}

		guildCtx, cancel := context.WithTimeout(ctx, schedule.PerGuildTimeout)
		ok, err := t.UpdateChannel(guildCtx, guildID, true)
		cancel()
		if err != nil {
			log.WithError(err).WithField("guildID", guildID).Error("Failed to initialize member count")
			continue
		}
		if ok {
			updated++
		}
	}

	log.WithFields(log.Fields{
		"guildCount": len(guildIDs),
		"updated":    updated,
	}).Info("Member count initialization finished")
}

// updateAll updates every guild, recounting when force is set
func (t *Tracker) updateAll(ctx context.Context, force bool) {
	for _, guildID := range t.platform.GuildIDs() {
		if ctx.Err() != nil {
			return
		}
		if _, err := t.UpdateChannel(ctx, guildID, force); err != nil {
			log.WithError(err).WithField("guildID", guildID).Error("Failed to update member count")
		}
	}
}

// StartUpdateWorker periodically updates every guild's member count channel.
// Returns a cleanup function to stop the worker gracefully.
func (t *Tracker) StartUpdateWorker(ctx context.Context, schedule Schedule) func() {
	ticker := time.NewTicker(schedule.Interval)
	stopChan := make(chan struct{})
	lastFullRefresh := t.now()

	go func() {
		log.WithFields(log.Fields{
			"interval":    schedule.Interval,
			"fullRefresh": schedule.FullRefresh,
		}).Info("Member count worker started")

		for {
			select {
			case <-ctx.Done():
				log.Info("Member count worker shutting down (context cancelled)...")
				return
			case <-stopChan:
				log.Info("Member count worker shutting down (stop requested)...")
				return
			case <-ticker.C:
				force := t.now().Sub(lastFullRefresh) >= schedule.FullRefresh
				if force {
					lastFullRefresh = t.now()
				}
				t.updateAll(ctx, force)
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
	}
}
