package bot

import (
	domainevents "symmbot/domain/events"

	log "github.com/sirupsen/logrus"
)

// registerSubscriptions registers all bot-level event subscriptions
func (b *Bot) registerSubscriptions() {
	// Config changes may move or enable the member count channel
	b.eventBus.Subscribe(domainevents.EventTypeServerConfigUpdated, b.memberCount.HandleConfigUpdated)

	log.Info("Bot event subscriptions registered successfully")
}
