package bot

// startWorkers starts the background workers bound to the bot's lifetime
func (b *Bot) startWorkers() {
	b.stopMemberCountWorker = b.memberCount.Tracker().StartUpdateWorker(b.ctx, b.config.Schedule)
}
