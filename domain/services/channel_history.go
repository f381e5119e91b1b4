package services

import (
	"fmt"
	"strings"
	"sync"

	"symmbot/domain/entities"
)

const (
	// DefaultHistorySize is how many messages are remembered per channel
	DefaultHistorySize = 25
	// DefaultHistoryPromptSize is how many of them are shown to the model
	DefaultHistoryPromptSize = 10

	emptyHistoryText = "No message history available."
)

type channelKey struct {
	guildID   int64
	channelID int64
}

// ChannelHistory keeps the most recent messages of every channel in memory
type ChannelHistory struct {
	mu       sync.Mutex
	capacity int
	channels map[channelKey][]entities.HistoryMessage
}

// NewChannelHistory creates a history holding up to capacity messages per channel
func NewChannelHistory(capacity int) *ChannelHistory {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &ChannelHistory{
		capacity: capacity,
		channels: make(map[channelKey][]entities.HistoryMessage),
	}
}

// Add appends a message, dropping the oldest once the channel is full
func (h *ChannelHistory) Add(guildID, channelID int64, msg entities.HistoryMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := channelKey{guildID: guildID, channelID: channelID}
	messages := append(h.channels[key], msg)
	if len(messages) > h.capacity {
		messages = append([]entities.HistoryMessage(nil), messages[len(messages)-h.capacity:]...)
	}
	h.channels[key] = messages
}

// Recent returns up to max of the newest messages, oldest first
func (h *ChannelHistory) Recent(guildID, channelID int64, max int) []entities.HistoryMessage {
	h.mu.Lock()
	defer h.mu.Unlock()

	messages := h.channels[channelKey{guildID: guildID, channelID: channelID}]
	if max > 0 && len(messages) > max {
		messages = messages[len(messages)-max:]
	}
	return append([]entities.HistoryMessage(nil), messages...)
}

// Format renders the newest max messages as "name: content" lines
func (h *ChannelHistory) Format(guildID, channelID int64, max int) string {
	messages := h.Recent(guildID, channelID, max)
	if len(messages) == 0 {
		return emptyHistoryText
	}

	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.AuthorName, msg.Content))
	}
	return strings.Join(lines, "\n")
}

// Forget drops every channel of a guild
func (h *ChannelHistory) Forget(guildID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key := range h.channels {
		if key.guildID == guildID {
			delete(h.channels, key)
		}
	}
}
