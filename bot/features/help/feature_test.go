package help

import (
	"context"
	"strings"
	"testing"
	"time"

	"symmbot/bot/common"
	"symmbot/domain/services"
	"symmbot/domain/testhelpers"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFeature(client *testhelpers.MockCompletionClient) (*Feature, *services.ChannelHistory) {
	history := services.NewChannelHistory(25)
	docs := new(testhelpers.MockDocumentationProvider)
	docs.On("CombinedDocumentation", mock.Anything, mock.Anything).Return("", nil).Maybe()

	var svc *services.HelpService
	if client != nil {
		svc = services.NewHelpService(client, docs, history, services.HelpServiceConfig{Model: "test"})
	} else {
		svc = services.NewHelpService(nil, docs, history, services.HelpServiceConfig{})
	}
	return NewFeature(svc), history
}

func guildMessage(content string) *discordgo.Message {
	return &discordgo.Message{
		GuildID:   "1",
		ChannelID: "2",
		Content:   content,
		Timestamp: time.Unix(1700000000, 0),
		Author:    &discordgo.User{ID: "3", Username: "alice"},
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message func() *discordgo.Message
		want    bool
	}{
		{"human guild message", func() *discordgo.Message { return guildMessage("hello") }, true},
		{"bot author", func() *discordgo.Message {
			m := guildMessage("beep")
			m.Author.Bot = true
			return m
		}, false},
		{"direct message", func() *discordgo.Message {
			m := guildMessage("hi")
			m.GuildID = ""
			return m
		}, false},
		{"blank content", func() *discordgo.Message { return guildMessage("   ") }, false},
		{"no author", func() *discordgo.Message {
			m := guildMessage("hi")
			m.Author = nil
			return m
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			feature, history := newFeature(nil)

			assert.Equal(t, tt.want, feature.Record(tt.message()))
			if tt.want {
				assert.Len(t, history.Recent(1, 2, 0), 1)
			} else {
				assert.Empty(t, history.Recent(1, 2, 0))
			}
		})
	}
}

func TestRecord_PrefersNickname(t *testing.T) {
	t.Parallel()
	feature, history := newFeature(nil)

	m := guildMessage("hello")
	m.Author.GlobalName = "Alice G"
	m.Member = &discordgo.Member{Nick: "Ally"}
	require.True(t, feature.Record(m))

	recent := history.Recent(1, 2, 1)
	require.Len(t, recent, 1)
	assert.Equal(t, "Ally", recent[0].AuthorName)
	assert.Equal(t, int64(3), recent[0].AuthorID)
	assert.Equal(t, "hello", recent[0].Content)
}

func TestHandleGuildDelete(t *testing.T) {
	t.Parallel()
	feature, history := newFeature(nil)
	require.True(t, feature.Record(guildMessage("hello")))

	feature.HandleGuildDelete(nil, &discordgo.GuildDelete{Guild: &discordgo.Guild{ID: "1", Unavailable: true}})
	assert.Len(t, history.Recent(1, 2, 0), 1, "outages keep history")

	feature.HandleGuildDelete(nil, &discordgo.GuildDelete{Guild: &discordgo.Guild{ID: "1"}})
	assert.Empty(t, history.Recent(1, 2, 0))
}

func TestReply_ChunksLongAnswers(t *testing.T) {
	t.Parallel()

	client := new(testhelpers.MockCompletionClient)
	long := strings.Repeat("word ", 900)
	client.On("Complete", mock.Anything, mock.Anything).Return(long, nil)

	feature, _ := newFeature(client)
	chunks := feature.Reply(context.Background(), services.HelpRequest{GuildID: 1, ChannelID: 2, UserID: 3, UserName: "alice", Question: "rules?"})

	require.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len([]rune(chunk)), common.MaxMessageLength)
	}
	client.AssertExpectations(t)
}

func TestReply_Disabled(t *testing.T) {
	t.Parallel()
	feature, _ := newFeature(nil)

	chunks := feature.Reply(context.Background(), services.HelpRequest{Question: "hi"})
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "isn't configured")
}
