package settings

import (
	"testing"

	"symmbot/bot/common"
	"symmbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfigEmbed(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		embed := BuildConfigEmbed(nil)
		require.Len(t, embed.Fields, 4)
		for _, field := range embed.Fields[:2] {
			assert.Equal(t, "Not set", field.Value)
		}
		for _, field := range embed.Fields[2:] {
			assert.Equal(t, "None", field.Value)
		}
	})

	t.Run("populated", func(t *testing.T) {
		t.Parallel()
		memberCount := int64(100)
		embed := BuildConfigEmbed(&entities.ServerConfig{
			MemberCountChannelID: &memberCount,
			NewUserRoleIDs:       []int64{1, 2},
			BotRoleIDs:           []int64{3},
		})
		assert.Equal(t, "<#100>", embed.Fields[0].Value)
		assert.Equal(t, "Not set", embed.Fields[1].Value)
		assert.Equal(t, "<@&1>, <@&2>", embed.Fields[2].Value)
		assert.Equal(t, "<@&3>", embed.Fields[3].Value)
	})
}

func TestOptionalID(t *testing.T) {
	t.Parallel()

	opts := common.NewOptionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "channel", Type: discordgo.ApplicationCommandOptionChannel, Value: "555"},
	})

	got := optionalID(opts, "channel")
	require.NotNil(t, got)
	assert.Equal(t, int64(555), *got)
	assert.Nil(t, optionalID(opts, "missing"))
}

func TestChannelMessage(t *testing.T) {
	t.Parallel()

	id := int64(42)
	assert.Equal(t, "✅ Member count channel updated to <#42>", channelMessage("Member count channel", &id))
	assert.Equal(t, "✅ Notifications channel disabled", channelMessage("Notifications channel", nil))
}

func TestUnknownRoles(t *testing.T) {
	t.Parallel()

	guildRoles := map[int64]bool{11: true, 12: true}
	exists := func(roleID int64) bool { return guildRoles[roleID] }

	tests := []struct {
		name    string
		roleIDs []int64
		want    []int64
	}{
		{"no roles", nil, nil},
		{"all known", []int64{11, 12}, nil},
		{"user and channel ids rejected", []int64{11, 123456789012345678, 223456789012345678}, []int64{123456789012345678, 223456789012345678}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, unknownRoles(tt.roleIDs, exists))
		})
	}
}

func TestFormatIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "`1`, `22`", formatIDs([]int64{1, 22}))
}
