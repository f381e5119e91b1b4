package roleblocks

import (
	"strings"
	"testing"

	"symmbot/bot/common"
	"symmbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBlockList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		blocks []*entities.RoleBlock
		want   string
	}{
		{
			name: "empty",
			want: "No role blocks are configured.",
		},
		{
			name: "grouped by blocking role",
			blocks: []*entities.RoleBlock{
				{BlockingRoleID: 1, BlockedRoleID: 2},
				{BlockingRoleID: 3, BlockedRoleID: 4},
				{BlockingRoleID: 1, BlockedRoleID: 5},
			},
			want: "**Role blocks**\n<@&1> blocks <@&2>, <@&5>\n<@&3> blocks <@&4>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatBlockList(tt.blocks))
		})
	}
}

func TestFormatBlockList_LargeGuildFitsMessages(t *testing.T) {
	t.Parallel()

	var blocks []*entities.RoleBlock
	for blocking := int64(0); blocking < 20; blocking++ {
		for blocked := int64(0); blocked < 10; blocked++ {
			blocks = append(blocks, &entities.RoleBlock{
				BlockingRoleID: 100000000000000000 + blocking,
				BlockedRoleID:  200000000000000000 + blocked,
			})
		}
	}

	list := FormatBlockList(blocks)
	require.Greater(t, len(list), common.MaxMessageLength)

	chunks := common.ChunkMessage(list, common.MaxMessageLength)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), common.MaxMessageLength)
	}
	assert.Equal(t, 20, strings.Count(strings.Join(chunks, "\n"), " blocks "))
}
