package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleMenu_Groups(t *testing.T) {
	menu := &RoleMenu{
		Buttons: []RoleButton{
			{RoleID: 1, Position: 0, GroupIndex: 0},
			{RoleID: 2, Position: 1, GroupIndex: 0},
			{RoleID: 3, Position: 2, GroupIndex: 1},
		},
	}

	assert.Equal(t, [][]int64{{1, 2}, {3}}, menu.Groups())
	assert.Equal(t, []int64{1, 2, 3}, menu.RoleIDs())
	assert.True(t, menu.HasRole(3))
	assert.False(t, menu.HasRole(4))
}

func TestServerConfigUpdate_Apply(t *testing.T) {
	channel := int64(10)
	existingNotify := int64(20)
	cfg := &ServerConfig{
		GuildID:                1,
		NotificationsChannelID: &existingNotify,
		BotRoleIDs:             []int64{5},
	}

	update := ServerConfigUpdate{
		MemberCountChannelID: &channel,
		NewUserRoleIDs:       []int64{7, 8},
	}
	assert.False(t, update.IsEmpty())
	update.Apply(cfg)

	assert.Equal(t, int64(10), *cfg.MemberCountChannelID)
	assert.Equal(t, int64(20), *cfg.NotificationsChannelID)
	assert.Equal(t, []int64{7, 8}, cfg.NewUserRoleIDs)
	assert.Equal(t, []int64{5}, cfg.BotRoleIDs)
	assert.True(t, ServerConfigUpdate{}.IsEmpty())
}

func TestServerConfig_JoinRoles(t *testing.T) {
	var missing *ServerConfig
	assert.Nil(t, missing.JoinRoles(false))
	assert.False(t, missing.HasMemberCountChannel())

	cfg := &ServerConfig{NewUserRoleIDs: []int64{1}, BotRoleIDs: []int64{2}}
	assert.Equal(t, []int64{1}, cfg.JoinRoles(false))
	assert.Equal(t, []int64{2}, cfg.JoinRoles(true))
}
