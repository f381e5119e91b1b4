package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestGetDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		member *discordgo.Member
		want   string
	}{
		{"nil member", nil, "Unknown"},
		{"nickname wins", &discordgo.Member{Nick: "Nick", User: &discordgo.User{Username: "user"}}, "Nick"},
		{"global name", &discordgo.Member{User: &discordgo.User{Username: "user", GlobalName: "Global"}}, "Global"},
		{"username", &discordgo.Member{User: &discordgo.User{Username: "user"}}, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetDisplayName(tt.member))
		})
	}
}

func TestMemberRoleIDs(t *testing.T) {
	t.Parallel()

	member := &discordgo.Member{Roles: []string{"10", "bad", "20"}}
	assert.Equal(t, []int64{10, 20}, MemberRoleIDs(member))
	assert.Nil(t, MemberRoleIDs(nil))
}

func TestIsUserAdmin_Owners(t *testing.T) {
	t.Parallel()

	s := &discordgo.Session{State: discordgo.NewState()}
	err := s.State.GuildAdd(&discordgo.Guild{ID: "1", OwnerID: "500"})
	assert.NoError(t, err)

	assert.True(t, IsUserAdmin(s, "1", "42", 42), "bot owner")
	assert.True(t, IsUserAdmin(s, "1", "500", 0), "guild owner")
}

func TestIsUserAdmin_AdministratorRole(t *testing.T) {
	t.Parallel()

	s := &discordgo.Session{State: discordgo.NewState()}
	guild := &discordgo.Guild{
		ID:      "1",
		OwnerID: "500",
		Roles: []*discordgo.Role{
			{ID: "10", Permissions: discordgo.PermissionAdministrator},
			{ID: "11", Permissions: discordgo.PermissionSendMessages},
		},
	}
	assert.NoError(t, s.State.GuildAdd(guild))
	assert.NoError(t, s.State.MemberAdd(&discordgo.Member{GuildID: "1", User: &discordgo.User{ID: "7"}, Roles: []string{"10"}}))
	assert.NoError(t, s.State.MemberAdd(&discordgo.Member{GuildID: "1", User: &discordgo.User{ID: "8"}, Roles: []string{"11"}}))

	assert.True(t, IsUserAdmin(s, "1", "7", 0))
	assert.False(t, IsUserAdmin(s, "1", "8", 0))
}
