package entities

import "time"

// ServerConfig represents per-guild bot configuration
type ServerConfig struct {
	ID                     int64     `db:"id"`
	GuildID                int64     `db:"guild_id"`
	MemberCountChannelID   *int64    `db:"member_count_channel_id"`  // Nullable - channel renamed to "Members: N"
	NotificationsChannelID *int64    `db:"notifications_channel_id"` // Nullable - join/leave announcements
	NewUserRoleIDs         []int64   `db:"new_user_role_ids"`        // Roles given to human members on join
	BotRoleIDs             []int64   `db:"bot_role_ids"`             // Roles given to bot members on join
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// HasMemberCountChannel checks if a member count channel is configured
func (c *ServerConfig) HasMemberCountChannel() bool {
	return c != nil && c.MemberCountChannelID != nil && *c.MemberCountChannelID > 0
}

// HasNotificationsChannel checks if a notifications channel is configured
func (c *ServerConfig) HasNotificationsChannel() bool {
	return c != nil && c.NotificationsChannelID != nil && *c.NotificationsChannelID > 0
}

// JoinRoles returns the roles to assign to a newly joined member
func (c *ServerConfig) JoinRoles(isBot bool) []int64 {
	if c == nil {
		return nil
	}
	if isBot {
		return c.BotRoleIDs
	}
	return c.NewUserRoleIDs
}

// ServerConfigUpdate carries a partial update; nil fields are left unchanged
type ServerConfigUpdate struct {
	MemberCountChannelID   *int64
	NotificationsChannelID *int64
	NewUserRoleIDs         []int64
	BotRoleIDs             []int64
}

// IsEmpty reports whether the update would change nothing
func (u ServerConfigUpdate) IsEmpty() bool {
	return u.MemberCountChannelID == nil && u.NotificationsChannelID == nil &&
		u.NewUserRoleIDs == nil && u.BotRoleIDs == nil
}

// Apply copies every provided field onto the config
func (u ServerConfigUpdate) Apply(c *ServerConfig) {
	if u.MemberCountChannelID != nil {
		c.MemberCountChannelID = u.MemberCountChannelID
	}
	if u.NotificationsChannelID != nil {
		c.NotificationsChannelID = u.NotificationsChannelID
	}
	if u.NewUserRoleIDs != nil {
		c.NewUserRoleIDs = u.NewUserRoleIDs
	}
	if u.BotRoleIDs != nil {
		c.BotRoleIDs = u.BotRoleIDs
	}
}
