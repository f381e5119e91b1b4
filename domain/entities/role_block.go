package entities

import "time"

// RoleBlock prevents members holding BlockingRoleID from selecting BlockedRoleID
type RoleBlock struct {
	ID             int64     `db:"id"`
	GuildID        int64     `db:"guild_id"`
	BlockingRoleID int64     `db:"blocking_role_id"`
	BlockedRoleID  int64     `db:"blocked_role_id"`
	CreatedAt      time.Time `db:"created_at"`
}
