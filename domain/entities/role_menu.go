package entities

import "time"

const (
	// MaxRolesPerRow matches the number of buttons Discord allows in one action row
	MaxRolesPerRow = 5
	// MaxRoleGroups matches the number of action rows Discord allows on one message
	MaxRoleGroups = 5
	// MaxRolesPerMenu is the total button capacity of a single menu message
	MaxRolesPerMenu = MaxRolesPerRow * MaxRoleGroups
)

// RoleMenu is a posted message whose buttons toggle roles
type RoleMenu struct {
	ID        int64        `db:"id"`
	MessageID int64        `db:"message_id"`
	GuildID   int64        `db:"guild_id"`
	ChannelID int64        `db:"channel_id"`
	Title     string       `db:"title"`
	Exclusive bool         `db:"exclusive"` // Selecting a role removes every other role of the menu
	CreatedBy int64        `db:"created_by"`
	CreatedAt time.Time    `db:"created_at"`
	Buttons   []RoleButton `db:"-"`
}

// RoleButton is one role button of a menu
type RoleButton struct {
	ID         int64 `db:"id"`
	MenuID     int64 `db:"menu_id"`
	RoleID     int64 `db:"role_id"`
	Position   int   `db:"position"`
	GroupIndex int   `db:"group_index"`
}

// RoleIDs returns the role IDs of the menu in button order
func (m *RoleMenu) RoleIDs() []int64 {
	ids := make([]int64, 0, len(m.Buttons))
	for _, b := range m.Buttons {
		ids = append(ids, b.RoleID)
	}
	return ids
}

// HasRole reports whether the menu offers the role
func (m *RoleMenu) HasRole(roleID int64) bool {
	for _, b := range m.Buttons {
		if b.RoleID == roleID {
			return true
		}
	}
	return false
}

// Groups returns the role IDs split by group, preserving position order
func (m *RoleMenu) Groups() [][]int64 {
	var groups [][]int64
	index := map[int]int{}
	for _, b := range m.Buttons {
		i, ok := index[b.GroupIndex]
		if !ok {
			i = len(groups)
			index[b.GroupIndex] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b.RoleID)
	}
	return groups
}

// SelectionAction describes the outcome of a role button click
type SelectionAction string

const (
	SelectionAdded   SelectionAction = "added"
	SelectionRemoved SelectionAction = "removed"
)

// RoleSelection is the plan computed for a click; the caller applies it to the member
type RoleSelection struct {
	Action        SelectionAction
	RoleID        int64
	RolesToAdd    []int64
	RolesToRemove []int64
}
