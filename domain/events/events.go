package events

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeServerConfigUpdated  EventType = "server_config_updated"
	EventTypeRoleBlocksChanged    EventType = "role_blocks_changed"
	EventTypeDocumentationChanged EventType = "documentation_changed"
	EventTypeRoleMenuCreated      EventType = "role_menu_created"
	EventTypeRoleMenuDeleted      EventType = "role_menu_deleted"
	EventTypeMemberJoined         EventType = "member_joined"
	EventTypeMemberLeft           EventType = "member_left"
)

// AllEventTypes lists every event type, used by subscribers that forward everything
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeServerConfigUpdated,
		EventTypeRoleBlocksChanged,
		EventTypeDocumentationChanged,
		EventTypeRoleMenuCreated,
		EventTypeRoleMenuDeleted,
		EventTypeMemberJoined,
		EventTypeMemberLeft,
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
	GuildScope() int64
}

// ServerConfigUpdatedEvent is emitted after a guild's configuration changed
type ServerConfigUpdatedEvent struct {
	GuildID                int64   `json:"guild_id"`
	MemberCountChannelID   *int64  `json:"member_count_channel_id,omitempty"`
	NotificationsChannelID *int64  `json:"notifications_channel_id,omitempty"`
	NewUserRoleIDs         []int64 `json:"new_user_role_ids"`
	BotRoleIDs             []int64 `json:"bot_role_ids"`
}

func (e ServerConfigUpdatedEvent) Type() EventType { return EventTypeServerConfigUpdated }
func (e ServerConfigUpdatedEvent) GuildScope() int64 { return e.GuildID }

// RoleBlocksChangedEvent is emitted when a block is added or removed
type RoleBlocksChangedEvent struct {
	GuildID        int64 `json:"guild_id"`
	BlockingRoleID int64 `json:"blocking_role_id"`
	BlockedRoleID  int64 `json:"blocked_role_id"`
	Added          bool  `json:"added"`
}

func (e RoleBlocksChangedEvent) Type() EventType { return EventTypeRoleBlocksChanged }
func (e RoleBlocksChangedEvent) GuildScope() int64 { return e.GuildID }

// DocumentationChangedEvent is emitted when documentation is saved or deleted
type DocumentationChangedEvent struct {
	GuildID int64  `json:"guild_id"`
	Title   string `json:"title"`
	Deleted bool   `json:"deleted"`
	UserID  int64  `json:"user_id"`
}

func (e DocumentationChangedEvent) Type() EventType { return EventTypeDocumentationChanged }
func (e DocumentationChangedEvent) GuildScope() int64 { return e.GuildID }

// RoleMenuCreatedEvent is emitted after a role menu was persisted
type RoleMenuCreatedEvent struct {
	GuildID   int64   `json:"guild_id"`
	MenuID    int64   `json:"menu_id"`
	MessageID int64   `json:"message_id"`
	ChannelID int64   `json:"channel_id"`
	RoleIDs   []int64 `json:"role_ids"`
	Exclusive bool    `json:"exclusive"`
}

func (e RoleMenuCreatedEvent) Type() EventType { return EventTypeRoleMenuCreated }
func (e RoleMenuCreatedEvent) GuildScope() int64 { return e.GuildID }

// RoleMenuDeletedEvent is emitted after a role menu record was removed
type RoleMenuDeletedEvent struct {
	GuildID   int64 `json:"guild_id"`
	MessageID int64 `json:"message_id"`
}

func (e RoleMenuDeletedEvent) Type() EventType { return EventTypeRoleMenuDeleted }
func (e RoleMenuDeletedEvent) GuildScope() int64 { return e.GuildID }

// MemberJoinedEvent is emitted when a member joins a guild
type MemberJoinedEvent struct {
	GuildID  int64  `json:"guild_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsBot    bool   `json:"is_bot"`
}

func (e MemberJoinedEvent) Type() EventType { return EventTypeMemberJoined }
func (e MemberJoinedEvent) GuildScope() int64 { return e.GuildID }

// MemberLeftEvent is emitted when a member leaves a guild
type MemberLeftEvent struct {
	GuildID  int64  `json:"guild_id"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	IsBot    bool   `json:"is_bot"`
}

func (e MemberLeftEvent) Type() EventType { return EventTypeMemberLeft }
func (e MemberLeftEvent) GuildScope() int64 { return e.GuildID }
