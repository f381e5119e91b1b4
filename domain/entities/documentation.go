package entities

import "time"

// MaxDocumentationTitleLength mirrors the title column width
const MaxDocumentationTitleLength = 255

// ServerDocumentation is a titled piece of guild documentation used by /help
type ServerDocumentation struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
