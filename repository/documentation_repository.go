package repository

import (
	"context"
	"errors"
	"fmt"

	"symmbot/database"
	"symmbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// DocumentationRepository implements interfaces.DocumentationRepository for one guild
type DocumentationRepository struct {
	q       queryable
	guildID int64
}

// NewDocumentationRepository creates a repository bound to the pool
func NewDocumentationRepository(db *database.DB, guildID int64) *DocumentationRepository {
	return &DocumentationRepository{q: db.Pool, guildID: guildID}
}

// newDocumentationRepository creates a repository bound to a transaction
func newDocumentationRepository(q queryable, guildID int64) *DocumentationRepository {
	return &DocumentationRepository{q: q, guildID: guildID}
}

// Upsert creates the document or replaces the content of an existing one
func (r *DocumentationRepository) Upsert(ctx context.Context, title, content string, createdBy int64) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO server_documentation (guild_id, title, content, created_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id, title) DO UPDATE
		SET content = EXCLUDED.content,
		    created_by = EXCLUDED.created_by,
		    updated_at = NOW()
		RETURNING id
	`, r.guildID, title, content, createdBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save documentation %q: %w", title, err)
	}
	return id, nil
}

// Delete removes the document and reports whether it existed
func (r *DocumentationRepository) Delete(ctx context.Context, title string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM server_documentation WHERE guild_id = $1 AND title = $2`, r.guildID, title)
	if err != nil {
		return false, fmt.Errorf("failed to delete documentation %q: %w", title, err)
	}
	return tag.RowsAffected() > 0, nil
}

// Get returns the document with the given title, or nil
func (r *DocumentationRepository) Get(ctx context.Context, title string) (*entities.ServerDocumentation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, guild_id, title, content, created_by, created_at, updated_at
		FROM server_documentation
		WHERE guild_id = $1 AND title = $2
	`, r.guildID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to get documentation %q: %w", title, err)
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[entities.ServerDocumentation])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan documentation %q: %w", title, err)
	}
	return doc, nil
}

// List returns all documents of the guild ordered by title
func (r *DocumentationRepository) List(ctx context.Context) ([]*entities.ServerDocumentation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, guild_id, title, content, created_by, created_at, updated_at
		FROM server_documentation
		WHERE guild_id = $1
		ORDER BY title
	`, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documentation: %w", err)
	}

	docs, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.ServerDocumentation])
	if err != nil {
		return nil, fmt.Errorf("failed to scan documentation: %w", err)
	}
	return docs, nil
}
