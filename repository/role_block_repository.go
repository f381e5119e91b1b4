package repository

import (
	"context"
	"errors"
	"fmt"

	"symmbot/database"
	"symmbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// RoleBlockRepository implements interfaces.RoleBlockRepository for one guild
type RoleBlockRepository struct {
	q       queryable
	guildID int64
}

// NewRoleBlockRepository creates a repository bound to the pool
func NewRoleBlockRepository(db *database.DB, guildID int64) *RoleBlockRepository {
	return &RoleBlockRepository{q: db.Pool, guildID: guildID}
}

// newRoleBlockRepository creates a repository bound to a transaction
func newRoleBlockRepository(q queryable, guildID int64) *RoleBlockRepository {
	return &RoleBlockRepository{q: q, guildID: guildID}
}

// Add records the block, ignoring duplicates
func (r *RoleBlockRepository) Add(ctx context.Context, blockingRoleID, blockedRoleID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO role_blocks (guild_id, blocking_role_id, blocked_role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, blocking_role_id, blocked_role_id) DO NOTHING
	`, r.guildID, blockingRoleID, blockedRoleID)
	if err != nil {
		return fmt.Errorf("failed to add role block %d -> %d: %w", blockingRoleID, blockedRoleID, err)
	}
	return nil
}

// Remove deletes the block and reports whether it existed
func (r *RoleBlockRepository) Remove(ctx context.Context, blockingRoleID, blockedRoleID int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		DELETE FROM role_blocks
		WHERE guild_id = $1 AND blocking_role_id = $2 AND blocked_role_id = $3
	`, r.guildID, blockingRoleID, blockedRoleID)
	if err != nil {
		return false, fmt.Errorf("failed to remove role block %d -> %d: %w", blockingRoleID, blockedRoleID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetBlockedRoles returns the distinct roles blocked by any of userRoles
func (r *RoleBlockRepository) GetBlockedRoles(ctx context.Context, userRoles []int64) ([]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT blocked_role_id
		FROM role_blocks
		WHERE guild_id = $1 AND blocking_role_id = ANY($2)
		ORDER BY blocked_role_id
	`, r.guildID, idsOrEmpty(userRoles))
	if err != nil {
		return nil, fmt.Errorf("failed to get blocked roles: %w", err)
	}

	blocked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan blocked roles: %w", err)
	}
	return blocked, nil
}

// GetBlockingRole returns the lowest of userRoles that blocks roleID, or nil
func (r *RoleBlockRepository) GetBlockingRole(ctx context.Context, userRoles []int64, roleID int64) (*int64, error) {
	var blocking int64
	err := r.q.QueryRow(ctx, `
		SELECT blocking_role_id
		FROM role_blocks
		WHERE guild_id = $1 AND blocked_role_id = $2 AND blocking_role_id = ANY($3)
		ORDER BY blocking_role_id
		LIMIT 1
	`, r.guildID, roleID, idsOrEmpty(userRoles)).Scan(&blocking)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blocking role for %d: %w", roleID, err)
	}
	return &blocking, nil
}

// List returns every block of the guild
func (r *RoleBlockRepository) List(ctx context.Context) ([]*entities.RoleBlock, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, guild_id, blocking_role_id, blocked_role_id, created_at
		FROM role_blocks
		WHERE guild_id = $1
		ORDER BY blocking_role_id, blocked_role_id
	`, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role blocks: %w", err)
	}

	blocks, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.RoleBlock])
	if err != nil {
		return nil, fmt.Errorf("failed to scan role blocks: %w", err)
	}
	return blocks, nil
}
