package repository

import (
	"context"
	"errors"
	"fmt"

	"symmbot/database"
	"symmbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const serverConfigColumns = `id, guild_id, member_count_channel_id, notifications_channel_id,
	new_user_role_ids, bot_role_ids, created_at, updated_at`

// ServerConfigRepository implements interfaces.ServerConfigRepository for one guild
type ServerConfigRepository struct {
	q       queryable
	guildID int64
}

// NewServerConfigRepository creates a repository bound to the pool
func NewServerConfigRepository(db *database.DB, guildID int64) *ServerConfigRepository {
	return &ServerConfigRepository{q: db.Pool, guildID: guildID}
}

// newServerConfigRepository creates a repository bound to a transaction
func newServerConfigRepository(q queryable, guildID int64) *ServerConfigRepository {
	return &ServerConfigRepository{q: q, guildID: guildID}
}

// GetByGuildID returns the config of the guild, or nil if none was stored
func (r *ServerConfigRepository) GetByGuildID(ctx context.Context) (*entities.ServerConfig, error) {
	query := `SELECT ` + serverConfigColumns + ` FROM server_configs WHERE guild_id = $1`

	config, err := scanServerConfig(r.q.QueryRow(ctx, query, r.guildID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server config for guild %d: %w", r.guildID, err)
	}
	return config, nil
}

// GetOrCreate returns the guild's config, inserting an empty one if needed
func (r *ServerConfigRepository) GetOrCreate(ctx context.Context) (*entities.ServerConfig, error) {
	// The no-op update makes RETURNING yield the existing row on conflict
	query := `
		INSERT INTO server_configs (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING ` + serverConfigColumns

	config, err := scanServerConfig(r.q.QueryRow(ctx, query, r.guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to get or create server config for guild %d: %w", r.guildID, err)
	}
	return config, nil
}

// Update persists every configurable field
func (r *ServerConfigRepository) Update(ctx context.Context, config *entities.ServerConfig) error {
	query := `
		UPDATE server_configs
		SET member_count_channel_id = $2,
		    notifications_channel_id = $3,
		    new_user_role_ids = $4,
		    bot_role_ids = $5,
		    updated_at = NOW()
		WHERE guild_id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		r.guildID,
		config.MemberCountChannelID,
		config.NotificationsChannelID,
		idsOrEmpty(config.NewUserRoleIDs),
		idsOrEmpty(config.BotRoleIDs),
	).Scan(&config.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("server config for guild %d not found", r.guildID)
	}
	if err != nil {
		return fmt.Errorf("failed to update server config for guild %d: %w", r.guildID, err)
	}
	return nil
}

func scanServerConfig(row pgx.Row) (*entities.ServerConfig, error) {
	var config entities.ServerConfig
	err := row.Scan(
		&config.ID,
		&config.GuildID,
		&config.MemberCountChannelID,
		&config.NotificationsChannelID,
		&config.NewUserRoleIDs,
		&config.BotRoleIDs,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
