package repository

import (
	"context"
	"errors"
	"fmt"

	"symmbot/database"
	"symmbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const roleMenuColumns = `id, message_id, guild_id, channel_id, title, exclusive, created_by, created_at`

// RoleMenuRepository implements interfaces.RoleMenuRepository for one guild
type RoleMenuRepository struct {
	q       queryable
	guildID int64
}

// NewRoleMenuRepository creates a repository bound to the pool
func NewRoleMenuRepository(db *database.DB, guildID int64) *RoleMenuRepository {
	return &RoleMenuRepository{q: db.Pool, guildID: guildID}
}

// newRoleMenuRepository creates a repository bound to a transaction
func newRoleMenuRepository(q queryable, guildID int64) *RoleMenuRepository {
	return &RoleMenuRepository{q: q, guildID: guildID}
}

// Create inserts the menu and its buttons atomically and returns the menu ID
func (r *RoleMenuRepository) Create(ctx context.Context, menu *entities.RoleMenu, roleGroups [][]int64) (int64, error) {
	var menuID int64

	err := pgx.BeginFunc(ctx, r.q, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO role_menus (message_id, guild_id, channel_id, title, exclusive, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at
		`, menu.MessageID, r.guildID, menu.ChannelID, menu.Title, menu.Exclusive, menu.CreatedBy).Scan(&menuID, &menu.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert role menu: %w", err)
		}

		batch := &pgx.Batch{}
		for groupIndex, group := range roleGroups {
			for position, roleID := range group {
				batch.Queue(`
					INSERT INTO role_buttons (menu_id, role_id, position, group_index)
					VALUES ($1, $2, $3, $4)
				`, menuID, roleID, position, groupIndex)
			}
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert role buttons: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create role menu for message %d: %w", menu.MessageID, err)
	}

	menu.ID = menuID
	menu.GuildID = r.guildID
	return menuID, nil
}

// GetByMessageID returns the menu posted as messageID with its buttons, or nil
func (r *RoleMenuRepository) GetByMessageID(ctx context.Context, messageID int64) (*entities.RoleMenu, error) {
	query := `SELECT ` + roleMenuColumns + ` FROM role_menus WHERE guild_id = $1 AND message_id = $2`

	menu, err := scanRoleMenu(r.q.QueryRow(ctx, query, r.guildID, messageID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role menu for message %d: %w", messageID, err)
	}

	if err := r.loadButtons(ctx, []*entities.RoleMenu{menu}); err != nil {
		return nil, err
	}
	return menu, nil
}

// GetByRoleID returns the oldest menu of the guild offering roleID, or nil
func (r *RoleMenuRepository) GetByRoleID(ctx context.Context, roleID int64) (*entities.RoleMenu, error) {
	query := `
		SELECT m.id, m.message_id, m.guild_id, m.channel_id, m.title, m.exclusive, m.created_by, m.created_at
		FROM role_menus m
		JOIN role_buttons b ON b.menu_id = m.id
		WHERE m.guild_id = $1 AND b.role_id = $2
		ORDER BY m.id
		LIMIT 1
	`

	menu, err := scanRoleMenu(r.q.QueryRow(ctx, query, r.guildID, roleID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role menu for role %d: %w", roleID, err)
	}

	if err := r.loadButtons(ctx, []*entities.RoleMenu{menu}); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteByMessageID removes the menu and, through the foreign key, its buttons
func (r *RoleMenuRepository) DeleteByMessageID(ctx context.Context, messageID int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM role_menus WHERE guild_id = $1 AND message_id = $2`, r.guildID, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete role menu for message %d: %w", messageID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByGuild returns every menu of the guild, oldest first
func (r *RoleMenuRepository) ListByGuild(ctx context.Context) ([]*entities.RoleMenu, error) {
	query := `SELECT ` + roleMenuColumns + ` FROM role_menus WHERE guild_id = $1 ORDER BY id`

	rows, err := r.q.Query(ctx, query, r.guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role menus: %w", err)
	}
	defer rows.Close()

	menus := make([]*entities.RoleMenu, 0)
	for rows.Next() {
		menu, err := scanRoleMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role menu: %w", err)
		}
		menus = append(menus, menu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate role menus: %w", err)
	}

	if err := r.loadButtons(ctx, menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// loadButtons fills Buttons of every menu ordered by group then position
func (r *RoleMenuRepository) loadButtons(ctx context.Context, menus []*entities.RoleMenu) error {
	if len(menus) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.RoleMenu, len(menus))
	ids := make([]int64, 0, len(menus))
	for _, menu := range menus {
		byID[menu.ID] = menu
		ids = append(ids, menu.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, menu_id, role_id, position, group_index
		FROM role_buttons
		WHERE menu_id = ANY($1)
		ORDER BY menu_id, group_index, position
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load role buttons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var button entities.RoleButton
		if err := rows.Scan(&button.ID, &button.MenuID, &button.RoleID, &button.Position, &button.GroupIndex); err != nil {
			return fmt.Errorf("failed to scan role button: %w", err)
		}
		if menu, ok := byID[button.MenuID]; ok {
			menu.Buttons = append(menu.Buttons, button)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate role buttons: %w", err)
	}
	return nil
}

func scanRoleMenu(row pgx.Row) (*entities.RoleMenu, error) {
	var menu entities.RoleMenu
	err := row.Scan(
		&menu.ID,
		&menu.MessageID,
		&menu.GuildID,
		&menu.ChannelID,
		&menu.Title,
		&menu.Exclusive,
		&menu.CreatedBy,
		&menu.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &menu, nil
}
