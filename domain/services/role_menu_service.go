package services

import (
	"context"
	"fmt"

	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/interfaces"
)

// roleMenuService implements the RoleMenuService interface
type roleMenuService struct {
	menuRepo       interfaces.RoleMenuRepository
	eventPublisher interfaces.EventPublisher
}

// NewRoleMenuService creates a new role menu service
func NewRoleMenuService(menuRepo interfaces.RoleMenuRepository, eventPublisher interfaces.EventPublisher) interfaces.RoleMenuService {
	return &roleMenuService{
		menuRepo:       menuRepo,
		eventPublisher: eventPublisher,
	}
}

// NormalizeRoleGroups checks a requested layout before the menu message is posted.
// Duplicate and zero IDs are dropped, empty groups are skipped and groups wider
// than one button row are split over several rows.
func NormalizeRoleGroups(roleGroups [][]int64) ([][]int64, error) {
	seen := make(map[int64]bool)
	var normalized [][]int64
	total := 0

	for _, group := range roleGroups {
		var row []int64
		for _, roleID := range group {
			if roleID == 0 || seen[roleID] {
				continue
			}
			seen[roleID] = true
			total++
			row = append(row, roleID)
			if len(row) == entities.MaxRolesPerRow {
				normalized = append(normalized, row)
				row = nil
			}
		}
		if len(row) > 0 {
			normalized = append(normalized, row)
		}
	}

	if total == 0 {
		return nil, entities.ErrNoRoles
	}
	if total > entities.MaxRolesPerMenu || len(normalized) > entities.MaxRoleGroups {
		return nil, fmt.Errorf("%w: %d roles in %d rows, at most %d roles in %d rows fit",
			entities.ErrTooManyRoles, total, len(normalized), entities.MaxRolesPerMenu, entities.MaxRoleGroups)
	}

	return normalized, nil
}

// CreateMenu persists a posted menu and its buttons
func (s *roleMenuService) CreateMenu(ctx context.Context, menu *entities.RoleMenu, roleGroups [][]int64) (*entities.RoleMenu, error) {
	groups, err := NormalizeRoleGroups(roleGroups)
	if err != nil {
		return nil, err
	}

	menuID, err := s.menuRepo.Create(ctx, menu, groups)
	if err != nil {
		return nil, fmt.Errorf("failed to create role menu: %w", err)
	}
	menu.ID = menuID

	menu.Buttons = menu.Buttons[:0]
	for groupIndex, group := range groups {
		for position, roleID := range group {
			menu.Buttons = append(menu.Buttons, entities.RoleButton{
				MenuID:     menuID,
				RoleID:     roleID,
				Position:   position,
				GroupIndex: groupIndex,
			})
		}
	}

	if err := s.eventPublisher.Publish(events.RoleMenuCreatedEvent{
		GuildID:   menu.GuildID,
		MenuID:    menuID,
		MessageID: menu.MessageID,
		ChannelID: menu.ChannelID,
		RoleIDs:   menu.RoleIDs(),
		Exclusive: menu.Exclusive,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish role menu creation: %w", err)
	}

	return menu, nil
}

// GetMenuByMessage returns the menu posted as messageID, or ErrMenuNotFound
func (s *roleMenuService) GetMenuByMessage(ctx context.Context, messageID int64) (*entities.RoleMenu, error) {
	menu, err := s.menuRepo.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role menu for message %d: %w", messageID, err)
	}
	if menu == nil {
		return nil, entities.ErrMenuNotFound
	}
	return menu, nil
}

// GetMenuByRole returns the first menu of the guild offering roleID, or nil
func (s *roleMenuService) GetMenuByRole(ctx context.Context, roleID int64) (*entities.RoleMenu, error) {
	menu, err := s.menuRepo.GetByRoleID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role menu for role %d: %w", roleID, err)
	}
	return menu, nil
}

// DeleteMenu removes the menu record; reports whether one existed
func (s *roleMenuService) DeleteMenu(ctx context.Context, guildID, messageID int64) (bool, error) {
	deleted, err := s.menuRepo.DeleteByMessageID(ctx, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete role menu for message %d: %w", messageID, err)
	}
	if !deleted {
		return false, nil
	}

	if err := s.eventPublisher.Publish(events.RoleMenuDeletedEvent{
		GuildID:   guildID,
		MessageID: messageID,
	}); err != nil {
		return false, fmt.Errorf("failed to publish role menu deletion: %w", err)
	}
	return true, nil
}

// ListMenus returns every menu of the guild
func (s *roleMenuService) ListMenus(ctx context.Context) ([]*entities.RoleMenu, error) {
	menus, err := s.menuRepo.ListByGuild(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role menus: %w", err)
	}
	return menus, nil
}

// ResolveSelection decides what a click on a role button does.
//
// blockingRoleID is a role held by the member that blocks the clicked role, if any.
// The checks run in order: unknown role, toggle off, block, exclusivity, add.
func ResolveSelection(menu *entities.RoleMenu, memberRoles []int64, blockingRoleID *int64, clickedRoleID int64) (*entities.RoleSelection, error) {
	if menu == nil || !menu.HasRole(clickedRoleID) {
		return nil, entities.ErrRoleNotInMenu
	}

	held := make(map[int64]bool, len(memberRoles))
	for _, roleID := range memberRoles {
		held[roleID] = true
	}

	if held[clickedRoleID] {
		return &entities.RoleSelection{
			Action:        entities.SelectionRemoved,
			RoleID:        clickedRoleID,
			RolesToRemove: []int64{clickedRoleID},
		}, nil
	}

	if blockingRoleID != nil && held[*blockingRoleID] {
		return nil, &entities.RoleBlockedError{
			RoleID:         clickedRoleID,
			BlockingRoleID: *blockingRoleID,
		}
	}

	selection := &entities.RoleSelection{
		Action:     entities.SelectionAdded,
		RoleID:     clickedRoleID,
		RolesToAdd: []int64{clickedRoleID},
	}

	if menu.Exclusive {
		for _, roleID := range menu.RoleIDs() {
			if roleID != clickedRoleID && held[roleID] {
				selection.RolesToRemove = append(selection.RolesToRemove, roleID)
			}
		}
	}

	return selection, nil
}
