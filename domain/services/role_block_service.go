package services

import (
	"context"
	"fmt"

	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/interfaces"
)

// roleBlockService implements the RoleBlockService interface
type roleBlockService struct {
	blockRepo      interfaces.RoleBlockRepository
	eventPublisher interfaces.EventPublisher
}

// NewRoleBlockService creates a new role block service
func NewRoleBlockService(blockRepo interfaces.RoleBlockRepository, eventPublisher interfaces.EventPublisher) interfaces.RoleBlockService {
	return &roleBlockService{
		blockRepo:      blockRepo,
		eventPublisher: eventPublisher,
	}
}

// AddBlock stops holders of blockingRoleID from selecting blockedRoleID
func (s *roleBlockService) AddBlock(ctx context.Context, guildID, blockingRoleID, blockedRoleID int64) error {
	if blockingRoleID == blockedRoleID {
		return entities.ErrSelfBlock
	}

	if err := s.blockRepo.Add(ctx, blockingRoleID, blockedRoleID); err != nil {
		return fmt.Errorf("failed to add role block: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RoleBlocksChangedEvent{
		GuildID:        guildID,
		BlockingRoleID: blockingRoleID,
		BlockedRoleID:  blockedRoleID,
		Added:          true,
	}); err != nil {
		return fmt.Errorf("failed to publish role block change: %w", err)
	}
	return nil
}

// RemoveBlock deletes a block; reports whether it existed
func (s *roleBlockService) RemoveBlock(ctx context.Context, guildID, blockingRoleID, blockedRoleID int64) (bool, error) {
	removed, err := s.blockRepo.Remove(ctx, blockingRoleID, blockedRoleID)
	if err != nil {
		return false, fmt.Errorf("failed to remove role block: %w", err)
	}
	if !removed {
		return false, nil
	}

	if err := s.eventPublisher.Publish(events.RoleBlocksChangedEvent{
		GuildID:        guildID,
		BlockingRoleID: blockingRoleID,
		BlockedRoleID:  blockedRoleID,
	}); err != nil {
		return false, fmt.Errorf("failed to publish role block change: %w", err)
	}
	return true, nil
}

// ListBlocks returns every block of the guild
func (s *roleBlockService) ListBlocks(ctx context.Context) ([]*entities.RoleBlock, error) {
	blocks, err := s.blockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list role blocks: %w", err)
	}
	return blocks, nil
}

// BlockingRole returns a held role that blocks roleID, or nil
func (s *roleBlockService) BlockingRole(ctx context.Context, memberRoles []int64, roleID int64) (*int64, error) {
	if len(memberRoles) == 0 {
		return nil, nil
	}
	blocking, err := s.blockRepo.GetBlockingRole(ctx, memberRoles, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up blocking role: %w", err)
	}
	return blocking, nil
}

// BlockedRoles returns every role the member cannot select
func (s *roleBlockService) BlockedRoles(ctx context.Context, memberRoles []int64) ([]int64, error) {
	if len(memberRoles) == 0 {
		return []int64{}, nil
	}
	blocked, err := s.blockRepo.GetBlockedRoles(ctx, memberRoles)
	if err != nil {
		return nil, fmt.Errorf("failed to look up blocked roles: %w", err)
	}
	return blocked, nil
}
