package services

import (
	"context"
	"errors"
	"testing"

	"symmbot/domain/entities"
	"symmbot/domain/events"
	"symmbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoleBlockService_AddBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		blocking    int64
		blocked     int64
		setupMocks  func(*testhelpers.MockRoleBlockRepository, *testhelpers.MockEventPublisher)
		wantErr     error
		errContains string
	}{
		{
			name:     "self block rejected",
			blocking: 1,
			blocked:  1,
			setupMocks: func(*testhelpers.MockRoleBlockRepository, *testhelpers.MockEventPublisher) {
			},
			wantErr: entities.ErrSelfBlock,
		},
		{
			name:     "block added",
			blocking: 1,
			blocked:  2,
			setupMocks: func(repo *testhelpers.MockRoleBlockRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("Add", mock.Anything, int64(1), int64(2)).Return(nil)
				pub.On("Publish", events.RoleBlocksChangedEvent{
					GuildID:        10,
					BlockingRoleID: 1,
					BlockedRoleID:  2,
					Added:          true,
				}).Return(nil)
			},
		},
		{
			name:     "repository error",
			blocking: 1,
			blocked:  2,
			setupMocks: func(repo *testhelpers.MockRoleBlockRepository, pub *testhelpers.MockEventPublisher) {
				repo.On("Add", mock.Anything, int64(1), int64(2)).Return(errors.New("db down"))
			},
			errContains: "failed to add role block",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockRepo := new(testhelpers.MockRoleBlockRepository)
			mockPublisher := new(testhelpers.MockEventPublisher)
			tt.setupMocks(mockRepo, mockPublisher)

			service := NewRoleBlockService(mockRepo, mockPublisher)
			err := service.AddBlock(context.Background(), 10, tt.blocking, tt.blocked)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errContains != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			default:
				require.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
			mockPublisher.AssertExpectations(t)
		})
	}
}

func TestRoleBlockService_RemoveBlock(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleBlockRepository)
	mockPublisher := new(testhelpers.MockEventPublisher)

	mockRepo.On("Remove", ctx, int64(1), int64(2)).Return(true, nil)
	mockRepo.On("Remove", ctx, int64(3), int64(4)).Return(false, nil)
	mockPublisher.On("Publish", events.RoleBlocksChangedEvent{GuildID: 10, BlockingRoleID: 1, BlockedRoleID: 2}).Return(nil).Once()

	service := NewRoleBlockService(mockRepo, mockPublisher)

	removed, err := service.RemoveBlock(ctx, 10, 1, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = service.RemoveBlock(ctx, 10, 3, 4)
	require.NoError(t, err)
	assert.False(t, removed)

	mockPublisher.AssertExpectations(t)
}

func TestRoleBlockService_Lookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleBlockRepository)
	blocking := int64(9)

	mockRepo.On("GetBlockingRole", ctx, []int64{9, 10}, int64(1)).Return(&blocking, nil)
	mockRepo.On("GetBlockedRoles", ctx, []int64{9, 10}).Return([]int64{1, 2}, nil)

	service := NewRoleBlockService(mockRepo, new(testhelpers.MockEventPublisher))

	got, err := service.BlockingRole(ctx, []int64{9, 10}, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), *got)

	blocked, err := service.BlockedRoles(ctx, []int64{9, 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, blocked)

	// Members without roles never reach the repository
	got, err = service.BlockingRole(ctx, nil, 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	blocked, err = service.BlockedRoles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, blocked)

	mockRepo.AssertExpectations(t)
}
