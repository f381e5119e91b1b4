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

func int64Ptr(v int64) *int64 { return &v }

func testMenu(exclusive bool, roles ...int64) *entities.RoleMenu {
	menu := &entities.RoleMenu{ID: 1, MessageID: 100, GuildID: 10, Exclusive: exclusive}
	for i, roleID := range roles {
		menu.Buttons = append(menu.Buttons, entities.RoleButton{RoleID: roleID, Position: i})
	}
	return menu
}

func TestResolveSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		menu        *entities.RoleMenu
		memberRoles []int64
		blocking    *int64
		clicked     int64
		wantErr     error
		want        *entities.RoleSelection
	}{
		{
			name:    "role not in menu",
			menu:    testMenu(false, 1, 2),
			clicked: 3,
			wantErr: entities.ErrRoleNotInMenu,
		},
		{
			name:        "held role is toggled off",
			menu:        testMenu(true, 1, 2),
			memberRoles: []int64{1, 2},
			clicked:     1,
			want: &entities.RoleSelection{
				Action:        entities.SelectionRemoved,
				RoleID:        1,
				RolesToRemove: []int64{1},
			},
		},
		{
			name:        "toggle off wins over a block",
			menu:        testMenu(false, 1),
			memberRoles: []int64{1, 9},
			blocking:    int64Ptr(9),
			clicked:     1,
			want: &entities.RoleSelection{
				Action:        entities.SelectionRemoved,
				RoleID:        1,
				RolesToRemove: []int64{1},
			},
		},
		{
			name:        "blocked by a held role",
			menu:        testMenu(true, 1, 2),
			memberRoles: []int64{2, 9},
			blocking:    int64Ptr(9),
			clicked:     1,
			wantErr:     entities.ErrRoleBlocked,
		},
		{
			name:        "blocking role not held is ignored",
			menu:        testMenu(false, 1),
			memberRoles: []int64{},
			blocking:    int64Ptr(9),
			clicked:     1,
			want: &entities.RoleSelection{
				Action:     entities.SelectionAdded,
				RoleID:     1,
				RolesToAdd: []int64{1},
			},
		},
		{
			name:        "exclusive menu removes other menu roles",
			menu:        testMenu(true, 1, 2, 3),
			memberRoles: []int64{2, 3, 50},
			clicked:     1,
			want: &entities.RoleSelection{
				Action:        entities.SelectionAdded,
				RoleID:        1,
				RolesToAdd:    []int64{1},
				RolesToRemove: []int64{2, 3},
			},
		},
		{
			name:        "non exclusive menu keeps other roles",
			menu:        testMenu(false, 1, 2),
			memberRoles: []int64{2},
			clicked:     1,
			want: &entities.RoleSelection{
				Action:     entities.SelectionAdded,
				RoleID:     1,
				RolesToAdd: []int64{1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ResolveSelection(tt.menu, tt.memberRoles, tt.blocking, tt.clicked)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveSelection_BlockedReportsBlockingRole(t *testing.T) {
	t.Parallel()

	_, err := ResolveSelection(testMenu(false, 1, 2), []int64{9}, int64Ptr(9), 1)

	var blocked *entities.RoleBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, int64(1), blocked.RoleID)
	assert.Equal(t, int64(9), blocked.BlockingRoleID)
	assert.ErrorIs(t, err, entities.ErrRoleBlocked)
}

func TestNormalizeRoleGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   [][]int64
		want    [][]int64
		wantErr error
	}{
		{
			name:    "no roles",
			input:   [][]int64{{}, {0}},
			wantErr: entities.ErrNoRoles,
		},
		{
			name:  "duplicates and empty groups dropped",
			input: [][]int64{{1, 2, 1}, {}, {2, 3}},
			want:  [][]int64{{1, 2}, {3}},
		},
		{
			name:  "wide group split into rows",
			input: [][]int64{{1, 2, 3, 4, 5, 6, 7}},
			want:  [][]int64{{1, 2, 3, 4, 5}, {6, 7}},
		},
		{
			name:    "too many rows",
			input:   [][]int64{{1}, {2}, {3}, {4}, {5}, {6}},
			wantErr: entities.ErrTooManyRoles,
		},
		{
			name: "too many roles",
			input: func() [][]int64 {
				var group []int64
				for i := int64(1); i <= 26; i++ {
					group = append(group, i)
				}
				return [][]int64{group}
			}(),
			wantErr: entities.ErrTooManyRoles,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeRoleGroups(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleMenuService_CreateMenu(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleMenuRepository)
	mockPublisher := new(testhelpers.MockEventPublisher)

	menu := &entities.RoleMenu{MessageID: 100, GuildID: 10, ChannelID: 20, Exclusive: true, CreatedBy: 30}
	mockRepo.On("Create", ctx, menu, [][]int64{{1, 2}, {3}}).Return(int64(42), nil)
	mockPublisher.On("Publish", mock.MatchedBy(func(e events.RoleMenuCreatedEvent) bool {
		return e.MenuID == 42 && e.MessageID == 100 && assert.ObjectsAreEqual([]int64{1, 2, 3}, e.RoleIDs)
	})).Return(nil)

	service := NewRoleMenuService(mockRepo, mockPublisher)
	created, err := service.CreateMenu(ctx, menu, [][]int64{{1, 2, 2}, {3}})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, [][]int64{{1, 2}, {3}}, created.Groups())
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestRoleMenuService_CreateMenu_RepositoryError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleMenuRepository)
	mockPublisher := new(testhelpers.MockEventPublisher)

	mockRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(int64(0), errors.New("duplicate message"))

	service := NewRoleMenuService(mockRepo, mockPublisher)
	_, err := service.CreateMenu(ctx, &entities.RoleMenu{}, [][]int64{{1}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create role menu")
	mockPublisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestRoleMenuService_GetMenuByMessage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleMenuRepository)
	mockRepo.On("GetByMessageID", ctx, int64(1)).Return(nil, nil)
	mockRepo.On("GetByMessageID", ctx, int64(2)).Return(testMenu(false, 5), nil)

	service := NewRoleMenuService(mockRepo, new(testhelpers.MockEventPublisher))

	_, err := service.GetMenuByMessage(ctx, 1)
	assert.ErrorIs(t, err, entities.ErrMenuNotFound)

	menu, err := service.GetMenuByMessage(ctx, 2)
	require.NoError(t, err)
	assert.True(t, menu.HasRole(5))
}

func TestRoleMenuService_GetMenuByRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleMenuRepository)
	mockRepo.On("GetByRoleID", ctx, int64(5)).Return(testMenu(false, 5, 6), nil)
	mockRepo.On("GetByRoleID", ctx, int64(7)).Return(nil, nil)
	mockRepo.On("GetByRoleID", ctx, int64(8)).Return(nil, errors.New("connection reset"))

	service := NewRoleMenuService(mockRepo, new(testhelpers.MockEventPublisher))

	menu, err := service.GetMenuByRole(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(100), menu.MessageID)

	menu, err = service.GetMenuByRole(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, menu)

	_, err = service.GetMenuByRole(ctx, 8)
	assert.ErrorContains(t, err, "connection reset")
}

func TestRoleMenuService_DeleteMenu(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockRoleMenuRepository)
	mockPublisher := new(testhelpers.MockEventPublisher)

	mockRepo.On("DeleteByMessageID", ctx, int64(100)).Return(true, nil)
	mockRepo.On("DeleteByMessageID", ctx, int64(200)).Return(false, nil)
	mockPublisher.On("Publish", events.RoleMenuDeletedEvent{GuildID: 10, MessageID: 100}).Return(nil).Once()

	service := NewRoleMenuService(mockRepo, mockPublisher)

	deleted, err := service.DeleteMenu(ctx, 10, 100)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = service.DeleteMenu(ctx, 10, 200)
	require.NoError(t, err)
	assert.False(t, deleted)

	mockPublisher.AssertExpectations(t)
}
