package rolemenus

import (
	"context"
	"errors"
	"testing"

	"symmbot/domain/services"
	"symmbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockingRole(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	memberRoles := []int64{9, 10}

	t.Run("role not blocked skips the blocking lookup", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockRoleBlockRepository)
		repo.On("GetBlockedRoles", ctx, memberRoles).Return([]int64{2}, nil)

		blocking, err := blockingRole(ctx, services.NewRoleBlockService(repo, new(testhelpers.MockEventPublisher)), memberRoles, 1)
		require.NoError(t, err)
		assert.Nil(t, blocking)
		repo.AssertNotCalled(t, "GetBlockingRole", ctx, memberRoles, int64(1))
	})

	t.Run("blocked role reports the held blocking role", func(t *testing.T) {
		t.Parallel()
		blockingID := int64(9)
		repo := new(testhelpers.MockRoleBlockRepository)
		repo.On("GetBlockedRoles", ctx, memberRoles).Return([]int64{1, 2}, nil)
		repo.On("GetBlockingRole", ctx, memberRoles, int64(1)).Return(&blockingID, nil)

		blocking, err := blockingRole(ctx, services.NewRoleBlockService(repo, new(testhelpers.MockEventPublisher)), memberRoles, 1)
		require.NoError(t, err)
		require.NotNil(t, blocking)
		assert.Equal(t, int64(9), *blocking)
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockRoleBlockRepository)
		repo.On("GetBlockedRoles", ctx, memberRoles).Return(nil, errors.New("connection reset"))

		_, err := blockingRole(ctx, services.NewRoleBlockService(repo, new(testhelpers.MockEventPublisher)), memberRoles, 1)
		assert.ErrorContains(t, err, "connection reset")
	})
}
