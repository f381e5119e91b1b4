package repository

import (
	"context"
	"testing"

	"symmbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerConfigRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	t.Run("missing config returns nil", func(t *testing.T) {
		repo := NewServerConfigRepository(testDB.DB, 1)

		config, err := repo.GetByGuildID(ctx)
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("get or create is idempotent", func(t *testing.T) {
		repo := NewServerConfigRepository(testDB.DB, 2)

		first, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)
		second, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, int64(2), first.GuildID)
		assert.Nil(t, first.MemberCountChannelID)
		assert.Empty(t, first.NewUserRoleIDs)
	})

	t.Run("update persists all fields", func(t *testing.T) {
		repo := NewServerConfigRepository(testDB.DB, 3)

		config, err := repo.GetOrCreate(ctx)
		require.NoError(t, err)

		config.MemberCountChannelID = testutil.Int64Ptr(100)
		config.NotificationsChannelID = testutil.Int64Ptr(200)
		config.NewUserRoleIDs = []int64{10, 11}
		config.BotRoleIDs = []int64{20}
		require.NoError(t, repo.Update(ctx, config))

		stored, err := repo.GetByGuildID(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, int64(100), *stored.MemberCountChannelID)
		assert.Equal(t, int64(200), *stored.NotificationsChannelID)
		assert.Equal(t, []int64{10, 11}, stored.NewUserRoleIDs)
		assert.Equal(t, []int64{20}, stored.BotRoleIDs)
	})

	t.Run("update without row fails", func(t *testing.T) {
		repo := NewServerConfigRepository(testDB.DB, 4)

		config, err := NewServerConfigRepository(testDB.DB, 5).GetOrCreate(ctx)
		require.NoError(t, err)

		assert.Error(t, repo.Update(ctx, config))
	})
}
