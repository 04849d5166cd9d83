package domain

import (
	"context"
	"testing"

	"github.com/questdrop/backend/internal/common"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/internal/model"
	"github.com/questdrop/backend/internal/repository"
	"github.com/questdrop/backend/pkg/testutil"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_adminDomain_AddRemoveAdmin(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	userRepo := repository.NewUserRepository()
	d := NewAdminDomain(userRepo, common.NewPauser(&testutil.MockRedisClient{}))

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.Owner.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	// Only the owner manages the admin set, a regular admin cannot.
	_, err := d.AddAdmin(adminCtx, &model.AddAdminRequest{UserID: testutil.User1.ID})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	_, err = d.AddAdmin(ownerCtx, &model.AddAdminRequest{UserID: "no-such-user"})
	require.Error(t, err)
	require.Equal(t, "Not found user", err.Error())

	_, err = d.AddAdmin(ownerCtx, &model.AddAdminRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	promoted, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleAdmin, promoted.Role)

	// The owner can never be demoted.
	_, err = d.RemoveAdmin(ownerCtx, &model.RemoveAdminRequest{UserID: testutil.Owner.ID})
	require.Error(t, err)
	require.Equal(t, "Cannot remove the owner", err.Error())

	_, err = d.RemoveAdmin(ownerCtx, &model.RemoveAdminRequest{UserID: testutil.User1.ID})
	require.NoError(t, err)

	demoted, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleUser, demoted.Role)
}

func Test_adminDomain_PauseUnpause(t *testing.T) {
	ctx := testutil.MockContext(t)
	testutil.CreateFixtureDb(ctx, t)

	var pausedKey, deletedKey string
	redisClient := &testutil.MockRedisClient{
		SetFunc: func(ctx context.Context, key, value string) error {
			pausedKey = key
			return nil
		},
		DelFunc: func(ctx context.Context, key string) error {
			deletedKey = key
			return nil
		},
	}

	d := NewAdminDomain(repository.NewUserRepository(), common.NewPauser(redisClient))

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.Owner.ID)
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)

	_, err := d.Pause(adminCtx, &model.PausePlatformRequest{})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	_, err = d.Pause(ownerCtx, &model.PausePlatformRequest{})
	require.NoError(t, err)
	require.Equal(t, "platform:paused", pausedKey)

	_, err = d.Unpause(ownerCtx, &model.UnpausePlatformRequest{})
	require.NoError(t, err)
	require.Equal(t, "platform:paused", deletedKey)
}
