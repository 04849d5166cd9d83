package migration

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
	"gorm.io/gorm"
)

func migrate0000(ctx context.Context) error {
	if err := entity.MigrateTable(ctx); err != nil {
		return err
	}

	owner, err := seedOwner(ctx)
	if err != nil {
		return err
	}

	if err := seedDefaultQuest(ctx, owner); err != nil {
		return err
	}

	return seedPoolLedger(ctx)
}

// seedPoolLedger opens the pool account at zero. All later movement goes
// through guarded credits and debits on this row.
func seedPoolLedger(ctx context.Context) error {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.PoolLedger{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(&entity.PoolLedger{ID: 1, Balance: 0}).Error
}

// seedOwner creates the super admin from the configured wallet address, so a
// fresh deployment has someone able to manage quests and admins.
func seedOwner(ctx context.Context) (*entity.User, error) {
	address := xcontext.Configs(ctx).Platform.OwnerWalletAddress
	if address == "" {
		return nil, errors.New("owner wallet address is not configured")
	}

	var owner entity.User
	err := xcontext.DB(ctx).Take(&owner, "wallet_address=?", address).Error
	if err == nil {
		return &owner, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	owner = entity.User{
		Base:          entity.Base{ID: uuid.NewString()},
		WalletAddress: sql.NullString{Valid: true, String: address},
		Name:          address,
		Role:          entity.RoleSuperAdmin,
	}

	if err := xcontext.DB(ctx).Create(&owner).Error; err != nil {
		return nil, err
	}

	return &owner, nil
}

// seedDefaultQuest guarantees quest id 1 always exists, a stable target for
// minimal deployments.
func seedDefaultQuest(ctx context.Context, owner *entity.User) error {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Quest{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	now := time.Now()
	return xcontext.DB(ctx).Create(&entity.Quest{
		Title:          "Share us with your community",
		Description:    "Post about the platform on your favorite social network.",
		Requirements:   "Submit a link to your public post.",
		RewardAmount:   1_000_000,
		IsActive:       true,
		StartTime:      now,
		EndTime:        now.AddDate(1, 0, 0),
		MaxCompletions: 100,
		CreatedBy:      owner.ID,
	}).Error
}
