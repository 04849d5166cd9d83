package entity

import (
	"context"

	"github.com/questdrop/backend/pkg/xcontext"
)

type Migration struct {
	Version string `gorm:"primaryKey"`
}

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Migration{},
		&User{},
		&RefreshToken{},
		&Quest{},
		&QuestSubmission{},
		&QuestCompletion{},
		&Stake{},
		&PoolLedger{},
		&RewardPayout{},
		&QuestBadge{},
	)
}
