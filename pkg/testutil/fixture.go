package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

var (
	Owner = entity.User{
		Base:          entity.Base{ID: "owner"},
		WalletAddress: sql.NullString{Valid: true, String: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F"},
		Name:          "owner",
		Role:          entity.RoleSuperAdmin,
	}

	Admin = entity.User{
		Base:          entity.Base{ID: "admin"},
		WalletAddress: sql.NullString{Valid: true, String: "0x2546BcD3c84621e976D8185a91A922aE77ECEc30"},
		Name:          "admin",
		Role:          entity.RoleAdmin,
	}

	User1 = entity.User{
		Base:          entity.Base{ID: "user1"},
		WalletAddress: sql.NullString{Valid: true, String: "0xbDA5747bFD65F08deb54cb465eB87D40e51B197E"},
		Name:          "user1",
		Role:          entity.RoleUser,
	}

	User2 = entity.User{
		Base:          entity.Base{ID: "user2"},
		WalletAddress: sql.NullString{Valid: true, String: "0xdD870fA1b7C4700F2BD7f44238821C26f7392148"},
		Name:          "user2",
		Role:          entity.RoleUser,
	}

	Quest1 = entity.Quest{
		SerialBase:     entity.SerialBase{ID: 1},
		Title:          "Post a thread",
		Description:    "Write a thread about the platform.",
		Requirements:   "Link to a public thread.",
		RewardAmount:   1_000_000,
		IsActive:       true,
		StartTime:      time.Now().Add(-time.Hour),
		EndTime:        time.Now().Add(24 * time.Hour),
		MaxCompletions: 10,
		CreatedBy:      Owner.ID,
	}

	Quest2 = entity.Quest{
		SerialBase:     entity.SerialBase{ID: 2},
		Title:          "Inactive quest",
		Requirements:   "Nothing to do here.",
		RewardAmount:   2_000_000,
		IsActive:       false,
		StartTime:      time.Now().Add(-time.Hour),
		EndTime:        time.Now().Add(24 * time.Hour),
		MaxCompletions: 5,
		CreatedBy:      Owner.ID,
	}

	Stake1 = entity.Stake{
		Base:     entity.Base{ID: "stake1"},
		UserID:   User2.ID,
		Amount:   10_000_000,
		StakedAt: time.Now().Add(-time.Hour),
		IsActive: true,
	}
)

// CreateFixtureDb seeds the common cast of users, quests and a funded pool.
func CreateFixtureDb(ctx context.Context, t *testing.T) {
	insert := func(record any) {
		require.NoError(t, xcontext.DB(ctx).Create(record).Error)
	}

	owner, admin, user1, user2 := Owner, Admin, User1, User2
	insert(&owner)
	insert(&admin)
	insert(&user1)
	insert(&user2)

	quest1, quest2 := Quest1, Quest2
	insert(&quest1)
	insert(&quest2)

	stake1 := Stake1
	insert(&stake1)
	insert(&entity.PoolLedger{ID: 1, Balance: Stake1.Amount})
}
