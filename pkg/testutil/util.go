package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questdrop/backend/config"
	"github.com/questdrop/backend/internal/entity"
	"github.com/questdrop/backend/pkg/authenticator"
	"github.com/questdrop/backend/pkg/logger"
	"github.com/questdrop/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "test",
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Auth: config.AuthConfigs{
			TokenSecret:           "token-secret",
			AccessToken:           config.TokenConfigs{Name: "access_token", Expiration: time.Minute},
			RefreshToken:          config.TokenConfigs{Name: "refresh_token", Expiration: time.Hour},
			WalletLoginExpiration: time.Minute,
		},
		Quest: config.QuestConfigs{
			MaxProofLength: 256,
		},
		Platform: config.PlatformConfigs{
			OwnerWalletAddress: "0x71C7656EC7ab88b098defB751B7401B5f6d8976F",
		},
	}
}

func MockContext(t *testing.T) context.Context {
	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	ctx = xcontext.WithSnowFlake(ctx, node)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	ctx = xcontext.WithDB(ctx, db)
	require.NoError(t, entity.MigrateTable(ctx))

	return ctx
}

func MockContextWithUserID(t *testing.T, userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(t), userID)
}
