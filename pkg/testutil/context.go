package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/videodanza/backend/config"
	"github.com/videodanza/backend/pkg/logger"
	"github.com/videodanza/backend/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockConfigs() config.Configs {
	return config.Configs{
		Env: "testing",
		Ledger: config.LedgerConfigs{
			AdminAddress: AdminAddress,
			MintPrice:    MintPrice,
			ChainID:      11155111,
		},
		Pinata: config.PinataConfigs{
			ApiURL:     "https://api.pinata.cloud",
			GatewayURL: "https://gateway.pinata.cloud",
			CatalogTTL: 5 * time.Minute,
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     "testing-secret",
				Expiration: time.Hour,
			},
		},
	}
}

// NewMockContext builds a context carrying everything domains expect: an
// in-memory database, configs, a quiet logger and a snowflake node.
func NewMockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, MockConfigs())
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithSnowFlake(ctx, node)

	return ctx
}

func NewMockContextWithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
