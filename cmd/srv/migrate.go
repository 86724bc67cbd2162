package main

import (
	"context"
	"math/big"

	"github.com/urfave/cli/v2"
	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/xcontext"
)

func (s *srv) startMigrate(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()

	if err := entity.MigrateTable(s.db); err != nil {
		return err
	}

	price, ok := new(big.Int).SetString(s.configs.Ledger.MintPrice, 10)
	if !ok || price.Sign() <= 0 {
		s.logger.Errorf("Invalid configured mint price: %s", s.configs.Ledger.MintPrice)
		return cli.Exit("invalid mint price", 1)
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, *s.configs)
	ctx = xcontext.WithLogger(ctx, s.logger)
	ctx = xcontext.WithDB(ctx, s.db)

	err := repository.NewLedgerRepository().Init(ctx, &entity.LedgerAccount{
		Admin:     s.configs.Ledger.AdminAddress,
		MintPrice: entity.BigIntFrom(price),
		Balance:   entity.NewBigInt(0),
	})
	if err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}
