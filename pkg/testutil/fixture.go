package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/xcontext"
)

const (
	AdminAddress = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	User1Address = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	User2Address = "0x90F79bf6EB2c4f870365E785982E1f101E93b906"

	// MintPrice is 0.001 ether in wei.
	MintPrice = "1000000000000000"
)

// CreateFixtureDb migrates the schema on the context database and seeds
// the ledger account and a small video catalog.
func CreateFixtureDb(ctx context.Context) {
	MigrateDb(ctx)
	insertLedgerAccount(ctx)
	insertVideos(ctx)
}

// MigrateDb migrates the schema without seeding any data.
func MigrateDb(ctx context.Context) {
	if err := entity.MigrateTable(xcontext.DB(ctx)); err != nil {
		panic(err)
	}
}

func insertLedgerAccount(ctx context.Context) {
	var price entity.BigInt
	if _, ok := price.SetString(MintPrice, 10); !ok {
		panic("invalid fixture mint price")
	}

	err := repository.NewLedgerRepository().Init(ctx, &entity.LedgerAccount{
		Admin:     AdminAddress,
		MintPrice: price,
		Balance:   entity.NewBigInt(0),
	})
	if err != nil {
		panic(err)
	}
}

func insertVideos(ctx context.Context) {
	videoRepo := repository.NewVideoRepository()

	videos := make([]*entity.Video, 0, 8)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("danza_%02d.mp4", i)
		cid := fmt.Sprintf("bafkreifixture%02d", i)
		videos = append(videos, &entity.Video{
			Name:       name,
			CID:        cid,
			IpfsURI:    "ipfs://" + cid,
			GatewayURL: "https://gateway.pinata.cloud/ipfs/" + cid,
			FileSize:   int64(1 << (20 + i%3)),
			UploadedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		})
	}

	if err := videoRepo.Upsert(ctx, videos); err != nil {
		panic(err)
	}
}
