package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/crypto"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/pubsub"
	"github.com/videodanza/backend/pkg/testutil"
)

func newTestLedgerDomain(events *[]model.LedgerEvent) *ledgerDomain {
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			if events != nil {
				var ev model.LedgerEvent
				if err := json.Unmarshal(pack.Msg, &ev); err != nil {
					return err
				}
				*events = append(*events, ev)
			}
			return nil
		},
	}

	return NewLedgerDomain(
		repository.NewLedgerRepository(),
		repository.NewTokenRepository(),
		repository.NewPaymentRepository(),
		publisher,
	)
}

func Test_ledgerDomain_Mint_FullScenario(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	var events []model.LedgerEvent
	ledger := newTestLedgerDomain(&events)

	seed := crypto.SeedFromPhrase("flowing in silence").Hex()
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)

	// First mint succeeds with token id 0.
	resp, err := ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://QmMetadata",
		Seed:        seed,
		Payment:     testutil.MintPrice,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.TokenID)
	require.Equal(t, testutil.User1Address, resp.Owner)

	// The seed is now marked minted.
	minted, err := ledger.IsSeedMinted(ctx, &model.IsSeedMintedRequest{Seed: seed})
	require.NoError(t, err)
	require.True(t, minted.Minted)

	// A second mint with the same seed reverts, regardless of caller.
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2Address)
	_, err = ledger.Mint(ctxUser2, &model.MintRequest{
		MetadataURI: "ipfs://QmOther",
		Seed:        seed,
		Payment:     testutil.MintPrice,
	})
	require.Equal(t, errorx.New(errorx.AlreadyExists, "Seed already minted"), err)

	// Token ids are sequential with no gaps.
	for i, phrase := range []string{"second phrase", "third phrase", "fourth phrase"} {
		resp, err := ledger.Mint(ctxUser2, &model.MintRequest{
			MetadataURI: "ipfs://QmMetadata",
			Seed:        crypto.SeedFromPhrase(phrase).Hex(),
			Payment:     testutil.MintPrice,
		})
		require.NoError(t, err)
		require.Equal(t, int64(i+1), resp.TokenID)
	}

	price, err := ledger.GetMintPrice(ctx, &model.GetMintPriceRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(4), price.TotalSupply)

	// The mint left its payment record behind.
	records, err := repository.NewPaymentRepository().GetByToken(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, entity.PaymentMint, records[0].Type)
	require.Equal(t, testutil.User1Address, records[0].Address)
	require.Equal(t, testutil.MintPrice, records[0].Amount.String())

	// Ownership queries see every mint of the caller.
	owned, err := ledger.GetTokensByOwner(ctx, &model.GetTokensByOwnerRequest{Owner: testutil.User2Address})
	require.NoError(t, err)
	require.Len(t, owned.Tokens, 3)
	require.Equal(t, int64(1), owned.Tokens[0].TokenID)

	// The bound seed is retrievable from the token id.
	gotSeed, err := ledger.GetSeed(ctx, &model.GetSeedRequest{TokenID: 0})
	require.NoError(t, err)
	require.Equal(t, seed, gotSeed.Seed)

	// Observers were notified of every mint.
	require.Len(t, events, 4)
	require.Equal(t, model.LedgerEventMinted, events[0].Type)
	require.Equal(t, seed, events[0].Seed)
	require.NotEmpty(t, events[0].ID)
}

func Test_ledgerDomain_Mint_Preconditions(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	seed := crypto.SeedFromPhrase("preconditions").Hex()
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)

	// Anonymous caller.
	_, err := ledger.Mint(ctx, &model.MintRequest{
		MetadataURI: "ipfs://Qm", Seed: seed, Payment: testutil.MintPrice,
	})
	require.Equal(t, errorx.New(errorx.Unauthenticated, "You need to authenticate before"), err)

	// Empty metadata URI.
	_, err = ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "", Seed: seed, Payment: testutil.MintPrice,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Metadata URI required"), err)

	// Malformed seed.
	_, err = ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm", Seed: "0x1234", Payment: testutil.MintPrice,
	})
	require.Equal(t, errorx.New(errorx.BadRequest, "Invalid seed"), err)

	// Insufficient payment.
	_, err = ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm", Seed: seed, Payment: "100000000000000",
	})
	require.Equal(t, errorx.New(errorx.PaymentRequired, "Insufficient payment"), err)

	// A failed call left no state behind: the seed stays mintable and the
	// next token id is still zero.
	resp, err := ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm", Seed: seed, Payment: testutil.MintPrice,
	})
	require.NoError(t, err)
	require.Equal(t, int64(0), resp.TokenID)
}

func Test_ledgerDomain_Mint_ExactPayment(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)

	// Payment equal to the mint price is enough.
	_, err := ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm",
		Seed:        crypto.SeedFromPhrase("exact payment").Hex(),
		Payment:     testutil.MintPrice,
	})
	require.NoError(t, err)

	// Overpayment is accepted too and credited in full.
	_, err = ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm",
		Seed:        crypto.SeedFromPhrase("over payment").Hex(),
		Payment:     "2000000000000000",
	})
	require.NoError(t, err)

	ctxAdmin := testutil.NewMockContextWithUserID(ctx, testutil.AdminAddress)
	withdrawn, err := ledger.Withdraw(ctxAdmin, &model.WithdrawRequest{})
	require.NoError(t, err)
	require.Equal(t, "3000000000000000", withdrawn.Amount)
}

func Test_ledgerDomain_UpdateMetadata(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2Address)

	_, err := ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://QmOldMetadata",
		Seed:        crypto.SeedFromPhrase("metadata").Hex(),
		Payment:     testutil.MintPrice,
	})
	require.NoError(t, err)

	// Non-owner cannot update.
	_, err = ledger.UpdateMetadata(ctxUser2, &model.UpdateMetadataRequest{
		TokenID: 0, MetadataURI: "ipfs://QmNewMetadata",
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Not token owner"), err)

	// Nonexistent token.
	_, err = ledger.UpdateMetadata(ctxUser1, &model.UpdateMetadataRequest{
		TokenID: 999, MetadataURI: "ipfs://QmNewMetadata",
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Token does not exist"), err)

	// Owner overwrites the stored URI.
	_, err = ledger.UpdateMetadata(ctxUser1, &model.UpdateMetadataRequest{
		TokenID: 0, MetadataURI: "ipfs://QmNewMetadata",
	})
	require.NoError(t, err)

	token, err := ledger.GetToken(ctx, &model.GetTokenRequest{TokenID: 0})
	require.NoError(t, err)
	require.Equal(t, "ipfs://QmNewMetadata", token.MetadataURI)
}

func Test_ledgerDomain_UpdateMintPrice(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	ctxAdmin := testutil.NewMockContextWithUserID(ctx, testutil.AdminAddress)
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)

	// Non-admin is rejected.
	_, err := ledger.UpdateMintPrice(ctxUser1, &model.UpdateMintPriceRequest{MintPrice: "2000000000000000"})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only admin can update the mint price"), err)

	// Zero price is rejected.
	_, err = ledger.UpdateMintPrice(ctxAdmin, &model.UpdateMintPriceRequest{MintPrice: "0"})
	require.Equal(t, errorx.New(errorx.BadRequest, "Price must be positive"), err)

	// Admin updates, and the new floor is enforced.
	_, err = ledger.UpdateMintPrice(ctxAdmin, &model.UpdateMintPriceRequest{MintPrice: "2000000000000000"})
	require.NoError(t, err)

	price, err := ledger.GetMintPrice(ctx, &model.GetMintPriceRequest{})
	require.NoError(t, err)
	require.Equal(t, "2000000000000000", price.MintPrice)

	_, err = ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm",
		Seed:        crypto.SeedFromPhrase("after price update").Hex(),
		Payment:     testutil.MintPrice,
	})
	require.Equal(t, errorx.New(errorx.PaymentRequired, "Insufficient payment"), err)
}

func Test_ledgerDomain_RoyaltyInfo(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	// 7.5% of 100 ether.
	resp, err := ledger.RoyaltyInfo(ctx, &model.RoyaltyInfoRequest{
		TokenID:   0,
		SalePrice: "100000000000000000000",
	})
	require.NoError(t, err)
	require.Equal(t, testutil.AdminAddress, resp.Receiver)
	require.Equal(t, "7500000000000000000", resp.Amount)

	// 7.5% of 1000 ether; the token id does not need to exist.
	resp, err = ledger.RoyaltyInfo(ctx, &model.RoyaltyInfoRequest{
		TokenID:   999,
		SalePrice: "1000000000000000000000",
	})
	require.NoError(t, err)
	require.Equal(t, "75000000000000000000", resp.Amount)
}

func Test_ledgerDomain_Withdraw(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	var events []model.LedgerEvent
	ledger := newTestLedgerDomain(&events)

	ctxAdmin := testutil.NewMockContextWithUserID(ctx, testutil.AdminAddress)
	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)

	// Empty ledger refuses withdrawal.
	_, err := ledger.Withdraw(ctxAdmin, &model.WithdrawRequest{})
	require.Equal(t, errorx.New(errorx.NoFunds, "No funds to withdraw"), err)

	_, err = ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm",
		Seed:        crypto.SeedFromPhrase("withdraw").Hex(),
		Payment:     testutil.MintPrice,
	})
	require.NoError(t, err)

	// Non-admin cannot withdraw.
	_, err = ledger.Withdraw(ctxUser1, &model.WithdrawRequest{})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only admin can withdraw"), err)

	// Admin drains the whole balance.
	resp, err := ledger.Withdraw(ctxAdmin, &model.WithdrawRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.AdminAddress, resp.Recipient)
	require.Equal(t, testutil.MintPrice, resp.Amount)

	// The balance is zero afterwards.
	_, err = ledger.Withdraw(ctxAdmin, &model.WithdrawRequest{})
	require.Equal(t, errorx.New(errorx.NoFunds, "No funds to withdraw"), err)

	require.Equal(t, model.LedgerEventWithdrawn, events[len(events)-1].Type)
	require.Equal(t, testutil.MintPrice, events[len(events)-1].Amount)
}

func Test_ledgerDomain_TransferToken(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	ctxUser1 := testutil.NewMockContextWithUserID(ctx, testutil.User1Address)
	ctxUser2 := testutil.NewMockContextWithUserID(ctx, testutil.User2Address)

	_, err := ledger.Mint(ctxUser1, &model.MintRequest{
		MetadataURI: "ipfs://Qm",
		Seed:        crypto.SeedFromPhrase("transfer").Hex(),
		Payment:     testutil.MintPrice,
	})
	require.NoError(t, err)

	// Only the owner can transfer.
	_, err = ledger.TransferToken(ctxUser2, &model.TransferTokenRequest{TokenID: 0, To: testutil.User2Address})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Not token owner"), err)

	_, err = ledger.TransferToken(ctxUser1, &model.TransferTokenRequest{TokenID: 0, To: testutil.User2Address})
	require.NoError(t, err)

	token, err := ledger.GetToken(ctx, &model.GetTokenRequest{TokenID: 0})
	require.NoError(t, err)
	require.Equal(t, testutil.User2Address, token.Owner)

	// The new owner can transfer it back.
	_, err = ledger.TransferToken(ctxUser2, &model.TransferTokenRequest{TokenID: 0, To: testutil.User1Address})
	require.NoError(t, err)
}

func Test_ledgerDomain_GetSeed_NotFound(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	ledger := newTestLedgerDomain(nil)

	_, err := ledger.GetSeed(ctx, &model.GetSeedRequest{TokenID: 999})
	require.Equal(t, errorx.New(errorx.NotFound, "Token does not exist"), err)
}
