package domain

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/videodanza/backend/internal/entity"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/crypto"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/pubsub"
	"github.com/videodanza/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Royalty policy: a fixed 7.5% of every sale price, paid to the admin.
const (
	royaltyBasisPoints = 750
	royaltyDenominator = 10000
)

const LedgerEventTopic = "videodanza.ledger"

type LedgerDomain interface {
	Mint(context.Context, *model.MintRequest) (*model.MintResponse, error)
	UpdateMetadata(context.Context, *model.UpdateMetadataRequest) (*model.UpdateMetadataResponse, error)
	GetSeed(context.Context, *model.GetSeedRequest) (*model.GetSeedResponse, error)
	IsSeedMinted(context.Context, *model.IsSeedMintedRequest) (*model.IsSeedMintedResponse, error)
	GetToken(context.Context, *model.GetTokenRequest) (*model.GetTokenResponse, error)
	GetTokensByOwner(context.Context, *model.GetTokensByOwnerRequest) (*model.GetTokensByOwnerResponse, error)
	GetMintPrice(context.Context, *model.GetMintPriceRequest) (*model.GetMintPriceResponse, error)
	UpdateMintPrice(context.Context, *model.UpdateMintPriceRequest) (*model.UpdateMintPriceResponse, error)
	RoyaltyInfo(context.Context, *model.RoyaltyInfoRequest) (*model.RoyaltyInfoResponse, error)
	Withdraw(context.Context, *model.WithdrawRequest) (*model.WithdrawResponse, error)
	TransferToken(context.Context, *model.TransferTokenRequest) (*model.TransferTokenResponse, error)
}

type ledgerDomain struct {
	ledgerRepo  repository.LedgerRepository
	tokenRepo   repository.TokenRepository
	paymentRepo repository.PaymentRepository
	publisher   pubsub.Publisher
}

func NewLedgerDomain(
	ledgerRepo repository.LedgerRepository,
	tokenRepo repository.TokenRepository,
	paymentRepo repository.PaymentRepository,
	publisher pubsub.Publisher,
) *ledgerDomain {
	return &ledgerDomain{
		ledgerRepo:  ledgerRepo,
		tokenRepo:   tokenRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
	}
}

// Mint binds a seed and metadata URI to the next sequential token against
// payment. All effects commit atomically; any violated precondition aborts
// the whole call with its stable reason.
func (d *ledgerDomain) Mint(ctx context.Context, req *model.MintRequest) (*model.MintResponse, error) {
	caller := xcontext.RequestUserID(ctx)
	if caller == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.MetadataURI == "" {
		return nil, errorx.New(errorx.BadRequest, "Metadata URI required")
	}

	seed, err := crypto.ParseSeed(req.Seed)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot parse seed: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid seed")
	}

	payment, ok := new(big.Int).SetString(req.Payment, 10)
	if !ok || payment.Sign() < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid payment amount")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	account, err := d.ledgerRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger account: %v", err)
		return nil, errorx.Unknown
	}

	if _, err := d.tokenRepo.GetBySeed(ctx, seed.Hex()); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Seed already minted")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check the seed: %v", err)
		return nil, errorx.Unknown
	}

	if payment.Cmp(&account.MintPrice.Int) < 0 {
		return nil, errorx.New(errorx.PaymentRequired, "Insufficient payment")
	}

	tokenID, err := d.tokenRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count tokens: %v", err)
		return nil, errorx.Unknown
	}

	token := &entity.Token{
		TokenID:     tokenID,
		Owner:       caller,
		Seed:        seed.Hex(),
		MetadataURI: req.MetadataURI,
	}
	if err := d.tokenRepo.Create(ctx, token); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create token: %v", err)
		return nil, errorx.Unknown
	}

	account.Balance.Add(&account.Balance.Int, payment)
	if err := d.ledgerRepo.Save(ctx, account); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update ledger balance: %v", err)
		return nil, errorx.Unknown
	}

	record := &entity.PaymentRecord{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		Type:          entity.PaymentMint,
		TokenID:       &tokenID,
		Address:       caller,
		Amount:        entity.BigIntFrom(payment),
	}
	if err := d.paymentRepo.Create(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create payment record: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.notify(ctx, tokenID, &model.LedgerEvent{
		Type:        model.LedgerEventMinted,
		TokenID:     tokenID,
		Owner:       caller,
		Seed:        seed.Hex(),
		MetadataURI: req.MetadataURI,
		Amount:      payment.String(),
	})

	return &model.MintResponse{TokenID: tokenID, Owner: caller, Seed: seed.Hex()}, nil
}

func (d *ledgerDomain) UpdateMetadata(
	ctx context.Context, req *model.UpdateMetadataRequest,
) (*model.UpdateMetadataResponse, error) {
	caller := xcontext.RequestUserID(ctx)
	if caller == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if req.MetadataURI == "" {
		return nil, errorx.New(errorx.BadRequest, "Metadata URI required")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	token, err := d.tokenRepo.GetByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Token does not exist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	if !sameAddress(token.Owner, caller) {
		return nil, errorx.New(errorx.PermissionDenied, "Not token owner")
	}

	if err := d.tokenRepo.UpdateMetadataURI(ctx, req.TokenID, req.MetadataURI); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update metadata uri: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.notify(ctx, req.TokenID, &model.LedgerEvent{
		Type:        model.LedgerEventMetadataUpdated,
		TokenID:     req.TokenID,
		MetadataURI: req.MetadataURI,
	})

	return &model.UpdateMetadataResponse{}, nil
}

func (d *ledgerDomain) GetSeed(ctx context.Context, req *model.GetSeedRequest) (*model.GetSeedResponse, error) {
	token, err := d.tokenRepo.GetByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Token does not exist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetSeedResponse{Seed: token.Seed}, nil
}

func (d *ledgerDomain) IsSeedMinted(
	ctx context.Context, req *model.IsSeedMintedRequest,
) (*model.IsSeedMintedResponse, error) {
	seed, err := crypto.ParseSeed(req.Seed)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid seed")
	}

	if _, err := d.tokenRepo.GetBySeed(ctx, seed.Hex()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.IsSeedMintedResponse{Minted: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot check the seed: %v", err)
		return nil, errorx.Unknown
	}

	return &model.IsSeedMintedResponse{Minted: true}, nil
}

func (d *ledgerDomain) GetToken(ctx context.Context, req *model.GetTokenRequest) (*model.GetTokenResponse, error) {
	token, err := d.tokenRepo.GetByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Token does not exist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetTokenResponse{
		TokenID:     token.TokenID,
		Owner:       token.Owner,
		Seed:        token.Seed,
		MetadataURI: token.MetadataURI,
	}, nil
}

func (d *ledgerDomain) GetTokensByOwner(
	ctx context.Context, req *model.GetTokensByOwnerRequest,
) (*model.GetTokensByOwnerResponse, error) {
	if !common.IsHexAddress(req.Owner) {
		return nil, errorx.New(errorx.BadRequest, "Invalid owner address")
	}

	tokens, err := d.tokenRepo.GetByOwner(ctx, common.HexToAddress(req.Owner).Hex())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tokens by owner: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.GetTokenResponse, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, model.GetTokenResponse{
			TokenID:     token.TokenID,
			Owner:       token.Owner,
			Seed:        token.Seed,
			MetadataURI: token.MetadataURI,
		})
	}

	return &model.GetTokensByOwnerResponse{Tokens: result}, nil
}

func (d *ledgerDomain) GetMintPrice(
	ctx context.Context, req *model.GetMintPriceRequest,
) (*model.GetMintPriceResponse, error) {
	account, err := d.ledgerRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger account: %v", err)
		return nil, errorx.Unknown
	}

	total, err := d.tokenRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count tokens: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMintPriceResponse{
		MintPrice:   account.MintPrice.String(),
		TotalSupply: total,
	}, nil
}

func (d *ledgerDomain) UpdateMintPrice(
	ctx context.Context, req *model.UpdateMintPriceRequest,
) (*model.UpdateMintPriceResponse, error) {
	newPrice, ok := new(big.Int).SetString(req.MintPrice, 10)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Invalid mint price")
	}

	if newPrice.Sign() <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Price must be positive")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	account, err := d.ledgerRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger account: %v", err)
		return nil, errorx.Unknown
	}

	if !sameAddress(account.Admin, xcontext.RequestUserID(ctx)) {
		return nil, errorx.New(errorx.PermissionDenied, "Only admin can update the mint price")
	}

	account.MintPrice = entity.BigIntFrom(newPrice)
	if err := d.ledgerRepo.Save(ctx, account); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update mint price: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.notify(ctx, 0, &model.LedgerEvent{
		Type:      model.LedgerEventPriceUpdated,
		MintPrice: newPrice.String(),
	})

	return &model.UpdateMintPriceResponse{}, nil
}

// RoyaltyInfo applies the global royalty rate to a sale price. The token
// need not exist, the rate is not per-token.
func (d *ledgerDomain) RoyaltyInfo(
	ctx context.Context, req *model.RoyaltyInfoRequest,
) (*model.RoyaltyInfoResponse, error) {
	salePrice, ok := new(big.Int).SetString(req.SalePrice, 10)
	if !ok || salePrice.Sign() < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid sale price")
	}

	account, err := d.ledgerRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger account: %v", err)
		return nil, errorx.Unknown
	}

	amount := new(big.Int).Mul(salePrice, big.NewInt(royaltyBasisPoints))
	amount.Div(amount, big.NewInt(royaltyDenominator))

	return &model.RoyaltyInfoResponse{
		Receiver: account.Admin,
		Amount:   amount.String(),
	}, nil
}

// Withdraw transfers the entire balance to the admin. The balance is
// zeroed inside the transaction before the outbound transfer is recorded,
// so a reentrant call observes an empty ledger.
func (d *ledgerDomain) Withdraw(ctx context.Context, req *model.WithdrawRequest) (*model.WithdrawResponse, error) {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	account, err := d.ledgerRepo.Get(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ledger account: %v", err)
		return nil, errorx.Unknown
	}

	if !sameAddress(account.Admin, xcontext.RequestUserID(ctx)) {
		return nil, errorx.New(errorx.PermissionDenied, "Only admin can withdraw")
	}

	if account.Balance.Sign() <= 0 {
		return nil, errorx.New(errorx.NoFunds, "No funds to withdraw")
	}

	amount := new(big.Int).Set(&account.Balance.Int)
	account.Balance = entity.NewBigInt(0)
	if err := d.ledgerRepo.Save(ctx, account); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot zero the balance: %v", err)
		return nil, errorx.Unknown
	}

	record := &entity.PaymentRecord{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		Type:          entity.PaymentWithdrawal,
		Address:       account.Admin,
		Amount:        entity.BigIntFrom(amount),
	}
	if err := d.paymentRepo.Create(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create withdrawal record: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.notify(ctx, 0, &model.LedgerEvent{
		Type:   model.LedgerEventWithdrawn,
		Owner:  account.Admin,
		Amount: amount.String(),
	})

	return &model.WithdrawResponse{Recipient: account.Admin, Amount: amount.String()}, nil
}

func (d *ledgerDomain) TransferToken(
	ctx context.Context, req *model.TransferTokenRequest,
) (*model.TransferTokenResponse, error) {
	caller := xcontext.RequestUserID(ctx)
	if caller == "" {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	}

	if !common.IsHexAddress(req.To) {
		return nil, errorx.New(errorx.BadRequest, "Invalid recipient address")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	token, err := d.tokenRepo.GetByID(ctx, req.TokenID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Token does not exist")
		}

		xcontext.Logger(ctx).Errorf("Cannot get token: %v", err)
		return nil, errorx.Unknown
	}

	if !sameAddress(token.Owner, caller) {
		return nil, errorx.New(errorx.PermissionDenied, "Not token owner")
	}

	to := common.HexToAddress(req.To).Hex()
	if err := d.tokenRepo.UpdateOwner(ctx, req.TokenID, to); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot transfer token: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.notify(ctx, req.TokenID, &model.LedgerEvent{
		Type:    model.LedgerEventTransferred,
		TokenID: req.TokenID,
		Owner:   to,
	})

	return &model.TransferTokenResponse{}, nil
}

// notify publishes an observer event. Notifications are best-effort after
// commit; a broker failure never rolls back ledger state.
func (d *ledgerDomain) notify(ctx context.Context, tokenID int64, event *model.LedgerEvent) {
	if d.publisher == nil {
		return
	}

	event.ID = uuid.NewString()
	b, err := json.Marshal(event)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot marshal ledger event: %v", err)
		return
	}

	pack := &pubsub.Pack{Key: []byte(strconv.FormatInt(tokenID, 10)), Msg: b}
	if err := d.publisher.Publish(ctx, LedgerEventTopic, pack); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot publish ledger event: %v", err)
	}
}

func sameAddress(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	return common.HexToAddress(a) == common.HexToAddress(b)
}
