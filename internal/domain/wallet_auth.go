package domain

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/pkg/authenticator"
	"github.com/videodanza/backend/pkg/crypto"
	"github.com/videodanza/backend/pkg/errorx"
	"github.com/videodanza/backend/pkg/xcontext"
	"github.com/videodanza/backend/pkg/xredis"
)

// nonceExpiration bounds how long an issued login challenge stays valid.
const nonceExpiration = 10 * time.Minute

type WalletAuthDomain interface {
	Login(context.Context, *model.WalletLoginRequest) (*model.WalletLoginResponse, error)
	Verify(context.Context, *model.WalletVerifyRequest) (*model.WalletVerifyResponse, error)
}

type walletAuthDomain struct {
	tokenEngine authenticator.TokenEngine[model.AccessToken]
	redisClient xredis.Client
}

func NewWalletAuthDomain(
	tokenEngine authenticator.TokenEngine[model.AccessToken],
	redisClient xredis.Client,
) *walletAuthDomain {
	return &walletAuthDomain{
		tokenEngine: tokenEngine,
		redisClient: redisClient,
	}
}

// Login issues a fresh challenge nonce bound server-side to the wallet
// address. Only the most recently issued nonce is accepted by Verify.
func (d *walletAuthDomain) Login(
	ctx context.Context, req *model.WalletLoginRequest,
) (*model.WalletLoginResponse, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	nonce, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate random string: %v", err)
		return nil, errorx.Unknown
	}

	address := common.HexToAddress(req.Address).Hex()
	if err := d.redisClient.SetObj(ctx, nonceKey(address), nonce, nonceExpiration); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot store login nonce: %v", err)
		return nil, errorx.Unknown
	}

	return &model.WalletLoginResponse{Address: address, Nonce: nonce}, nil
}

// Verify checks the signature over the challenge issued by Login. The
// nonce is single-use: it is consumed on success, so a captured
// (nonce, signature) pair cannot be replayed.
func (d *walletAuthDomain) Verify(
	ctx context.Context, req *model.WalletVerifyRequest,
) (*model.WalletVerifyResponse, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	address := common.HexToAddress(req.Address).Hex()

	var issued string
	if err := d.redisClient.GetObj(ctx, nonceKey(address), &issued); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot load login nonce: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired nonce")
	}

	if issued == "" || issued != req.Nonce {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired nonce")
	}

	hash := accounts.TextHash([]byte(req.Nonce))
	signature, err := hexutil.Decode(req.Signature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode signature: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	if len(signature) <= ethcrypto.RecoveryIDOffset {
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(hash, signature)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot recover signature to address: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid signature")
	}

	recoveredAddr := ethcrypto.PubkeyToAddress(*recovered)
	if !bytes.Equal(recoveredAddr.Bytes(), common.HexToAddress(address).Bytes()) {
		return nil, errorx.New(errorx.BadRequest, "Mismatched address")
	}

	if err := d.redisClient.Del(ctx, nonceKey(address)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot consume login nonce: %v", err)
		return nil, errorx.Unknown
	}

	token, err := d.tokenEngine.Generate(recoveredAddr.Hex(), model.AccessToken{
		Address: recoveredAddr.Hex(),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	// Browser clients get the token as a cookie too.
	if w := xcontext.HTTPWriter(ctx); w != nil {
		tokenConfigs := xcontext.Configs(ctx).Auth.AccessToken
		http.SetCookie(w, &http.Cookie{
			Name:     tokenConfigs.Name,
			Value:    token,
			MaxAge:   int(tokenConfigs.Expiration.Seconds()),
			HttpOnly: true,
			Path:     "/",
		})
	}

	return &model.WalletVerifyResponse{AccessToken: token}, nil
}

func nonceKey(address string) string {
	return "auth:nonce:" + address
}
