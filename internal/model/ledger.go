package model

type MintRequest struct {
	MetadataURI string `json:"metadata_uri"`
	Seed        string `json:"seed"`

	// Payment is the attached value in wei, as a decimal string.
	Payment string `json:"payment"`
}

type MintResponse struct {
	TokenID int64  `json:"token_id"`
	Owner   string `json:"owner"`
	Seed    string `json:"seed"`
}

type UpdateMetadataRequest struct {
	TokenID     int64  `json:"token_id"`
	MetadataURI string `json:"metadata_uri"`
}

type UpdateMetadataResponse struct{}

type GetSeedRequest struct {
	TokenID int64 `form:"token_id" json:"token_id"`
}

type GetSeedResponse struct {
	Seed string `json:"seed"`
}

type IsSeedMintedRequest struct {
	Seed string `form:"seed" json:"seed"`
}

type IsSeedMintedResponse struct {
	Minted bool `json:"minted"`
}

type GetTokenRequest struct {
	TokenID int64 `form:"token_id" json:"token_id"`
}

type GetTokenResponse struct {
	TokenID     int64  `json:"token_id"`
	Owner       string `json:"owner"`
	Seed        string `json:"seed"`
	MetadataURI string `json:"metadata_uri"`
}

type GetTokensByOwnerRequest struct {
	Owner string `form:"owner" json:"owner"`
}

type GetTokensByOwnerResponse struct {
	Tokens []GetTokenResponse `json:"tokens"`
}

type GetMintPriceRequest struct{}

type GetMintPriceResponse struct {
	MintPrice   string `json:"mint_price"`
	TotalSupply int64  `json:"total_supply"`
}

type UpdateMintPriceRequest struct {
	MintPrice string `json:"mint_price"`
}

type UpdateMintPriceResponse struct{}

type RoyaltyInfoRequest struct {
	TokenID   int64  `form:"token_id" json:"token_id"`
	SalePrice string `form:"sale_price" json:"sale_price"`
}

type RoyaltyInfoResponse struct {
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
}

type WithdrawRequest struct{}

type WithdrawResponse struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type TransferTokenRequest struct {
	TokenID int64  `json:"token_id"`
	To      string `json:"to"`
}

type TransferTokenResponse struct{}

// LedgerEvent is the observer notification published after every committed
// state change.
type LedgerEvent struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	TokenID     int64  `json:"token_id,omitempty"`
	Owner       string `json:"owner,omitempty"`
	Seed        string `json:"seed,omitempty"`
	MetadataURI string `json:"metadata_uri,omitempty"`
	Amount      string `json:"amount,omitempty"`
	MintPrice   string `json:"mint_price,omitempty"`
}

const (
	LedgerEventMinted          = "minted"
	LedgerEventMetadataUpdated = "metadata_updated"
	LedgerEventPriceUpdated    = "mint_price_updated"
	LedgerEventWithdrawn       = "withdrawn"
	LedgerEventTransferred     = "transferred"
)
