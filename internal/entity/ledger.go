package entity

import "time"

// LedgerAccount is the singleton accounting row of the mint ledger: the
// current mint price, the admin principal and the accumulated withdrawable
// balance.
type LedgerAccount struct {
	ID        int64 `gorm:"primaryKey"`
	UpdatedAt time.Time

	Admin     string
	MintPrice BigInt
	Balance   BigInt
}

const LedgerAccountID = 1
