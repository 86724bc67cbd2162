package entity

type PaymentType string

const (
	PaymentMint       PaymentType = "mint"
	PaymentWithdrawal PaymentType = "withdrawal"
)

// PaymentRecord is the accounting trail of value entering (mint) and
// leaving (withdrawal) the ledger.
type PaymentRecord struct {
	SnowFlakeBase

	Type    PaymentType `gorm:"index"`
	TokenID *int64      `gorm:"index"`
	Address string
	Amount  BigInt
}
