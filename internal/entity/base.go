package entity

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"
)

type SnowFlakeBase struct {
	ID        int64 `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// BigInt stores a non-negative wei amount as a decimal string column.
// Chain amounts overflow int64 and lose precision as floats.
type BigInt struct {
	big.Int
}

func NewBigInt(i int64) BigInt {
	var b BigInt
	b.SetInt64(i)
	return b
}

func BigIntFrom(i *big.Int) BigInt {
	var b BigInt
	if i != nil {
		b.Set(i)
	}
	return b
}

func (b *BigInt) Scan(value any) error {
	var s string
	switch t := value.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}

	if s == "" {
		b.SetInt64(0)
		return nil
	}

	if _, ok := b.SetString(s, 10); !ok {
		return fmt.Errorf("cannot scan invalid big integer %q", s)
	}

	return nil
}

func (b BigInt) Value() (driver.Value, error) {
	return b.String(), nil
}

func (BigInt) GormDataType() string {
	return "varchar(78)"
}

func MigrateTable(db *gorm.DB) error {
	return db.AutoMigrate(
		&LedgerAccount{},
		&Token{},
		&PaymentRecord{},
		&Video{},
	)
}
