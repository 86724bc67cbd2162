package entity

import (
	"time"

	"gorm.io/gorm"
)

// Token is one minted non-fungible token. Token ids are assigned
// sequentially from zero with no gaps and never reused; the unique index
// on Seed is what enforces at-most-one token per seed even if two mints
// race into the same transaction window.
type Token struct {
	TokenID   int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Owner       string `gorm:"index"`
	Seed        string `gorm:"uniqueIndex;size:66"`
	MetadataURI string
}
