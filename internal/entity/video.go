package entity

import (
	"time"

	"gorm.io/gorm"
)

// Video mirrors one catalog entry of the external pinning service, so the
// catalog survives the service being temporarily unreachable.
type Video struct {
	Name      string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	CID        string
	IpfsURI    string
	GatewayURL string
	FileSize   int64
	UploadedAt time.Time
}
