package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	ApiServer ServerConfigs
	Database  DatabaseConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Ledger    LedgerConfigs
	Pinata    PinataConfigs
	Auth      AuthConfigs
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	AllowedOrigins []string
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// SQLitePath replaces the mysql connection when Env is local or testing.
	SQLitePath string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

// LedgerConfigs carries the deployment parameters of the mint ledger. The
// royalty rate is not configurable, it is a fixed policy constant of the
// ledger domain.
type LedgerConfigs struct {
	// AdminAddress is the principal allowed to withdraw funds and update the
	// mint price. It also receives royalties.
	AdminAddress string

	// MintPrice is the initial mint price in wei, as a decimal string.
	MintPrice string

	ChainID int64
}

type PinataConfigs struct {
	ApiURL     string
	GatewayURL string
	JWT        string

	CatalogTTL time.Duration
}

type AuthConfigs struct {
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Secret     string
	Expiration time.Duration
}
