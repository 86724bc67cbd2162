package main

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/videodanza/backend/config"
	"github.com/videodanza/backend/internal/client"
	"github.com/videodanza/backend/internal/domain"
	"github.com/videodanza/backend/internal/model"
	"github.com/videodanza/backend/internal/repository"
	"github.com/videodanza/backend/pkg/authenticator"
	"github.com/videodanza/backend/pkg/kafka"
	"github.com/videodanza/backend/pkg/logger"
	"github.com/videodanza/backend/pkg/pubsub"
	"github.com/videodanza/backend/pkg/router"
	"github.com/videodanza/backend/pkg/xredis"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client
	publisher   pubsub.Publisher

	catalogCaller client.CatalogCaller
	tokenEngine   authenticator.TokenEngine[model.AccessToken]

	ledgerRepo  repository.LedgerRepository
	tokenRepo   repository.TokenRepository
	paymentRepo repository.PaymentRepository
	videoRepo   repository.VideoRepository

	ledgerDomain      domain.LedgerDomain
	catalogDomain     domain.CatalogDomain
	compositionDomain domain.CompositionDomain
	walletAuthDomain  domain.WalletAuthDomain

	router *router.Router

	server *http.Server
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvDuration(key, def string) time.Duration {
	d, err := time.ParseDuration(getEnv(key, def))
	if err != nil {
		panic(err)
	}

	return d
}

func getEnvInt64(key, def string) int64 {
	n, err := strconv.ParseInt(getEnv(key, def), 10, 64)
	if err != nil {
		panic(err)
	}

	return n
}

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env: getEnv("ENV", "local"),
		ApiServer: config.ServerConfigs{
			Host:           getEnv("HOST", "localhost"),
			Port:           getEnv("PORT", "8080"),
			Cert:           os.Getenv("SERVER_CERT"),
			Key:            os.Getenv("SERVER_KEY"),
			AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
		Database: config.DatabaseConfigs{
			Host:       getEnv("MYSQL_HOST", "localhost"),
			Port:       getEnv("MYSQL_PORT", "3306"),
			Database:   getEnv("MYSQL_DATABASE", "videodanza"),
			User:       getEnv("MYSQL_USER", "videodanza"),
			Password:   getEnv("MYSQL_PASSWORD", "videodanza"),
			SQLitePath: getEnv("SQLITE_PATH", "videodanza.db"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Ledger: config.LedgerConfigs{
			AdminAddress: getEnv("LEDGER_ADMIN_ADDRESS", ""),
			MintPrice:    getEnv("LEDGER_MINT_PRICE", "1000000000000000"),
			ChainID:      getEnvInt64("LEDGER_CHAIN_ID", "11155111"),
		},
		Pinata: config.PinataConfigs{
			ApiURL:     getEnv("PINATA_API_URL", "https://api.pinata.cloud"),
			GatewayURL: getEnv("PINATA_GATEWAY_URL", "https://gateway.pinata.cloud"),
			JWT:        os.Getenv("PINATA_JWT"),
			CatalogTTL: getEnvDuration("PINATA_CATALOG_TTL", "5m"),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("AUTH_TOKEN_SECRET", "token_secret"),
				Expiration: getEnvDuration("AUTH_TOKEN_EXPIRATION", "24h"),
			},
		},
	}
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(getEnv("LOG_LEVEL", "INFO")))
}

func (s *srv) loadDatabase() {
	var err error
	switch s.configs.Env {
	case "local", "testing":
		s.db, err = gorm.Open(sqlite.Open(s.configs.Database.SQLitePath), &gorm.Config{})
	default:
		s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{})
	}

	if err != nil {
		panic(err)
	}
}

// loadRedis connects to redis. Redis is required: the login challenge
// store lives there, not only the catalog cache.
func (s *srv) loadRedis() {
	redisClient, err := xredis.NewClient(s.configs.Redis.Addr)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher("videodanza-api", []string{s.configs.Kafka.Addr})
}

func (s *srv) loadClients() {
	s.catalogCaller = client.NewPinataCaller(s.configs.Pinata, s.redisClient)
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.AccessToken)
}

func (s *srv) loadRepos() {
	s.ledgerRepo = repository.NewLedgerRepository()
	s.tokenRepo = repository.NewTokenRepository()
	s.paymentRepo = repository.NewPaymentRepository()
	s.videoRepo = repository.NewVideoRepository()
}

func (s *srv) loadDomains() {
	s.ledgerDomain = domain.NewLedgerDomain(s.ledgerRepo, s.tokenRepo, s.paymentRepo, s.publisher)
	s.catalogDomain = domain.NewCatalogDomain(s.catalogCaller, s.videoRepo)
	s.compositionDomain = domain.NewCompositionDomain(s.catalogDomain, s.catalogCaller)
	s.walletAuthDomain = domain.NewWalletAuthDomain(s.tokenEngine, s.redisClient)
}
