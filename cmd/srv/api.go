package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
	"github.com/videodanza/backend/internal/middleware"
	"github.com/videodanza/backend/pkg/router"
)

func (s *srv) startApi(*cli.Context) error {
	server.loadConfig()
	server.loadLogger()
	server.loadDatabase()
	server.loadRedis()
	server.loadPublisher()
	server.loadClients()
	server.loadRepos()
	server.loadDomains()
	server.loadRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.configs.ApiServer.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: c.Handler(s.router.Handler()),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}
	s.logger.Infof("Server stop")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.Logger())
	s.router.Before(middleware.WithAccessToken(s.tokenEngine))

	// Wallet auth API
	router.GET(s.router, "/wallet/login", s.walletAuthDomain.Login)
	router.POST(s.router, "/wallet/verify", s.walletAuthDomain.Verify)

	// Public ledger API
	router.GET(s.router, "/getMintPrice", s.ledgerDomain.GetMintPrice)
	router.GET(s.router, "/isSeedMinted", s.ledgerDomain.IsSeedMinted)
	router.GET(s.router, "/getToken", s.ledgerDomain.GetToken)
	router.GET(s.router, "/getTokensByOwner", s.ledgerDomain.GetTokensByOwner)
	router.GET(s.router, "/getSeed", s.ledgerDomain.GetSeed)
	router.GET(s.router, "/royaltyInfo", s.ledgerDomain.RoyaltyInfo)

	// Composition and catalog API
	router.GET(s.router, "/getComposition", s.compositionDomain.GetComposition)
	router.GET(s.router, "/getVideos", s.catalogDomain.GetVideos)
	router.GET(s.router, "/getVideo", s.catalogDomain.GetVideo)

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		router.POST(authRouter, "/mint", s.ledgerDomain.Mint)
		router.POST(authRouter, "/updateMetadata", s.ledgerDomain.UpdateMetadata)
		router.POST(authRouter, "/updateMintPrice", s.ledgerDomain.UpdateMintPrice)
		router.POST(authRouter, "/withdraw", s.ledgerDomain.Withdraw)
		router.POST(authRouter, "/transferToken", s.ledgerDomain.TransferToken)
		router.POST(authRouter, "/uploadMetadata", s.compositionDomain.UploadMetadata)
	}
}
