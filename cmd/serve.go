package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpcontext "github.com/dtroode/tokenauth/internal/api/http/context"
	httprouter "github.com/dtroode/tokenauth/internal/api/http/router"
	httpserver "github.com/dtroode/tokenauth/internal/api/http/server"
	"github.com/dtroode/tokenauth/internal/api/grpc/health"
	grpcrouter "github.com/dtroode/tokenauth/internal/api/grpc/router"
	grpcserver "github.com/dtroode/tokenauth/internal/api/grpc/server"
	"github.com/dtroode/tokenauth/internal/config"
	"github.com/dtroode/tokenauth/internal/logger"
	"github.com/dtroode/tokenauth/internal/metrics"
	"github.com/dtroode/tokenauth/internal/model"
	"github.com/dtroode/tokenauth/internal/password"
	"github.com/dtroode/tokenauth/internal/repository/memory"
	"github.com/dtroode/tokenauth/internal/repository/postgres"
	"github.com/dtroode/tokenauth/internal/server"
	"github.com/dtroode/tokenauth/internal/service"
	"github.com/dtroode/tokenauth/internal/token"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			serve()
			return nil
		},
	}
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithFormat(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	hasher, err := password.NewHasher(password.Params{Time: cfg.KDF.Time, MemKiB: cfg.KDF.MemKiB, Par: cfg.KDF.Par})
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	tokenManager, err := token.NewJWT(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, token.WithAccessTTL(cfg.JWT.AccessTTL))
	if err != nil {
		logger.Fatal("failed to initialize token manager", "error", err)
	}

	userRepo := postgres.NewUserRepository(db)
	registry := memory.NewRefreshRegistry()

	tokenService := service.NewTokenService(tokenManager, registry, logger)
	authService := service.NewAuth(userRepo, hasher, tokenService, logger)

	promRegistry := metrics.NewRegistry()
	appMetrics := metrics.NewMetrics(promRegistry, tokenService.ActiveRefreshTokens)

	httpRouter := httprouter.New(authService, tokenService, httpcontext.NewManager(), appMetrics, promRegistry, cfg.HTTP.CORSOrigin, logger)
	httpSrv := httpserver.NewHTTPServer(httpRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	checker := health.NewChecker(db, health.DefaultInterval, logger.With("component", "health"))
	grpcSrv := grpcserver.NewGRPCServer(grpcrouter.New(checker, logger.With("component", "grpc")).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))

	servers := []struct {
		server model.Server
		layer  model.SecurityLayer
	}{
		{httpSrv, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)},
		{grpcSrv, server.NewPlainListener()},
	}

	var wg sync.WaitGroup

	checkerCtx, stopChecker := context.WithCancel(ctx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		checker.Run(checkerCtx)
	}()

	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "name", s.Name(), "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "name", s.Name(), "error", err)
				stop()
			}
		}(s.server, s.layer)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")
	stopChecker()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "name", s.server.Name(), "error", err, "address", s.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
