package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/nivelab/authcore/internal/api/http/handler"
	"github.com/nivelab/authcore/internal/api/http/router"
	"github.com/nivelab/authcore/internal/config"
	"github.com/nivelab/authcore/internal/logger"
	"github.com/nivelab/authcore/internal/model"
	"github.com/nivelab/authcore/internal/repository/postgres"
	"github.com/nivelab/authcore/internal/security"
	"github.com/nivelab/authcore/internal/service"
	memorystore "github.com/nivelab/authcore/internal/store/memory"
	redisstore "github.com/nivelab/authcore/internal/store/redis"
	"github.com/nivelab/authcore/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)

	accessTTL := token.ParseTTL(cfg.Auth.AccessTokenTTL)
	refreshTTL := token.ParseTTL(cfg.Auth.RefreshTokenTTL)
	codec := token.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, accessTTL)
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	refresh, revoked, active, err := buildTokenStores(ctx, cfg, codec, refreshTTL, accessTTL, logger)
	if err != nil {
		logger.Fatal("failed to initialize token stores", "error", err)
	}

	authService := service.NewAuth(userRepo, hasher, codec, refresh, revoked, active, service.Config{
		SingleDeviceLogin:              cfg.Auth.SingleDeviceLogin,
		RevokeSessionsOnPasswordChange: cfg.Auth.RevokeSessionsOnPasswordChange,
	}, logger)

	reaper := service.NewReaper(token.ParseTTL(cfg.Auth.SweepInterval), refresh, revoked, logger)
	go reaper.Run(ctx)

	authHandler := handler.NewAuth(authService, logger)
	engine := router.New(router.Config{
		AuthHandler:   authHandler,
		Authenticator: authService,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTP.Port),
		Handler: engine,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server on", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
		}
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func buildTokenStores(
	ctx context.Context,
	cfg *config.Config,
	codec *token.JWT,
	refreshTTL time.Duration,
	accessTTL time.Duration,
	logger *logger.Logger,
) (model.RefreshTokenStore, model.RevocationList, model.ActiveTokenIndex, error) {
	switch cfg.Auth.TokenStore {
	case "redis":
		client, err := redisstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		return redisstore.NewRefreshTokenStore(client, refreshTTL),
			redisstore.NewRevocationList(client, codec, logger),
			redisstore.NewActiveTokenIndex(client, accessTTL),
			nil
	case "memory":
		return memorystore.NewRefreshTokenStore(refreshTTL),
			memorystore.NewRevocationList(codec, logger),
			memorystore.NewActiveTokenIndex(),
			nil
	default:
		return nil, nil, nil, fmt.Errorf("unknown token store %q", cfg.Auth.TokenStore)
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
