package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/benitha200/cherryapp-backend/config"
	"github.com/benitha200/cherryapp-backend/internal/api/handler"
	"github.com/benitha200/cherryapp-backend/internal/api/middleware"
	"github.com/benitha200/cherryapp-backend/internal/api/router"
	"github.com/benitha200/cherryapp-backend/internal/repository"
	"github.com/benitha200/cherryapp-backend/internal/service"
	"github.com/benitha200/cherryapp-backend/pkg/cache"
	"github.com/benitha200/cherryapp-backend/pkg/database"
	"github.com/benitha200/cherryapp-backend/pkg/jwt"
	applogger "github.com/benitha200/cherryapp-backend/pkg/logger"
	"github.com/benitha200/cherryapp-backend/pkg/redis"
)

func main() {
	// a missing .env is fine, real deployments use the environment
	_ = godotenv.Load()

	// 1. config
	cfg, err := config.Load(os.Getenv("CHERRY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("get sql.DB", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("migrations failed", zap.Error(err))
		}
	}

	// 4. redis, optional: without it caching is off and tokens cannot be revoked
	var (
		rdb       *redis.Client
		store     cache.Store = cache.Nop{}
		revoker   service.TokenRevoker
		blacklist middleware.Blacklist
		limiter   middleware.Limiter
	)
	if cfg.Redis.Enabled {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, running without cache and token blacklist", zap.Error(err))
		} else {
			store, revoker, blacklist, limiter = rdb, rdb, rdb, rdb
		}
	}

	// 5. wiring: repository → service → handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, store, revoker, logger)
	h := handler.NewHandler(svc)

	engine := router.Setup(cfg, h, jwtMgr, blacklist, limiter, logger)

	// 6. http server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	logger.Info("server stopped")
}
