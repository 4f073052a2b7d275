package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/pulse/internal/api/handler"
	"github.com/d60-Lab/pulse/internal/api/router"
	"github.com/d60-Lab/pulse/internal/cache"
	"github.com/d60-Lab/pulse/internal/config"
	"github.com/d60-Lab/pulse/internal/database"
	"github.com/d60-Lab/pulse/internal/repository"
	"github.com/d60-Lab/pulse/internal/service"
	"github.com/d60-Lab/pulse/pkg/logger"
	"github.com/d60-Lab/pulse/pkg/tracing"
)

func main() {
	cfgPath := flag.String("config", "", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Server.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Warn("sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, "pulse", cfg.Tracing.Endpoint)
	if err != nil {
		logger.Error("tracing init failed", zap.Error(err))
	} else {
		defer func() {
			_ = shutdownTracing(context.Background())
		}()
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("open database", zap.Error(err))
		return
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migrate database", zap.Error(err))
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	follows := repository.NewFollowRepository(db)

	content := service.NewContentService(posts, groups, comments, users, follows)
	relations := service.NewRelationshipService(follows, users)
	feedCache := cache.NewRedisFeedCache(rdb, cfg.Cache.TTL)

	h := handler.New(content, relations, feedCache)
	engine := router.New(cfg, h)

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
