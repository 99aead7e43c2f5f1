package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"lodging_backend/internal/app/di"
	"lodging_backend/internal/app/router"
	"lodging_backend/internal/platform/config"
	platformdb "lodging_backend/internal/platform/db"
	platformhandler "lodging_backend/internal/platform/http/handler"
	"lodging_backend/internal/platform/logger"
	"lodging_backend/internal/platform/metrics"
	infraredis "lodging_backend/internal/platform/redis"
	"lodging_backend/internal/platform/storage"
	"lodging_backend/internal/shared/ratelimiter"
	"lodging_backend/internal/shared/validation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .envを読み込む（無ければ環境変数のみ）
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.SetupDefault(os.Stdout, cfg.App.LogLevel)
	validation.Setup()

	// 本番で必須の秘密情報チェック（開発中の注意喚起）
	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		slog.Warn("required secrets are not set", "keys", missing)
	}

	// db
	db, err := platformdb.Open(platformdb.ConfigFrom(cfg.Database))
	if err != nil {
		return err
	}
	if cfg.Database.RunMigrations {
		if err := platformdb.Migrate(db); err != nil {
			return err
		}
		slog.Info("database migrated")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// Redis（無くてもキャッシュなしで動作する）
	ctx := context.Background()
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	images, err := storage.NewFileStorage(cfg.Storage.Dir)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	handlers := di.NewHandlers(di.Deps{
		Config:   cfg,
		DB:       db,
		Redis:    rdb,
		Images:   images,
		Checkout: di.NewCheckoutGateway(cfg.Stripe),
		Metrics:  collector,
	})

	ready := map[string]platformhandler.Pinger{"database": platformhandler.PingFunc(sqlDB.PingContext)}
	if rdb != nil {
		ready["redis"] = platformhandler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	engine := router.NewRouter(handlers, router.Options{
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
		Metrics:   collector,
		Gatherer:  reg,
		AuthLimiter: ratelimiter.NewRateLimiter(ratelimiter.Config{
			Rate:  rate.Limit(cfg.Limits.AuthRate),
			Burst: cfg.Limits.AuthBurst,
		}),
		Images: images.HTTPFileSystem(),
		Ready:  ready,
	})

	server := &http.Server{
		Addr:              cfg.App.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped gracefully")
	return nil
}
