package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/dutch/internal/common/clock"
	"github.com/KirkDiggler/dutch/internal/common/uuid"
	"github.com/KirkDiggler/dutch/internal/config"
	"github.com/KirkDiggler/dutch/internal/handlers/api"
	"github.com/KirkDiggler/dutch/internal/repositories/game"
	"github.com/KirkDiggler/dutch/internal/repositories/history"
	"github.com/KirkDiggler/dutch/internal/repositories/kv"
	"github.com/KirkDiggler/dutch/internal/services/ledger"
	"github.com/KirkDiggler/dutch/internal/services/messaging"
	"github.com/KirkDiggler/dutch/internal/services/statistics"
)

func main() {
	// A missing .env file is fine, the environment is used as is
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Primary tier is SQLite; memory stands in when it is disabled or unavailable
	var primary kv.Store = kv.NewMemory()
	var db *sql.DB
	if cfg.SQLitePath != "" {
		db, err = kv.OpenSQLite(cfg.SQLitePath)
		if err == nil {
			primary, err = kv.NewSQLite(&kv.SQLiteConfig{DB: db})
		}
		if err != nil {
			logger.Warn("sqlite unavailable, saves will not survive a restart",
				zap.String("path", cfg.SQLitePath),
				zap.Error(err),
			)
			primary = kv.NewMemory()
		} else {
			defer db.Close()
		}
	}

	// Fallback tier and history archive use Redis when configured
	var fallback kv.Store = kv.NewMemory()
	var historyRepo history.Repository
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		redisStore, err := kv.NewRedis(&kv.RedisConfig{RedisClient: redisClient, KeyPrefix: "dutch:"})
		if err != nil {
			logger.Warn("redis unavailable, using in-memory fallback", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			fallback = redisStore

			historyRepo, err = history.NewRedis(&history.Config{RedisClient: redisClient})
			if err != nil {
				logger.Warn("history archive disabled", zap.Error(err))
				historyRepo = nil
			}
		}
	}

	store, err := kv.NewTiered(&kv.TieredConfig{
		Primary:  primary,
		Fallback: fallback,
		Resolve:  game.NewerSave,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatal("failed to create store", zap.Error(err))
	}

	gameRepo, err := game.New(&game.Config{
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to create game repository", zap.Error(err))
	}

	ledgerSvc, err := ledger.New(&ledger.Config{
		DefaultScoreLimit: cfg.DefaultScoreLimit,
		MaxPlayers:        cfg.MaxPlayers,
		GameRepo:          gameRepo,
		HistoryRepo:       historyRepo,
		Statistics: statistics.New(&statistics.Config{
			Window:             cfg.StatsWindow,
			GoodRoundThreshold: cfg.GoodRoundThreshold,
		}),
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("failed to create ledger service", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	loaded, err := ledgerSvc.LoadGame(ctx, &ledger.LoadGameInput{})
	cancel()
	if err != nil {
		logger.Warn("failed to restore saved game", zap.Error(err))
	} else if !loaded.Found {
		logger.Info("no saved game restored", zap.String("status", string(loaded.Status)))
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		logger.Fatal("failed to create messaging service", zap.Error(err))
	}

	handler, err := api.New(&api.Config{
		Ledger:    ledgerSvc,
		Messaging: messagingSvc,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("failed to create handler", zap.Error(err))
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error stopping server", zap.Error(err))
	}

	logger.Info("server has been shut down")
}

// newLogger builds a production zap logger at the given level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}
