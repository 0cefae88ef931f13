package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"hr-dashboard/internal/backend"
	"hr-dashboard/internal/config"
	"hr-dashboard/internal/events"
	"hr-dashboard/internal/messaging/kafka"
	"hr-dashboard/internal/messaging/kafka/consumer"
	"hr-dashboard/internal/middleware"
	"hr-dashboard/internal/mutation"
	"hr-dashboard/internal/querycache"
	"hr-dashboard/internal/shared/connection"
	"hr-dashboard/internal/shared/response"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App menyimpan resource yang harus dihentikan saat shutdown.
type App struct {
	Cache *querycache.Cache

	cancel  context.CancelFunc
	closers []func() error
	logger  *zap.Logger
}

// Shutdown menghentikan sweeper dan consumer invalidasi, lalu menutup koneksi.
func (a *App) Shutdown(_ context.Context) {
	a.cancel()
	a.Cache.Wait()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close resource failed", zap.Error(err))
		}
	}
}

func BuildApp(router *gin.Engine, cfg config.Config) (*App, error) {
	logger := zap.L().Named("app")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, dashboard tokens are NOT verified (AUTH_ALLOW_UNVERIFIED)")
	}
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{cancel: cancel, logger: logger}

	// 1. Setup Infrastructure
	client, err := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, logger)
	if err != nil {
		cancel()
		return nil, err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		cancel()
		return nil, err
	}
	a.closers = append(a.closers, redisClient.Close)
	logger.Info("redis connection established")

	var gormDB *gorm.DB
	var sqlDB *sql.DB
	if cfg.DB.Host != "" {
		gormDB, err = connectDB(cfg)
		if err != nil {
			cancel()
			return nil, err
		}
		sqlDB, err = gormDB.DB()
		if err != nil {
			cancel()
			return nil, err
		}
		a.closers = append(a.closers, sqlDB.Close)
		logger.Info("database connection established")
	} else {
		logger.Warn("DB_HOST empty: mutations are not broadcast and activities are disabled")
	}

	a.Cache = querycache.New(querycache.Options{
		StaleAfter: cfg.CacheStaleAfter,
		EvictAfter: cfg.CacheEvictAfter,
		Logger:     logger,
	})
	go a.Cache.Run(ctx, cfg.CacheSweepInterval)

	var recorder mutation.Recorder
	if sqlDB != nil {
		recorder = mutation.NewOutboxRecorder(kafka.NewOutboxRepository(sqlDB))
	}
	runner := mutation.NewRunner(a.Cache, recorder, cfg.ReplicaID, logger)

	if cfg.KafkaBroker != "" {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:     []string{cfg.KafkaBroker},
			Topic:       events.CacheInvalidatedTopic,
			GroupID:     "hr-dashboard-cache-" + cfg.ReplicaID,
			StartOffset: kafkago.LastOffset,
		})
		a.closers = append(a.closers, reader.Close)
		go consumer.ConsumeCacheInvalidations(ctx, reader, a.Cache, cfg.ReplicaID, logger)
	}

	// 2. Global middleware
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	router.GET("/healthz", middleware.RateLimitByIP(5, 10), func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{
			"status":  "ok",
			"replica": cfg.ReplicaID,
			"cached":  a.Cache.Len(),
		}, nil)
	})

	// 3. Register Modules & Routes
	if err := registerModules(router, cfg, client, a.Cache, runner, redisClient, gormDB, logger); err != nil {
		a.Shutdown(context.Background())
		return nil, err
	}

	return a, nil
}

func connectDB(cfg config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		5,
	)
}
