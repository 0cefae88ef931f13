package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"hr-dashboard/internal/config"
	"hr-dashboard/internal/messaging/kafka"
	"hr-dashboard/internal/messaging/kafka/producer"
	"hr-dashboard/internal/shared/connection"

	"go.uber.org/zap"
)

var errKafkaRequired = errors.New("KAFKA_BROKER is required")

// signalContext dibatalkan saat SIGINT/SIGTERM; dipakai worker dan consumer.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// RunWorker me-relay outbox_events (invalidasi cache) ke Kafka sampai proses dihentikan.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")
	if cfg.KafkaBroker == "" {
		return errKafkaRequired
	}

	gormDB, err := connectDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, stop := signalContext()
	defer stop()

	logger.Info("worker started", zap.String("replica", cfg.ReplicaID))
	producer.ProcessOutboxEvents(ctx, kafka.NewOutboxRepository(sqlDB), writer, logger, cfg.OutboxPollInterval)
	logger.Info("worker shutting down")
	return nil
}
