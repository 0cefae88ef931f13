package app

import (
	"fmt"

	"hr-dashboard/internal/activity"
	"hr-dashboard/internal/config"
	"hr-dashboard/internal/events"
	"hr-dashboard/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer menyimpan setiap event invalidasi sebagai activity sampai proses dihentikan.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")
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

	// Tabel outbox_events dikelola oleh DDL terpisah; activities milik service ini.
	if err := gormDB.AutoMigrate(&activity.Activity{}); err != nil {
		return fmt.Errorf("migrate activities: %w", err)
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		Topic:       events.CacheInvalidatedTopic,
		GroupID:     "hr-dashboard-activity",
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signalContext()
	defer stop()

	service := activity.NewService(activity.NewRepository(gormDB), logger)
	logger.Info("consumer started", zap.String("topic", events.CacheInvalidatedTopic))
	consumer.ConsumeActivities(ctx, reader, service, logger)
	logger.Info("consumer shutting down")
	return nil
}
