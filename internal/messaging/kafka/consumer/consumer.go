package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hr-dashboard/internal/events"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	fetchBackoff      = time.Second
	recordBackoff     = 500 * time.Millisecond
	maxRecordAttempts = 5
)

// MessageReader dipenuhi *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Invalidator interface {
	Invalidate(entity string) int
}

type ActivityRecorder interface {
	Record(ctx context.Context, event events.CacheInvalidatedEvent) error
}

// ConsumeCacheInvalidations menerapkan invalidasi dari replica lain ke cache lokal.
// Event dari replica sendiri dilewati karena cache lokal sudah di-invalidate saat mutation.
func ConsumeCacheInvalidations(
	ctx context.Context,
	reader MessageReader,
	cache Invalidator,
	replicaID string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.cache_invalidation")
	log.Info("cache invalidation consumer started", zap.String("replica_id", replicaID))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("cache invalidation consumer stopped")
				return
			}
			log.Error("fetch cache invalidation message failed", zap.Error(err))
			if !sleep(ctx, fetchBackoff) {
				log.Info("cache invalidation consumer stopped")
				return
			}
			continue
		}

		var event events.CacheInvalidatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode cache invalidation event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.ReplicaID != replicaID {
			removed := 0
			for _, entity := range event.Entities {
				removed += cache.Invalidate(entity)
			}
			log.Debug("remote invalidation applied",
				zap.Strings("entities", event.Entities),
				zap.String("from_replica", event.ReplicaID),
				zap.Int("removed", removed),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit cache invalidation message failed", zap.Error(err))
		}
	}
}

// ConsumeActivities menyimpan setiap mutation sebagai activity. Pengiriman ganda
// (event_id yang sama) dianggap sudah tercatat.
func ConsumeActivities(
	ctx context.Context,
	reader MessageReader,
	recorder ActivityRecorder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.activity")
	log.Info("activity consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("activity consumer stopped")
				return
			}
			log.Error("fetch activity message failed", zap.Error(err))
			if !sleep(ctx, fetchBackoff) {
				log.Info("activity consumer stopped")
				return
			}
			continue
		}

		var event events.CacheInvalidatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode activity event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := record(ctx, recorder, event, log); err != nil {
			if isDuplicateActivity(err) {
				log.Warn("activity already recorded, skipping", zap.String("event_id", event.EventID))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			if ctx.Err() != nil {
				// belum di-commit, dikirim ulang setelah consumer jalan lagi
				log.Info("activity consumer stopped")
				return
			}

			// dead letter: payload ada di log, offset di-commit agar partisi tidak macet
			log.Error("activity dead-lettered",
				zap.String("event_id", event.EventID),
				zap.String("resource", event.Resource),
				zap.Int("attempts", maxRecordAttempts),
				zap.ByteString("payload", msg.Value),
				zap.Error(err),
			)
			if err := reader.CommitMessages(ctx, msg); err != nil {
				log.Error("commit activity message failed", zap.Error(err))
			}
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit activity message failed", zap.Error(err))
			continue
		}

		log.Info("activity recorded",
			zap.String("event_id", event.EventID),
			zap.String("resource", event.Resource),
			zap.String("action", event.Action),
		)
	}
}

// record mencoba menyimpan event yang sama sampai maxRecordAttempts kali dengan
// backoff yang berlipat. Duplikat tidak diulang.
func record(ctx context.Context, recorder ActivityRecorder, event events.CacheInvalidatedEvent, log *zap.Logger) error {
	backoff := recordBackoff
	var err error
	for attempt := 1; attempt <= maxRecordAttempts; attempt++ {
		err = recorder.Record(ctx, event)
		if err == nil || isDuplicateActivity(err) || attempt == maxRecordAttempts {
			return err
		}
		log.Warn("record activity failed, retrying",
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if !sleep(ctx, backoff) {
			return err
		}
		backoff *= 2
	}
	return err
}

// sleep menunggu d. Hasil false berarti ctx selesai lebih dulu.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func isDuplicateActivity(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value")
}
