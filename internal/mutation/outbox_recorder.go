package mutation

import (
	"context"
	"encoding/json"

	"hr-dashboard/internal/events"
	"hr-dashboard/internal/messaging/kafka"
)

// OutboxRecorder menulis event ke outbox_events; cmd/worker yang me-relay ke Kafka.
type OutboxRecorder struct {
	repo kafka.OutboxRepository
}

func NewOutboxRecorder(repo kafka.OutboxRepository) *OutboxRecorder {
	return &OutboxRecorder{repo: repo}
}

func (r *OutboxRecorder) Record(ctx context.Context, event events.CacheInvalidatedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return r.repo.Create(ctx, kafka.OutboxEvent{
		ID:         event.EventID,
		RequestID:  event.RequestID,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		EventType:  event.EventType,
		Topic:      events.CacheInvalidatedTopic,
		Payload:    payload,
		Status:     kafka.OutboxStatusPending,
	})
}
