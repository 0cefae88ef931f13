package events

import "time"

const CacheInvalidatedTopic = "hr.dashboard.cache.invalidated.v1"

const CacheInvalidatedEventType = "dashboard.cache.invalidated"

// CacheInvalidatedEvent dikirim setiap kali mutation berhasil, supaya replica lain
// ikut membuang cache list yang sama dan consumer activity mencatat jejaknya.
type CacheInvalidatedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Entities   []string  `json:"entities"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	ActorID    string    `json:"actor_id"`
	ReplicaID  string    `json:"replica_id"`
	RequestID  string    `json:"request_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}
