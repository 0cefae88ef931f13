package activity

import (
	"strings"
	"time"
)

type ListQuery struct {
	Page     int
	Limit    int
	Resource string
}

type ActivityResponse struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	Action     string    `json:"action"`
	Entities   []string  `json:"entities"`
	ActorID    string    `json:"actor_id"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ListResponse struct {
	Data        []ActivityResponse
	CurrentPage int
	TotalPages  int
}

func splitEntities(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func mapToResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:         a.ID.String(),
		EventID:    a.EventID,
		Resource:   a.Resource,
		ResourceID: a.ResourceID,
		Action:     a.Action,
		Entities:   splitEntities(a.Entities),
		ActorID:    a.ActorID,
		Message:    a.Message,
		OccurredAt: a.OccurredAt,
	}
}
