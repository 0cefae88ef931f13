package activity

import (
	"context"
	"strings"
	"time"

	activityerrors "hr-dashboard/internal/activity/errors"
	"hr-dashboard/internal/events"
	"hr-dashboard/internal/presence/category"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Record(ctx context.Context, event events.CacheInvalidatedEvent) error
	List(ctx context.Context, q ListQuery) (ListResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activity.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// Record menyimpan event sebagai activity. Duplikat event_id ditolak oleh unique
// index dan dikembalikan apa adanya ke consumer.
func (s *service) Record(ctx context.Context, event events.CacheInvalidatedEvent) error {
	if event.EventID == "" || event.Resource == "" {
		return activityerrors.ErrInvalidEvent
	}

	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = s.now().UTC()
	}

	a := &Activity{
		ID:         uuid.New(),
		EventID:    event.EventID,
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		Action:     event.Action,
		Entities:   strings.Join(event.Entities, ","),
		ActorID:    event.ActorID,
		RequestID:  event.RequestID,
		Message:    event.Message,
		OccurredAt: occurred,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}
	s.logger.Debug("activity stored", zap.String("event_id", a.EventID), zap.String("resource", a.Resource))
	return nil
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResponse, error) {
	if q.Page < 1 {
		q.Page = category.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = category.DefaultLimit
	}
	if !category.ValidLimit(q.Limit) {
		return ListResponse{}, activityerrors.ErrInvalidLimit
	}

	rows, total, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("list activities failed", zap.Error(err))
		return ListResponse{}, err
	}

	out := ListResponse{
		Data:        make([]ActivityResponse, 0, len(rows)),
		CurrentPage: q.Page,
		TotalPages:  int((total + int64(q.Limit) - 1) / int64(q.Limit)),
	}
	for _, a := range rows {
		out.Data = append(out.Data, mapToResponse(a))
	}
	return out, nil
}
