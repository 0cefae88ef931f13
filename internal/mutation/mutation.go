// Package mutation menjalankan satu create/edit/delete ke backend HR lewat form
// lifecycle, lalu meng-invalidate cache list pemiliknya.
package mutation

import (
	"context"
	"errors"
	"time"

	"hr-dashboard/internal/events"
	"hr-dashboard/internal/form"
	"hr-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Invalidator interface {
	Invalidate(entity string) int
}

//go:generate mockgen -source=mutation.go -destination=mock/recorder_mock.go -package=mock

// Recorder meneruskan event invalidasi ke replica lain dan ke activity trail.
type Recorder interface {
	Record(ctx context.Context, event events.CacheInvalidatedEvent) error
}

// Op mendeskripsikan satu mutation: resource yang diubah, entity cache yang
// harus dibuang, dan pesan sukses.
type Op struct {
	Resource   string
	Entities   []string
	Action     Action
	ResourceID string
	Success    string
}

type Runner struct {
	cache     Invalidator
	recorder  Recorder
	replicaID string
	now       func() time.Time
	logger    *zap.Logger
}

func NewRunner(cache Invalidator, recorder Recorder, replicaID string, logger ...*zap.Logger) *Runner {
	l := zap.L().Named("mutation.runner")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mutation.runner")
	}
	return &Runner{
		cache:     cache,
		recorder:  recorder,
		replicaID: replicaID,
		now:       time.Now,
		logger:    l,
	}
}

// Submit: validasi input, satu panggilan call, lalu invalidasi tiap entity tepat
// satu kali. Validasi gagal atau call gagal tidak meng-invalidate apa pun.
func (r *Runner) Submit(ctx context.Context, op Op, input any, call func(context.Context) error) (form.Notification, error) {
	lc := form.NewLifecycle()
	if err := lc.Open(); err != nil {
		return form.Notification{}, err
	}

	if err := lc.Submit(ctx, input, call); err != nil {
		var fe form.FieldErrors
		if errors.As(err, &fe) {
			return form.Notification{}, err
		}
		contextutil.GetLogger(ctx, r.logger).Warn("mutation failed",
			zap.String("resource", op.Resource),
			zap.String("action", string(op.Action)),
			zap.String("resource_id", op.ResourceID),
			zap.Error(err),
		)
		return form.Failure(err), err
	}

	entities := unique(op.Entities)
	for _, entity := range entities {
		r.cache.Invalidate(entity)
	}
	r.record(ctx, op, entities)

	return form.Success(op.Success), nil
}

// record tidak menggagalkan mutation: backend sudah menerima perubahan.
func (r *Runner) record(ctx context.Context, op Op, entities []string) {
	if r.recorder == nil {
		return
	}
	meta := contextutil.ExtractMetadata(ctx)
	event := events.CacheInvalidatedEvent{
		EventID:    uuid.NewString(),
		EventType:  events.CacheInvalidatedEventType,
		Entities:   entities,
		Action:     string(op.Action),
		Resource:   op.Resource,
		ResourceID: op.ResourceID,
		ActorID:    meta.UserID,
		ReplicaID:  r.replicaID,
		RequestID:  meta.RequestID,
		Message:    op.Success,
		OccurredAt: r.now().UTC(),
	}
	if err := r.recorder.Record(ctx, event); err != nil {
		contextutil.GetLogger(ctx, r.logger).Error("record cache invalidation failed",
			zap.String("resource", op.Resource),
			zap.Strings("entities", entities),
			zap.Error(err),
		)
	}
}

func unique(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
