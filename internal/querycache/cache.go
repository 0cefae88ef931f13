// Package querycache menyimpan hasil baca backend per (scope, entity, page, limit, search)
// dengan disiplin stale-while-revalidate.
//
//   - fresh  (now < StaleAfter): dilayani dari cache tanpa fetch.
//   - stale  (StaleAfter <= now < EvictAfter): dilayani dari cache, satu revalidasi di background.
//   - evicted / tidak ada / di-invalidate: fetch sinkron.
//
// Error fetch tidak pernah disimpan.
package querycache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Key struct {
	Scope  string
	Entity string
	Page   int
	Limit  int
	Search string
}

func (k Key) String() string {
	return fmt.Sprintf("%s|%s|%d|%d|%s", k.Entity, k.Scope, k.Page, k.Limit, k.Search)
}

type Entry struct {
	Key        Key
	Value      any
	FetchedAt  time.Time
	StaleAfter time.Time
	EvictAfter time.Time

	revalidating bool
}

type Options struct {
	StaleAfter time.Duration
	EvictAfter time.Duration
	// Now bisa diganti di test agar kebijakan eviction bisa diuji.
	Now    func() time.Time
	Logger *zap.Logger
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	// generation per entity; fetch yang mulai sebelum Invalidate tidak boleh menulis hasilnya.
	generations map[string]uint64

	sf     singleflight.Group
	bg     sync.WaitGroup
	opts   Options
	logger *zap.Logger
}

func New(opts Options) *Cache {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 10 * time.Minute
	}
	if opts.EvictAfter < opts.StaleAfter {
		opts.EvictAfter = 6 * opts.StaleAfter
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	l := opts.Logger
	if l == nil {
		l = zap.L()
	}
	return &Cache{
		entries:     make(map[string]*Entry),
		generations: make(map[string]uint64),
		opts:        opts,
		logger:      l.Named("querycache"),
	}
}

// Lookup mengembalikan salinan entry tanpa memicu fetch.
func (c *Cache) Lookup(key Key) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Fetch membaca key dari cache atau memanggil fn sesuai aturan freshness.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	load := func(ctx context.Context) (any, error) { return fn(ctx) }

	if v, ok := c.cached(ctx, key, load); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	v, err := c.load(ctx, key, load)
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("querycache: unexpected value type %T for %s", v, key.Entity)
	}
	return typed, nil
}

func (c *Cache) cached(ctx context.Context, key Key, load func(context.Context) (any, error)) (any, bool) {
	now := c.opts.Now()
	k := key.String()

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[k]
	if !ok {
		return nil, false
	}
	if !now.Before(e.EvictAfter) {
		delete(c.entries, k)
		return nil, false
	}
	if !now.Before(e.StaleAfter) && !e.revalidating {
		e.revalidating = true
		c.revalidate(ctx, key, load)
	}
	return e.Value, true
}

// revalidate harus dipanggil saat c.mu dipegang.
func (c *Cache) revalidate(ctx context.Context, key Key, load func(context.Context) (any, error)) {
	bgCtx := context.WithoutCancel(ctx)
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		if _, err := c.load(bgCtx, key, load); err != nil {
			c.logger.Warn("background revalidation failed",
				zap.String("entity", key.Entity),
				zap.String("key", key.String()),
				zap.Error(err),
			)
			c.mu.Lock()
			if e, ok := c.entries[key.String()]; ok {
				e.revalidating = false
			}
			c.mu.Unlock()
		}
	}()
}

func (c *Cache) load(ctx context.Context, key Key, load func(context.Context) (any, error)) (any, error) {
	k := key.String()

	c.mu.RLock()
	gen := c.generations[key.Entity]
	c.mu.RUnlock()

	v, err, _ := c.sf.Do(k, func() (any, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, value, gen)
		return value, nil
	})
	return v, err
}

func (c *Cache) store(key Key, value any, gen uint64) {
	now := c.opts.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[key.Entity] != gen {
		return
	}
	c.entries[key.String()] = &Entry{
		Key:        key,
		Value:      value,
		FetchedAt:  now,
		StaleAfter: now.Add(c.opts.StaleAfter),
		EvictAfter: now.Add(c.opts.EvictAfter),
	}
}

// Invalidate menghapus semua key milik entity (lintas scope/page/limit/search)
// dan mengembalikan jumlah entry yang dihapus.
func (c *Cache) Invalidate(entity string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[entity]++
	removed := 0
	for k, e := range c.entries {
		if e.Key.Entity != entity {
			continue
		}
		delete(c.entries, k)
		c.sf.Forget(k)
		removed++
	}
	c.logger.Debug("cache invalidated", zap.String("entity", entity), zap.Int("removed", removed))
	return removed
}

// Sweep menghapus entry yang sudah melewati EvictAfter.
func (c *Cache) Sweep() int {
	now := c.opts.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.EvictAfter) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Run menjalankan Sweep berkala sampai ctx selesai.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("cache sweeper started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("cache sweeper stopped")
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Debug("cache swept", zap.Int("evicted", n))
			}
		}
	}
}

// Wait menunggu semua revalidasi background selesai.
func (c *Cache) Wait() {
	c.bg.Wait()
}
