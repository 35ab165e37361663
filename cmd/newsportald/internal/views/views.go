// Package views keeps the listing controller of each open home page between
// requests.
package views

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ascww/newsportal/cmd/newsportald/internal/metrics"
	"github.com/ascww/newsportal/feed"
	"github.com/google/uuid"
)

const sweepInterval = time.Minute

type view struct {
	controller *feed.Controller
	expires    time.Time
}

type Registry struct {
	source feed.Source
	ttl    time.Duration
	opts   []feed.Option
	now    func() time.Time

	mu    sync.Mutex
	views map[string]*view
}

func New(source feed.Source, ttl time.Duration, opts ...feed.Option) *Registry {
	return &Registry{
		source: source,
		ttl:    ttl,
		opts:   opts,
		now:    time.Now,
		views:  make(map[string]*view),
	}
}

// Open registers a new view and runs its initial fetch before returning.
func (r *Registry) Open(ctx context.Context) (string, *feed.Controller) {
	id := uuid.New().String()
	c := feed.New(r.source, r.opts...)

	r.mu.Lock()
	r.views[id] = &view{controller: c, expires: r.now().Add(r.ttl)}
	metrics.ActiveViews.Set(float64(len(r.views)))
	r.mu.Unlock()

	c.InitiateFetch(ctx)
	return id, c
}

// Get returns the controller for id and extends its lifetime.
func (r *Registry) Get(id string) (*feed.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.views[id]
	if !ok || !r.now().Before(v.expires) {
		return nil, false
	}
	v.expires = r.now().Add(r.ttl)
	return v.controller, true
}

// Sweep drops views that expired before now and returns how many were removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	for id, v := range r.views {
		if !now.Before(v.expires) {
			delete(r.views, id)
			n++
		}
	}
	metrics.ActiveViews.Set(float64(len(r.views)))
	return n
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Run sweeps expired views every minute until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n != 0 {
				slog.Debug("swept expired views", "count", n)
			}
		}
	}
}
