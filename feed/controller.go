// Package feed implements the chunked reveal of a news listing: the listing is
// fetched once, then shown a few items at a time as the reader approaches the
// end of what is already visible.
package feed

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/ascww/newsportal/models"
)

// ChunkSize is the number of items revealed per step.
const ChunkSize = 3

// Source provides pages of the upstream news listing.
type Source interface {
	ListNews(ctx context.Context, page int) ([]models.NewsItem, error)
}

type Option func(*Controller)

func WithChunkSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.log = logger
	}
}

// Controller holds the state of one listing view. Its methods are safe for
// concurrent use; state transitions are serialized and the source is called
// without holding the lock.
type Controller struct {
	source    Source
	chunkSize int
	log       *slog.Logger

	mu              sync.Mutex
	fetched         []models.NewsItem
	revealed        int
	loading         bool
	hasMoreUpstream bool
	lastError       *Failure
}

func New(source Source, opts ...Option) *Controller {
	c := &Controller{
		source:          source,
		chunkSize:       ChunkSize,
		log:             slog.Default(),
		hasMoreUpstream: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InitiateFetch loads the listing and reveals the first chunk. It does nothing
// and returns false if a fetch is in progress or items were already fetched.
func (c *Controller) InitiateFetch(ctx context.Context) bool {
	c.mu.Lock()
	if c.loading || len(c.fetched) != 0 {
		c.mu.Unlock()
		return false
	}
	c.loading = true
	c.lastError = nil
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	// Only the first page is ever requested.
	items, err := c.source.ListNews(ctx, 1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.lastError = Classify(err)
		c.log.Error("unable to fetch news", "error", err, "httpStatus", c.lastError.HTTPStatus)
		return true
	}

	c.hasMoreUpstream = false

	if len(items) == 0 {
		c.log.Debug("news listing is empty")
		return true
	}

	items = slices.Clone(items)
	models.SortNewest(items)
	c.fetched = items
	c.revealed = min(c.chunkSize, len(items))

	c.log.Debug("fetched news", "count", len(items), "revealed", c.revealed)
	return true
}

// Retry is InitiateFetch under another name, offered after a failure.
func (c *Controller) Retry(ctx context.Context) bool {
	return c.InitiateFetch(ctx)
}

// OnApproachingEnd reveals the next chunk of fetched items and returns them.
// It returns nil while loading or once everything fetched is visible.
func (c *Controller) OnApproachingEnd() []models.NewsItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading || c.revealed >= len(c.fetched) {
		return nil
	}

	end := min(c.revealed+c.chunkSize, len(c.fetched))
	next := slices.Clone(c.fetched[c.revealed:end])
	c.revealed = end
	return next
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastError *Failure
	if c.lastError != nil {
		f := *c.lastError
		lastError = &f
	}

	return State{
		Revealed:        slices.Clone(c.fetched[:c.revealed]),
		Fetched:         len(c.fetched),
		Loading:         c.loading,
		HasMoreUpstream: c.hasMoreUpstream,
		LastError:       lastError,
	}
}
