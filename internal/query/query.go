package query

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kaleidoswap/market-explorer/internal/metrics"
	"github.com/kaleidoswap/market-explorer/pkg/cache"
	"github.com/kaleidoswap/market-explorer/pkg/model"
)

// Status is the lifecycle state of one cached query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Result is what consumers observe for a key. Fetching is set when a
// refetch is in flight while an older result is still being shown.
type Result[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
	Fetching  bool
}

// Loading reports whether the consumer should show a loading state.
func (r Result[T]) Loading() bool { return r.Status == StatusLoading }

// Key identifies one cached query.
type Key struct {
	Resource string
	Network  model.Network
}

// Fetcher loads a resource for a network.
type Fetcher[T any] func(ctx context.Context, network model.Network) (T, error)

// Options tunes a Query. StaleTime is how long a successful result is served
// without refetching; CacheTime is how long any result is kept at all (zero
// keeps results forever).
type Options struct {
	StaleTime time.Duration
	CacheTime time.Duration
}

type call[T any] struct {
	done chan struct{}
	res  Result[T]
}

// Query caches one resource per network. Results are stored under the
// network they were requested for, so a response for a network the consumer
// has since moved away from can never surface under the new selection.
type Query[T any] struct {
	resource string
	fetch    Fetcher[T]
	opts     Options
	logger   *zap.Logger
	results  *cache.Cache[Key, Result[T]]

	mu       sync.Mutex
	inflight map[Key]*call[T]
}

// New creates a Query for resource backed by fetch.
func New[T any](resource string, fetch Fetcher[T], opts Options, logger *zap.Logger) *Query[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Query[T]{
		resource: resource,
		fetch:    fetch,
		opts:     opts,
		logger:   logger,
		results:  cache.New[Key, Result[T]](opts.CacheTime),
		inflight: make(map[Key]*call[T]),
	}
}

func (q *Query[T]) key(network model.Network) Key {
	return Key{Resource: q.resource, Network: network}
}

// Get returns a fresh result for network, fetching it if the cached one is
// missing, stale or an error. Concurrent callers share one fetch. If ctx ends
// first, the current (loading) state is returned.
func (q *Query[T]) Get(ctx context.Context, network model.Network) Result[T] {
	k := q.key(network)
	if res, ok := q.results.Get(k); ok && q.fresh(res) {
		metrics.IncCacheLookup(q.resource, "hit")
		return res
	}

	c, started := q.start(ctx, k)
	if started {
		metrics.IncCacheLookup(q.resource, "miss")
	} else {
		metrics.IncCacheLookup(q.resource, "shared")
	}

	select {
	case <-c.done:
		return c.res
	case <-ctx.Done():
		return q.Peek(network)
	}
}

// Refetch starts a background fetch for network unless one is already in
// flight. Any cached result stays visible through Peek until it completes.
func (q *Query[T]) Refetch(network model.Network) {
	q.start(context.Background(), q.key(network))
}

// Peek returns the current state for network without triggering a fetch.
func (q *Query[T]) Peek(network model.Network) Result[T] {
	k := q.key(network)

	q.mu.Lock()
	_, fetching := q.inflight[k]
	q.mu.Unlock()

	if res, ok := q.results.Get(k); ok {
		res.Fetching = fetching
		return res
	}
	if fetching {
		return Result[T]{Status: StatusLoading, Fetching: true}
	}
	return Result[T]{Status: StatusIdle}
}

// Invalidate drops the cached result for network.
func (q *Query[T]) Invalidate(network model.Network) {
	q.results.Delete(q.key(network))
}

// StartCleaner evicts expired results until stop is closed.
func (q *Query[T]) StartCleaner(interval time.Duration, stop <-chan struct{}) {
	q.results.StartCleaner(interval, stop)
}

func (q *Query[T]) fresh(res Result[T]) bool {
	if res.Status != StatusSuccess {
		return false
	}
	return time.Since(res.UpdatedAt) < q.opts.StaleTime
}

// start joins the in-flight call for k or launches a new one. The fetch runs
// detached from ctx's cancellation so one impatient caller cannot fail the
// others waiting on the same key.
func (q *Query[T]) start(ctx context.Context, k Key) (*call[T], bool) {
	q.mu.Lock()
	if c, ok := q.inflight[k]; ok {
		q.mu.Unlock()
		return c, false
	}
	c := &call[T]{done: make(chan struct{})}
	q.inflight[k] = c
	q.mu.Unlock()

	go q.run(context.WithoutCancel(ctx), k, c)
	return c, true
}

func (q *Query[T]) run(ctx context.Context, k Key, c *call[T]) {
	data, err := q.fetch(ctx, k.Network)

	res := Result[T]{UpdatedAt: time.Now()}
	if err != nil {
		res.Status = StatusError
		res.Err = err
		q.logger.Warn("query.fetch_failed",
			zap.String("resource", k.Resource),
			zap.String("network", k.Network.String()),
			zap.Error(err))
	} else {
		res.Status = StatusSuccess
		res.Data = data
		q.logger.Debug("query.fetch_ok",
			zap.String("resource", k.Resource),
			zap.String("network", k.Network.String()))
	}

	// store before leaving inflight so Peek never observes a gap
	q.results.Put(k, res)

	q.mu.Lock()
	delete(q.inflight, k)
	c.res = res
	q.mu.Unlock()
	close(c.done)
}
