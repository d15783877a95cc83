package listview

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrStaleResponse marks a response that arrived after a newer request was
// issued. It is only ever logged.
var ErrStaleResponse = errors.New("stale response discarded")

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// State is a consistent snapshot of a controller.
type State[T any] struct {
	Query   PageQuery     `json:"query"`
	Page    PageResult[T] `json:"page"`
	HasPage bool          `json:"hasPage"`
	Loading bool          `json:"loading"`
	Status  Status        `json:"status"`
	Err     error         `json:"-"`
	Reload  uint64        `json:"reload"`
	Version uint64        `json:"version"`
}

type Option func(*options)

type options struct {
	log     logrus.FieldLogger
	timeout time.Duration
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.log = l }
}

// WithFetchTimeout bounds each fetch. Zero leaves the transport default.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Controller owns paging, sorting and filtering state for one collection.
// Every state change issues a fetch tagged with a sequence number; only the
// response to the newest request may change the visible page.
type Controller[T any] struct {
	fetcher Fetcher[T]
	opts    options

	mu       sync.Mutex
	query    PageQuery
	page     PageResult[T]
	pageQ    PageQuery
	hasPage  bool
	err      error
	issued   uint64
	settled  uint64
	reload   uint64
	version  uint64
	cancel   context.CancelFunc
	changed  chan struct{}
	closed   bool
	unbind   []func()
	stoppers []*Debouncer

	notifyMu     sync.Mutex
	lastNotified uint64
	listeners    []func(State[T])
}

func NewController[T any](f Fetcher[T], initial PageQuery, opts ...Option) *Controller[T] {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	o := options{log: discard}
	for _, opt := range opts {
		opt(&o)
	}
	if initial.PageSize <= 0 {
		initial.PageSize = NewPageQuery(0).PageSize
	}
	if initial.SortDirection == "" {
		initial.SortDirection = Asc
	}
	return &Controller[T]{
		fetcher: f,
		opts:    o,
		query:   initial,
		changed: make(chan struct{}),
	}
}

// OnChange registers fn to receive every new state in version order. fn runs
// on the goroutine that produced the change and must not call the
// controller's setters synchronously.
func (c *Controller[T]) OnChange(fn func(State[T])) {
	c.notifyMu.Lock()
	c.listeners = append(c.listeners, fn)
	c.notifyMu.Unlock()
}

// Refresh refetches the current query without touching the reload counter.
func (c *Controller[T]) Refresh() {
	c.update(func(q PageQuery) PageQuery { return q })
}

// SetPage moves to page n, clamped to the last page known for the current
// filter and page size.
func (c *Controller[T]) SetPage(n int) {
	c.update(func(q PageQuery) PageQuery {
		if last, ok := c.lastIndexLocked(q); ok && n > last {
			n = last
		}
		return q.WithPage(n)
	})
}

// NextPage advances one page unless the requested page is already the last
// one known. It checks the query, not the applied page, so repeated calls
// while a fetch is in flight cannot run past the end.
func (c *Controller[T]) NextPage() {
	c.update(func(q PageQuery) PageQuery {
		if last, ok := c.lastIndexLocked(q); ok && q.PageIndex >= last {
			return q
		}
		return q.WithPage(q.PageIndex + 1)
	})
}

// lastIndexLocked reports the last page index for q when the applied page
// was fetched with the same filter and page size.
func (c *Controller[T]) lastIndexLocked(q PageQuery) (int, bool) {
	if !c.hasPage || c.pageQ.FilterText != q.FilterText || c.pageQ.PageSize != q.PageSize {
		return 0, false
	}
	if c.page.TotalPages <= 0 {
		return 0, true
	}
	return c.page.TotalPages - 1, true
}

func (c *Controller[T]) PrevPage() {
	c.update(func(q PageQuery) PageQuery { return q.WithPage(q.PageIndex - 1) })
}

func (c *Controller[T]) SetFilterText(s string) {
	c.update(func(q PageQuery) PageQuery { return q.WithFilter(s) })
}

func (c *Controller[T]) SetSort(key string, dir SortDirection) {
	c.update(func(q PageQuery) PageQuery { return q.WithSort(key, dir) })
}

func (c *Controller[T]) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.update(func(q PageQuery) PageQuery { return q.WithPageSize(n) })
}

// NotifyExternalChange records that the collection changed elsewhere and
// refetches the current page. The page index is kept.
func (c *Controller[T]) NotifyExternalChange() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.reload++
	c.issueLocked()
	c.mu.Unlock()
	c.notify()
}

// Bind subscribes the controller to token; every bump refetches.
func (c *Controller[T]) Bind(token *ReloadToken) {
	unsubscribe := token.Subscribe(func(uint64) { c.NotifyExternalChange() })
	c.mu.Lock()
	closed := c.closed
	if !closed {
		c.unbind = append(c.unbind, unsubscribe)
	}
	c.mu.Unlock()
	if closed {
		unsubscribe()
	}
}

// DebounceFilter returns a debouncer that forwards into SetFilterText. It is
// stopped when the controller closes.
func (c *Controller[T]) DebounceFilter(delay time.Duration) *Debouncer {
	d := NewDebouncer(delay, c.SetFilterText)
	c.mu.Lock()
	closed := c.closed
	if !closed {
		c.stoppers = append(c.stoppers, d)
	}
	c.mu.Unlock()
	if closed {
		d.Stop()
	}
	return d
}

// Close stops debouncers, drops token subscriptions, aborts the in-flight
// request and discards every result that arrives afterwards.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	unbind, stoppers := c.unbind, c.stoppers
	c.unbind, c.stoppers = nil, nil
	c.mu.Unlock()

	for _, d := range stoppers {
		d.Stop()
	}
	for _, fn := range unbind {
		fn()
	}
}

func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) Query() PageQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Wait blocks until the state version exceeds after or ctx ends, and returns
// the latest snapshot either way.
func (c *Controller[T]) Wait(ctx context.Context, after uint64) (State[T], error) {
	for {
		c.mu.Lock()
		if c.version > after {
			st := c.snapshotLocked()
			c.mu.Unlock()
			return st, nil
		}
		ch := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return c.Snapshot(), ctx.Err()
		case <-ch:
		}
	}
}

func (c *Controller[T]) update(fn func(PageQuery) PageQuery) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.query = fn(c.query)
	c.issueLocked()
	c.mu.Unlock()
	c.notify()
}

// issueLocked starts a fetch for the current query. The previous request, if
// still running, is cancelled; its result would be discarded anyway.
func (c *Controller[T]) issueLocked() {
	c.issued++
	seq := c.issued
	q := c.query

	if c.cancel != nil {
		c.cancel()
	}
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.opts.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.opts.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	c.cancel = cancel
	c.bumpLocked()

	go c.run(ctx, cancel, seq, q)
}

func (c *Controller[T]) run(ctx context.Context, cancel context.CancelFunc, seq uint64, q PageQuery) {
	defer cancel()
	res, err := c.fetcher.Fetch(ctx, q)

	c.mu.Lock()
	if c.closed || seq != c.issued {
		latest := c.issued
		c.mu.Unlock()
		c.opts.log.WithFields(logrus.Fields{
			"seq":    seq,
			"latest": latest,
			"page":   q.PageIndex,
		}).Debug(ErrStaleResponse.Error())
		return
	}

	c.settled = seq
	c.cancel = nil
	if err != nil {
		c.err = err
		c.opts.log.WithFields(logrus.Fields{
			"seq":  seq,
			"page": q.PageIndex,
		}).Warnf("page fetch failed: %v", err)
	} else {
		c.page = res
		c.pageQ = q
		c.hasPage = true
		c.err = nil
	}
	c.bumpLocked()
	c.mu.Unlock()
	c.notify()
}

func (c *Controller[T]) bumpLocked() {
	c.version++
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller[T]) snapshotLocked() State[T] {
	loading := c.settled != c.issued
	status := StatusIdle
	switch {
	case loading:
		status = StatusLoading
	case c.err != nil:
		status = StatusError
	case c.hasPage:
		status = StatusLoaded
	}
	return State[T]{
		Query:   c.query,
		Page:    c.page,
		HasPage: c.hasPage,
		Loading: loading,
		Status:  status,
		Err:     c.err,
		Reload:  c.reload,
		Version: c.version,
	}
}

func (c *Controller[T]) notify() {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if len(c.listeners) == 0 {
		return
	}
	st := c.Snapshot()
	if st.Version <= c.lastNotified {
		return
	}
	c.lastNotified = st.Version
	for _, fn := range c.listeners {
		fn(st)
	}
}
