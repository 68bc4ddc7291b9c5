package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"eventscout/internal/domain"
	"eventscout/internal/eventbus"
	"eventscout/internal/search"
)

// Controller drives the reducer against a search client. It is the only
// owner of the current Session; callers observe it through Session and the
// values returned by Dispatch.
type Controller struct {
	client search.Client
	bus    eventbus.EventBus
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    Session
	inflight map[uint64]context.CancelFunc
}

// NewController creates a controller in the Idle state
func NewController(client search.Client, bus eventbus.EventBus, logger *zap.Logger) *Controller {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		client:   client,
		bus:      bus,
		logger:   logger.Named("session"),
		now:      time.Now,
		inflight: make(map[uint64]context.CancelFunc),
	}
}

// Session returns the current state
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch feeds msg through the reducer. A returned Request must be passed
// to Execute. Submitting while a search is in flight supersedes it: the older
// request is cancelled and its result will be discarded.
func (c *Controller) Dispatch(msg Msg) (Session, *Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	next, req := Reduce(prev, msg)
	c.state = next

	switch m := msg.(type) {
	case Submit:
		if req == nil {
			c.logger.Debug("submission rejected", zap.String("city", m.Params.City))
			break
		}
		for seq, cancel := range c.inflight {
			if seq < req.Seq {
				cancel()
				delete(c.inflight, seq)
			}
		}
		c.bus.Publish(eventbus.SearchStartedEvent{Seq: req.Seq, Params: req.Params})

	case Result:
		if !prev.Accepts(m) {
			c.logger.Info("discarding stale search result", zap.Uint64("seq", m.Seq), zap.Uint64("latest", prev.Seq))
			c.bus.Publish(eventbus.SearchDiscardedEvent{Seq: m.Seq, Latest: prev.Seq})
			break
		}
		if next.Status == Error {
			c.bus.Publish(eventbus.SearchFailedEvent{
				Seq: m.Seq, City: next.City, Message: next.Message, Err: m.Err, Duration: m.Duration,
			})
		} else {
			c.bus.Publish(eventbus.SearchSucceededEvent{
				Seq: m.Seq, City: next.City, Count: len(next.Events), Duration: m.Duration,
			})
		}

	case Retry:
		if prev.Status == Error {
			c.bus.Publish(eventbus.SearchRetriedEvent{})
		}
	}

	return next, req
}

// Execute performs req and returns its Result without touching the session.
// Dispatch the Result to apply it.
func (c *Controller) Execute(ctx context.Context, req Request) Result {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if req.Seq < c.state.Seq {
		c.mu.Unlock()
		cancel()
		return Result{Seq: req.Seq, Err: context.Canceled}
	}
	c.inflight[req.Seq] = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, req.Seq)
		c.mu.Unlock()
		cancel()
	}()

	start := c.now()
	events, err := c.client.Search(ctx, req.Params)
	duration := c.now().Sub(start)

	if err != nil {
		var fe *search.FetchError
		if errors.As(err, &fe) {
			c.logger.Warn("search failed", zap.Uint64("seq", req.Seq), zap.String("detail", fe.Detail()))
		} else {
			c.logger.Warn("search failed", zap.Uint64("seq", req.Seq), zap.Error(err))
		}
		return Result{Seq: req.Seq, Err: err, Duration: duration}
	}
	return Result{Seq: req.Seq, Events: events, Duration: duration}
}

// StartSearch runs one search end to end and returns the resulting session.
// The error is non-nil only when the submission was rejected before any
// network call; search failures are reported through the Error state.
func (c *Controller) StartSearch(ctx context.Context, params domain.SearchParams) (Session, error) {
	if _, err := domain.NewSearchParams(params.City, params.MaxEvents, params.ShowDescriptions); err != nil {
		return c.Session(), err
	}

	_, req := c.Dispatch(Submit{Params: params})
	if req == nil {
		return c.Session(), errors.New("search was not started")
	}

	result := c.Execute(ctx, *req)
	next, _ := c.Dispatch(result)
	return next, nil
}

// Retry clears an error state without issuing a request
func (c *Controller) Retry() Session {
	next, _ := c.Dispatch(Retry{})
	return next
}

// Close cancels any search still in flight
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for seq, cancel := range c.inflight {
		cancel()
		delete(c.inflight, seq)
	}
}
