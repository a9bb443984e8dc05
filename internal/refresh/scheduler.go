package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/superlista/internal/metrics"
)

// DefaultInterval is the safety-net poll period shared by every subscriber.
const DefaultInterval = 30 * time.Second

// Subscriber is anything that can re-pull its state.
type Subscriber interface {
	Refresh(ctx context.Context) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(ctx context.Context) error

func (f SubscriberFunc) Refresh(ctx context.Context) error { return f(ctx) }

type namedSubscriber struct {
	name string
	sub  Subscriber
}

// Scheduler runs one ticker and refreshes every subscriber on each tick.
type Scheduler struct {
	mu       sync.RWMutex
	subs     []namedSubscriber
	interval time.Duration
	logger   *slog.Logger
	metrics  *metrics.Collector
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewScheduler creates a scheduler. A non-positive interval uses DefaultInterval.
func NewScheduler(interval time.Duration, logger *slog.Logger, m *metrics.Collector) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		logger:   logger,
		metrics:  m,
	}
}

// Subscribe adds sub to the refresh cycle. Subscribers run in registration order.
func (s *Scheduler) Subscribe(name string, sub Subscriber) {
	s.mu.Lock()
	s.subs = append(s.subs, namedSubscriber{name: name, sub: sub})
	s.mu.Unlock()
}

// Start begins the scheduler loop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(ctx)
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.RLock()
	cancel := s.cancel
	done := s.done
	s.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// RunOnce refreshes every subscriber once. Errors are logged, not returned.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.RLock()
	subs := make([]namedSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, ns := range subs {
		err := ns.sub.Refresh(ctx)
		s.metrics.RecordRefresh(ns.name, err)
		if err != nil {
			s.logger.Warn("scheduled refresh failed", "subscriber", ns.name, "error", err)
		}
	}
}
