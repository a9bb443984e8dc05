package refresh

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunOnceOrderAndErrors(t *testing.T) {
	s := NewScheduler(time.Hour, discardLogger(), nil)

	var mu sync.Mutex
	var order []string
	record := func(name string, err error) SubscriberFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return err
		}
	}
	s.Subscribe("items", record("items", nil))
	s.Subscribe("stats", record("stats", errors.New("offline")))
	s.Subscribe("profile", record("profile", nil))

	s.RunOnce(context.Background())

	want := []string{"items", "stats", "profile"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestSchedulerTicks(t *testing.T) {
	s := NewScheduler(10*time.Millisecond, discardLogger(), nil)

	var calls atomic.Int32
	s.Subscribe("counter", SubscriberFunc(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	}))

	s.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	s.Stop()

	n := calls.Load()
	if n < 2 {
		t.Errorf("got %d refreshes, want at least 2", n)
	}

	time.Sleep(30 * time.Millisecond)
	if calls.Load() != n {
		t.Error("scheduler kept running after Stop")
	}
}

func TestDefaultInterval(t *testing.T) {
	s := NewScheduler(0, discardLogger(), nil)
	if s.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", s.interval, DefaultInterval)
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := NewScheduler(time.Second, discardLogger(), nil)
	s.Stop()
}
