package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dukerupert/superlista/internal/config"
	"github.com/dukerupert/superlista/internal/database"
	"github.com/dukerupert/superlista/internal/history"
	"github.com/dukerupert/superlista/internal/metrics"
	"github.com/dukerupert/superlista/internal/model"
	"github.com/dukerupert/superlista/internal/prefs"
	"github.com/dukerupert/superlista/internal/refresh"
	"github.com/dukerupert/superlista/internal/remote"
	"github.com/dukerupert/superlista/internal/session"
	"github.com/dukerupert/superlista/internal/shoplist"
	"github.com/dukerupert/superlista/internal/stats"
)

// ClientOptions are the optional parts of a Client.
type ClientOptions struct {
	HTTPClient *http.Client
	// Tokens supplies this device's push token. Nil skips registration.
	Tokens  session.TokenSource
	Metrics *metrics.Collector
}

// Client is the app side of superlista: the shared list, the logged-in
// session and the user's stats, kept fresh by one refresh schedule.
type Client struct {
	Remote    *remote.Client
	Session   *session.Manager
	List      *shoplist.List
	Stats     *stats.Aggregator
	Bus       *refresh.Bus
	Scheduler *refresh.Scheduler

	prefsDB  *sql.DB
	statsSub *refresh.Subscription
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewClient(cfg *config.Config, opts ClientOptions, logger *slog.Logger) (*Client, error) {
	prefsDB, err := database.OpenPrefs(cfg.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}

	rc := remote.NewClient(cfg.APIURL, opts.HTTPClient)
	sess := session.NewManager(session.Config{
		Directory: rc,
		Prefs:     prefs.NewStore(prefsDB),
		Tokens:    opts.Tokens,
		Saver:     rc,
		Logger:    logger.With("component", "session"),
	})
	rc.SetIdentity(sess.UserID)

	bus := refresh.NewBus(logger.With("component", "refresh_bus"))
	recorder := history.NewRecorder(rc, logger.With("component", "history"), opts.Metrics)
	list := shoplist.NewList(shoplist.Config{
		Store:   rc,
		History: recorder,
		Signals: bus,
		Actor:   sess.Actor,
		Logger:  logger.With("component", "list"),
	})
	agg := stats.NewAggregator(recorder, logger.With("component", "stats"))

	sched := refresh.NewScheduler(cfg.RefreshInterval, logger.With("component", "refresh"), opts.Metrics)
	sched.Subscribe("list", refresh.SubscriberFunc(list.Refresh))
	sched.Subscribe("stats", refresh.SubscriberFunc(agg.Refresh))

	return &Client{
		Remote:    rc,
		Session:   sess,
		List:      list,
		Stats:     agg,
		Bus:       bus,
		Scheduler: sched,
		prefsDB:   prefsDB,
		statsSub:  bus.Subscribe(),
		logger:    logger,
	}, nil
}

// Start restores the remembered session, loads the list and stats, and
// starts the refresh schedule and the stats follower.
func (c *Client) Start(ctx context.Context) error {
	if err := c.Session.Load(ctx); err != nil {
		c.logger.Warn("restore session", "error", err)
	}
	if err := c.List.Load(ctx); err != nil {
		return fmt.Errorf("load list: %w", err)
	}
	if err := c.Stats.SetUser(ctx, c.Session.UserID()); err != nil {
		c.logger.Warn("load stats", "error", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.Stats.Follow(runCtx, c.statsSub)
	}()
	c.Scheduler.Start(runCtx)
	return nil
}

// Login logs in by display name and reloads everything for that user.
func (c *Client) Login(ctx context.Context, name string) error {
	if err := c.Session.Login(ctx, name); err != nil {
		return err
	}
	if err := c.Stats.SetUser(ctx, c.Session.UserID()); err != nil {
		c.logger.Warn("load stats", "error", err)
	}
	return c.List.Load(ctx)
}

// ErrNotLoggedIn rejects list mutations made before anyone logged in.
var ErrNotLoggedIn = &model.ValidationError{Field: "name", Message: "not logged in"}

// Add adds an item as the logged-in user and recomputes that user's stats
// before returning, so callers printing the stats see the new item.
func (c *Client) Add(ctx context.Context, form model.ItemForm) (shoplist.Outcome, error) {
	if c.Session.Actor().ID == "" {
		return shoplist.Outcome{}, ErrNotLoggedIn
	}
	out, err := c.List.Add(ctx, form)
	if err != nil {
		return shoplist.Outcome{}, err
	}
	if err := c.Stats.Refresh(ctx); err != nil {
		c.logger.Warn("refresh stats after add", "error", err)
	}
	return out, nil
}

// Logout clears the session and the tracked stats.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.Session.Logout(ctx); err != nil {
		return err
	}
	return c.Stats.SetUser(ctx, "")
}

// Close stops background work and closes the prefs database.
func (c *Client) Close() error {
	c.Scheduler.Stop()

	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
	c.Bus.Unsubscribe(c.statsSub)
	return c.prefsDB.Close()
}
