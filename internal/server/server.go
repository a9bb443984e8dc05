package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dukerupert/superlista/internal/handler"
	"github.com/dukerupert/superlista/internal/metrics"
	"github.com/dukerupert/superlista/internal/middleware"
	"github.com/dukerupert/superlista/internal/push"
	"github.com/dukerupert/superlista/internal/store"
)

// Options configures the optional parts of the API server.
type Options struct {
	// PushService is nil or disabled when VAPID keys are not configured.
	PushService     *push.Service
	Registry        *prometheus.Registry
	LoginRatePerMin int
}

type Server struct {
	db          *sql.DB
	itemH       *handler.ItemHandler
	userH       *handler.UserHandler
	historyH    *handler.HistoryHandler
	pushH       *handler.PushHandler
	userStore   *store.UserStore
	rateLimiter *middleware.RateLimiter
	registry    *prometheus.Registry
	logger      *slog.Logger
}

func New(db *sql.DB, opts Options, logger *slog.Logger) *Server {
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.LoginRatePerMin <= 0 {
		opts.LoginRatePerMin = 10
	}
	collector := metrics.NewCollector(opts.Registry)

	userStore := store.NewUserStore(db)
	itemStore := store.NewItemStore(db)
	historyStore := store.NewHistoryStore(db)
	tokenStore := store.NewTokenStore(db)

	var notifier handler.ItemNotifier
	if opts.PushService != nil && opts.PushService.Enabled() {
		notifier = push.NewNotifier(opts.PushService, tokenStore, logger.With("component", "push"), collector)
	} else {
		logger.Info("push notifications disabled: VAPID keys not configured")
	}

	return &Server{
		db:          db,
		itemH:       handler.NewItemHandler(itemStore, notifier, collector, logger.With("component", "item")),
		userH:       handler.NewUserHandler(userStore, logger.With("component", "user")),
		historyH:    handler.NewHistoryHandler(historyStore, logger.With("component", "history")),
		pushH:       handler.NewPushHandler(tokenStore, opts.PushService, logger.With("component", "push_handler")),
		userStore:   userStore,
		rateLimiter: middleware.NewRateLimiter(opts.LoginRatePerMin),
		registry:    opts.Registry,
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// StartCleanup prunes idle rate limiter entries until ctx is done.
func (s *Server) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.rateLimiter.Cleanup(2 * interval)
			}
		}
	}()
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", metrics.Handler(s.registry))

	// Users
	mux.HandleFunc("GET /api/users", s.userH.Lookup)
	mux.HandleFunc("GET /api/users/{id}", s.userH.Get)
	mux.HandleFunc("POST /api/users", s.rateLimitedHandler(s.userH.Create))
	mux.HandleFunc("PUT /api/users/{id}", s.userH.Update)

	// Items
	mux.HandleFunc("GET /api/items", s.itemH.List)
	mux.HandleFunc("GET /api/items/{id}", s.itemH.Get)
	mux.Handle("POST /api/items", middleware.RequireUser(http.HandlerFunc(s.itemH.Create)))
	mux.Handle("PUT /api/items/order", middleware.RequireUser(http.HandlerFunc(s.itemH.Reorder)))
	mux.Handle("PUT /api/items/{id}", middleware.RequireUser(http.HandlerFunc(s.itemH.Update)))
	mux.Handle("DELETE /api/items/{id}", middleware.RequireUser(http.HandlerFunc(s.itemH.Delete)))
	mux.Handle("PUT /api/items/{id}/checked", middleware.RequireUser(http.HandlerFunc(s.itemH.SetChecked)))

	// History and stats
	mux.Handle("POST /api/history", middleware.RequireUser(http.HandlerFunc(s.historyH.Append)))
	mux.HandleFunc("GET /api/history", s.historyH.List)
	mux.HandleFunc("POST /api/rpc/get_user_historical_stats", s.historyH.HistoricalStats)

	// Push
	mux.Handle("PUT /api/push/token", middleware.RequireUser(http.HandlerFunc(s.pushH.SaveToken)))
	mux.HandleFunc("GET /api/push/vapid-public-key", s.pushH.VAPIDPublicKey)

	identified := middleware.Identify(s.userStore)(mux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(identified)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
