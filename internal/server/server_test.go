package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/superlista/internal/database"
	"github.com/dukerupert/superlista/internal/middleware"
	"github.com/dukerupert/superlista/internal/model"
)

func setupServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, opts, logger).Router()
}

func request(t *testing.T, h http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := setupServer(t, Options{})

	rec := request(t, h, "GET", "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestLoginFlowAndItemMutation(t *testing.T) {
	h := setupServer(t, Options{})

	rec := request(t, h, "GET", "/api/users?name=Ana", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("lookup unknown: status = %d, want 404", rec.Code)
	}

	rec = request(t, h, "POST", "/api/users", "", map[string]string{"name": "Ana"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user: status = %d", rec.Code)
	}
	var user model.User
	json.NewDecoder(rec.Body).Decode(&user)

	rec = request(t, h, "GET", "/api/users?name=Ana", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup: status = %d", rec.Code)
	}

	form := map[string]any{"name": "Leche", "qty": 2, "unit": "L", "place": "Supermercado", "status": "Poco"}

	rec = request(t, h, "POST", "/api/items", "", form)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create: status = %d, want 401", rec.Code)
	}

	rec = request(t, h, "POST", "/api/items", "stale-id", form)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user create: status = %d, want 401", rec.Code)
	}

	rec = request(t, h, "POST", "/api/items", user.ID, form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item: status = %d, body = %s", rec.Code, rec.Body)
	}
	var item model.Item
	json.NewDecoder(rec.Body).Decode(&item)
	if item.AddedBy != "Ana" {
		t.Errorf("added_by = %q, want name from identity", item.AddedBy)
	}

	rec = request(t, h, "GET", "/api/items", "stale-id", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown user list: status = %d, want 200", rec.Code)
	}
	var items []model.Item
	json.NewDecoder(rec.Body).Decode(&items)
	if len(items) != 1 {
		t.Errorf("got %d items, want 1", len(items))
	}
}

func TestUserCreationRateLimited(t *testing.T) {
	h := setupServer(t, Options{LoginRatePerMin: 2})

	for i := 0; i < 2; i++ {
		rec := request(t, h, "POST", "/api/users", "", map[string]string{"name": "Ana"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}
	rec := request(t, h, "POST", "/api/users", "", map[string]string{"name": "Ana"})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("3rd request: status = %d, want 429", rec.Code)
	}
}

func TestPushKeyUnconfigured(t *testing.T) {
	h := setupServer(t, Options{})

	rec := request(t, h, "GET", "/api/push/vapid-public-key", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := setupServer(t, Options{})

	rec := request(t, h, "GET", "/metrics", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
