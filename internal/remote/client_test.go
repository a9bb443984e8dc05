package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukerupert/superlista/internal/database"
	"github.com/dukerupert/superlista/internal/model"
	"github.com/dukerupert/superlista/internal/server"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(server.New(db, server.Options{}, logger).Router())
	t.Cleanup(ts.Close)

	return NewClient(ts.URL, ts.Client())
}

func login(t *testing.T, c *Client, name string) *model.User {
	t.Helper()
	u, err := c.CreateUser(context.Background(), name)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	c.SetIdentity(func() string { return u.ID })
	return u
}

func leche() model.ItemForm {
	return model.ItemForm{Name: "Leche", Quantity: 2, Unit: "L", Place: "Supermercado", Status: "Poco"}
}

func TestUserDirectory(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	got, err := c.GetByName(ctx, "Ana")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown user, got %+v", got)
	}

	u := login(t, c, "Ana")
	got, err = c.GetByName(ctx, "Ana")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("get by name = %+v, %v", got, err)
	}

	renamed, err := c.UpdateUserName(ctx, u.ID, "Ana María")
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if renamed.Name != "Ana María" {
		t.Errorf("name = %q", renamed.Name)
	}

	byID, err := c.GetByID(ctx, u.ID)
	if err != nil || byID == nil || byID.Name != "Ana María" {
		t.Errorf("get by id = %+v, %v", byID, err)
	}

	if _, err := c.UpdateUserName(ctx, "missing", "X"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("update missing user err = %v, want ErrNotFound", err)
	}
}

func TestItemRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	login(t, c, "Ana")

	created, err := c.Create(ctx, leche(), "Ana")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.AddedBy != "Ana" || created.Quantity != 2 {
		t.Errorf("created = %+v", created)
	}

	checked, err := c.SetChecked(ctx, created.ID, true)
	if err != nil {
		t.Fatalf("set checked: %v", err)
	}
	if !checked.Checked {
		t.Error("item should be checked")
	}

	form := leche()
	form.Quantity = 3
	updated, err := c.Update(ctx, created.ID, form)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 3 {
		t.Errorf("qty = %d, want 3", updated.Quantity)
	}

	second, err := c.Create(ctx, model.ItemForm{Name: "Pan", Quantity: 1, Unit: "unidad", Place: "Panadería", Status: "Poco"}, "Ana")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if err := c.Reorder(ctx, []string{created.ID, second.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}
	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != created.ID || items[1].ID != second.ID {
		t.Errorf("order = %v", items)
	}

	if err := c.Remove(ctx, created.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, err := c.Get(ctx, created.ID)
	if err != nil || got != nil {
		t.Errorf("get removed = %+v, %v; want nil, nil", got, err)
	}
	if err := c.Remove(ctx, created.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("remove twice err = %v, want ErrNotFound", err)
	}
}

func TestValidationErrorMapping(t *testing.T) {
	c := newTestClient(t)
	login(t, c, "Ana")

	form := leche()
	form.Quantity = 0
	_, err := c.Create(context.Background(), form, "Ana")

	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if ve.Field != "qty" {
		t.Errorf("field = %q, want qty", ve.Field)
	}
}

func TestAnonymousMutationIsTransportError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Create(context.Background(), leche(), "Ana")
	if !model.IsTransport(err) {
		t.Errorf("err = %v, want TransportError", err)
	}
}

func TestUnreachableServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewClient(url, nil)
	if _, err := c.List(context.Background()); !model.IsTransport(err) {
		t.Errorf("err = %v, want TransportError", err)
	}
}

func TestHistoryBackend(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	u := login(t, c, "Ana")

	item := model.Item{Name: "Leche", Quantity: 2, Unit: "L", Place: "Supermercado", Status: "Poco"}
	for _, a := range []model.ActionType{model.ActionAdded, model.ActionAdded, model.ActionCompleted} {
		if err := c.AppendHistory(ctx, model.NewHistoryEntry(u.ID, a, item)); err != nil {
			t.Fatalf("append %s: %v", a, err)
		}
	}

	actions, err := c.ListActionTypes(ctx, u.ID)
	if err != nil {
		t.Fatalf("list action types: %v", err)
	}
	if len(actions) != 3 {
		t.Fatalf("actions = %v", actions)
	}

	stats, err := c.HistoricalStats(ctx, u.ID)
	if err != nil {
		t.Fatalf("historical stats: %v", err)
	}
	want := model.HistoricalStats{TotalAdded: 2, TotalCompleted: 1, CompletionRate: 50}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}

	err = c.AppendHistory(ctx, model.HistoryEntry{UserID: u.ID, ActionType: "removed"})
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("bad action err = %v, want ValidationError", err)
	}
}

func TestVAPIDPublicKeyDisabled(t *testing.T) {
	c := newTestClient(t)

	key, err := c.VAPIDPublicKey(context.Background())
	if err != nil || key != "" {
		t.Errorf("key = %q, err = %v; want empty, nil", key, err)
	}
}
