package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/superlista/internal/database"
	"github.com/dukerupert/superlista/internal/model"
)

func setupUserTestDB(t *testing.T) *UserStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db)
}

func TestUserCreate(t *testing.T) {
	us := setupUserTestDB(t)
	ctx := context.Background()

	u, err := us.Create(ctx, "María")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Name != "María" {
		t.Errorf("name = %q, want %q", u.Name, "María")
	}
	if u.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestUserGetByID(t *testing.T) {
	us := setupUserTestDB(t)
	ctx := context.Background()

	created, _ := us.Create(ctx, "Juan")

	u, err := us.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if u == nil || u.Name != "Juan" {
		t.Fatalf("got %+v, want Juan", u)
	}

	missing, err := us.GetByID(ctx, "no-such-id")
	if err != nil {
		t.Fatalf("get missing user: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for nonexistent user")
	}
}

func TestUserGetByNameReturnsOldest(t *testing.T) {
	us := setupUserTestDB(t)
	ctx := context.Background()

	first, _ := us.Create(ctx, "Ana")
	us.Create(ctx, "Ana")

	got, err := us.GetByName(ctx, "Ana")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Errorf("got %+v, want first user %s", got, first.ID)
	}

	none, err := us.GetByName(ctx, "Carlos")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if none != nil {
		t.Error("expected nil for unknown name")
	}
}

func TestUserUpdateName(t *testing.T) {
	us := setupUserTestDB(t)
	ctx := context.Background()

	u, _ := us.Create(ctx, "Ana")

	updated, err := us.UpdateName(ctx, u.ID, "Ana María")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Ana María" {
		t.Errorf("name = %q, want %q", updated.Name, "Ana María")
	}

	if _, err := us.UpdateName(ctx, "no-such-id", "X"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("update missing: err = %v, want ErrNotFound", err)
	}
}
