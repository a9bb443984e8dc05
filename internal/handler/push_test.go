package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/dukerupert/superlista/internal/database"
	"github.com/dukerupert/superlista/internal/push"
	"github.com/dukerupert/superlista/internal/store"
)

func TestSaveToken(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := store.NewTokenStore(db)
	h := NewPushHandler(tokens, push.NewService("pub", "priv", "admin@superlista.app"), discardLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/push/token", h.SaveToken)
	mux.HandleFunc("GET /api/push/vapid-public-key", h.VAPIDPublicKey)

	token := `{"endpoint":"https://push.example/x","keys":{"p256dh":"BK","auth":"AA"}}`
	rec := do(t, mux, "PUT", "/api/push/token", map[string]string{"token": token})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("save token: status = %d, body = %s", rec.Code, rec.Body)
	}

	saved, err := tokens.Get(context.Background(), "u-ana")
	if err != nil || saved == nil || saved.Token != token {
		t.Errorf("saved = %+v, err = %v", saved, err)
	}

	rec = do(t, mux, "PUT", "/api/push/token", map[string]string{"token": "garbage"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid token: status = %d, want 400", rec.Code)
	}

	rec = do(t, mux, "GET", "/api/push/vapid-public-key", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("vapid key: status = %d", rec.Code)
	}
}
