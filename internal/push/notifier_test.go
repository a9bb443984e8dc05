package push

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/dukerupert/superlista/internal/model"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     map[string]Payload
	failWith map[string]error
}

func (f *fakeSender) Send(_ context.Context, token string, p Payload) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failWith[token]; err != nil {
		return err
	}
	if f.sent == nil {
		f.sent = map[string]Payload{}
	}
	f.sent[token] = p
	return nil
}

type fakeTokens struct {
	tokens  []model.NotificationToken
	deleted []string
}

func (f *fakeTokens) ListExcept(_ context.Context, userID string) ([]model.NotificationToken, error) {
	var out []model.NotificationToken
	for _, t := range f.tokens {
		if t.UserID != userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTokens) DeleteByToken(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifierExcludesActor(t *testing.T) {
	sender := &fakeSender{}
	tokens := &fakeTokens{tokens: []model.NotificationToken{
		{UserID: "ana", Token: "tok-ana"},
		{UserID: "juan", Token: "tok-juan"},
		{UserID: "luis", Token: "tok-luis"},
	}}
	n := NewNotifier(sender, tokens, discardLogger(), nil)

	n.ItemAdded(context.Background(), "ana", "Ana", "Leche")

	if _, ok := sender.sent["tok-ana"]; ok {
		t.Error("actor should not be notified")
	}
	if len(sender.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sender.sent))
	}
	p := sender.sent["tok-juan"]
	if p.Title != "🛒 Nuevo producto agregado" {
		t.Errorf("title = %q", p.Title)
	}
	if p.Body != `Ana agregó "Leche" a la lista` {
		t.Errorf("body = %q", p.Body)
	}
	if p.Data["type"] != model.NotifTypeItemAdded {
		t.Errorf("data type = %q", p.Data["type"])
	}
}

func TestNotifierItemCompleted(t *testing.T) {
	sender := &fakeSender{}
	tokens := &fakeTokens{tokens: []model.NotificationToken{{UserID: "juan", Token: "tok-juan"}}}
	n := NewNotifier(sender, tokens, discardLogger(), nil)

	n.ItemCompleted(context.Background(), "ana", "Ana", "Pan")

	p := sender.sent["tok-juan"]
	if p.Title != "✅ Producto comprado" {
		t.Errorf("title = %q", p.Title)
	}
	if !strings.Contains(p.Body, `marcó "Pan" como comprado`) {
		t.Errorf("body = %q", p.Body)
	}
}

func TestNotifierDeletesExpiredTokens(t *testing.T) {
	sender := &fakeSender{failWith: map[string]error{
		"tok-old":    ErrExpired,
		"tok-broken": errors.New("network down"),
	}}
	tokens := &fakeTokens{tokens: []model.NotificationToken{
		{UserID: "a", Token: "tok-old"},
		{UserID: "b", Token: "tok-broken"},
		{UserID: "c", Token: "tok-ok"},
	}}
	n := NewNotifier(sender, tokens, discardLogger(), nil)

	n.ItemAdded(context.Background(), "actor", "Actor", "Queso")

	if len(tokens.deleted) != 1 || tokens.deleted[0] != "tok-old" {
		t.Errorf("deleted = %v, want [tok-old]", tokens.deleted)
	}
	if _, ok := sender.sent["tok-ok"]; !ok {
		t.Error("healthy token should still be notified")
	}
}
