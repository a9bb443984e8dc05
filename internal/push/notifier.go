package push

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukerupert/superlista/internal/metrics"
	"github.com/dukerupert/superlista/internal/model"
)

// Sender delivers one payload to one device token.
type Sender interface {
	Send(ctx context.Context, token string, payload Payload) error
}

// TokenStore is the subset of store.TokenStore the notifier needs.
type TokenStore interface {
	ListExcept(ctx context.Context, userID string) ([]model.NotificationToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

// Notifier fans item events out to every registered device except the actor's.
type Notifier struct {
	sender  Sender
	tokens  TokenStore
	logger  *slog.Logger
	metrics *metrics.Collector
}

func NewNotifier(sender Sender, tokens TokenStore, logger *slog.Logger, m *metrics.Collector) *Notifier {
	return &Notifier{sender: sender, tokens: tokens, logger: logger, metrics: m}
}

// ItemAdded notifies everyone but actorID that actorName added itemName.
func (n *Notifier) ItemAdded(ctx context.Context, actorID, actorName, itemName string) {
	n.multicast(ctx, actorID, Payload{
		Title: "🛒 Nuevo producto agregado",
		Body:  fmt.Sprintf("%s agregó %q a la lista", actorName, itemName),
		Tag:   model.NotifTypeItemAdded,
		Data: map[string]string{
			"type":     model.NotifTypeItemAdded,
			"itemName": itemName,
			"userName": actorName,
		},
	})
}

// ItemCompleted notifies everyone but actorID that actorName bought itemName.
func (n *Notifier) ItemCompleted(ctx context.Context, actorID, actorName, itemName string) {
	n.multicast(ctx, actorID, Payload{
		Title: "✅ Producto comprado",
		Body:  fmt.Sprintf("%s marcó %q como comprado", actorName, itemName),
		Tag:   model.NotifTypeItemCompleted,
		Data: map[string]string{
			"type":     model.NotifTypeItemCompleted,
			"itemName": itemName,
			"userName": actorName,
		},
	})
}

func (n *Notifier) multicast(ctx context.Context, actorID string, payload Payload) {
	tokens, err := n.tokens.ListExcept(ctx, actorID)
	if err != nil {
		n.logger.Error("list notification tokens", "error", err)
		return
	}

	for _, tok := range tokens {
		err := n.sender.Send(ctx, tok.Token, payload)
		switch {
		case err == nil:
			n.metrics.RecordPushSent()
		case errors.Is(err, ErrExpired):
			n.metrics.RecordPushFailure("expired")
			if err := n.tokens.DeleteByToken(ctx, tok.Token); err != nil {
				n.logger.Error("delete expired token", "user_id", tok.UserID, "error", err)
			}
		default:
			n.metrics.RecordPushFailure("error")
			n.logger.Warn("send push notification", "user_id", tok.UserID, "tag", payload.Tag, "error", err)
		}
	}
}
