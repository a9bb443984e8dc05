package remote

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dukerupert/superlista/internal/model"
)

type nameRequest struct {
	Name string `json:"name"`
}

// GetByName returns nil when no user has that name.
func (c *Client) GetByName(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	err := c.do(ctx, "get user by name", http.MethodGet, "/api/users?name="+url.QueryEscape(name), nil, &u)
	return notFoundAsNil(&u, err)
}

// GetByID returns nil when the user does not exist.
func (c *Client) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := c.do(ctx, "get user", http.MethodGet, "/api/users/"+url.PathEscape(id), nil, &u)
	return notFoundAsNil(&u, err)
}

func (c *Client) CreateUser(ctx context.Context, name string) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, "create user", http.MethodPost, "/api/users", nameRequest{Name: name}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUserName(ctx context.Context, id, name string) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, "update user", http.MethodPut, "/api/users/"+url.PathEscape(id), nameRequest{Name: name}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveToken registers the device push token for the acting user.
func (c *Client) SaveToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.do(ctx, "save push token", http.MethodPut, "/api/push/token", body, nil)
}

// VAPIDPublicKey fetches the server's push key. It returns "" when push is
// not configured on the server.
func (c *Client) VAPIDPublicKey(ctx context.Context) (string, error) {
	var out struct {
		PublicKey string `json:"public_key"`
	}
	err := c.do(ctx, "vapid public key", http.MethodGet, "/api/push/vapid-public-key", nil, &out)
	if errors.Is(err, model.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return out.PublicKey, nil
}
