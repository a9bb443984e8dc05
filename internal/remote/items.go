package remote

import (
	"context"
	"net/http"

	"github.com/dukerupert/superlista/internal/model"
)

type createItemRequest struct {
	model.ItemForm
	AddedBy string `json:"added_by"`
}

func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	if err := c.do(ctx, "list items", http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns nil when the item does not exist.
func (c *Client) Get(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := c.do(ctx, "get item", http.MethodGet, itemPath(id), nil, &item)
	return notFoundAsNil(&item, err)
}

func (c *Client) Create(ctx context.Context, form model.ItemForm, addedBy string) (*model.Item, error) {
	var item model.Item
	req := createItemRequest{ItemForm: form, AddedBy: addedBy}
	if err := c.do(ctx, "create item", http.MethodPost, "/api/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Update(ctx context.Context, id string, form model.ItemForm) (*model.Item, error) {
	var item model.Item
	if err := c.do(ctx, "update item", http.MethodPut, itemPath(id), form, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, "delete item", http.MethodDelete, itemPath(id), nil, nil)
}

func (c *Client) SetChecked(ctx context.Context, id string, checked bool) (*model.Item, error) {
	var item model.Item
	body := map[string]bool{"checked": checked}
	if err := c.do(ctx, "set item checked", http.MethodPut, itemPath(id, "checked"), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Reorder persists ids as the new top-to-bottom order.
func (c *Client) Reorder(ctx context.Context, ids []string) error {
	body := map[string][]string{"ids": ids}
	return c.do(ctx, "reorder items", http.MethodPut, "/api/items/order", body, nil)
}
