package api

import (
	"context"
	"net/http"
	"net/url"

	"momsdigitales/util/model"
)

func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var ns []model.Notification
	err := c.doJSON(ctx, http.MethodGet, "/notifications", nil, &ns)
	return ns, err
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
}
