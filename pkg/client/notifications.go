package client

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListNotifications(ctx context.Context, opts ListNotificationsOptions) (*Page[Notification], error) {
	q := pageQuery(opts.Page, opts.PageSize)
	if opts.BusinessID != "" {
		q.Set("businessId", opts.BusinessID)
	}
	if opts.UnreadOnly {
		q.Set("unreadOnly", "true")
	}

	var page Page[Notification]
	if err := c.do(ctx, request{method: http.MethodGet, path: "/notifications", query: q, auth: true}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// NotificationSummary returns unread and total counts. An empty businessID counts
// across all businesses.
func (c *Client) NotificationSummary(ctx context.Context, businessID string) (*NotificationSummary, error) {
	var summary NotificationSummary
	if err := c.do(ctx, request{method: http.MethodGet, path: "/notifications/summary", query: scope(businessID), auth: true}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) (*Notification, error) {
	var n Notification
	path := "/notifications/" + url.PathEscape(notificationID) + "/read"
	if err := c.do(ctx, request{method: http.MethodPost, path: path, auth: true}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkAllNotificationsRead returns how many notifications changed.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, businessID string) (int64, error) {
	var resp struct {
		Updated int64 `json:"updated"`
	}
	if err := c.do(ctx, request{method: http.MethodPost, path: "/notifications/read-all", query: scope(businessID), auth: true}, &resp); err != nil {
		return 0, err
	}
	return resp.Updated, nil
}

func scope(businessID string) url.Values {
	q := url.Values{}
	if businessID != "" {
		q.Set("businessId", businessID)
	}
	return q
}
