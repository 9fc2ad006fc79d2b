package client

import (
	"context"
	"net/http"
	"net/url"
)

// ListChangeRequests lists the change requests of businessID ("" for the selected
// business). Owners see all requests; set opts.Mine for the caller's own.
func (c *Client) ListChangeRequests(ctx context.Context, businessID string, opts ListChangeRequestsOptions) (*Page[ChangeRequest], error) {
	suffix := "/changerequests"
	if opts.Mine {
		suffix += "/mine"
	}
	path, err := c.businessPath(ctx, businessID, suffix)
	if err != nil {
		return nil, err
	}
	q := pageQuery(opts.Page, opts.PageSize)
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}

	var page Page[ChangeRequest]
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q, auth: true}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetChangeRequest(ctx context.Context, businessID, requestID string) (*ChangeRequest, error) {
	path, err := c.businessPath(ctx, businessID, "/changerequests/"+url.PathEscape(requestID))
	if err != nil {
		return nil, err
	}
	var cr ChangeRequest
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// ChangeRequestSummary returns request counts for the business.
func (c *Client) ChangeRequestSummary(ctx context.Context, businessID string) (*ChangeRequestSummary, error) {
	path, err := c.businessPath(ctx, businessID, "/changerequests/summary")
	if err != nil {
		return nil, err
	}
	var summary ChangeRequestSummary
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// CreateChangeRequest files a request. A second pending request for the same entry is
// an APIError of KindConflict.
func (c *Client) CreateChangeRequest(ctx context.Context, businessID string, req CreateChangeRequest) (*ChangeRequest, error) {
	path, err := c.businessPath(ctx, businessID, "/changerequests")
	if err != nil {
		return nil, err
	}
	var cr ChangeRequest
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: req, auth: true}, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// ReviewChangeRequest approves or rejects a pending request. Reviewing a request that is
// no longer pending is an APIError of KindInvalidState.
func (c *Client) ReviewChangeRequest(ctx context.Context, businessID, requestID string, approve bool, notes string) (*ChangeRequest, error) {
	path, err := c.businessPath(ctx, businessID, "/changerequests/"+url.PathEscape(requestID)+"/review")
	if err != nil {
		return nil, err
	}
	body := map[string]any{"approve": approve}
	if notes != "" {
		body["reviewNotes"] = notes
	}

	var cr ChangeRequest
	if err := c.do(ctx, request{method: http.MethodPost, path: path, body: body, auth: true}, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// WithdrawChangeRequest drops one of the caller's pending requests.
func (c *Client) WithdrawChangeRequest(ctx context.Context, businessID, requestID string) error {
	path, err := c.businessPath(ctx, businessID, "/changerequests/"+url.PathEscape(requestID))
	if err != nil {
		return err
	}
	return c.do(ctx, request{method: http.MethodDelete, path: path, auth: true}, nil)
}

// UpdateEntry edits a cash entry, or files a change request when the caller may not
// edit directly. reason is required in the second case.
func (c *Client) UpdateEntry(ctx context.Context, businessID, entryID string, changes EntryChanges, reason string) (*MutationResult, error) {
	path, err := c.businessPath(ctx, businessID, "/cashbook/"+url.PathEscape(entryID))
	if err != nil {
		return nil, err
	}
	body := struct {
		EntryChanges
		Reason string `json:"reason,omitempty"`
	}{changes, reason}

	var result MutationResult
	if err := c.do(ctx, request{method: http.MethodPut, path: path, body: body, auth: true}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteEntry deletes a cash entry, or files a delete request when the caller may not
// delete directly.
func (c *Client) DeleteEntry(ctx context.Context, businessID, entryID, reason string) (*MutationResult, error) {
	path, err := c.businessPath(ctx, businessID, "/cashbook/"+url.PathEscape(entryID))
	if err != nil {
		return nil, err
	}
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}

	var result MutationResult
	if err := c.do(ctx, request{method: http.MethodDelete, path: path, body: body, auth: true}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
