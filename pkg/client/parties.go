package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// PartyLedger fetches a party statement. Zero times leave the range open on that side.
func (c *Client) PartyLedger(ctx context.Context, businessID, partyID string, from, to time.Time) (*PartyLedger, error) {
	path, err := c.businessPath(ctx, businessID, "/parties/"+url.PathEscape(partyID)+"/ledger")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if !from.IsZero() {
		q.Set("startDate", from.Format(time.DateOnly))
	}
	if !to.IsZero() {
		q.Set("endDate", to.Format(time.DateOnly))
	}

	var ledger PartyLedger
	if err := c.do(ctx, request{method: http.MethodGet, path: path, query: q, auth: true}, &ledger); err != nil {
		return nil, err
	}
	return &ledger, nil
}
