// Package client is a typed Go client for the cashbook API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const apiPrefix = "/api/v1"

// Client calls the API on behalf of the session held in its SessionStore.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	store      SessionStore
	newBackOff func() backoff.BackOff
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSessionStore replaces the default in-memory session store.
func WithSessionStore(store SessionStore) Option {
	return func(c *Client) { c.store = store }
}

// WithBackOff sets the retry policy of GET requests. Return &backoff.StopBackOff{} to disable retries.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = newBackOff }
}

// New creates a client for the server at baseURL, e.g. "https://api.example.com".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      NewMemoryStore(),
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = 10 * time.Second
	return backoff.WithMaxRetries(b, 3)
}

// Session returns the stored session.
func (c *Client) Session(ctx context.Context) (Session, error) {
	return c.store.Load(ctx)
}

// SelectBusiness remembers businessID as the business later calls default to.
func (c *Client) SelectBusiness(ctx context.Context, businessID string) error {
	s, err := c.store.Load(ctx)
	if err != nil {
		return err
	}
	s.BusinessID = businessID
	return c.store.Save(ctx, s)
}

// request describes one API call.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	auth   bool
}

// do sends req and decodes a 2xx JSON body into out (when out is not nil). GETs are
// retried on network errors and 5xx responses; other methods are sent once.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var token string
	if req.auth {
		s, err := c.store.Load(ctx)
		if err != nil {
			return err
		}
		token = s.Token
	}

	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempt := func() error {
		err := c.send(ctx, req, token, payload, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.Is(err, ErrNetwork) || (errors.As(err, &apiErr) && apiErr.Temporary()) {
			return err
		}
		return backoff.Permanent(err)
	}

	if req.method != http.MethodGet {
		err := attempt()
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return permanent.Err
		}
		return err
	}
	return backoff.Retry(attempt, backoff.WithContext(c.newBackOff(), ctx))
}

func (c *Client) send(ctx context.Context, req request, token string, payload []byte, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + apiPrefix + req.path
	u.RawQuery = req.query.Encode()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, req.method, req.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Kind = body.Kind
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.Kind == "" {
		apiErr.Kind = kindFromStatus(resp.StatusCode)
	}
	return apiErr
}

// businessPath resolves businessID, falling back to the session's selected business.
func (c *Client) businessPath(ctx context.Context, businessID string, suffix string) (string, error) {
	if businessID == "" {
		s, err := c.store.Load(ctx)
		if err != nil {
			return "", err
		}
		if s.BusinessID == "" {
			return "", errors.New("no business selected")
		}
		businessID = s.BusinessID
	}
	return "/business/" + url.PathEscape(businessID) + suffix, nil
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	return q
}
