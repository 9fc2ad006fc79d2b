package client

import (
	"context"
	"errors"
	"net/http"
)

// Login signs in with email and password and stores the new session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   map[string]string{"email": email, "password": password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.storeAuth(ctx, &resp)
}

// Refresh trades the stored refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context) (*User, error) {
	s, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s.RefreshToken == "" {
		return nil, ErrNoSession
	}

	var resp AuthResponse
	err = c.do(ctx, request{
		method: http.MethodPost,
		path:   "/auth/refresh",
		body:   map[string]string{"userID": s.UserID, "refreshToken": s.RefreshToken},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.storeAuth(ctx, &resp)
}

// Logout revokes the refresh token on the server and forgets the session. The local
// session is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, request{method: http.MethodPost, path: "/auth/logout", auth: true}, nil)
	if errors.Is(err, ErrNoSession) {
		err = nil
	}
	if clearErr := c.store.Clear(ctx); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return err
}

// Me returns the signed-in user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/me", auth: true}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// storeAuth saves the tokens of resp, keeping the previously selected business for the same user.
func (c *Client) storeAuth(ctx context.Context, resp *AuthResponse) (*User, error) {
	next := Session{
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		UserID:       resp.User.UserID,
	}
	if prev, err := c.store.Load(ctx); err == nil && prev.UserID == next.UserID {
		next.BusinessID = prev.BusinessID
	}
	if err := c.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
