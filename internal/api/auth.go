package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/relocate/tui-go/internal/model"
)

// Login exchanges a username and password for an access token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := c.request(ctx)
	if err != nil {
		return "", err
	}

	var tok model.Token
	req.SetBody(model.LoginRequest{Username: username, Password: password}).SetResult(&tok)
	if err := c.execute(req, http.MethodPost, "/login"); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("login response carried no access token")
	}
	return tok.AccessToken, nil
}

// VerifyToken checks token against the API. The token is sent explicitly and
// never taken from the installed credential source.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	req.SetAuthToken(token)
	return c.execute(req, http.MethodGet, "/verify-token")
}

// ForgotPassword submits a password reset
func (c *Client) ForgotPassword(ctx context.Context, reset model.PasswordReset) (*model.ResetResult, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var result model.ResetResult
	req.SetBody(reset).SetResult(&result)
	if err := c.execute(req, http.MethodPost, "/forgot-password"); err != nil {
		return nil, err
	}
	return &result, nil
}

// Health reports whether the API is up
func (c *Client) Health(ctx context.Context) (*model.Health, error) {
	req, err := c.request(ctx)
	if err != nil {
		return nil, err
	}

	var h model.Health
	req.SetResult(&h)
	if err := c.execute(req, http.MethodGet, "/health"); err != nil {
		return nil, err
	}
	return &h, nil
}
