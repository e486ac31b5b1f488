package apiclient

import (
	"context"
	"net/http"

	"github.com/dailypush/dailypush/internal/api"
)

func (c *APIClient) Register(ctx context.Context, username, password, confirm string) (api.RegisterResponse, error) {
	var resp api.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/register", api.RegisterRequest{
		Username:     username,
		Password:     password,
		Confirmation: confirm,
	}, &resp)
	return resp, err
}

// Login keeps the issued token for later calls.
func (c *APIClient) Login(ctx context.Context, username, password string) error {
	var resp api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", api.LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

// Logout forgets the token even if the server call fails.
func (c *APIClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/v1/auth/logout", nil, nil)
	c.token = ""
	return err
}

func (c *APIClient) Me(ctx context.Context) (api.MeResponse, error) {
	var resp api.MeResponse
	err := c.do(ctx, http.MethodGet, "/v1/auth/me", nil, &resp)
	return resp, err
}
