package client

import (
	"context"
	"net/http"

	"github.com/bornholm/scheduler/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) Register(ctx context.Context, username, email, password string) (*api.User, error) {
	var user api.User

	err := c.request(ctx, http.MethodPost, "/users", nil, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &user)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &user, nil
}

// Login opens a session. Following calls are made on behalf of the logged
// in user.
func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var res api.LoginResponse

	err := c.request(ctx, http.MethodPost, "/users/login", nil, api.LoginRequest{
		Email:    email,
		Password: password,
	}, &res)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.request(ctx, http.MethodPost, "/users/logout", nil, nil, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) ListUsers(ctx context.Context) ([]api.User, error) {
	var users []api.User

	if err := c.request(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}
