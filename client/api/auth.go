package api

import (
	"context"
	"net/http"
	"net/url"

	"momsdigitales/util/model"
)

func (c *Client) Register(ctx context.Context, creds model.RegisterCredentials) (model.AuthResponse, error) {
	var res model.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/register", creds, &res)
	return res, err
}

func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var res model.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &res)
	return res, err
}

func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var u model.User
	err := c.doJSON(ctx, http.MethodGet, "/auth/profile", nil, &u)
	return u, err
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", model.EmailRequest{Email: email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.doJSON(ctx, http.MethodPut, "/auth/reset-password/"+url.PathEscape(token), model.PasswordRequest{Password: password}, nil)
}

func (c *Client) Invite(ctx context.Context, email string) (model.InviteResponse, error) {
	var res model.InviteResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/invite", model.EmailRequest{Email: email}, &res)
	return res, err
}

func (c *Client) CompleteProfile(ctx context.Context, token string, setup model.AccountSetup) error {
	fields := [][2]string{{"username", setup.Username}, {"password", setup.Password}}
	return c.doMultipart(ctx, http.MethodPost, "/auth/complete-profile/"+url.PathEscape(token), fields,
		multipartFile{field: "image", upload: setup.Image}, nil)
}
