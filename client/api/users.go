package api

import (
	"context"
	"net/http"
	"net/url"

	"momsdigitales/util/model"
)

func (c *Client) Users(ctx context.Context, search string) ([]model.User, error) {
	var users []model.User
	err := c.doJSON(ctx, http.MethodGet, "/users?search="+url.QueryEscape(search), nil, &users)
	return users, err
}

func (c *Client) UpdateProfile(ctx context.Context, draft model.ProfileDraft) (model.User, error) {
	var u model.User
	fields := [][2]string{{"username", draft.Username}, {"bio", draft.Bio}}
	err := c.doMultipart(ctx, http.MethodPut, "/users/profile", fields, multipartFile{field: "image", upload: draft.Image}, &u)
	return u, err
}

func (c *Client) ChangeRole(ctx context.Context, userID string, role model.Role) error {
	return c.doJSON(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/role", model.RoleChange{Role: role}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), nil, nil)
}
