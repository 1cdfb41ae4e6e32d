package apiclient

import (
	"context"
	"net/http"

	"backoffice/internal/model"
	"backoffice/internal/normalize"
)

// Login posts the credentials; on success the API sets the session cookie.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", creds)
	if err != nil {
		return model.User{}, err
	}
	return decodeUser(body)
}

// Logout asks the API to end the session. The local cookie jar is cleared whatever the outcome.
func (c *Client) Logout(ctx context.Context) error {
	defer c.ResetSession()

	_, err := c.do(ctx, http.MethodPost, "/logout", nil)
	return err
}

// CurrentUser returns the user the session cookie belongs to.
func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return model.User{}, err
	}
	return decodeUser(body)
}

// decodeUser accepts a bare user, a {user: ...} envelope or the usual data wrappers.
func decodeUser(body []byte) (model.User, error) {
	rec, err := normalize.UnwrapObject(body)
	if err != nil {
		return model.User{}, err
	}
	if inner, ok := rec["user"].(map[string]any); ok {
		rec = inner
	}

	var user model.User
	if err := normalize.Remarshal(rec, &user); err != nil {
		return model.User{}, err
	}
	user.Password = ""
	return user, nil
}
