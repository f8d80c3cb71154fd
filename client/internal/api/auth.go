package api

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	apierrors "github.com/eventboard/eventboard/client/internal/errors"
	"github.com/eventboard/eventboard/client/internal/types"
)

// Me fetches the identity bound to the session cookie. Only HTTP 200 counts
// as success; any other 2xx status is reported as a status error.
func Me(ctx context.Context, rc *resty.Client) (*types.User, error) {
	resp, err := exchange(ctx, rc.R(), http.MethodGet, "/auth/me")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apierrors.NewStatusError(http.MethodGet, resp.Request.URL, resp.StatusCode(), resp.Body())
	}

	var user types.User
	if err := decodeJSON(resp, &user, "me"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login starts a session. The session cookie is stored by the client's jar.
func Login(ctx context.Context, rc *resty.Client, req types.LoginRequest) error {
	_, err := exchange(ctx, rc.R().SetBody(req), http.MethodPost, "/auth/login")
	return err
}

// Logout ends the session. The response body is ignored.
func Logout(ctx context.Context, rc *resty.Client) error {
	_, err := exchange(ctx, rc.R(), http.MethodPut, "/auth/logout")
	return err
}
