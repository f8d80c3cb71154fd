package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/eventboard/eventboard/client/internal/types"
)

// ListUsers returns all users. Admin only on the server side.
func ListUsers(ctx context.Context, rc *resty.Client) ([]types.User, error) {
	resp, err := exchange(ctx, rc.R(), http.MethodGet, "/users")
	if err != nil {
		return nil, err
	}
	return decodeList[types.User](resp.Body(), "list users")
}

// DeleteUser removes a user.
func DeleteUser(ctx context.Context, rc *resty.Client, userID int) error {
	req := rc.R().SetPathParam("id", strconv.Itoa(userID))
	_, err := exchange(ctx, req, http.MethodDelete, "/users/{id}")
	return err
}
