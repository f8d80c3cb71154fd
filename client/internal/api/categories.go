package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/eventboard/eventboard/client/internal/types"
)

// ListCategories returns all categories.
func ListCategories(ctx context.Context, rc *resty.Client) ([]types.Category, error) {
	resp, err := exchange(ctx, rc.R(), http.MethodGet, "/categories")
	if err != nil {
		return nil, err
	}
	return decodeList[types.Category](resp.Body(), "list categories")
}

// CreateCategory creates a category.
func CreateCategory(ctx context.Context, rc *resty.Client, req types.CreateCategoryRequest) (*types.Category, error) {
	resp, err := exchange(ctx, rc.R().SetBody(req), http.MethodPost, "/categories")
	if err != nil {
		return nil, err
	}
	var cat types.Category
	if err := decodeJSON(resp, &cat, "create category"); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category.
func DeleteCategory(ctx context.Context, rc *resty.Client, categoryID int) error {
	req := rc.R().SetPathParam("id", strconv.Itoa(categoryID))
	_, err := exchange(ctx, req, http.MethodDelete, "/categories/{id}")
	return err
}
