package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/eventboard/eventboard/client/internal/types"
)

// MostViewedEvents returns the unpaginated most-viewed collection. A body
// that is not a JSON array yields an empty slice.
func MostViewedEvents(ctx context.Context, rc *resty.Client) ([]types.Event, error) {
	resp, err := exchange(ctx, rc.R(), http.MethodGet, "/events/most-viewed")
	if err != nil {
		return nil, err
	}
	return decodeList[types.Event](resp.Body(), "most viewed events")
}

// EventsByCategory returns one page of events in a category. The result is
// read from the "data" field; any other shape yields an empty slice.
func EventsByCategory(ctx context.Context, rc *resty.Client, categoryID int, page types.PageParams) ([]types.Event, error) {
	req := rc.R().
		SetPathParam("id", strconv.Itoa(categoryID)).
		SetQueryParams(page.Query())
	resp, err := exchange(ctx, req, http.MethodGet, "/events/category/{id}")
	if err != nil {
		return nil, err
	}
	return decodeDataList[types.Event](resp.Body(), "events by category")
}

// EventsByTag returns one page of events carrying a tag.
func EventsByTag(ctx context.Context, rc *resty.Client, tagID int, page types.PageParams) ([]types.Event, error) {
	req := rc.R().
		SetPathParam("id", strconv.Itoa(tagID)).
		SetQueryParams(page.Query())
	resp, err := exchange(ctx, req, http.MethodGet, "/events/tag/{id}")
	if err != nil {
		return nil, err
	}
	return decodeDataList[types.Event](resp.Body(), "events by tag")
}

// ListEvents returns one page of all events, optionally filtered by search.
func ListEvents(ctx context.Context, rc *resty.Client, q types.EventQuery) (*types.Page[types.Event], error) {
	resp, err := exchange(ctx, rc.R().SetQueryParams(q.Query()), http.MethodGet, "/events")
	if err != nil {
		return nil, err
	}
	var page types.Page[types.Event]
	if err := decodeJSON(resp, &page, "list events"); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []types.Event{}
	}
	return &page, nil
}

// GetEvent retrieves a single event.
func GetEvent(ctx context.Context, rc *resty.Client, eventID int) (*types.Event, error) {
	req := rc.R().SetPathParam("id", strconv.Itoa(eventID))
	resp, err := exchange(ctx, req, http.MethodGet, "/events/{id}")
	if err != nil {
		return nil, err
	}
	var ev types.Event
	if err := decodeJSON(resp, &ev, "get event"); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DeleteEvent removes an event.
func DeleteEvent(ctx context.Context, rc *resty.Client, eventID int) error {
	req := rc.R().SetPathParam("id", strconv.Itoa(eventID))
	_, err := exchange(ctx, req, http.MethodDelete, "/events/{id}")
	return err
}

// RSVP registers the session user for an event.
func RSVP(ctx context.Context, rc *resty.Client, eventID int) error {
	req := rc.R().SetPathParam("id", strconv.Itoa(eventID))
	_, err := exchange(ctx, req, http.MethodPost, "/events/{id}/rsvp")
	return err
}

// ListComments returns the comments on an event.
func ListComments(ctx context.Context, rc *resty.Client, eventID int) ([]types.Comment, error) {
	req := rc.R().SetPathParam("id", strconv.Itoa(eventID))
	resp, err := exchange(ctx, req, http.MethodGet, "/events/{id}/comments")
	if err != nil {
		return nil, err
	}
	return decodeList[types.Comment](resp.Body(), "list comments")
}
