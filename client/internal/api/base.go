package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	apierrors "github.com/eventboard/eventboard/client/internal/errors"
)

// exchange sends req and converts every failure into *apierrors.HTTPError:
// no response at all, or a status outside 2xx. route is the path template
// (e.g. "/events/{id}") and doubles as the metrics label.
func exchange(ctx context.Context, req *resty.Request, method, route string) (*resty.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, apierrors.NewNetworkError(method, route, err)
	}

	start := time.Now()
	resp, err := req.SetContext(ctx).Execute(method, route)
	url := route
	if req.URL != "" {
		url = req.URL
	}
	if err != nil {
		observe(method, route, 0, time.Since(start))
		return nil, apierrors.NewNetworkError(method, url, err)
	}
	observe(method, route, resp.StatusCode(), time.Since(start))

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, apierrors.NewStatusError(method, url, code, resp.Body())
	}
	return resp, nil
}

// decodeJSON unmarshals a successful response body into v.
func decodeJSON(resp *resty.Response, v any, op string) error {
	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// decodeList returns the JSON array held in raw. Anything that is not
// array-shaped (object, string, null, non-JSON text) yields an empty slice.
// Elements are decoded one by one: a field that does not fit is left at its
// zero value, and elements that cannot be read as objects are dropped.
func decodeList[T any](raw []byte, op string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		log.Debug().Err(err).Str("op", op).Msg("list body is not valid JSON; treating as empty")
		return []T{}, nil
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, ok := decodeElement[T](item)
		if !ok {
			log.Debug().Str("op", op).Int("index", i).Msg("dropping list element that is not an object")
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeElement decodes one list element. When the strict decode fails the
// element's fields are applied one at a time and the ones that fail are
// skipped.
func decodeElement[T any](raw json.RawMessage) (T, bool) {
	var v T
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return v, false
	}
	var zero T
	v = zero
	for key, value := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{key: value})
		if err != nil {
			continue
		}
		_ = json.Unmarshal(one, &v)
	}
	return v, true
}

// decodeDataList returns the array under the "data" field of a page
// envelope, or an empty slice when the body or the field has another shape.
func decodeDataList[T any](raw []byte, op string) ([]T, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return []T{}, nil
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return []T{}, nil
	}
	return decodeList[T](envelope.Data, op)
}
