package types

import (
	"encoding/json"
	"time"

	"github.com/spf13/cast"
)

// flexTime reads a timestamp in any layout cast understands (RFC 3339,
// "2006-01-02 15:04:05", plain dates, unix seconds). Unreadable values give
// the zero time.
func flexTime(raw json.RawMessage) time.Time {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return time.Time{}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t
}

// flexInt reads a JSON number or a numeric string. Anything else gives 0.
func flexInt(raw json.RawMessage) int {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return 0
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// UnmarshalJSON decodes an event, accepting loosely formatted dates and view
// counts sent as strings.
func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	aux := struct {
		*plain
		CreatedAt json.RawMessage `json:"createdAt"`
		EventDate json.RawMessage `json:"eventDate"`
		Views     json.RawMessage `json:"views"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt != nil {
		e.CreatedAt = flexTime(aux.CreatedAt)
	}
	if aux.EventDate != nil {
		e.EventDate = flexTime(aux.EventDate)
	}
	if aux.Views != nil {
		e.Views = flexInt(aux.Views)
	}
	return nil
}

// UnmarshalJSON decodes a comment with the same tolerance as Event.
func (c *Comment) UnmarshalJSON(data []byte) error {
	type plain Comment
	aux := struct {
		*plain
		CreatedAt    json.RawMessage `json:"createdAt"`
		LikeCount    json.RawMessage `json:"likeCount"`
		DislikeCount json.RawMessage `json:"dislikeCount"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.CreatedAt != nil {
		c.CreatedAt = flexTime(aux.CreatedAt)
	}
	if aux.LikeCount != nil {
		c.LikeCount = flexInt(aux.LikeCount)
	}
	if aux.DislikeCount != nil {
		c.DislikeCount = flexInt(aux.DislikeCount)
	}
	return nil
}
