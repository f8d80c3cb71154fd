package types

// ------------------------------
// Response Types
// ------------------------------

// Page wraps paginated list responses
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total,omitempty"`
}
