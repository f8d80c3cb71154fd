package types

import "strconv"

// ------------------------------
// Request Types
// ------------------------------

// CategoryPageSize is the fixed page size used by the category and tag
// listings. Only the first page is ever requested.
const CategoryPageSize = 50

// PageParams selects a window of a paginated listing
type PageParams struct {
	PageSize int
	Offset   int
}

// FirstPage is the window every category and tag listing uses.
var FirstPage = PageParams{PageSize: CategoryPageSize, Offset: 0}

// Query renders the window as query parameters.
func (p PageParams) Query() map[string]string {
	return map[string]string{
		"pageSize": strconv.Itoa(p.PageSize),
		"offset":   strconv.Itoa(p.Offset),
	}
}

// EventQuery holds parameters for the all-events listing
type EventQuery struct {
	Search string
	PageParams
}

// Query renders the listing parameters; an empty search is omitted.
func (q EventQuery) Query() map[string]string {
	out := q.PageParams.Query()
	if q.Search != "" {
		out["search"] = q.Search
	}
	return out
}

// LoginRequest holds credentials for a new session
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateCategoryRequest holds parameters for a new category
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
