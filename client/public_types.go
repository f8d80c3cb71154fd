package client

import "github.com/eventboard/eventboard/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
// Requests
type (
	LoginRequest          = types.LoginRequest
	CreateCategoryRequest = types.CreateCategoryRequest
	PageParams            = types.PageParams
	EventQuery            = types.EventQuery

	// Domain entities
	User     = types.User
	UserType = types.UserType
	Event    = types.Event
	Comment  = types.Comment
	Category = types.Category
	Tag      = types.Tag

	// Responses
	EventPage = types.Page[types.Event]
)

const (
	UserTypeAdmin        = types.UserTypeAdmin
	UserTypeEventCreator = types.UserTypeEventCreator

	// CategoryPageSize is the fixed page size of category and tag listings.
	CategoryPageSize = types.CategoryPageSize
)

// FirstPage is the only page the category and tag listings request.
var FirstPage = types.FirstPage
