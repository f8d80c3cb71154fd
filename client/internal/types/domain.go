package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// UserType is the role carried by an authenticated user. Anonymous visitors
// have no User at all.
type UserType string

const (
	UserTypeAdmin        UserType = "admin"
	UserTypeEventCreator UserType = "event_creator"
)

// User represents an authenticated identity
type User struct {
	ID        int      `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Type      UserType `json:"type"`
	Status    string   `json:"status,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Tag represents a label attached to events
type Tag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category represents an event category
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event represents an event snapshot as returned by the API. Some endpoints
// embed the category object, others only send categoryId.
type Event struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
	EventDate       time.Time `json:"eventDate"`
	Location        string    `json:"location"`
	Views           int       `json:"views,omitempty"`
	Author          User      `json:"author"`
	Tags            []Tag     `json:"tags"`
	Category        *Category `json:"category,omitempty"`
	CategoryID      *int      `json:"categoryId,omitempty"`
	MaxParticipants *int      `json:"maxParticipants,omitempty"`
}

// CategoryRef returns the event's category id from whichever field the
// server populated.
func (e Event) CategoryRef() (int, bool) {
	if e.Category != nil {
		return e.Category.ID, true
	}
	if e.CategoryID != nil {
		return *e.CategoryID, true
	}
	return 0, false
}

// Comment represents a comment left on an event
type Comment struct {
	ID           int       `json:"id"`
	AuthorName   string    `json:"authorName"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	Event        *Event    `json:"event,omitempty"`
	LikeCount    int       `json:"likeCount"`
	DislikeCount int       `json:"dislikeCount"`
}
