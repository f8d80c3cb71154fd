package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/eventboard/eventboard/client/internal/api"
)

// DefaultBaseURL is where the events API listens in local setups.
const DefaultBaseURL = "http://localhost:3000"

// DefaultSessionCookie is the cookie name the API uses for sessions.
const DefaultSessionCookie = "session"

// RequestIDHeader carries a fresh UUID on every request.
const RequestIDHeader = "X-Request-ID"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is a session-bound SDK for the events API. Every request carries
// the cookies held in the client's jar, so a Client corresponds to one
// browser session.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	rc      *resty.Client

	sessionCookie string
	session       string // seeded session cookie value, if any

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the API at baseURL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse baseURL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("baseURL must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL:       u,
		http:          &http.Client{},
		sessionCookie: DefaultSessionCookie,
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	if c.session != "" {
		c.http.Jar.SetCookies(c.baseURL, []*http.Cookie{{Name: c.sessionCookie, Value: c.session, Path: "/"}})
	}

	c.rc = resty.NewWithClient(c.http).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(RequestIDHeader) == "" {
				r.SetHeader(RequestIDHeader, uuid.NewString())
			}
			return nil
		})

	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Session returns the current session cookie value held by the jar, or ""
// when there is no session.
func (c *Client) Session() string {
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name == c.sessionCookie {
			return ck.Value
		}
	}
	return ""
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.http != nil {
		c.http.CloseIdleConnections()
	}
	return nil
}

// --------------------------------------------------------------------
// Auth operations - delegated to internal/api
// --------------------------------------------------------------------

// Me fetches the identity bound to the current session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return api.Me(ctx, c.rc)
}

// Login starts a session; the cookie is kept in the client's jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) error {
	return api.Login(ctx, c.rc, req)
}

// Logout ends the session on the server.
func (c *Client) Logout(ctx context.Context) error {
	return api.Logout(ctx, c.rc)
}

// --------------------------------------------------------------------
// Event operations - delegated to internal/api
// --------------------------------------------------------------------

// MostViewedEvents returns the most-viewed events (unpaginated).
func (c *Client) MostViewedEvents(ctx context.Context) ([]Event, error) {
	return api.MostViewedEvents(ctx, c.rc)
}

// EventsByCategory returns one page of events in a category.
func (c *Client) EventsByCategory(ctx context.Context, categoryID int, page PageParams) ([]Event, error) {
	return api.EventsByCategory(ctx, c.rc, categoryID, page)
}

// EventsByTag returns one page of events carrying a tag.
func (c *Client) EventsByTag(ctx context.Context, tagID int, page PageParams) ([]Event, error) {
	return api.EventsByTag(ctx, c.rc, tagID, page)
}

// ListEvents returns one page of all events, optionally filtered by search.
func (c *Client) ListEvents(ctx context.Context, q EventQuery) (*EventPage, error) {
	return api.ListEvents(ctx, c.rc, q)
}

// GetEvent retrieves a single event.
func (c *Client) GetEvent(ctx context.Context, eventID int) (*Event, error) {
	return api.GetEvent(ctx, c.rc, eventID)
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	return api.DeleteEvent(ctx, c.rc, eventID)
}

// RSVP registers the session user for an event.
func (c *Client) RSVP(ctx context.Context, eventID int) error {
	return api.RSVP(ctx, c.rc, eventID)
}

// ListComments returns the comments on an event.
func (c *Client) ListComments(ctx context.Context, eventID int) ([]Comment, error) {
	return api.ListComments(ctx, c.rc, eventID)
}

// --------------------------------------------------------------------
// Admin operations - delegated to internal/api
// --------------------------------------------------------------------

// ListCategories returns all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	return api.ListCategories(ctx, c.rc)
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	return api.CreateCategory(ctx, c.rc, req)
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	return api.DeleteCategory(ctx, c.rc, categoryID)
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return api.ListUsers(ctx, c.rc)
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return api.DeleteUser(ctx, c.rc, userID)
}
