// Package fakeapi is an in-memory stand-in for the events API. It serves
// seeded fixtures over the same endpoints the client uses, keeps cookie
// sessions, and lets tests override any endpoint's response.
package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/eventboard/eventboard/client"
)

// SessionCookie is the cookie name the fixture server issues.
const SessionCookie = client.DefaultSessionCookie

// mostViewedLimit bounds the most-viewed listing.
const mostViewedLimit = 10

// Request records one request seen by the server.
type Request struct {
	Method   string
	Path     string
	RawQuery string
}

type override struct {
	status int
	body   string
}

// Server holds the fixture state. It is safe for concurrent use.
type Server struct {
	router *mux.Router

	mu         sync.Mutex
	users      []client.User
	passwords  map[string]string
	sessions   map[string]int // token -> user id
	categories []client.Category
	events     []client.Event
	comments   map[int][]client.Comment
	rsvps      map[int]map[int]bool // event id -> user ids
	nextCatID  int
	overrides  map[string]override // "METHOD /path" -> canned response
	requests   []Request
}

// New returns a server seeded with fixtures.
func New() *Server {
	users := seedUsers()
	cats := seedCategories()
	s := &Server{
		users:      users,
		passwords:  seedPasswords(),
		sessions:   map[string]int{},
		categories: cats,
		events:     seedEvents(users, cats),
		comments:   seedComments(),
		rsvps:      map[int]map[int]bool{},
		nextCatID:  len(cats) + 1,
		overrides:  map[string]override{},
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(recoverer, s.record, s.applyOverrides)

	r.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPut)

	r.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
	r.HandleFunc("/events/most-viewed", s.handleMostViewed).Methods(http.MethodGet)
	r.HandleFunc("/events/category/{id:[0-9]+}", s.handleByCategory).Methods(http.MethodGet)
	r.HandleFunc("/events/tag/{id:[0-9]+}", s.handleByTag).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}", s.handleGetEvent).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}", s.handleDeleteEvent).Methods(http.MethodDelete)
	r.HandleFunc("/events/{id:[0-9]+}/rsvp", s.handleRSVP).Methods(http.MethodPost)
	r.HandleFunc("/events/{id:[0-9]+}/comments", s.handleComments).Methods(http.MethodGet)

	r.HandleFunc("/categories", s.handleListCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)

	r.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", s.handleDeleteUser).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Override makes every request for method and path answer with status and
// the raw body until Reset is called. path is the exact URL path.
func (s *Server) Override(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{status: status, body: body}
}

// Fail makes method and path answer with a structured error.
func (s *Server) Fail(method, path string, status int, message string) {
	s.Override(method, path, status,
		`{"type":"`+http.StatusText(status)+`","status":`+strconv.Itoa(status)+`,"message":`+strconv.Quote(message)+`}`)
}

// Reset removes the override for method and path.
func (s *Server) Reset(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overrides, method+" "+path)
}

// Requests returns the requests seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// StartSession logs email in directly and returns the session token.
func (s *Server) StartSession(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userByEmailLocked(email)
	if !ok {
		return "", false
	}
	return s.newSessionLocked(u.ID), true
}

// RSVPs returns the user ids that replied to an event.
func (s *Server) RSVPs(eventID int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int
	for id := range s.rsvps[eventID] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, RawQuery: r.URL.RawQuery})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) applyOverrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(o.status)
		_, _ = w.Write([]byte(o.body))
	})
}

// ------------------------------
// Sessions
// ------------------------------

func (s *Server) newSessionLocked(userID int) string {
	token := uuid.NewString()
	s.sessions[token] = userID
	return token
}

func (s *Server) userByEmailLocked(email string) (client.User, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return client.User{}, false
}

// currentUserLocked resolves the session cookie on r.
func (s *Server) currentUserLocked(r *http.Request) (client.User, bool) {
	ck, err := r.Cookie(SessionCookie)
	if err != nil {
		return client.User{}, false
	}
	id, ok := s.sessions[ck.Value]
	if !ok {
		return client.User{}, false
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return client.User{}, false
}

// authorizeLocked writes 401/403 and returns false unless the session user
// has one of the given roles (any role when none are given).
func (s *Server) authorizeLocked(w http.ResponseWriter, r *http.Request, roles ...client.UserType) (client.User, bool) {
	u, ok := s.currentUserLocked(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return client.User{}, false
	}
	if len(roles) == 0 {
		return u, true
	}
	for _, role := range roles {
		if u.Type == role {
			return u, true
		}
	}
	writeError(w, http.StatusForbidden, "Insufficient permissions")
	return client.User{}, false
}

func pathID(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// pageWindow reads pageSize and offset, defaulting to 50 and 0.
func pageWindow(r *http.Request) (size, offset int) {
	size, offset = client.CategoryPageSize, 0
	if v, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && v > 0 {
		size = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return size, offset
}

func paginate(events []client.Event, size, offset int) []client.Event {
	if offset >= len(events) {
		return []client.Event{}
	}
	end := offset + size
	if end > len(events) {
		end = len(events)
	}
	return events[offset:end]
}
