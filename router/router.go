// Package router holds the client's static route table and resolves paths
// against it. It applies no guards or redirects; each route only carries the
// roles it is meaningful for, and views decide what to do with that.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/eventboard/eventboard/client"
)

// Route names.
const (
	Dashboard      = "dashboard"
	Event          = "event"
	Login          = "login"
	AdminDashboard = "admin-dashboard"
	Users          = "users"
	Categories     = "categories"
	Events         = "events"
	TagEvents      = "tag-events"
)

// Audience is who a route is meant for.
type Audience int

const (
	Everyone Audience = iota
	Anonymous
	Managers // admins and event creators
	Admins
)

// String implements fmt.Stringer.
func (a Audience) String() string {
	switch a {
	case Everyone:
		return "everyone"
	case Anonymous:
		return "anonymous"
	case Managers:
		return "admin, event creator"
	case Admins:
		return "admin"
	default:
		return fmt.Sprintf("Audience(%d)", int(a))
	}
}

// Route is one entry of the table.
type Route struct {
	Name     string
	Path     string // mux path template
	Title    string
	Audience Audience
}

// Match is a resolved path.
type Match struct {
	Route  Route
	Path   string
	Params map[string]string
	Query  url.Values
}

// IntParam returns a numeric path parameter.
func (m Match) IntParam(name string) (int, error) {
	raw, ok := m.Params[name]
	if !ok {
		return 0, fmt.Errorf("route %s has no parameter %q", m.Route.Name, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q: %w", name, err)
	}
	return v, nil
}

// Table returns the application's routes in declaration order.
func Table() []Route {
	return []Route{
		{Name: Dashboard, Path: "/", Title: "Events", Audience: Everyone},
		{Name: Event, Path: "/event/{id}", Title: "Event", Audience: Everyone},
		{Name: Login, Path: "/login", Title: "Login", Audience: Anonymous},
		{Name: AdminDashboard, Path: "/admin/dashboard", Title: "Admin dashboard", Audience: Managers},
		{Name: Users, Path: "/admin/users", Title: "Users", Audience: Admins},
		{Name: Categories, Path: "/admin/categories", Title: "Categories", Audience: Managers},
		{Name: Events, Path: "/admin/events", Title: "Manage events", Audience: Managers},
		{Name: TagEvents, Path: "/tags/{id}", Title: "Events by tag", Audience: Everyone},
	}
}

// Router resolves paths against a fixed table.
type Router struct {
	mux    *mux.Router
	routes []Route
	byName map[string]Route
}

// New builds a router over routes.
func New(routes []Route) (*Router, error) {
	r := &Router{
		mux:    mux.NewRouter(),
		byName: make(map[string]Route, len(routes)),
	}
	for _, rt := range routes {
		if _, dup := r.byName[rt.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", rt.Name)
		}
		mr := r.mux.NewRoute().Path(rt.Path).Methods(http.MethodGet).Name(rt.Name)
		if err := mr.GetError(); err != nil {
			return nil, fmt.Errorf("route %s: %w", rt.Name, err)
		}
		r.routes = append(r.routes, rt)
		r.byName[rt.Name] = rt
	}
	return r, nil
}

// Default returns a router over Table().
func Default() *Router {
	r, err := New(Table())
	if err != nil {
		panic(err)
	}
	return r
}

// Routes returns a copy of the table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Lookup returns the route registered under name.
func (r *Router) Lookup(name string) (Route, bool) {
	rt, ok := r.byName[name]
	return rt, ok
}

// Resolve matches path (which may carry a query string) against the table.
func (r *Router) Resolve(path string) (Match, bool) {
	u, err := url.Parse(path)
	if err != nil || !strings.HasPrefix(u.Path, "/") {
		return Match{}, false
	}
	req := &http.Request{Method: http.MethodGet, URL: u, Header: http.Header{}}

	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.Route == nil || rm.MatchErr != nil {
		return Match{}, false
	}
	rt, ok := r.byName[rm.Route.GetName()]
	if !ok {
		return Match{}, false
	}
	params := make(map[string]string, len(rm.Vars))
	for k, v := range rm.Vars {
		params[k] = v
	}
	return Match{Route: rt, Path: u.Path, Params: params, Query: u.Query()}, true
}

// URL builds the path for a named route.
func (r *Router) URL(name string, pairs ...string) (string, error) {
	mr := r.mux.Get(name)
	if mr == nil {
		return "", fmt.Errorf("unknown route %q", name)
	}
	u, err := mr.URLPath(pairs...)
	if err != nil {
		return "", fmt.Errorf("route %s: %w", name, err)
	}
	return u.Path, nil
}

// Allowed reports whether a route is meant for user (nil when anonymous).
func Allowed(rt Route, user *client.User) bool {
	switch rt.Audience {
	case Everyone:
		return true
	case Anonymous:
		return user == nil
	case Managers:
		return user != nil && (user.Type == client.UserTypeAdmin || user.Type == client.UserTypeEventCreator)
	case Admins:
		return user != nil && user.Type == client.UserTypeAdmin
	default:
		return false
	}
}
