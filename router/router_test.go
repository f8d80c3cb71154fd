package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventboard/eventboard/client"
)

func TestResolve(t *testing.T) {
	r := Default()
	tests := []struct {
		path   string
		name   string
		params map[string]string
	}{
		{path: "/", name: Dashboard, params: map[string]string{}},
		{path: "/event/7", name: Event, params: map[string]string{"id": "7"}},
		{path: "/login", name: Login, params: map[string]string{}},
		{path: "/admin/dashboard", name: AdminDashboard, params: map[string]string{}},
		{path: "/admin/users", name: Users, params: map[string]string{}},
		{path: "/admin/categories", name: Categories, params: map[string]string{}},
		{path: "/admin/events", name: Events, params: map[string]string{}},
		{path: "/tags/3?x=1", name: TagEvents, params: map[string]string{"id": "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m, ok := r.Resolve(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.name, m.Route.Name)
			assert.Equal(t, tt.params, m.Params)
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := Default()
	for _, p := range []string{"/nope", "/admin", "/event", "event/1", ""} {
		_, ok := r.Resolve(p)
		assert.False(t, ok, p)
	}
}

func TestMatch_IntParam(t *testing.T) {
	r := Default()
	m, ok := r.Resolve("/event/42")
	require.True(t, ok)
	id, err := m.IntParam("id")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	m, ok = r.Resolve("/event/abc")
	require.True(t, ok)
	_, err = m.IntParam("id")
	assert.Error(t, err)

	_, err = m.IntParam("missing")
	assert.Error(t, err)
}

func TestRoutes_TableOrder(t *testing.T) {
	routes := Default().Routes()
	require.Len(t, routes, 8)
	assert.Equal(t, Dashboard, routes[0].Name)
	assert.Equal(t, TagEvents, routes[7].Name)

	routes[0].Name = "changed"
	assert.Equal(t, Dashboard, Default().Routes()[0].Name)
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New([]Route{{Name: "a", Path: "/a"}, {Name: "a", Path: "/b"}})
	assert.Error(t, err)
}

func TestURL(t *testing.T) {
	r := Default()
	u, err := r.URL(Event, "id", "5")
	require.NoError(t, err)
	assert.Equal(t, "/event/5", u)

	_, err = r.URL("nope")
	assert.Error(t, err)
}

func TestAllowed(t *testing.T) {
	admin := &client.User{Type: client.UserTypeAdmin}
	creator := &client.User{Type: client.UserTypeEventCreator}
	r := Default()

	cases := []struct {
		route                    string
		anon, asCreator, asAdmin bool
	}{
		{Dashboard, true, true, true},
		{Login, true, false, false},
		{AdminDashboard, false, true, true},
		{Users, false, false, true},
		{Categories, false, true, true},
		{TagEvents, true, true, true},
	}
	for _, c := range cases {
		rt, ok := r.Lookup(c.route)
		require.True(t, ok)
		assert.Equal(t, c.anon, Allowed(rt, nil), c.route)
		assert.Equal(t, c.asCreator, Allowed(rt, creator), c.route)
		assert.Equal(t, c.asAdmin, Allowed(rt, admin), c.route)
	}
}

func TestResolve_Query(t *testing.T) {
	m, ok := Default().Resolve("/?category=2")
	require.True(t, ok)
	assert.Equal(t, Dashboard, m.Route.Name)
	assert.Equal(t, "/", m.Path)
	assert.Equal(t, "2", m.Query.Get("category"))
}
