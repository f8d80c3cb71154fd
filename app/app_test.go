package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/internal/fakeapi"
	"github.com/eventboard/eventboard/router"
)

type fixture struct {
	api *fakeapi.Server
	cfg *config.Config
	out *bytes.Buffer
	app *App
}

func newFixture(t *testing.T, configure ...func(*fixture)) *fixture {
	t.Helper()
	api := fakeapi.New()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	f := &fixture{api: api, cfg: config.NewForTesting(srv.URL), out: &bytes.Buffer{}}
	for _, fn := range configure {
		fn(f)
	}
	f.app = New(f.cfg, WithOutput(f.out))
	t.Cleanup(func() { _ = f.app.Close() })
	return f
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	require.NoError(t, f.app.Start(context.Background()))
}

func asAdmin(f *fixture) {
	token, _ := f.api.StartSession(fakeapi.AdminEmail)
	f.cfg.Session = token
}

func TestStart_BootstrapOrder(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	assert.Equal(t, []string{StageShell, StageStores, StageRouter, StageAuth, StageIcons, StageMount}, f.app.stages)

	reqs := f.api.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "/auth/me", reqs[0].Path, "identity is fetched before any view loads")

	out := f.out.String()
	assert.Contains(t, out, "== Events ==")
	assert.Contains(t, out, "anonymous")
	assert.Contains(t, out, "Rock Festival")
	assert.Equal(t, router.Dashboard, f.app.Current().Route.Name)
}

func TestStart_FirstRenderReflectsSession(t *testing.T) {
	f := newFixture(t, asAdmin)
	f.start(t)

	assert.Equal(t, 1, strings.Count(f.out.String(), "== Events =="), "exactly one initial render")
	assert.Contains(t, f.out.String(), "Ada Lovelace (admin)")
	assert.True(t, f.app.Auth.IsAdmin())
}

func TestStart_ExpiredSessionIsLoggedOut(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.Session = "stale" })
	f.start(t)
	assert.False(t, f.app.Auth.IsLoggedIn())
	assert.Contains(t, f.out.String(), "anonymous")
}

func TestStart_RegistersIcons(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	assert.Len(t, f.app.Icons().Names(), 9)
	assert.Equal(t, "*", f.app.Icons().Glyph(IconViews))
}

func TestNavigate_BeforeStart(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.app.Navigate(context.Background(), "/"), ErrNotStarted)
}

func TestNavigate_UnknownPath(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	assert.ErrorIs(t, f.app.Navigate(context.Background(), "/nowhere"), ErrNotFound)
	assert.ErrorIs(t, f.app.Navigate(context.Background(), "/event/abc"), ErrNotFound)
	assert.Equal(t, router.Dashboard, f.app.Current().Route.Name)
}

func TestNavigate_InitialPath(t *testing.T) {
	f := newFixture(t)
	f.app = New(f.cfg, WithOutput(f.out), WithInitialPath("/event/1"))
	f.start(t)

	out := f.out.String()
	assert.Contains(t, out, "Jazz in the Park")
	assert.Contains(t, out, "Bring a blanket!")
	assert.NotContains(t, out, "RSVP with", "anonymous users get no RSVP hint")
}

func TestNavigate_AdminViewsCheckRoles(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.out.Reset()

	require.NoError(t, f.app.Navigate(context.Background(), "/admin/users"))
	assert.Contains(t, f.out.String(), "Access denied: Users is for admin.")

	for _, r := range f.api.Requests() {
		assert.NotEqual(t, "/users", r.Path, "denied views do not load")
	}
}

func TestNavigate_EnforcedRoles(t *testing.T) {
	f := newFixture(t, func(f *fixture) { f.cfg.EnforceRoles = true })
	f.start(t)
	assert.ErrorIs(t, f.app.Navigate(context.Background(), "/admin/categories"), ErrForbidden)
	assert.NoError(t, f.app.Navigate(context.Background(), "/login"))
}

func TestNavigate_AdminViews(t *testing.T) {
	f := newFixture(t, asAdmin)
	f.start(t)
	ctx := context.Background()

	f.out.Reset()
	require.NoError(t, f.app.Navigate(ctx, "/admin/dashboard"))
	assert.Contains(t, f.out.String(), "Events: 4")
	assert.Contains(t, f.out.String(), "Users: 2")

	f.out.Reset()
	require.NoError(t, f.app.Navigate(ctx, "/admin/users"))
	assert.Contains(t, f.out.String(), "grace@example.com")

	f.out.Reset()
	require.NoError(t, f.app.Navigate(ctx, "/admin/categories"))
	assert.Contains(t, f.out.String(), "Workshops")

	f.out.Reset()
	require.NoError(t, f.app.Navigate(ctx, "/admin/events"))
	assert.Contains(t, f.out.String(), "Intro to Pottery")

	f.out.Reset()
	require.NoError(t, f.app.Navigate(ctx, "/tags/2"))
	assert.Contains(t, f.out.String(), "Go Meetup")
	assert.NotContains(t, f.out.String(), "Rock Festival")
}

func TestStoreChangeOutsideNavigationRedraws(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.out.Reset()

	f.app.Events.SetSearch("x")
	assert.Equal(t, 1, strings.Count(f.out.String(), "== Events =="))
	assert.Contains(t, f.out.String(), `Search: "x"`)
}

func TestClose_StopsRedraws(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	require.NoError(t, f.app.Close())
	f.out.Reset()

	f.app.Events.SetSearch("x")
	assert.Empty(t, f.out.String())
}

func TestDashboard_MostViewedFailureShowsMessage(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	ctx := context.Background()
	sh := NewShell(f.app, f.out)

	require.NoError(t, sh.Exec(ctx, "most-viewed"))
	require.Len(t, f.app.Events.MostViewedEvents(), 4)

	f.api.Fail(http.MethodGet, "/events/most-viewed", http.StatusInternalServerError, "Server down")
	f.out.Reset()
	require.NoError(t, sh.Exec(ctx, "mode mostViewed"))

	out := f.out.String()
	assert.Contains(t, out, "! Server down")
	assert.Contains(t, out, "Rock Festival", "the previous list stays visible")
	assert.Len(t, f.app.Events.MostViewedEvents(), 4)
}
