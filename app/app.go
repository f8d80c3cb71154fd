// Package app wires the SDK, the stores and the router into a terminal
// client. Start runs the bootstrap sequence; Navigate resolves a path,
// loads its view and renders it to the configured writer.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/router"
	"github.com/eventboard/eventboard/store"
)

// API is the SDK surface the application uses. *client.Client satisfies it.
type API interface {
	store.AuthAPI
	store.EventsAPI

	ListEvents(ctx context.Context, q client.EventQuery) (*client.EventPage, error)
	EventsByTag(ctx context.Context, tagID int, page client.PageParams) ([]client.Event, error)
	GetEvent(ctx context.Context, eventID int) (*client.Event, error)
	DeleteEvent(ctx context.Context, eventID int) error
	RSVP(ctx context.Context, eventID int) error
	ListComments(ctx context.Context, eventID int) ([]client.Comment, error)
	ListCategories(ctx context.Context) ([]client.Category, error)
	CreateCategory(ctx context.Context, req client.CreateCategoryRequest) (*client.Category, error)
	DeleteCategory(ctx context.Context, categoryID int) error
	ListUsers(ctx context.Context) ([]client.User, error)
	DeleteUser(ctx context.Context, userID int) error
}

var (
	// ErrNotStarted is returned by Navigate before Start has completed.
	ErrNotStarted = errors.New("app not started")
	// ErrNotFound is returned for paths outside the route table.
	ErrNotFound = errors.New("no route matches path")
	// ErrForbidden is returned when role enforcement is on and the route is
	// not meant for the current user.
	ErrForbidden = errors.New("route not available for current user")
)

// Bootstrap stages, in the order Start runs them.
const (
	StageShell  = "shell"
	StageStores = "stores"
	StageRouter = "router"
	StageAuth   = "auth"
	StageIcons  = "icons"
	StageMount  = "mount"
)

// Option configures an App.
type Option func(*App)

// WithOutput sets where views are rendered. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithAPI replaces the SDK client built from the config.
func WithAPI(api API) Option {
	return func(a *App) { a.api = api }
}

// WithInitialPath sets the route rendered on mount. Defaults to "/".
func WithInitialPath(path string) Option {
	return func(a *App) { a.initialPath = path }
}

// App is the application root. It owns the stores.
type App struct {
	cfg         *config.Config
	out         io.Writer
	api         API
	closer      io.Closer
	initialPath string

	Auth   *store.AuthStore
	Events *store.EventStore
	router *router.Router
	icons  *IconSet

	mu         sync.Mutex
	stages     []string
	mounted    bool
	suspended  int  // >0 while a navigation or batch is running
	batching   int
	dirty      bool // a store changed while suspended
	current    router.Match
	view       View
	unsubAuth  func()
	unsubEvent func()
}

// New prepares an App. Nothing runs until Start.
func New(cfg *config.Config, opts ...Option) *App {
	if cfg == nil {
		cfg = config.NewForTesting(client.DefaultBaseURL)
	}
	a := &App{cfg: cfg, out: os.Stdout, initialPath: "/"}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) stage(name string) {
	a.mu.Lock()
	a.stages = append(a.stages, name)
	a.mu.Unlock()
	log.Debug().Str("stage", name).Msg("bootstrap")
}

// Start runs the bootstrap sequence: shell, stores, router, identity fetch,
// icons, mount. The identity fetch completes before the first render.
func (a *App) Start(ctx context.Context) error {
	if a.api == nil {
		c, err := a.cfg.NewClient()
		if err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		a.api = c
		a.closer = c
	}
	a.stage(StageShell)

	a.Auth = store.NewAuthStore(a.api)
	a.Events = store.NewEventStore(a.api)
	a.stage(StageStores)

	a.router = router.Default()
	a.Auth.SetNavigator(a)
	a.stage(StageRouter)

	a.Auth.FetchMe(ctx)
	a.stage(StageAuth)

	a.icons = NewIconSet()
	a.icons.RegisterDefaults()
	a.stage(StageIcons)

	a.unsubAuth = a.Auth.Subscribe(func(store.AuthState) { a.storeChanged() })
	a.unsubEvent = a.Events.Subscribe(func(store.EventState) { a.storeChanged() })
	a.mu.Lock()
	a.mounted = true
	a.mu.Unlock()
	a.stage(StageMount)

	return a.Navigate(ctx, a.initialPath)
}

// Close detaches from the stores and releases the SDK client.
func (a *App) Close() error {
	a.mu.Lock()
	a.mounted = false
	unsubAuth, unsubEvent := a.unsubAuth, a.unsubEvent
	a.mu.Unlock()
	if unsubAuth != nil {
		unsubAuth()
	}
	if unsubEvent != nil {
		unsubEvent()
	}
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Router returns the route table.
func (a *App) Router() *router.Router { return a.router }

// Icons returns the registered icon set.
func (a *App) Icons() *IconSet { return a.icons }

// Current returns the match of the rendered route.
func (a *App) Current() router.Match {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Navigate resolves path, loads its view and renders it once. Store changes
// made while the view loads do not trigger extra renders.
func (a *App) Navigate(ctx context.Context, path string) error {
	a.mu.Lock()
	mounted := a.mounted
	a.mu.Unlock()
	if !mounted {
		return ErrNotStarted
	}

	m, ok := a.router.Resolve(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if a.cfg.EnforceRoles && !router.Allowed(m.Route, a.Auth.User()) {
		return fmt.Errorf("%w: %s", ErrForbidden, m.Route.Name)
	}

	v, err := a.newView(m)
	if err != nil {
		return err
	}

	a.suspend()
	a.mu.Lock()
	a.current = m
	a.view = v
	a.mu.Unlock()
	loadErr := v.Load(ctx)
	a.resume()

	if loadErr != nil {
		return loadErr
	}
	log.Debug().Str("route", m.Route.Name).Str("path", m.Path).Msg("navigated")

	a.mu.Lock()
	inBatch := a.batching > 0
	a.mu.Unlock()
	if inBatch {
		return nil
	}
	return a.render()
}

// Push implements store.Navigator. Failures are logged.
func (a *App) Push(ctx context.Context, path string) {
	if err := a.Navigate(ctx, path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("navigation failed")
	}
}

// Batch runs fn with redraws suspended and then draws once: the new view
// if fn navigated, otherwise the current view reloaded when a store changed.
func (a *App) Batch(ctx context.Context, fn func(ctx context.Context) error) error {
	a.suspend()
	a.mu.Lock()
	a.batching++
	before := a.view
	a.mu.Unlock()

	err := fn(ctx)

	a.mu.Lock()
	a.batching--
	navigated := a.view != before
	changed := a.dirty
	a.mu.Unlock()
	a.resume()

	var drawErr error
	switch {
	case navigated:
		drawErr = a.render()
	case changed:
		drawErr = a.Reload(ctx)
	}
	if err == nil {
		err = drawErr
	}
	return err
}

// Reload loads and renders the current view again.
func (a *App) Reload(ctx context.Context) error {
	a.mu.Lock()
	v := a.view
	a.mu.Unlock()
	if v == nil {
		return ErrNotStarted
	}
	a.suspend()
	err := v.Load(ctx)
	a.resume()
	if err != nil {
		return err
	}
	return a.render()
}

func (a *App) suspend() {
	a.mu.Lock()
	if a.suspended == 0 {
		a.dirty = false
	}
	a.suspended++
	a.mu.Unlock()
}

func (a *App) resume() {
	a.mu.Lock()
	a.suspended--
	a.mu.Unlock()
}

// storeChanged runs on every store publish.
func (a *App) storeChanged() {
	a.mu.Lock()
	if !a.mounted {
		a.mu.Unlock()
		return
	}
	if a.suspended > 0 {
		a.dirty = true
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	if err := a.render(); err != nil {
		log.Warn().Err(err).Msg("redraw failed")
	}
}

func (a *App) render() error {
	a.mu.Lock()
	v := a.view
	a.mu.Unlock()
	if v == nil {
		return nil
	}
	return v.Render(a.out)
}
