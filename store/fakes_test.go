package store

import (
	"context"
	"sync"

	"github.com/eventboard/eventboard/client"
)

type fakeAuthAPI struct {
	mu        sync.Mutex
	user      *client.User
	meErr     error
	loginErr  error
	logoutErr error
	calls     []string
}

func (f *fakeAuthAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*client.User, error) {
	f.record("me")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeAuthAPI) Login(ctx context.Context, req client.LoginRequest) error {
	f.record("login:" + req.Email)
	return f.loginErr
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	f.record("logout")
	return f.logoutErr
}

type navFunc func(ctx context.Context, path string)

func (f navFunc) Push(ctx context.Context, path string) { f(ctx, path) }

type fakeEventsAPI struct {
	mu          sync.Mutex
	mostViewed  func(ctx context.Context) ([]client.Event, error)
	byCategory  func(ctx context.Context, id int) ([]client.Event, error)
	lastPage    client.PageParams
	categoryIDs []int
}

func (f *fakeEventsAPI) MostViewedEvents(ctx context.Context) ([]client.Event, error) {
	return f.mostViewed(ctx)
}

func (f *fakeEventsAPI) EventsByCategory(ctx context.Context, id int, page client.PageParams) ([]client.Event, error) {
	f.mu.Lock()
	f.lastPage = page
	f.categoryIDs = append(f.categoryIDs, id)
	f.mu.Unlock()
	return f.byCategory(ctx, id)
}
