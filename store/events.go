package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/eventboard/eventboard/client"
)

// ViewMode selects which event list the dashboard shows.
type ViewMode string

const (
	ViewAll        ViewMode = "all"
	ViewMostViewed ViewMode = "mostViewed"
	ViewCategory   ViewMode = "category"
)

// ErrInvalidViewMode is returned for modes outside the three known ones.
var ErrInvalidViewMode = errors.New("invalid view mode")

// ParseViewMode validates s as a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch m := ViewMode(s); m {
	case ViewAll, ViewMostViewed, ViewCategory:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, s)
	}
}

// EventsAPI is the part of the SDK the event store calls.
type EventsAPI interface {
	MostViewedEvents(ctx context.Context) ([]client.Event, error)
	EventsByCategory(ctx context.Context, categoryID int, page client.PageParams) ([]client.Event, error)
}

// EventState is a snapshot of the event store.
type EventState struct {
	Search           string
	ViewMode         ViewMode
	MostViewedEvents []client.Event
	CategoryEvents   []client.Event
	CategoryID       int     // category of the last successful LoadByCategory
	ErrorMessage     *string // nil when the last load succeeded
}

// EventStore holds the dashboard's query state and the lists fetched for it.
//
// Loads are not cancelled or de-duplicated: two overlapping loads of the same
// list both complete and whichever finishes last wins.
type EventStore struct {
	api EventsAPI

	mu               sync.RWMutex
	search           string
	viewMode         ViewMode
	mostViewedEvents []client.Event
	categoryEvents   []client.Event
	categoryID       int
	errorMessage     *string

	subs observers[EventState]
}

// NewEventStore returns a store in "all" mode with empty lists.
func NewEventStore(api EventsAPI) *EventStore {
	return &EventStore{
		api:              api,
		viewMode:         ViewAll,
		mostViewedEvents: []client.Event{},
		categoryEvents:   []client.Event{},
	}
}

// Subscribe registers fn for every change and returns a function that
// removes it.
func (s *EventStore) Subscribe(fn func(EventState)) (unsubscribe func()) {
	return s.subs.add(fn)
}

// State returns a snapshot of the store.
func (s *EventStore) State() EventState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *EventStore) stateLocked() EventState {
	st := EventState{
		Search:           s.search,
		ViewMode:         s.viewMode,
		MostViewedEvents: slices.Clone(s.mostViewedEvents),
		CategoryEvents:   slices.Clone(s.categoryEvents),
		CategoryID:       s.categoryID,
	}
	if s.errorMessage != nil {
		msg := *s.errorMessage
		st.ErrorMessage = &msg
	}
	return st
}

// update applies fn under the lock and publishes the result when fn reports
// a change.
func (s *EventStore) update(fn func() bool) {
	s.mu.Lock()
	changed := fn()
	st := s.stateLocked()
	s.mu.Unlock()

	if changed {
		s.subs.publish(st)
	}
}

// Search returns the free-text query.
func (s *EventStore) Search() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.search
}

// ViewMode returns the current view mode.
func (s *EventStore) ViewMode() ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// MostViewedEvents returns a copy of the most-viewed list.
func (s *EventStore) MostViewedEvents() []client.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mostViewedEvents)
}

// CategoryEvents returns a copy of the category list.
func (s *EventStore) CategoryEvents() []client.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categoryEvents)
}

// ErrorMessage returns the last load failure, if any.
func (s *EventStore) ErrorMessage() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.errorMessage == nil {
		return "", false
	}
	return *s.errorMessage, true
}

// SetSearch stores a new query. Any change to the query drops back to the
// "all" view; setting the current value again is a no-op.
func (s *EventStore) SetSearch(q string) {
	s.update(func() bool {
		if q == s.search {
			return false
		}
		s.search = q
		s.viewMode = ViewAll
		return true
	})
}

// SetViewMode switches the view mode. It has no other side effect.
func (s *EventStore) SetViewMode(mode ViewMode) error {
	if _, err := ParseViewMode(string(mode)); err != nil {
		return err
	}
	s.update(func() bool {
		s.viewMode = mode
		return true
	})
	return nil
}

// LoadMostViewed refreshes the most-viewed list. On failure the list is kept
// and ErrorMessage is set.
func (s *EventStore) LoadMostViewed(ctx context.Context) {
	events, err := s.api.MostViewedEvents(ctx)
	if err != nil {
		s.fail("most viewed", err)
		return
	}
	s.update(func() bool {
		s.mostViewedEvents = nonNil(events)
		s.errorMessage = nil
		return true
	})
}

// LoadByCategory refreshes the category list with the first page (50
// events) of category id. On failure the list is kept and ErrorMessage is set.
func (s *EventStore) LoadByCategory(ctx context.Context, id int) {
	events, err := s.api.EventsByCategory(ctx, id, client.FirstPage)
	if err != nil {
		s.fail("by category", err)
		return
	}
	s.update(func() bool {
		s.categoryEvents = nonNil(events)
		s.categoryID = id
		s.errorMessage = nil
		return true
	})
}

func (s *EventStore) fail(load string, err error) {
	msg := client.ErrorMessage(err)
	log.Debug().Err(err).Str("load", load).Str("reason", msg).Msg("event load failed")
	s.update(func() bool {
		s.errorMessage = &msg
		return true
	})
}

func nonNil(events []client.Event) []client.Event {
	if events == nil {
		return []client.Event{}
	}
	return slices.Clone(events)
}
