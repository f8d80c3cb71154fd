package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	apierrors "github.com/eventboard/eventboard/client/internal/errors"
	"github.com/eventboard/eventboard/client/internal/types"
)

const twoEvents = `[
	{"id":1,"name":"Jazz night","createdAt":"2025-01-01T10:00:00Z","eventDate":"2025-02-01T19:00:00Z","views":120,"author":{"id":4,"type":"admin"},"tags":[{"id":2,"name":"music"}],"category":{"id":5,"name":"Concerts"}},
	{"id":2,"name":"Go meetup","createdAt":"2025-01-02T10:00:00Z","eventDate":"2025-03-01T18:00:00Z","views":80,"author":{"id":5,"type":"event_creator"},"tags":[],"categoryId":6}
]`

func TestMostViewedEvents_Array(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/most-viewed" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("most viewed must be unpaginated, got query %q", r.URL.RawQuery)
		}
		jsonHandler(http.StatusOK, twoEvents)(w, r)
	}))
	defer srv.Close()

	evs, err := MostViewedEvents(context.Background(), newRC(srv))
	if err != nil {
		t.Fatalf("MostViewedEvents error: %v", err)
	}
	if len(evs) != 2 || evs[0].Name != "Jazz night" || evs[1].Views != 80 {
		t.Fatalf("unexpected events: %+v", evs)
	}
	if id, ok := evs[1].CategoryRef(); !ok || id != 6 {
		t.Fatalf("expected flat categoryId 6, got %d %v", id, ok)
	}
}

func TestMostViewedEvents_NonArrayBodies(t *testing.T) {
	t.Parallel()
	for _, body := range []string{`{"data":[]}`, `null`, `"nope"`, `plain text`, ``} {
		srv := httptest.NewServer(jsonHandler(http.StatusOK, body))
		evs, err := MostViewedEvents(context.Background(), newRC(srv))
		srv.Close()
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if evs == nil || len(evs) != 0 {
			t.Fatalf("body %q: expected empty non-nil slice, got %#v", body, evs)
		}
	}
}

func TestEventsByCategory_SendsFirstPage(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/category/5" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("pageSize") != "50" || q.Get("offset") != "0" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		jsonHandler(http.StatusOK, `{"data":`+twoEvents+`,"total":2}`)(w, r)
	}))
	defer srv.Close()

	evs, err := EventsByCategory(context.Background(), newRC(srv), 5, types.FirstPage)
	if err != nil {
		t.Fatalf("EventsByCategory error: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d", len(evs))
	}
}

func TestEventsByCategory_MalformedData(t *testing.T) {
	t.Parallel()
	for _, body := range []string{`{}`, `{"data":null}`, `{"data":{"id":1}}`, `[]`, `null`, `oops`} {
		srv := httptest.NewServer(jsonHandler(http.StatusOK, body))
		evs, err := EventsByCategory(context.Background(), newRC(srv), 5, types.FirstPage)
		srv.Close()
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if evs == nil || len(evs) != 0 {
			t.Fatalf("body %q: expected empty slice, got %#v", body, evs)
		}
	}
}

func TestMostViewedEvents_TolerantElements(t *testing.T) {
	t.Parallel()
	body := `[
		{"id":1,"name":"Jazz night","createdAt":"2024-05-01 10:00:00","views":"12"},
		{"id":2,"createdAt":"not a date","views":"many","author":{"id":"x","email":"a@example.com"}},
		7,
		{"id":3,"eventDate":"2024-06-01","views":5}
	]`
	srv := httptest.NewServer(jsonHandler(http.StatusOK, body))
	defer srv.Close()

	evs, err := MostViewedEvents(context.Background(), newRC(srv))
	if err != nil {
		t.Fatalf("MostViewedEvents error: %v", err)
	}
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %+v", evs)
	}
	want := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	if evs[0].ID != 1 || evs[0].Name != "Jazz night" || evs[0].Views != 12 || !evs[0].CreatedAt.Equal(want) {
		t.Fatalf("unexpected first event: %+v", evs[0])
	}
	if evs[1].ID != 2 || evs[1].Views != 0 || !evs[1].CreatedAt.IsZero() || evs[1].Author.Email != "a@example.com" {
		t.Fatalf("unexpected second event: %+v", evs[1])
	}
	if evs[2].ID != 3 || evs[2].Views != 5 || evs[2].EventDate.Year() != 2024 {
		t.Fatalf("unexpected third event: %+v", evs[2])
	}
}

func TestEventsByCategory_TolerantElements(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `{"data":[{"id":1,"views":"12"},{"id":"2","name":"Go meetup"}]}`))
	defer srv.Close()

	evs, err := EventsByCategory(context.Background(), newRC(srv), 5, types.FirstPage)
	if err != nil {
		t.Fatalf("EventsByCategory error: %v", err)
	}
	if len(evs) != 2 || evs[0].Views != 12 || evs[1].ID != 0 || evs[1].Name != "Go meetup" {
		t.Fatalf("unexpected events: %+v", evs)
	}
}

func TestMostViewedEvents_InvalidJSONArray(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(jsonHandler(http.StatusOK, `[{"id":1},`))
	defer srv.Close()

	evs, err := MostViewedEvents(context.Background(), newRC(srv))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if evs == nil || len(evs) != 0 {
		t.Fatalf("expected empty slice, got %#v", evs)
	}
}

func TestEventsByCategory_StructuredError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(jsonHandler(http.StatusInternalServerError, `{"type":"Internal","status":500,"message":"Server down"}`))
	defer srv.Close()

	_, err := EventsByCategory(context.Background(), newRC(srv), 5, types.FirstPage)
	var he *apierrors.HTTPError
	if !errors.As(err, &he) || he.App == nil || he.App.Message != "Server down" {
		t.Fatalf("expected structured error, got %v", err)
	}
}

func TestEventsByTag_Path(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events/tag/2" || r.URL.Query().Get("pageSize") != "50" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		jsonHandler(http.StatusOK, `{"data":[{"id":1,"name":"Jazz night","tags":[{"id":2}]}]}`)(w, r)
	}))
	defer srv.Close()

	evs, err := EventsByTag(context.Background(), newRC(srv), 2, types.FirstPage)
	if err != nil || len(evs) != 1 {
		t.Fatalf("EventsByTag: %v %+v", err, evs)
	}
}

func TestListEvents_Search(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" || r.URL.Query().Get("search") != "jazz" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		jsonHandler(http.StatusOK, `{"data":[{"id":1,"name":"Jazz night"}],"total":1}`)(w, r)
	}))
	defer srv.Close()

	page, err := ListEvents(context.Background(), newRC(srv), types.EventQuery{Search: "jazz", PageParams: types.FirstPage})
	if err != nil {
		t.Fatalf("ListEvents error: %v", err)
	}
	if page.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestGetEvent_And_Comments(t *testing.T) {
	t.Parallel()
	mux := http.NewServeMux()
	mux.HandleFunc("/events/1", jsonHandler(http.StatusOK, `{"id":1,"name":"Jazz night","maxParticipants":30}`))
	mux.HandleFunc("/events/1/comments", jsonHandler(http.StatusOK, `[{"id":10,"authorName":"Bob","content":"Great","likeCount":3,"dislikeCount":1}]`))
	srv := httptest.NewServer(mux)
	defer srv.Close()
	rc := newRC(srv)

	ev, err := GetEvent(context.Background(), rc, 1)
	if err != nil {
		t.Fatalf("GetEvent error: %v", err)
	}
	if ev.MaxParticipants == nil || *ev.MaxParticipants != 30 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	comments, err := ListComments(context.Background(), rc, 1)
	if err != nil {
		t.Fatalf("ListComments error: %v", err)
	}
	if len(comments) != 1 || comments[0].LikeCount != 3 {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(jsonHandler(http.StatusNotFound, `{"type":"NotFound","status":404,"message":"Event not found"}`))
	defer srv.Close()
	if _, err := GetEvent(context.Background(), newRC(srv), 99); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestRSVP_And_DeleteEvent(t *testing.T) {
	t.Parallel()
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	rc := newRC(srv)

	if err := RSVP(context.Background(), rc, 3); err != nil {
		t.Fatalf("RSVP error: %v", err)
	}
	if err := DeleteEvent(context.Background(), rc, 3); err != nil {
		t.Fatalf("DeleteEvent error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || calls[0] != "POST /events/3/rsvp" || calls[1] != "DELETE /events/3" {
		t.Fatalf("unexpected calls: %v", calls)
	}
}

func TestEvents_HTTPDoError(t *testing.T) {
	t.Parallel()
	rc := failingRC()
	if _, err := MostViewedEvents(context.Background(), rc); err == nil {
		t.Fatal("expected Do error for MostViewedEvents")
	}
	if _, err := EventsByCategory(context.Background(), rc, 1, types.FirstPage); err == nil {
		t.Fatal("expected Do error for EventsByCategory")
	}
	if _, err := GetEvent(context.Background(), rc, 1); err == nil {
		t.Fatal("expected Do error for GetEvent")
	}
}
