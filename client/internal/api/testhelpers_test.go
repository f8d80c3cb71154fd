package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-resty/resty/v2"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// newRC returns a resty client pointed at srv.
func newRC(srv *httptest.Server) *resty.Client {
	return resty.NewWithClient(srv.Client()).SetBaseURL(srv.URL)
}

// failingRC returns a resty client whose transport always fails.
func failingRC() *resty.Client {
	return resty.New().SetBaseURL("http://example.com").SetTransport(&errRT{})
}

// jsonHandler replies with status and body for every request.
func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
