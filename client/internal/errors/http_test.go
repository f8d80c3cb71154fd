package errors

import (
	"context"
	"testing"
)

func TestParseAppError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		body    string
		wantNil bool
		wantMsg string
	}{
		{"full shape", `{"type":"NotFound","status":404,"message":"Event not found"}`, false, "Event not found"},
		{"type optional", `{"status":500,"message":"Server down"}`, false, "Server down"},
		{"empty message still counts", `{"status":400,"message":""}`, false, ""},
		{"status as string", `{"status":"500","message":"x"}`, true, ""},
		{"status null", `{"status":null,"message":"x"}`, true, ""},
		{"message missing", `{"status":500}`, true, ""},
		{"message not string", `{"status":500,"message":42}`, true, ""},
		{"array body", `[1,2]`, true, ""},
		{"plain text", `Bad Gateway`, true, ""},
		{"empty", ``, true, ""},
		{"json null", `null`, true, ""},
	}
	for _, c := range cases {
		got := ParseAppError([]byte(c.body))
		if c.wantNil {
			if got != nil {
				t.Fatalf("%s: expected nil, got %+v", c.name, got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("%s: expected AppError, got nil", c.name)
		}
		if got.Message != c.wantMsg {
			t.Fatalf("%s: message = %q, want %q", c.name, got.Message, c.wantMsg)
		}
	}
}

func TestHTTPError_Message(t *testing.T) {
	t.Parallel()
	status := NewStatusError("GET", "/events/most-viewed", 502, []byte("Bad Gateway"))
	if status.App != nil {
		t.Fatalf("unexpected structured body: %+v", status.App)
	}
	if got := status.Message(); got != "Request failed with status code 502" {
		t.Fatalf("status message = %q", got)
	}

	network := NewNetworkError("GET", "/auth/me", context.Canceled)
	if !network.IsNetwork() {
		t.Fatalf("expected network error")
	}
	if got := network.Message(); got != context.Canceled.Error() {
		t.Fatalf("network message = %q", got)
	}

	empty := &HTTPError{Method: "GET", URL: "/x"}
	if got := empty.Message(); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}
