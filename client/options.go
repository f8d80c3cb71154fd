package client

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run before the cookie jar is attached and the session cookie is
// seeded, so an injected http.Client keeps its own jar if it has one.
type Option func(*Client) error

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = hc
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Requests carry no timeout by default. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithSession seeds the session cookie so requests are made on behalf of an
// existing login. An empty value is ignored.
func WithSession(value string) Option {
	return func(c *Client) error {
		c.session = value
		return nil
	}
}

// WithSessionCookieName overrides the name of the session cookie.
func WithSessionCookieName(name string) Option {
	return func(c *Client) error {
		if name == "" {
			return fmt.Errorf("session cookie name cannot be empty")
		}
		c.sessionCookie = name
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true.
//
// Do not enable this option in production environments as it dumps headers,
// cookies and bodies into the logs.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if _, already := c.http.Transport.(*debugTransport); !already {
				c.http.Transport = &debugTransport{base: c.http.Transport}
			}
		}
		return nil
	}
}
