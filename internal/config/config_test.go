package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"API_URL", "SESSION", "SESSION_COOKIE", "HTTP_TIMEOUT", "ENFORCE_ROLES", "CONFIG"} {
		t.Setenv("EVENTBOARD_"+k, "")
		_ = os.Unsetenv("EVENTBOARD_" + k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIURL)
	assert.Equal(t, "session", cfg.SessionCookie)
	assert.Zero(t, cfg.HTTPTimeout)
	assert.False(t, cfg.EnforceRoles)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("EVENTBOARD_API_URL", "http://api.test:9000")
	t.Setenv("EVENTBOARD_HTTP_TIMEOUT", "5s")
	t.Setenv("EVENTBOARD_ENFORCE_ROLES", "true")
	t.Setenv("EVENTBOARD_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.test:9000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.EnforceRoles)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eventboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"apiUrl: http://from-file:3000\nsession: ${EB_TEST_SESSION}\nhttpTimeout: 2s\n"), 0o600))

	t.Setenv("EB_TEST_SESSION", "abc123")
	t.Setenv("EVENTBOARD_API_URL", "http://from-env:3000")
	t.Setenv("EVENTBOARD_SESSION_COOKIE", "sid")
	t.Setenv("EVENTBOARD_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:3000", cfg.APIURL)
	assert.Equal(t, "abc123", cfg.Session)
	assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "sid", cfg.SessionCookie, "keys missing from the file keep the env value")
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("EVENTBOARD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := NewForTesting("http://localhost:3000")
	require.NoError(t, cfg.Validate())

	cfg.HTTPTimeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = NewForTesting("")
	assert.Error(t, cfg.Validate())
}

func TestNewClient(t *testing.T) {
	cfg := NewForTesting("http://localhost:3000")
	cfg.Session = "tok"
	cfg.HTTPTimeout = time.Second

	c, err := cfg.NewClient()
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Session())
	assert.NoError(t, c.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
}

func TestNewLogger_IncludesStackAndService(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("test-service", &buf)
	logger.Error().Stack().Err(errors.New("boom")).Msg("something failed")

	line := strings.TrimSpace(buf.String())
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &payload), line)
	assert.Equal(t, "test-service", payload["service"])
	assert.Equal(t, "error", payload["level"])
	assert.Contains(t, payload, "stack")
}
