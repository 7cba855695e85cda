package check

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	err   error
	calls int
}

func (s *stubLister) ListContainers(context.Context) ([]api.Container, error) {
	s.calls++
	return nil, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return config.DefaultConfig()
}

func TestRunPreChecksDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Runtime.RunPreChecks = false
	cfg.Server.URL = "not a url"
	l := &stubLister{err: errors.New("boom")}

	result := RunPreChecks(context.Background(), cfg, l)
	assert.True(t, result.Passed)
	assert.Zero(t, l.calls)
}

func TestRunPreChecksInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "127.0.0.1:5000", "ftp://host", "http://"} {
		cfg := testConfig(t)
		cfg.Server.URL = raw
		l := &stubLister{}

		result := RunPreChecks(context.Background(), cfg, l)
		assert.False(t, result.Passed, raw)
		assert.Equal(t, InvalidServerURL, result.ErrorType, raw)
		assert.Zero(t, l.calls, "server must not be probed with a bad url")
	}
}

func TestRunPreChecksInvalidPollRate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Performance.PollRate = 0

	result := RunPreChecks(context.Background(), cfg, &stubLister{})
	assert.False(t, result.Passed)
	assert.Equal(t, InvalidPollRate, result.ErrorType)
}

func TestRunPreChecksUnreachable(t *testing.T) {
	cfg := testConfig(t)
	l := &stubLister{err: &api.TransportError{Op: "list containers", Err: errors.New("connection refused")}}

	result := RunPreChecks(context.Background(), cfg, l)
	assert.False(t, result.Passed)
	assert.Equal(t, ServerUnreachable, result.ErrorType)
	assert.Contains(t, result.ErrorMessage, "connection refused")
	assert.Contains(t, result.SuggestedAction, "--server")
}

func TestRunPreChecksAgainstServer(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/containers", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Server.URL = srv.URL

	result := RunPreChecks(context.Background(), cfg, nil)
	require.True(t, result.Passed, result.ErrorMessage)
	assert.Equal(t, NoError, result.ErrorType)
}

func TestRunPreChecksRejected(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/containers", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "database locked"}`))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Server.URL = srv.URL

	result := RunPreChecks(context.Background(), cfg, nil)
	assert.False(t, result.Passed)
	assert.Equal(t, ServerRejected, result.ErrorType)
	assert.Contains(t, result.ErrorMessage, "database locked")
}
