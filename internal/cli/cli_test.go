package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeServer) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeServer) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func startServer(t *testing.T) (*fakeServer, string) {
	t.Helper()
	f := &fakeServer{}
	router := httprouter.New()
	router.GET("/api/containers", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, http.StatusOK, []map[string]string{
			{"id": "3f2a9c1b7d4e5f60", "name": "web", "status": "Running", "pid": "4242", "cpu": "1.5%"},
			{"id": "9a8b7c6d5e4f", "name": "db", "status": "Stopped", "pid": "-"},
		})
	})
	router.POST("/api/containers", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var spec api.CreateSpec
		_ = json.NewDecoder(r.Body).Decode(&spec)
		f.record("create " + spec.Name)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": "abcdef0123456789"})
	})
	router.POST("/api/containers/:name/:action", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		f.record(ps.ByName("action") + " " + ps.ByName("name"))
		if ps.ByName("name") == "db" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no such container"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	router.DELETE("/api/containers/:name", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		f.record("delete " + ps.ByName("name"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func resetFlags() {
	flagServer = ""
	flagRunning = false
	flagQuiet = false
	flagFormat = ""
	flagForce = false
	flagOverwrite = false
	flagCommand = ""
	flagMem = 0
	flagCPU = 0
	flagVolumes = nil
	flagEnv = nil
}

// execute runs the root command with fresh flag values and an empty config dir
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags()
	t.Cleanup(resetFlags)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestPsQuiet(t *testing.T) {
	_, url := startServer(t)

	out, _, err := execute(t, "--server", url, "ps", "-q")
	require.NoError(t, err)
	assert.Equal(t, "web\ndb\n", out)
}

func TestPsRunningJSON(t *testing.T) {
	_, url := startServer(t)

	out, _, err := execute(t, "--server", url, "ps", "--running", "--format", "json")
	require.NoError(t, err)

	var got []api.Container
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "web", got[0].Name)
}

func TestPsTable(t *testing.T) {
	_, url := startServer(t)

	out, _, err := execute(t, "--server", url, "ps")
	require.NoError(t, err)
	rows := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if f := strings.Fields(line); len(f) > 1 {
			rows[f[1]] = line
		}
	}
	require.Contains(t, rows, "web")
	require.Contains(t, rows, "db")
	assert.True(t, strings.HasPrefix(rows["web"], "3f2a9c1b7d4e "))
	assert.Contains(t, rows["web"], "Running")
	assert.Contains(t, rows["db"], "Stopped")
}

func TestActionReportsEachTarget(t *testing.T) {
	f, url := startServer(t)

	out, stderr, err := execute(t, "--server", url, "start", "web", "db")
	require.ErrorIs(t, err, errSomeFailed)
	assert.Equal(t, "Container web started\n", out)
	assert.Equal(t, "Failed to start db: no such container\n", stderr)
	assert.ElementsMatch(t, []string{"start web", "start db"}, f.Calls())
}

func TestDeleteNeedsForce(t *testing.T) {
	f, url := startServer(t)

	_, _, err := execute(t, "--server", url, "delete", "web")
	require.Error(t, err)
	assert.Empty(t, f.Calls())

	out, _, err := execute(t, "--server", url, "rm", "--force", "web")
	require.NoError(t, err)
	assert.Equal(t, "Container web deleted\n", out)
	assert.Equal(t, []string{"delete web"}, f.Calls())
}

func TestCreate(t *testing.T) {
	f, url := startServer(t)

	_, _, err := execute(t, "--server", url, "create", "web", "-e", "NOPE")
	require.ErrorContains(t, err, "KEY=VALUE")

	_, _, err = execute(t, "--server", url, "create", "web")
	require.ErrorContains(t, err, "command is required")
	assert.Empty(t, f.Calls())

	out, _, err := execute(t, "--server", url, "create", "web", "-c", "sleep 60", "-e", "A=1")
	require.NoError(t, err)
	assert.Equal(t, "Created container web (abcdef012345)\n", out)
	assert.Equal(t, []string{"create web"}, f.Calls())
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetFlags()
	t.Cleanup(resetFlags)

	rootCmd.SetArgs([]string{"--server", "http://10.0.0.5:5000", "config", "init"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, stdout.String(), "Wrote ")

	path, err := config.GetConfigPath()
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:5000", cfg.Server.URL)

	flagServer = ""
	rootCmd.SetArgs([]string{"config", "init"})
	assert.ErrorContains(t, rootCmd.ExecuteContext(context.Background()), "already exists")
}

func TestWriteLogs(t *testing.T) {
	var b bytes.Buffer
	writeLogs(&b, "", "a\n")
	writeLogs(&b, "a\n", "a\nb\n")
	writeLogs(&b, "a\nb\n", "a\nb\n")
	// tail rolled over
	writeLogs(&b, "a\nb\n", "c\n")
	assert.Equal(t, "a\nb\nc\n", b.String())
}
