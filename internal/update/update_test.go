package update

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareSemver(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.3", 0},
		{"v1.2.3", "1.2.3", 0},
		{"1.2.3", "v1.10.0", -1},
		{"2.0", "1.9.9", 1},
		{"1.2", "1.2.1", -1},
		{"1.2.0-rc1", "1.2.0-rc2", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, compareSemver(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func newChecker(t *testing.T, status int, body string) *Checker {
	t.Helper()
	router := httprouter.New()
	router.GET("/repos/:owner/:repo/releases/latest", func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		assert.Equal(t, "dockboard", ps.ByName("repo"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	c := NewChecker()
	c.APIBase = srv.URL
	c.Repo = "shubh-io/dockboard"
	return c
}

func TestRunNewerRelease(t *testing.T) {
	c := newChecker(t, http.StatusOK, `{"tag_name": "v0.3.0"}`)
	var out bytes.Buffer

	require.NoError(t, c.Run(context.Background(), "0.2.1", &out))
	assert.Contains(t, out.String(), "0.2.1 → v0.3.0")
	assert.Contains(t, out.String(), "go install github.com/shubh-io/dockboard@v0.3.0")
}

func TestRunUpToDate(t *testing.T) {
	c := newChecker(t, http.StatusOK, `{"tag_name": "v0.2.1"}`)
	var out bytes.Buffer

	require.NoError(t, c.Run(context.Background(), "0.2.1", &out))
	assert.Contains(t, out.String(), "Already up-to-date")
}

func TestLatestReleaseTagErrors(t *testing.T) {
	_, err := newChecker(t, http.StatusNotFound, `{}`).LatestReleaseTag(context.Background())
	assert.ErrorContains(t, err, "status 404")

	_, err = newChecker(t, http.StatusOK, `{"tag_name": ""}`).LatestReleaseTag(context.Background())
	assert.ErrorContains(t, err, "no tag name")
}
