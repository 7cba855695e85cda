package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func recvState(t *testing.T, c *Client) State {
	t.Helper()
	select {
	case s := <-c.States():
		return s
	case <-time.After(3 * time.Second):
		t.Fatal("no state change")
	}
	return State{}
}

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("no event")
	}
	return Event{}
}

func TestClientDeliversEventsAndReconnects(t *testing.T) {
	var conns atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		n := conns.Add(1)
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`garbage`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"container_deleted","data":{"name":"web"}}`))
		if n == 1 {
			// drop the first connection to force a reconnect
			_ = conn.Close()
			return
		}
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"log_update","data":{"name":"db","message":"ready"}}`))
		// hold the second one open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c := NewClient(wsURL(srv))
	c.newBackoff = func() backoff.BackOff { return backoff.NewConstantBackOff(10 * time.Millisecond) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	assert.True(t, recvState(t, c).Connected)
	ev := recvEvent(t, c)
	assert.Equal(t, KindDeleted, ev.Kind)
	assert.Equal(t, "web", ev.Ref)

	// the first connection drops; the client redials and the server replays
	ev = recvEvent(t, c)
	assert.Equal(t, KindDeleted, ev.Kind)
	ev = recvEvent(t, c)
	assert.Equal(t, KindLog, ev.Kind)
	assert.Equal(t, "ready", ev.Message)
	assert.Equal(t, int32(2), conns.Load())

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return")
	}
	_, open := <-c.Events()
	assert.False(t, open)
}

func TestClientReportsDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := wsURL(srv)
	srv.Close()

	c := NewClient(url)
	c.newBackoff = func() backoff.BackOff { return &backoff.StopBackOff{} }

	err := c.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "giving up")
	s, ok := <-c.States()
	require.True(t, ok)
	assert.False(t, s.Connected)
}
