package push

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStatusUpdate(t *testing.T) {
	frame := `{"event":"status_update","data":{"name":"web","status":{"status":"Stopped","pid":"-","uptime":"0s","cpu":"0.0%","last_started":"3m ago"}}}`

	ev, err := Decode([]byte(frame))

	require.NoError(t, err)
	assert.Equal(t, KindStatus, ev.Kind)
	assert.Equal(t, "web", ev.Ref)
	require.NotNil(t, ev.Status)
	assert.Equal(t, "Stopped", *ev.Status.Status)
	assert.Equal(t, String("-"), *ev.Status.PID)
	assert.Equal(t, "3m ago", *ev.Status.LastStarted)
	assert.Nil(t, ev.Status.LatestLog)
}

func TestDecodeNumericPID(t *testing.T) {
	frame := `{"event":"status_update","data":{"id":"3f2a9c","status":{"status":"Running","pid":4242}}}`

	ev, err := Decode([]byte(frame))

	require.NoError(t, err)
	assert.Equal(t, "3f2a9c", ev.Ref, "id is preferred over name")
	assert.Equal(t, String("4242"), *ev.Status.PID)
}

func TestDecodeLogUpdate(t *testing.T) {
	ev, err := Decode([]byte(`{"event":"log_update","data":{"name":"web","message":"listening on :8080","status":null}}`))

	require.NoError(t, err)
	assert.Equal(t, KindLog, ev.Kind)
	assert.Equal(t, "listening on :8080", ev.Message)
	assert.Empty(t, ev.Severity)
}

func TestDecodeStarted(t *testing.T) {
	ev, err := Decode([]byte(`{"event":"container_started","data":{"name":"web","message":"Container \"web\" failed to start","status":"error"}}`))

	require.NoError(t, err)
	assert.Equal(t, KindStarted, ev.Kind)
	assert.Equal(t, "error", ev.Severity)
	assert.Contains(t, ev.Message, "failed to start")
}

func TestDecodeLifecycleEvents(t *testing.T) {
	for frame, kind := range map[string]Kind{
		`{"event":"container_created","data":{"name":"a"}}`: KindCreated,
		`{"event":"container_updated","data":{"name":"a"}}`: KindUpdated,
		`{"event":"container_deleted","data":{"name":"a"}}`: KindDeleted,
	} {
		ev, err := Decode([]byte(frame))
		require.NoError(t, err)
		assert.Equal(t, kind, ev.Kind)
		assert.Equal(t, "a", ev.Ref)
	}
}

func TestDecodeErrors(t *testing.T) {
	bad := []string{
		`not json`,
		`{"event":"reboot","data":{"name":"a"}}`,
		`{"event":"container_deleted","data":{}}`,
		`{"event":"status_update","data":{"name":"a"}}`,
		`{"event":"status_update","data":{"name":"a","status":{"pid":true}}}`,
	}
	for _, frame := range bad {
		_, err := Decode([]byte(frame))
		assert.Error(t, err, frame)
	}
}

func TestDeriveURL(t *testing.T) {
	u, err := DeriveURL("http://127.0.0.1:5000/")
	require.NoError(t, err)
	assert.Equal(t, "ws://127.0.0.1:5000/api/events", u)

	u, err = DeriveURL("https://box.example/dash")
	require.NoError(t, err)
	assert.Equal(t, "wss://box.example/dash/api/events", u)

	_, err = DeriveURL("unix:///tmp/sock")
	assert.Error(t, err)
}
