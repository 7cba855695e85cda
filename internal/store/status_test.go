package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusRunning, ParseStatus("Running"))
	assert.Equal(t, StatusPaused, ParseStatus(" paused "))
	assert.Equal(t, StatusUnknown, ParseStatus("exploded"))
	assert.Equal(t, "Stopped", StatusStopped.String())
}

func TestActionGating(t *testing.T) {
	cases := []struct {
		action  ActionKind
		allowed []Status
	}{
		{ActionStart, []Status{StatusCreated, StatusStopped, StatusPaused, StatusError}},
		{ActionStop, []Status{StatusRunning, StatusStarting}},
		{ActionPause, []Status{StatusRunning}},
		{ActionResume, []Status{StatusPaused}},
	}
	all := []Status{StatusUnknown, StatusCreated, StatusStarting, StatusRunning, StatusPaused, StatusStopped, StatusError}

	for _, tc := range cases {
		t.Run(string(tc.action), func(t *testing.T) {
			for _, st := range all {
				want := false
				for _, a := range tc.allowed {
					if a == st {
						want = true
					}
				}
				assert.Equal(t, want, tc.action.AllowedFrom(st), "%s from %s", tc.action, st)
			}
		})
	}

	for _, st := range all {
		assert.True(t, ActionRestart.AllowedFrom(st))
		assert.True(t, ActionDelete.AllowedFrom(st))
	}
}

func TestActionEnabledNeedsOneMatch(t *testing.T) {
	assert.True(t, ActionEnabled(ActionPause, []Status{StatusStopped, StatusRunning}))
	assert.False(t, ActionEnabled(ActionPause, []Status{StatusStopped, StatusPaused}))
	assert.False(t, ActionEnabled(ActionRestart, nil))
}

func TestParseAction(t *testing.T) {
	k, ok := ParseAction("Restart")
	assert.True(t, ok)
	assert.Equal(t, ActionRestart, k)

	_, ok = ParseAction("rootfs")
	assert.False(t, ok)
	assert.Equal(t, "paused", ActionPause.Past())
}
