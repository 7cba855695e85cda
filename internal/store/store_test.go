package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func rec(id, name string, st Status) Record {
	return Record{ID: id, Name: name, Status: st, Uptime: "0s", CPU: "0.0%"}
}

func TestApplySnapshotAddsUpdatesRemoves(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{rec("a", "alpha", StatusRunning), rec("b", "beta", StatusStopped)})

	ch := s.ApplySnapshot([]Record{
		rec("b", "beta", StatusRunning),
		rec("c", "gamma", StatusCreated),
	})

	assert.Equal(t, []string{"c"}, ch.Added)
	assert.Equal(t, []string{"b"}, ch.Updated)
	assert.Equal(t, []string{"a"}, ch.Removed)
	assert.Equal(t, []string{"b", "c"}, s.IDs())

	b, ok := s.Get("b")
	require.True(t, ok)
	assert.Equal(t, StatusRunning, b.Status)
}

func TestApplySnapshotUpdatesInPlace(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{rec("a", "alpha", StatusRunning)})
	before := s.records["a"]

	s.ApplySnapshot([]Record{rec("a", "alpha", StatusPaused)})

	assert.Same(t, before, s.records["a"], "record must be mutated, not replaced")
	assert.Equal(t, StatusPaused, s.records["a"].Status)
}

func TestApplySnapshotUnchangedReportsNothing(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{rec("a", "alpha", StatusRunning)})

	ch := s.ApplySnapshot([]Record{rec("a", "alpha", StatusRunning)})

	assert.True(t, ch.Empty())
}

func TestApplySnapshotSkipsDuplicatesAndBlankIDs(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{
		rec("a", "alpha", StatusRunning),
		rec("", "ghost", StatusRunning),
		rec("a", "alpha-dup", StatusStopped),
	})

	assert.Equal(t, 1, s.Len())
	a, _ := s.Get("a")
	assert.Equal(t, "alpha", a.Name)
}

func TestApplyDeltaUnknownIsNoop(t *testing.T) {
	s := New()
	calls := 0
	s.Subscribe(func(Change) { calls++ })

	ok := s.ApplyDelta("missing", Delta{Status: ptr(StatusRunning)})

	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, calls)
}

func TestApplyDeltaIdempotent(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{rec("x1", "web", StatusRunning)})
	d := Delta{Status: ptr(StatusStopped), PID: ptr(""), Uptime: ptr("0s"), CPU: ptr("0.0%")}

	s.ApplyDelta("x1", d)
	once := s.Records()
	s.ApplyDelta("x1", d)

	assert.Equal(t, once, s.Records())
}

func TestApplyDeltaOnlyNamedFields(t *testing.T) {
	s := New()
	r := rec("x1", "web", StatusRunning)
	r.PID = "4242"
	r.Command = "python app.py"
	s.ApplySnapshot([]Record{r})

	s.ApplyDelta("x1", Delta{CPU: ptr("12.5%")})

	got, _ := s.Get("x1")
	assert.Equal(t, "12.5%", got.CPU)
	assert.Equal(t, "4242", got.PID)
	assert.Equal(t, "python app.py", got.Command)
	assert.Equal(t, StatusRunning, got.Status)
}

func TestSnapshotKeepsPushedMemory(t *testing.T) {
	s := New()
	r := rec("x1", "web", StatusRunning)
	r.Resources = "100MB/50%"
	s.ApplySnapshot([]Record{r})

	s.ApplyDelta("x1", Delta{Memory: ptr("12.3MB")})
	ch := s.ApplySnapshot([]Record{r})

	got, _ := s.Get("x1")
	assert.Equal(t, "12.3MB", got.Memory)
	assert.Equal(t, "100MB/50%", got.Resources)
	assert.True(t, ch.Empty())
}

func TestConvergenceLastArrivalWins(t *testing.T) {
	snapshot := []Record{rec("x1", "web", StatusRunning)}
	delta := Delta{Status: ptr(StatusStopped)}

	t.Run("poll then push", func(t *testing.T) {
		s := New()
		s.ApplySnapshot(snapshot)
		s.ApplyDelta("x1", delta)

		got, _ := s.Get("x1")
		assert.Equal(t, StatusStopped, got.Status)
	})

	t.Run("push then poll", func(t *testing.T) {
		s := New()
		s.ApplySnapshot([]Record{rec("x1", "web", StatusCreated)})
		s.ApplyDelta("x1", delta)
		s.ApplySnapshot(snapshot)

		got, _ := s.Get("x1")
		assert.Equal(t, StatusRunning, got.Status)
	})

	t.Run("fields converge independently", func(t *testing.T) {
		s := New()
		s.ApplySnapshot([]Record{rec("x1", "web", StatusRunning)})
		s.ApplyDelta("x1", Delta{CPU: ptr("50.0%")})
		s.ApplyDelta("x1", Delta{Status: ptr(StatusPaused)})
		s.ApplyDelta("x1", Delta{CPU: ptr("0.0%")})

		got, _ := s.Get("x1")
		assert.Equal(t, StatusPaused, got.Status)
		assert.Equal(t, "0.0%", got.CPU)
	})
}

func TestLatestLogIsTruncated(t *testing.T) {
	s := New()
	long := strings.Repeat("a", 80)
	r := rec("x1", "web", StatusRunning)
	r.LatestLog = long
	s.ApplySnapshot([]Record{r})

	got, _ := s.Get("x1")
	assert.Len(t, got.LatestLog, MaxLogPreview)
	assert.True(t, strings.HasSuffix(got.LatestLog, "..."))

	s.ApplyDelta("x1", Delta{LatestLog: ptr("short line")})
	got, _ = s.Get("x1")
	assert.Equal(t, "short line", got.LatestLog)
}

func TestTruncateLogMultibyte(t *testing.T) {
	in := strings.Repeat("é", 60)
	out := TruncateLog(in)
	assert.Equal(t, MaxLogPreview, len([]rune(out)))
}

func TestRemove(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{rec("a", "alpha", StatusRunning), rec("b", "beta", StatusRunning)})

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, []string{"b"}, s.IDs())
}

func TestResolveByIDOrName(t *testing.T) {
	s := New()
	s.ApplySnapshot([]Record{rec("3f2a9c", "web", StatusRunning)})

	id, ok := s.Resolve("web")
	assert.True(t, ok)
	assert.Equal(t, "3f2a9c", id)

	id, ok = s.Resolve("3f2a9c")
	assert.True(t, ok)
	assert.Equal(t, "3f2a9c", id)

	_, ok = s.Resolve("nope")
	assert.False(t, ok)
}

func TestOneNotificationPerUpdate(t *testing.T) {
	s := New()
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.ApplySnapshot([]Record{rec("a", "alpha", StatusRunning), rec("b", "beta", StatusRunning)})
	s.ApplyDelta("a", Delta{CPU: ptr("1%")})
	s.Remove("b")

	require.Len(t, changes, 3)
	assert.Len(t, changes[0].Added, 2)
	assert.Equal(t, []string{"a"}, changes[1].Updated)
	assert.Equal(t, []string{"b"}, changes[2].Removed)
	assert.Equal(t, map[string]struct{}{"a": {}}, changes[2].Present)
}
