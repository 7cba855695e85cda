package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shubh-io/dockboard/internal/api"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/shubh-io/dockboard/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu         sync.Mutex
	containers []api.Container
	calls      []string
	created    []api.CreateSpec
}

func (f *fakeAPI) ListContainers(context.Context) ([]api.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Container(nil), f.containers...), nil
}

func (f *fakeAPI) CreateContainer(_ context.Context, spec api.CreateSpec) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, spec)
	return "id-" + spec.Name, nil
}

func (f *fakeAPI) DoAction(_ context.Context, name, action string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, action+" "+name)
	return "", nil
}

func (f *fakeAPI) GetLogs(_ context.Context, name string) (string, error) {
	return "line 1\nline 2 of " + name, nil
}

func (f *fakeAPI) OpenRootfs(context.Context, string) error {
	return nil
}

func (f *fakeAPI) actionCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type harness struct {
	t     *testing.T
	m     model
	api   *fakeAPI
	ticks []time.Duration // logs panel timers, recorded and never fired
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	fake := &fakeAPI{containers: []api.Container{
		{ID: "c3", Name: "web", Status: "Running", PID: "4242", Uptime: "00:10:00", CPU: "3.5%"},
		{ID: "c1", Name: "db", Status: "Stopped", PID: "-"},
		{ID: "c2", Name: "cache", Status: "Paused", PID: "77", Uptime: "01:00:00", CPU: "0.1%"},
	}}
	cfg := config.DefaultConfig()
	eng := engine.New(engine.Options{
		API:    fake,
		Config: cfg,
		// timers never fire in tests
		Tick: func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil },
	})
	t.Cleanup(eng.Close)

	h := &harness{t: t, m: NewModel(eng, cfg), api: fake}
	h.m.tick = func(d time.Duration, _ func(time.Time) tea.Msg) tea.Cmd {
		h.ticks = append(h.ticks, d)
		return nil
	}
	h.run(h.m.Init())
	h.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	return h
}

// run executes cmd and feeds every resulting message back through Update
func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
		default:
			next, cmd := h.m.Update(msg)
			h.m = next.(model)
			queue = append(queue, cmd)
		}
	}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(model)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		h.run(h.send(keyMsg(k)))
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.run(h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func (h *harness) names() []string {
	var out []string
	for _, r := range h.m.rows {
		out = append(out, r.Name)
	}
	return out
}

func TestInitShowsServerOrder(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, []string{"web", "db", "cache"}, h.names())
	view := h.m.View()
	assert.Contains(t, view, "web")
	assert.Contains(t, view, "cache")
}

func TestToggleSelectsAndAdvances(t *testing.T) {
	h := newHarness(t)

	h.press(" ")
	assert.True(t, h.m.eng.Selected("c3"))
	assert.Equal(t, 1, h.m.cursor)

	h.press(" ")
	assert.ElementsMatch(t, []string{"c3", "c1"}, h.m.eng.SelectedIDs())

	h.press("c")
	assert.Zero(t, h.m.eng.SelectionLen())
}

func TestStartSendsImmediately(t *testing.T) {
	h := newHarness(t)

	h.press("j", " ", "s")
	assert.Equal(t, []string{"start db"}, h.api.actionCalls())
}

func TestDeleteWaitsForConfirmation(t *testing.T) {
	h := newHarness(t)

	h.press("a", "d")
	in, ok := h.m.eng.ActiveIntent()
	require.True(t, ok)
	assert.Contains(t, h.m.View(), in.Title)
	assert.Empty(t, h.api.actionCalls())

	// other keys are swallowed by the dialog
	h.press("s")
	assert.Empty(t, h.api.actionCalls())

	h.press("n")
	_, ok = h.m.eng.ActiveIntent()
	assert.False(t, ok)
	assert.Empty(t, h.api.actionCalls())

	h.press("d", "y")
	assert.ElementsMatch(t, []string{"delete web", "delete db", "delete cache"}, h.api.actionCalls())
}

func TestSortByColumn(t *testing.T) {
	h := newHarness(t)

	// column mode starts on NAME
	h.press("tab", "enter")
	assert.Equal(t, []string{"cache", "db", "web"}, h.names())

	h.press("enter")
	assert.Equal(t, []string{"web", "db", "cache"}, h.names())

	h.press("right", "right", "right", "enter")
	assert.Equal(t, "Sorted by UPTIME (asc)", h.m.statusMessage)
	assert.Equal(t, []string{"db", "web", "cache"}, h.names())
}

func TestCreateForm(t *testing.T) {
	h := newHarness(t)

	h.press("n")
	require.Equal(t, modeCreate, h.m.currentMode)

	// empty form stays open with the reason
	h.press("enter")
	assert.Equal(t, modeCreate, h.m.currentMode)
	assert.Contains(t, h.m.form.err, "name is required")

	h.typeText("api")
	h.press("tab")
	h.typeText("sleep 60")
	h.press("tab", "tab", "tab", "tab")
	h.typeText("A=1, B=2")
	h.press("enter")

	assert.Equal(t, modeNormal, h.m.currentMode)
	require.Len(t, h.api.created, 1)
	assert.Equal(t, "api", h.api.created[0].Name)
	assert.Equal(t, "sleep 60", h.api.created[0].Command)
	assert.Equal(t, map[string]string{"A": "1", "B": "2"}, h.api.created[0].EnvVars)
}

func TestLogsPanelShowsFetchedText(t *testing.T) {
	h := newHarness(t)

	h.press("l")
	require.True(t, h.m.logsVisible)
	assert.Equal(t, "web", h.m.logsName)
	assert.Contains(t, h.m.View(), "line 2 of web")
	assert.Equal(t, []time.Duration{2 * time.Second}, h.ticks, "refresh armed at the poll rate")

	h.press("esc")
	assert.False(t, h.m.logsVisible)

	// a stale tick for a closed panel does nothing
	assert.Nil(t, h.send(logsTickMsg{gen: h.m.logsGen}))
}

func TestLogsRefreshRearmsTimer(t *testing.T) {
	h := newHarness(t)

	h.press("l")
	require.Len(t, h.ticks, 1)

	h.run(h.send(logsTickMsg{gen: h.m.logsGen}))
	assert.Len(t, h.ticks, 2)
	assert.Contains(t, h.m.View(), "line 2 of web")

	// a tick from an earlier panel is dropped
	h.run(h.send(logsTickMsg{gen: h.m.logsGen - 1}))
	assert.Len(t, h.ticks, 2)
}

func TestSettingsSave(t *testing.T) {
	h := newHarness(t)

	h.press("f2")
	require.Equal(t, modeSettings, h.m.currentMode)
	h.press("right", "s")
	assert.Equal(t, modeNormal, h.m.currentMode)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Performance.PollRate)
}
