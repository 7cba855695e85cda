package tui

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/shubh-io/dockboard/internal/engine"
	"github.com/shubh-io/dockboard/internal/store"
	"github.com/sirupsen/logrus"
)

// layout sizing constants
const (
	HEADER_HEIGHT        = 8
	CONTAINER_ROW_HEIGHT = 1
	LOG_PANEL_HEIGHT     = 15
	INFO_PANEL_HEIGHT    = 16
	CHECKBOX_WIDTH       = 4
)

// NewModel builds the dashboard around an engine the caller owns.
func NewModel(eng *engine.Engine, cfg *config.Config) model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return model{
		eng:                  eng,
		cfg:                  cfg,
		startTime:            time.Now(),
		page:                 0,
		maxContainersPerPage: 12,
		logsVisible:          false, // logs hidden by default
		logPanelHeight:       LOG_PANEL_HEIGHT,
		logsView:             newLogsView(80, LOG_PANEL_HEIGHT-2),
		infoVisible:          false,
		infoPanelHeight:      INFO_PANEL_HEIGHT,
		sortBy:               sortByName,
		sortAsc:              true,
		sorted:               false, // server order until a column is picked
		columnMode:           false,
		selectedColumn:       1,
		currentMode:          modeNormal,
		tick:                 tea.Tick,
		helpList:             newHelpList(80, 24),
		settings:             settingsFromConfig(cfg),
	}
}

// called once at startup
// the engine kicks off the first poll, the poll timer and the push listener
func (m model) Init() tea.Cmd {
	return m.eng.Init()
}

// sort rows by current column and direction
func (m *model) sortRows() {
	if !m.sorted {
		return
	}
	less := func(a, b store.Record) bool {
		switch m.sortBy {
		case sortByID:
			return a.ID < b.ID
		case sortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case sortByStatus:
			return a.Status < b.Status
		case sortByPID:
			ai, _ := strconv.Atoi(a.PID)
			bi, _ := strconv.Atoi(b.PID)
			return ai < bi
		case sortByUptime:
			return parseUptime(a.Uptime) < parseUptime(b.Uptime)
		case sortByCPU:
			return parsePercent(a.CPU) < parsePercent(b.CPU)
		case sortByResources:
			return parseResources(a.Resources) < parseResources(b.Resources)
		case sortByLastStarted:
			return a.LastStarted < b.LastStarted
		case sortByLog:
			return a.LatestLog < b.LatestLog
		default:
			return a.ID < b.ID
		}
	}

	sort.SliceStable(m.rows, func(i, j int) bool {
		if m.sortAsc {
			return less(m.rows[i], m.rows[j])
		}
		return less(m.rows[j], m.rows[i])
	})
}

// refreshRows re-reads the engine after every update, keeping the cursor on the same container
func (m *model) refreshRows() {
	current := m.cursorID()
	m.rows = m.eng.Records()
	m.sortRows()

	if current != "" {
		for i, r := range m.rows {
			if r.ID == current {
				m.cursor = i
				break
			}
		}
	}
	m.updatePagination()
}

func (m *model) cursorID() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].ID
}

// notificationLines is the height the notification stack takes right now
func (m *model) notificationLines() int {
	n := len(m.eng.Notifications())
	maxVisible := max(m.eng.MaxVisibleNotifications(), 1)
	if n > maxVisible {
		return maxVisible + 1
	}
	return n
}

// calculateMaxContainers determines how many containers fit on screen given current layout state
func (m *model) calculateMaxContainers() int {
	availableHeight := m.terminalHeight - HEADER_HEIGHT - m.notificationLines()
	if m.logsVisible {
		availableHeight -= m.logPanelHeight
	}
	if m.infoVisible {
		availableHeight -= INFO_PANEL_HEIGHT
	}
	maxContainers := availableHeight / CONTAINER_ROW_HEIGHT
	if maxContainers < 1 {
		return 1
	}
	return maxContainers
}

// updatePagination recalculates page sizing and keeps cursor/page within bounds
func (m *model) updatePagination() {
	m.maxContainersPerPage = m.calculateMaxContainers()

	if len(m.rows) == 0 {
		m.cursor = 0
		m.page = 0
		m.message = "Page 1/1"
		return
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	maxPage := (len(m.rows) - 1) / m.maxContainersPerPage
	if m.page > maxPage {
		m.page = maxPage
	}
	if m.cursor < m.page*m.maxContainersPerPage {
		m.page = m.cursor / m.maxContainersPerPage
	}
	if m.cursor >= (m.page+1)*m.maxContainersPerPage {
		m.page = m.cursor / m.maxContainersPerPage
	}

	// keep persistent page indicator up-to-date
	m.message = fmt.Sprintf("Page %d/%d", m.page+1, maxPage+1)
}

// ============================================================================
// Update (event handler)
// ============================================================================

// handle all incoming events. the engine sees every message first
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.eng.Update(msg)}

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		// terminal resized
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.helpList.SetSize(msg.Width, msg.Height-1)
		m.sizeLogsView(max(msg.Width, 80))

	case engine.LogsMsg:
		// got logs; errors are already a notification
		if msg.Err == nil && m.logsVisible && msg.ID == m.logsContainer {
			m.setLogs(msg.Text)
		}

	case logsTickMsg:
		if m.logsVisible && msg.gen == m.logsGen {
			cmds = append(cmds, m.fetchLogsCmd(m.logsContainer), m.logsTickCmd(m.cfg.PollInterval(), m.logsGen))
		}

	case tea.KeyMsg:
		// keyboard input
		m.statusMessage = ""
		cmds = append(cmds, m.handleKey(msg))
	}

	m.refreshRows()
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// an open confirmation takes every key
	if _, ok := m.eng.ActiveIntent(); ok {
		switch {
		case msg.String() == "ctrl+c":
			return tea.Quit
		case key.Matches(msg, Keys.Confirm):
			m.statusMessage = "Confirmed"
			return m.eng.Confirm()
		case key.Matches(msg, Keys.Reject):
			m.eng.Reject()
			m.statusMessage = "Cancelled"
		}
		return nil
	}

	switch m.currentMode {
	case modeCreate:
		return m.handleCreateKey(msg)
	case modeSettings:
		return m.handleSettingsKey(msg)
	case modeHelp:
		switch {
		case msg.String() == "esc", key.Matches(msg, Keys.Help):
			m.currentMode = modeNormal
			m.statusMessage = "Help closed"
			return nil
		case msg.String() == "q", msg.String() == "ctrl+c":
			return tea.Quit
		}
		var cmd tea.Cmd
		m.helpList, cmd = m.helpList.Update(msg)
		return cmd
	}

	if msg.String() == "esc" {
		switch {
		case m.columnMode:
			m.columnMode = false
			m.currentMode = modeNormal
			m.statusMessage = "Back to normal mode"
		case m.logsVisible:
			m.closeLogs()
			m.statusMessage = "Logs closed"
		case m.infoVisible:
			m.infoVisible = false
			m.infoContainer = ""
			m.currentMode = modeNormal
			m.statusMessage = "Info panel closed"
		default:
			m.eng.DismissLatestNotification()
		}
		return nil
	}

	// column mode: pick a column, enter sorts by it
	if m.columnMode {
		switch msg.String() {
		case "left", "h":
			if m.selectedColumn > 0 {
				m.selectedColumn--
			}
			return nil
		case "right":
			if m.selectedColumn < len(columnNames)-1 {
				m.selectedColumn++
			}
			return nil
		case "enter":
			col := sortColumn(m.selectedColumn)
			if m.sorted && m.sortBy == col {
				m.sortAsc = !m.sortAsc
			} else {
				m.sortBy = col
				m.sortAsc = true
			}
			m.sorted = true
			dir := "asc"
			if !m.sortAsc {
				dir = "desc"
			}
			m.statusMessage = fmt.Sprintf("Sorted by %s (%s)", columnNames[m.selectedColumn], dir)
			return nil
		}
	}

	// the logs panel scrolls with the arrows
	if m.logsVisible {
		switch msg.String() {
		case "up", "down", "k", "j", "pgup", "pgdown":
			var cmd tea.Cmd
			m.logsView, cmd = m.logsView.Update(msg)
			return cmd
		}
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return tea.Quit

	case key.Matches(msg, Keys.DebugDump):
		logrus.WithFields(logrus.Fields{
			"width":     m.terminalWidth,
			"height":    m.terminalHeight,
			"page":      m.page,
			"cursor":    m.cursor,
			"perPage":   m.maxContainersPerPage,
			"rows":      len(m.rows),
			"selected":  m.eng.SelectionLen(),
			"pending":   m.eng.PendingCount(),
			"push":      m.eng.PushConnected(),
			"lastPoll":  m.eng.LastPollAt(),
			"pollError": m.eng.LastPollError(),
		}).Debug("state snapshot")
		m.statusMessage = "Dumped debug snapshot"

	case key.Matches(msg, Keys.ColumnMode):
		// toggle column/row mode
		m.columnMode = !m.columnMode
		if m.columnMode {
			m.currentMode = modeColumnSelect
			m.statusMessage = "Column mode: Use ← → to navigate, Enter to sort"
		} else {
			m.currentMode = modeNormal
			m.statusMessage = "Row mode: Use ↑ ↓ and ← → to navigate containers"
		}

	case key.Matches(msg, Keys.Help):
		m.currentMode = modeHelp
		m.statusMessage = "Help: Keyboard shortcuts"

	case key.Matches(msg, Keys.Settings):
		m.settings = settingsFromConfig(m.cfg)
		m.settingsSelected = 0
		m.currentMode = modeSettings
		m.statusMessage = "Settings"

	case key.Matches(msg, Keys.Up):
		if !m.columnMode && m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, Keys.Down):
		if !m.columnMode && m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, Keys.PageUp):
		if m.page > 0 {
			m.page--
			m.cursor = m.page * m.maxContainersPerPage
		}

	case key.Matches(msg, Keys.PageDown):
		maxPage := 0
		if m.maxContainersPerPage > 0 && len(m.rows) > 0 {
			maxPage = (len(m.rows) - 1) / m.maxContainersPerPage
		}
		if m.page < maxPage {
			m.page++
			m.cursor = min(m.page*m.maxContainersPerPage, len(m.rows)-1)
		}

	case key.Matches(msg, Keys.Toggle):
		if id := m.cursorID(); id != "" {
			m.eng.Toggle(id)
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		}

	case key.Matches(msg, Keys.SelectAll):
		m.eng.SelectAll()
		m.statusMessage = fmt.Sprintf("Selected %d containers", m.eng.SelectionLen())

	case key.Matches(msg, Keys.ClearSel):
		m.eng.ClearSelection()
		m.statusMessage = "Selection cleared"

	case key.Matches(msg, Keys.Start):
		return m.requestAction(store.ActionStart)
	case key.Matches(msg, Keys.Stop):
		return m.requestAction(store.ActionStop)
	case key.Matches(msg, Keys.Pause):
		return m.requestAction(store.ActionPause)
	case key.Matches(msg, Keys.Resume):
		return m.requestAction(store.ActionResume)
	case key.Matches(msg, Keys.Restart):
		return m.requestAction(store.ActionRestart)
	case key.Matches(msg, Keys.Remove):
		return m.requestAction(store.ActionDelete)

	case key.Matches(msg, Keys.Refresh):
		// Manually refresh container list
		m.statusMessage = "Refreshing..."
		return m.eng.Refresh()

	case key.Matches(msg, Keys.Create):
		m.form = newCreateForm()
		m.currentMode = modeCreate
		return textinput.Blink

	case key.Matches(msg, Keys.Rootfs):
		if id := m.cursorID(); id != "" {
			m.statusMessage = "Opening rootfs..."
			return m.eng.OpenRootfs(id)
		}

	case key.Matches(msg, Keys.Dismiss):
		m.eng.DismissLatestNotification()

	case key.Matches(msg, Keys.Logs):
		if m.infoVisible {
			return nil
		}
		if m.logsVisible {
			m.closeLogs()
			m.statusMessage = "Logs closed"
			return nil
		}
		id := m.cursorID()
		if id == "" {
			return nil
		}
		m.logsVisible = true
		m.logsContainer = id
		m.logsName = m.rows[m.cursor].Name
		m.logsGen++
		m.logsView.SetContent("  Fetching logs...")
		m.currentMode = modeLogs
		m.statusMessage = "Fetching logs..."
		return tea.Batch(m.fetchLogsCmd(id), m.logsTickCmd(m.cfg.PollInterval(), m.logsGen))

	case key.Matches(msg, Keys.Info):
		// Toggle info panel for the container under the cursor
		if m.logsVisible {
			return nil
		}
		if m.infoVisible {
			m.infoVisible = false
			m.infoContainer = ""
			m.currentMode = modeNormal
			m.statusMessage = "Info panel closed"
			return nil
		}
		if id := m.cursorID(); id != "" {
			m.infoVisible = true
			m.infoContainer = id
			m.currentMode = modeInfo
			m.statusMessage = "Showing container info"
		}
	}
	return nil
}

func (m *model) requestAction(kind store.ActionKind) tea.Cmd {
	n := m.eng.SelectionLen()
	cmd := m.eng.RequestAction(kind)
	if n > 0 && m.eng.ActionEnabled(kind) && !m.eng.IsDestructive(kind) {
		m.statusMessage = fmt.Sprintf("Sending %s to %d container(s)...", kind, n)
	}
	return cmd
}

func (m *model) closeLogs() {
	m.logsVisible = false
	m.logsContainer = ""
	m.logsName = ""
	m.currentMode = modeNormal
}

func (m *model) handleCreateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.currentMode = modeNormal
		m.statusMessage = "Create cancelled"
		return nil
	case "tab", "down":
		m.form.move(1)
		return nil
	case "shift+tab", "up":
		m.form.move(-1)
		return nil
	case "enter":
		spec, err := m.form.spec()
		if err != nil {
			m.form.err = err.Error()
			return nil
		}
		m.currentMode = modeNormal
		m.statusMessage = fmt.Sprintf("Creating %s...", spec.Name)
		return m.eng.Create(spec)
	case "ctrl+c":
		return tea.Quit
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	m.form.err = ""
	return cmd
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.settingsSelected > 0 {
			m.settingsSelected--
		}
	case "down", "j":
		if m.settingsSelected < settingsRows-1 {
			m.settingsSelected++
		}
	case "left", "h", "-":
		m.settings.adjust(m.settingsSelected, -1)
	case "right", "l", "+":
		m.settings.adjust(m.settingsSelected, 1)
	case "s", "S":
		// save settings to yaml
		cfg := m.settings.apply(m.cfg)
		if err := cfg.Save(); err != nil {
			m.statusMessage = fmt.Sprintf("Failed to save config: %v", err)
			return nil
		}
		logrus.Info("settings saved")
		m.currentMode = modeNormal
		m.statusMessage = "Settings saved! Restart dockboard to apply them."
	case "esc", "f2":
		m.currentMode = modeNormal
		m.statusMessage = "Settings closed"
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

// ============================================================================
// View (render UI)
// ============================================================================

// render everything
func (m model) View() string {
	if m.terminalWidth == 0 {
		return "Initializing..."
	}

	// Ensure minimum width
	width := m.terminalWidth
	if width < 80 {
		width = 80
	}

	if _, ok := m.eng.ActiveIntent(); ok {
		return m.renderDialog(width, m.terminalHeight)
	}

	switch m.currentMode {
	case modeSettings:
		return m.renderSettings(width)
	case modeHelp:
		return m.renderHelp(width)
	case modeCreate:
		return m.renderCreateForm(width)
	}

	var b strings.Builder

	// title bar
	b.WriteString(m.renderTitleBar(width))
	b.WriteString("\n")

	running := 0
	for _, c := range m.rows {
		if c.Status == store.StatusRunning {
			running++
		}
	}
	total := len(m.rows)
	uptime := time.Since(m.startTime).Round(time.Second)

	b.WriteString(m.renderStatsSection(running, total-running, total, uptime, width))
	b.WriteString("\n")

	widths := columnWidths(width)
	b.WriteString(m.renderHeader(widths, width))
	b.WriteString("\n")

	// container list (paginated)
	rowsToShow := m.maxContainersPerPage
	if rowsToShow < 1 {
		rowsToShow = 1
	}

	rowsRendered := 0
	pageStart := m.page * rowsToShow
	if pageStart > len(m.rows) {
		pageStart = 0
	}
	pageEnd := min(pageStart+rowsToShow, len(m.rows))

	for i := pageStart; i < pageEnd; i++ {
		b.WriteString(m.renderContainerRow(m.rows[i], i == m.cursor, widths, width))
		b.WriteString("\n")
		rowsRendered++
	}

	// If no rows were rendered, say why
	if rowsRendered == 0 {
		text := "No containers to display"
		if !m.eng.Loaded() {
			text = "Waiting for the server..."
		}
		pad := max((width-visibleLen(text))/2, 0)
		b.WriteString(messageStyle.Render(padRight(strings.Repeat(" ", pad)+text, width)))
		b.WriteString("\n")
		rowsRendered++
	}

	// fill empty space
	emptyRow := normalStyle.Render(strings.Repeat(" ", width))
	for i := rowsRendered; i < rowsToShow; i++ {
		b.WriteString(emptyRow)
		b.WriteString("\n")
	}

	if m.logsVisible && !m.infoVisible {
		b.WriteString(m.renderLogsPanel(width))
	}
	if m.infoVisible && !m.logsVisible {
		b.WriteString(m.renderInfoPanel(width))
	}

	notes, _ := m.renderNotifications(width)
	b.WriteString(notes)

	pageLine := m.message
	if sel := m.eng.SelectionLen(); sel > 0 {
		pageLine += fmt.Sprintf("  •  %d selected", sel)
	}
	b.WriteString(messageStyle.Render(padRight(pageLine, width)))
	b.WriteString("\n")

	if m.statusMessage != "" {
		b.WriteString(messageStyle.Render(padRight(m.statusMessage, width)))
		b.WriteString("\n")
	}

	b.WriteString(normalStyle.Render(strings.Repeat(" ", width)))
	b.WriteString("\n")

	// footer (keybinds)
	b.WriteString(m.renderFooter(width))

	return b.String()
}

// ============================================================================
// Rendering helpers
// ============================================================================

// render centered title bar
func (m model) renderTitleBar(width int) string {
	appName := appNameStyle.Render("┌─ DockBoard 🐳 ─┐")

	// center it
	padding := max((width-visibleLen(appName))/2, 0)
	return padRight(strings.Repeat(" ", padding)+appName, width)
}

func (m model) renderStatsSection(running, stopped, total int, uptime time.Duration, width int) string {
	var b strings.Builder

	// calculate bar widths
	halfWidth := (width - 6) / 2
	barWidth := max(halfWidth-16, 10)

	runPct := 0.0
	if total > 0 {
		runPct = float64(running) / float64(total)
	}
	runBar := renderBar(runPct, barWidth, meterGreen, textMuted)
	runningLine := fmt.Sprintf(" %s%s%s%s %s",
		meterLabelStyle.Render("Running "),
		meterBracketStyle.Render("["),
		runBar,
		meterBracketStyle.Render("]"),
		infoValueStyle.Render(fmt.Sprintf("%d/%d", running, total)))

	push := "offline"
	if m.eng.PushConnected() {
		push = "live"
	}
	infoLine := fmt.Sprintf("%s %s  %s %s  %s %s %s %s",
		infoLabelStyle.Render("Server:"),
		infoValueStyle.Render(serverHost(m.cfg.Server.URL)),
		infoLabelStyle.Render("Session:"),
		infoValueStyle.Render(formatDuration(uptime)),
		infoLabelStyle.Render("Refresh:"),
		infoValueStyle.Render(fmt.Sprintf("%ds", m.cfg.Performance.PollRate)),
		infoLabelStyle.Render("Push:"),
		infoValueStyle.Render(push))

	middlePad := max(width-visibleLen(runningLine)-visibleLen(infoLine)-2, 2)

	b.WriteString(runningLine)
	b.WriteString(strings.Repeat(" ", middlePad))
	b.WriteString(infoLine)
	b.WriteString("\n")

	// line 2: stopped bar + connection state
	stopPct := 0.0
	if total > 0 {
		stopPct = float64(stopped) / float64(total)
	}
	stopBar := renderBar(stopPct, barWidth, meterRed, textMuted)
	stoppedLine := fmt.Sprintf(" %s%s%s%s %s",
		meterLabelStyle.Render("Stopped "),
		meterBracketStyle.Render("["),
		stopBar,
		meterBracketStyle.Render("]"),
		infoValueStyle.Render(fmt.Sprintf("%d/%d", stopped, total)))

	b.WriteString(stoppedLine)

	var state string
	switch {
	case m.eng.LastPollError() != nil:
		state = errorStyle.Render("✘ Server unreachable, showing last known state")
	case !m.eng.Loaded():
		state = messageStyle.Render("⟳ Loading...")
	case m.eng.PendingCount() > 0:
		state = messageStyle.Render(fmt.Sprintf("⟳ %d action(s) in flight", m.eng.PendingCount()))
	}
	if state != "" {
		if pad := width - visibleLen(stoppedLine) - visibleLen(state) - 1; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(state)
		}
	}

	return b.String()
}

func serverHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

func renderBar(pct float64, width int, fgColor, bgColor lipgloss.Color) string {
	// clamp percentage
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	// Calculate filled and empty counts
	filled := int(pct * float64(width))
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(fgColor).Bold(true)
	emptyStyle := lipgloss.NewStyle().Foreground(bgColor)

	bar := ""
	if filled > 0 {
		bar += filledStyle.Render(strings.Repeat("█", filled))
	}
	if empty > 0 {
		bar += emptyStyle.Render(strings.Repeat("░", empty))
	}

	return bar
}

// columnWidths allocates widths by percent, respecting minimums
func columnWidths(width int) []int {
	mins := []int{14, 14, 10, 8, 10, 8, 12, 14, 16}
	percents := []int{10, 12, 10, 6, 8, 6, 11, 13, 24}

	// checkbox plus one separator per column boundary
	usableWidth := width - CHECKBOX_WIDTH - len(mins)

	widths := make([]int, len(mins))
	allocated := 0
	for i := range mins {
		widths[i] = max(mins[i], (usableWidth*percents[i])/100)
		allocated += widths[i]
	}

	// hand leftover space to the log column
	if allocated < usableWidth {
		widths[len(widths)-1] += usableWidth - allocated
	}
	return widths
}

func (m model) renderHeader(widths []int, width int) string {
	sortIndicator := func(col sortColumn) string {
		if m.sorted && m.sortBy == col {
			if m.sortAsc {
				return " ▲"
			}
			return " ▼"
		}
		return ""
	}

	// highlight selected column in column mode
	highlightStyle := lipgloss.NewStyle().Background(lipgloss.Color("#58cdffff")).Foreground(lipgloss.Color("#000000")).Bold(true)

	sepStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(meterGreen)
	sep := sepStyle.Render("│")

	var hdr strings.Builder
	hdr.WriteString(headerStyle.Render(padRight(" SEL", CHECKBOX_WIDTH)))
	for i, title := range columnNames {
		hdr.WriteString(sep)
		cell := " " + padRight(title+sortIndicator(sortColumn(i)), widths[i]-1)
		if m.columnMode && m.selectedColumn == i {
			hdr.WriteString(highlightStyle.Render(cell))
		} else {
			hdr.WriteString(headerStyle.Render(cell))
		}
	}

	out := hdr.String()
	// pad header to fill width
	if visibleLen(out) < width {
		out += headerStyle.Render(strings.Repeat(" ", width-visibleLen(out)))
	}
	return out
}

// render one container row
// applies styles based on cursor, pending actions and state
func (m model) renderContainerRow(c store.Record, atCursor bool, widths []int, totalWidth int) string {
	check := " [ ]"
	if m.eng.Selected(c.ID) {
		check = " [✓]"
	}

	status := c.Status.String()
	pending := m.eng.Pending(c.ID)
	if len(pending) > 0 {
		status += " ⟳" + string(pending[0])
	}

	placeholder := func(s string) string {
		if s == "" {
			return "─"
		}
		return s
	}
	cells := []string{
		c.ID,
		c.Name,
		status,
		placeholder(c.PID),
		placeholder(c.Uptime),
		placeholder(c.CPU),
		placeholder(c.Resources),
		placeholder(c.LastStarted),
		placeholder(c.LatestLog),
	}

	var row strings.Builder
	row.WriteString(check)
	for i, cell := range cells {
		row.WriteString("│ ")
		row.WriteString(padRight(truncateToWidth(cell, widths[i]-2), widths[i]-1))
	}

	// Pad row to totalWidth BEFORE styling to ensure color extends to edge
	line := padRight(row.String(), totalWidth)

	// Apply style based on cursor and state
	if atCursor {
		return selectedStyle.Render(line)
	}
	if len(pending) > 0 {
		return pendingStyle.Render(line)
	}

	switch c.Status {
	case store.StatusRunning:
		return runningStyle.Render(line)
	case store.StatusPaused, store.StatusStarting:
		return pausedStyle.Render(line)
	case store.StatusStopped, store.StatusError:
		return stoppedStyle.Render(line)
	default:
		return normalStyle.Render(line)
	}
}

func visibleLen(s string) int {
	return lipgloss.Width(s)
}

func truncateToWidth(s string, width int) string {
	if width < 1 {
		return ""
	}
	if visibleLen(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func padRight(s string, width int) string {
	if visibleLen(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen(s))
}

func (m model) renderFooter(width int) string {
	var keys []struct {
		key  string
		desc string
	}

	// Show different shortcuts based on current mode
	switch m.currentMode {
	case modeColumnSelect:
		keys = []struct {
			key  string
			desc string
		}{
			{"←→", "Select Col"},
			{"Enter", "Sort"},
			{"Esc", "Back"},
		}
	case modeLogs:
		keys = []struct {
			key  string
			desc string
		}{
			{"l", "Close Logs"},
			{"↑↓", "Scroll"},
			{"Esc", "Back"},
		}
	case modeInfo:
		keys = []struct {
			key  string
			desc string
		}{
			{"i", "Close info"},
			{"o", "Open rootfs"},
			{"Esc", "Back"},
		}
	default: // modeNormal
		keys = []struct {
			key  string
			desc string
		}{
			{"↑↓", "Nav"},
			{"Space", "Select"},
			{"s/x/p/u/r", "Start/Stop/Pause/Resume/Restart"},
			{"d", "Delete"},
			{"n", "New"},
			{"?", "Keyboard shortcuts"},
			{"q", "Quit"},
		}
	}

	var footer strings.Builder
	footer.WriteString(" ")

	// build key action format
	for i, k := range keys {
		footer.WriteString(meterBracketStyle.Render("["))
		footer.WriteString(footerKeyStyle.Render(k.key))
		footer.WriteString(meterBracketStyle.Render("]"))
		footer.WriteString(footerArrowStyle.Render("→"))
		footer.WriteString(footerDescStyle.Render(k.desc))
		if i < len(keys)-1 {
			footer.WriteString("  ")
		}
	}

	return padRight(footer.String(), width)
}

// format duration like HH:MM:SS
func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
