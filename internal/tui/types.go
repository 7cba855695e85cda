package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/shubh-io/dockboard/internal/config"
	"github.com/shubh-io/dockboard/internal/engine"
	"github.com/shubh-io/dockboard/internal/store"
)

type model struct {
	eng                  *engine.Engine // owns store, selection, actions, notifications
	cfg                  *config.Config // loaded config
	rows                 []store.Record // records in display order
	cursor               int            // row under the cursor
	page                 int            // current page
	maxContainersPerPage int            // containers per page (dynamic)
	terminalWidth        int            // terminal width
	terminalHeight       int            // terminal height
	message              string         // page indicator (persistent)
	statusMessage        string         // transient status message
	startTime            time.Time      // when app started
	logsVisible          bool           // logs panel visible?
	logPanelHeight       int            // height of logs panel
	logsContainer        string         // container id for logs
	logsName             string         // container name for the title
	logsView             viewport.Model // scrollable log text
	logsGen              int            // bumped every time the logs panel opens
	infoVisible          bool           // info panel visible?
	infoPanelHeight      int            // height of info panel
	infoContainer        string         // container id for info display
	sortBy               sortColumn     // which column to sort by
	sortAsc              bool           // sort direction
	sorted               bool           // false keeps server order
	columnMode           bool           // column nav mode (vs row nav)
	selectedColumn       int            // selected column (0-8)
	currentMode          appMode        // current UI mode
	helpList             list.Model     // keyboard shortcuts
	form                 createForm     // new container form

	// logs panel timer, tea.Tick outside tests
	tick engine.TickFunc

	// settings
	settings         Settings
	settingsSelected int
}

// app settings, edited on the settings screen and written back to the config file
type Settings struct {
	PollRate       int
	NudgeInterval  int
	DisplaySeconds int
	MaxVisible     int
	ConfirmStop    bool
	ConfirmRestart bool
}

// which column to sort by
type sortColumn int

const (
	sortByID sortColumn = iota
	sortByName
	sortByStatus
	sortByPID
	sortByUptime
	sortByCPU
	sortByResources
	sortByLastStarted
	sortByLog
)

var columnNames = []string{"ID", "NAME", "STATUS", "PID", "UPTIME", "CPU", "RESOURCES", "LAST STARTED", "LATEST LOG"}

// which mode the TUI is in
type appMode int

const (
	modeNormal appMode = iota
	modeColumnSelect
	modeLogs
	modeInfo
	modeSettings
	modeCreate
	modeHelp
)

// re-fetch logs while the panel is open. gen drops ticks of a panel that was closed
type logsTickMsg struct {
	gen int
}
