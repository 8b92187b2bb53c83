package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/teamtask/teamtask/internal/auth"
	"github.com/teamtask/teamtask/internal/config"
	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
	"github.com/teamtask/teamtask/internal/store"
	tasksync "github.com/teamtask/teamtask/internal/sync"
	"github.com/teamtask/teamtask/internal/tracker"
	"github.com/teamtask/teamtask/internal/view"
)

// viewState selects which screen the TUI is showing
type viewState int

const (
	viewList viewState = iota
	viewCreate
	viewAdmin
)

// statusFilters is the cycle order for the status filter key
var statusFilters = []string{
	view.StatusAll,
	model.StatusAssigned.String(),
	model.StatusReceived.String(),
	model.StatusInProgress.String(),
	model.StatusDone.String(),
}

// Model holds the TUI application state
type Model struct {
	user    *model.User
	tracker *tracker.Tracker
	syn     *tasksync.Synchronizer
	client  *store.Client
	admin   *auth.Admin
	cfg     *config.Config
	log     *logging.Logger

	state        viewState
	mode         view.Mode
	statusIdx    int
	search       textinput.Model
	searching    bool
	cursor       int
	tasks        []model.Task
	users        []model.User
	adminCursor  int
	form         createForm
	width        int
	height       int
	flash        string
	errorMessage string
	quitting     bool
}

// NewModel creates a new TUI model for the authenticated user.
func NewModel(user *model.User, tr *tracker.Tracker, syn *tasksync.Synchronizer, client *store.Client, cfg *config.Config, log *logging.Logger) Model {
	search := textinput.New()
	search.Placeholder = "search title, creator, description"
	search.CharLimit = 80

	if log == nil {
		log = logging.NopLogger()
	}

	return Model{
		user:    user,
		tracker: tr,
		syn:     syn,
		client:  client,
		admin:   auth.NewAdmin(client, user, log),
		cfg:     cfg,
		log:     log.WithComponent("tui"),
		mode:    view.ModeInbox,
		search:  search,
		tasks:   syn.Snapshot(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// visible returns the tasks for the current box, search query and status
// filter, newest first.
func (m Model) visible() []model.Task {
	set := view.ViewSet(m.tasks, m.user, m.mode)
	return view.Filter(set, m.search.Value(), statusFilters[m.statusIdx])
}

// selected returns the task under the cursor, if any.
func (m Model) selected() (model.Task, bool) {
	vis := m.visible()
	if len(vis) == 0 || m.cursor >= len(vis) {
		return model.Task{}, false
	}
	return vis[m.cursor], true
}

// clampCursor keeps the cursor inside the visible list after it changes.
func (m *Model) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// pendingBadge is the count of unfinished inbox tasks shown on the tab.
func (m Model) pendingBadge() int {
	return view.PendingCount(m.tasks, m.user)
}

// markSelectedRead returns a command recording a read receipt for the
// inbox task under the cursor. The tracker keeps it idempotent.
func (m Model) markSelectedRead() tea.Cmd {
	if m.mode != view.ModeInbox {
		return nil
	}
	task, ok := m.selected()
	if !ok {
		return nil
	}
	return m.markReadCmd(task.ID)
}

func (m Model) markReadCmd(taskID string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		err := tr.MarkRead(context.Background(), taskID)
		return markedReadMsg{taskID: taskID, err: err}
	}
}

func (m Model) advanceCmd(taskID string) tea.Cmd {
	tr := m.tracker
	return func() tea.Msg {
		status, err := tr.Advance(context.Background(), taskID)
		return advancedMsg{taskID: taskID, status: status, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	syn := m.syn
	return func() tea.Msg {
		if err := syn.Refresh(context.Background()); err != nil {
			return errMsg{err: err}
		}
		return snapshotMsg{tasks: syn.Snapshot(), source: "refresh"}
	}
}

func (m Model) loadUsersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.Users(context.Background())
		return usersMsg{users: users, err: err}
	}
}

func (m Model) decideCmd(userID string, approve bool) tea.Cmd {
	admin := m.admin
	return func() tea.Msg {
		var err error
		if approve {
			err = admin.Approve(context.Background(), userID)
		} else {
			err = admin.Reject(context.Background(), userID)
		}
		return decidedMsg{userID: userID, err: err}
	}
}
