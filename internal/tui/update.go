package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teamtask/teamtask/internal/view"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		m.tasks = msg.tasks
		m.clampCursor()
		// A fresh snapshot may put a new unread task under the cursor.
		return m, m.markSelectedRead()

	case assignedMsg:
		if msg.count == 1 {
			m.flash = fmt.Sprintf("New task assigned: %s", msg.first.Title)
		} else {
			m.flash = fmt.Sprintf("%d new tasks assigned, first: %s", msg.count, msg.first.Title)
		}
		return m, nil

	case syncErrMsg:
		m.errorMessage = fmt.Sprintf("sync failed: %v", msg.err)
		return m, nil

	case errMsg:
		m.errorMessage = msg.err.Error()
		return m, nil

	case createdMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.state = viewList
		m.mode = view.ModeOutbox
		m.errorMessage = ""
		m.flash = fmt.Sprintf("Created: %s", msg.task.Title)
		m.tasks = m.syn.Snapshot()
		return m, nil

	case advancedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
		}
		// The cache was updated optimistically even on a failed persist.
		m.tasks = m.syn.Snapshot()
		return m, nil

	case markedReadMsg:
		if msg.err == nil {
			m.tasks = m.syn.Snapshot()
		}
		return m, nil

	case usersMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("loading users: %v", msg.err)
			return m, nil
		}
		m.users = msg.users
		return m, nil

	case decidedMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.flash = fmt.Sprintf("Decision recorded for %s", msg.userID)
		// Reload so the pending list reflects the decision.
		return m, m.loadUsersCmd()

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever screen is showing
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case viewCreate:
		return m.updateCreate(msg)
	case viewAdmin:
		return m.updateAdmin(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the search box is focused, most keys type into it.
	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.clampCursor()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			m.clampCursor()
			return m, m.markSelectedRead()
		default:
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.cursor = 0
			return m, cmd
		}
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		if m.mode == view.ModeInbox {
			m.mode = view.ModeOutbox
		} else {
			m.mode = view.ModeInbox
		}
		m.cursor = 0
		m.flash = ""
		return m, m.markSelectedRead()

	case "/":
		m.searching = true
		m.search.Focus()
		return m, nil

	case "f":
		m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
		m.clampCursor()
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.markSelectedRead()

	case "down", "j":
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, m.markSelectedRead()

	case "enter", " ":
		if m.mode != view.ModeInbox {
			return m, nil
		}
		task, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.errorMessage = ""
		return m, m.advanceCmd(task.ID)

	case "n":
		m.state = viewCreate
		m.form = newCreateForm()
		m.errorMessage = ""
		return m, m.loadUsersCmd()

	case "A":
		if !m.user.IsAdmin() {
			return m, nil
		}
		m.state = viewAdmin
		m.adminCursor = 0
		m.errorMessage = ""
		return m, m.loadUsersCmd()

	case "r":
		m.flash = ""
		return m, m.refreshCmd()
	}

	return m, nil
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := view.PendingUsers(m.users)

	switch msg.String() {
	case "esc", "q":
		m.state = viewList
		return m, nil

	case "up", "k":
		if m.adminCursor > 0 {
			m.adminCursor--
		}
		return m, nil

	case "down", "j":
		if m.adminCursor < len(pending)-1 {
			m.adminCursor++
		}
		return m, nil

	case "a":
		if m.adminCursor < len(pending) {
			return m, m.decideCmd(pending[m.adminCursor].ID, true)
		}

	case "x":
		if m.adminCursor < len(pending) {
			return m, m.decideCmd(pending[m.adminCursor].ID, false)
		}
	}

	return m, nil
}
