package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/teamtask/teamtask/internal/model"
	"github.com/teamtask/teamtask/internal/view"
)

// Form focus positions, in tab order.
const (
	focusTitle = iota
	focusDescription
	focusDue
	focusPriority
	focusAssignees
	focusCount
)

// priorities is the cycle order for the priority field
var priorities = []model.TaskPriority{
	model.PriorityHigh,
	model.PriorityMedium,
	model.PriorityLow,
}

// createForm holds the new-task form state
type createForm struct {
	title       textinput.Model
	description textinput.Model
	due         textinput.Model
	focus       int
	priorityIdx int
	userCursor  int
	picked      map[string]bool
	submitting  bool
}

func newCreateForm() createForm {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 120
	title.Focus()

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 500

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	return createForm{
		title:       title,
		description: description,
		due:         due,
		priorityIdx: 1, // MEDIUM
		picked:      make(map[string]bool),
	}
}

func (f *createForm) priority() model.TaskPriority {
	return priorities[f.priorityIdx]
}

func (f *createForm) assignees() []string {
	var ids []string
	for id, on := range f.picked {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}

// setFocus moves field focus and toggles the text inputs accordingly.
func (f *createForm) setFocus(focus int) {
	f.focus = (focus + focusCount) % focusCount
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
	switch f.focus {
	case focusTitle:
		f.title.Focus()
	case focusDescription:
		f.description.Focus()
	case focusDue:
		f.due.Focus()
	}
}

// updateCreate handles key input while the new-task form is showing.
func (m Model) updateCreate(msg tea.KeyMsg) (Model, tea.Cmd) {
	f := &m.form

	switch msg.String() {
	case "esc":
		m.state = viewList
		return m, nil

	case "tab", "down":
		if f.focus == focusAssignees && msg.String() == "down" {
			if f.userCursor < len(m.assignableUsers())-1 {
				f.userCursor++
			}
			return m, nil
		}
		f.setFocus(f.focus + 1)
		return m, nil

	case "shift+tab", "up":
		if f.focus == focusAssignees && msg.String() == "up" {
			if f.userCursor > 0 {
				f.userCursor--
			}
			return m, nil
		}
		f.setFocus(f.focus - 1)
		return m, nil

	case "left":
		if f.focus == focusPriority {
			f.priorityIdx = (f.priorityIdx + len(priorities) - 1) % len(priorities)
			return m, nil
		}

	case "right":
		if f.focus == focusPriority {
			f.priorityIdx = (f.priorityIdx + 1) % len(priorities)
			return m, nil
		}

	case " ":
		if f.focus == focusAssignees {
			users := m.assignableUsers()
			if f.userCursor < len(users) {
				id := users[f.userCursor].ID
				f.picked[id] = !f.picked[id]
			}
			return m, nil
		}

	case "enter":
		if f.focus == focusAssignees {
			if f.submitting {
				return m, nil
			}
			f.submitting = true
			return m, m.submitCreateCmd()
		}
		f.setFocus(f.focus + 1)
		return m, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
	case focusDue:
		f.due, cmd = f.due.Update(msg)
	}
	return m, cmd
}

// assignableUsers filters the fetched users down to valid assignees.
func (m Model) assignableUsers() []model.User {
	return view.Assignable(m.users, m.user)
}

func (m Model) submitCreateCmd() tea.Cmd {
	tr := m.tracker
	f := m.form
	return func() tea.Msg {
		task, err := tr.Create(context.Background(),
			f.title.Value(), f.description.Value(), f.assignees(), f.due.Value(), f.priority())
		return createdMsg{task: task, err: err}
	}
}
