package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/teamtask/teamtask/internal/model"
	"github.com/teamtask/teamtask/internal/tui/styles"
	"github.com/teamtask/teamtask/internal/util"
	"github.com/teamtask/teamtask/internal/view"
)

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case viewCreate:
		return m.renderCreate()
	case viewAdmin:
		return m.renderAdmin()
	}
	return m.renderList()
}

func (m Model) renderList() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("teamtask"))
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("  %s <%s>", m.user.Name, m.user.Email)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	vis := m.visible()
	if m.mode == view.ModeInbox {
		b.WriteString(m.renderStats())
	}

	if m.searching || m.search.Value() != "" {
		b.WriteString("/" + m.search.View() + "\n")
	}
	if filter := statusFilters[m.statusIdx]; filter != view.StatusAll {
		b.WriteString(styles.Muted.Render("filter: "+filter) + "\n")
	}

	if m.errorMessage != "" {
		b.WriteString(styles.ErrorBanner.Render(m.errorMessage) + "\n")
	}
	if m.flash != "" {
		b.WriteString(styles.Flash.Render(m.flash) + "\n")
	}

	if len(vis) == 0 {
		b.WriteString(styles.Muted.Render("\nNothing here.\n"))
	}
	for i, t := range vis {
		b.WriteString(m.renderCard(t, i == m.cursor))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp([][2]string{
		{"tab", "inbox/outbox"}, {"j/k", "move"}, {"enter", "advance"},
		{"/", "search"}, {"f", "filter"}, {"n", "new"}, {"r", "refresh"}, {"q", "quit"},
	}))
	return b.String()
}

func (m Model) renderTabs() string {
	inbox := "Inbox"
	if n := m.pendingBadge(); n > 0 {
		inbox = fmt.Sprintf("Inbox %s", styles.TabBadge.Render(fmt.Sprintf("(%d)", n)))
	}
	outbox := "Outbox"

	if m.mode == view.ModeInbox {
		return styles.TabActive.Render(inbox) + styles.TabInactive.Render(outbox)
	}
	return styles.TabInactive.Render(inbox) + styles.TabActive.Render(outbox)
}

func (m Model) renderStats() string {
	stats := view.ComputeStats(view.ViewSet(m.tasks, m.user, view.ModeInbox))
	return styles.StatsBar.Render(fmt.Sprintf(
		"total %d · pending %d · in progress %d · done %d · %d%% complete",
		stats.Total, stats.Pending, stats.InProgress, stats.Done, stats.CompletionRate,
	)) + "\n"
}

func (m Model) renderCard(t model.Task, selected bool) string {
	style := styles.Card
	if selected {
		style = styles.CardSelected
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	var lines []string
	title := styles.Text.Bold(true).Render(t.Title)
	lines = append(lines, util.TruncateANSI(title, width-24)+"  "+statusBadge(t.Status)+priorityLabel(t.Priority))

	due := "due " + t.DueDate
	if t.Overdue(time.Now()) {
		due = styles.Overdue.Render(due + " · overdue")
	} else {
		due = styles.Muted.Render(due)
	}
	meta := due
	if m.mode == view.ModeInbox {
		meta += styles.Muted.Render(" · from " + t.CreatedByName)
	} else {
		meta += styles.Muted.Render(fmt.Sprintf(" · %d assignee(s)", len(t.AssignedTo)))
		if t.SeenByAnyAssignee() {
			meta += "  " + styles.ReadReceipt.Render("✓ seen")
		}
	}
	lines = append(lines, meta)

	if m.cfg != nil && m.cfg.TUI.ShowDescriptions && t.Description != "" {
		lines = append(lines, styles.Muted.Render(util.TruncateString(t.Description, width-8)))
	}

	return style.Render(strings.Join(lines, "\n"))
}

func statusBadge(s model.TaskStatus) string {
	color := styles.StatusAssigned
	switch s {
	case model.StatusReceived:
		color = styles.StatusReceived
	case model.StatusInProgress:
		color = styles.StatusInProgress
	case model.StatusDone:
		color = styles.StatusDone
	}
	return styles.StatusBadge.Foreground(color).Render(s.String())
}

func priorityLabel(p model.TaskPriority) string {
	color := styles.PriorityMedium
	switch p {
	case model.PriorityHigh:
		color = styles.PriorityHigh
	case model.PriorityLow:
		color = styles.PriorityLow
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(p))
}

func (m Model) renderCreate() string {
	var b strings.Builder
	f := m.form

	b.WriteString(styles.Title.Render("New task") + "\n")

	b.WriteString(fieldLabel("Title", f.focus == focusTitle) + f.title.View() + "\n")
	b.WriteString(fieldLabel("Description", f.focus == focusDescription) + f.description.View() + "\n")
	b.WriteString(fieldLabel("Due", f.focus == focusDue) + f.due.View() + "\n")
	b.WriteString(fieldLabel("Priority", f.focus == focusPriority) + priorityLabel(f.priority()) + "\n")

	b.WriteString(fieldLabel("Assignees", f.focus == focusAssignees) + "\n")
	users := m.assignableUsers()
	if len(users) == 0 {
		b.WriteString(styles.Muted.Render("  no other active members\n"))
	}
	for i, u := range users {
		mark := "[ ]"
		if f.picked[u.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s <%s>", mark, u.Name, u.Email)
		if f.focus == focusAssignees && i == f.userCursor {
			line = styles.Primary.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.errorMessage != "" {
		b.WriteString(styles.ErrorBanner.Render(m.errorMessage) + "\n")
	}
	if f.submitting {
		b.WriteString(styles.Muted.Render("creating...\n"))
	}

	b.WriteString(m.renderHelp([][2]string{
		{"tab", "next field"}, {"space", "toggle assignee"},
		{"enter", "submit (on assignees)"}, {"esc", "cancel"},
	}))
	return b.String()
}

func (m Model) renderAdmin() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Pending registrations") + "\n")

	pending := view.PendingUsers(m.users)
	if len(pending) == 0 {
		b.WriteString(styles.Muted.Render("No one is waiting.\n"))
	}
	for i, u := range pending {
		line := fmt.Sprintf("%s <%s>", u.Name, u.Email)
		if i == m.adminCursor {
			line = styles.Primary.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.errorMessage != "" {
		b.WriteString(styles.ErrorBanner.Render(m.errorMessage) + "\n")
	}
	if m.flash != "" {
		b.WriteString(styles.Flash.Render(m.flash) + "\n")
	}

	b.WriteString(m.renderHelp([][2]string{
		{"a", "approve"}, {"x", "reject"}, {"j/k", "move"}, {"esc", "back"},
	}))
	return b.String()
}

func fieldLabel(name string, focused bool) string {
	label := name + ": "
	if focused {
		return styles.Primary.Render(label)
	}
	return styles.Muted.Render(label)
}

func (m Model) renderHelp(keys [][2]string) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, styles.HelpKey.Render(kv[0])+" "+kv[1])
	}
	return styles.HelpBar.Render(strings.Join(parts, " · "))
}
