package model

import (
	"slices"
	"time"
)

// TaskStatus is the single global status shared by all assignees of a task.
// It only ever advances forward through the fixed order
// assigned -> received -> in_progress -> done.
type TaskStatus string

const (
	StatusAssigned   TaskStatus = "ASSIGNED"
	StatusReceived   TaskStatus = "RECEIVED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// String returns the string representation of the task status.
func (s TaskStatus) String() string {
	return string(s)
}

// statusOrder maps each status to its position in the lifecycle.
var statusOrder = map[TaskStatus]int{
	StatusAssigned:   0,
	StatusReceived:   1,
	StatusInProgress: 2,
	StatusDone:       3,
}

// Valid reports whether s is one of the four lifecycle statuses.
func (s TaskStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// IsTerminal returns true if this status represents the final state.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusDone
}

// Next returns the status one step forward in the lifecycle. Done is
// terminal: Next at done (or at an unknown status) returns s unchanged
// with ok=false.
func (s TaskStatus) Next() (next TaskStatus, ok bool) {
	switch s {
	case StatusAssigned:
		return StatusReceived, true
	case StatusReceived:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusDone, true
	default:
		return s, false
	}
}

// TaskPriority is the urgency label attached to a task.
type TaskPriority string

const (
	PriorityHigh   TaskPriority = "HIGH"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityLow    TaskPriority = "LOW"
)

// Task is a record in the Tasks collection. Tasks are created once by the
// creator and afterwards only mutated by assignees advancing Status or
// appending themselves to ReadBy; they are never deleted or reassigned.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	CreatedBy     string       `json:"createdBy"`
	CreatedByName string       `json:"createdByName"`
	AssignedTo    []string     `json:"assignedTo"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	DueDate       string       `json:"dueDate"` // YYYY-MM-DD, no time component
	CreatedAt     int64        `json:"createdAt"`
	ReadBy        []string     `json:"readBy"`
}

// IsAssignedTo reports whether userID is one of the task's assignees.
func (t *Task) IsAssignedTo(userID string) bool {
	return slices.Contains(t.AssignedTo, userID)
}

// HasRead reports whether userID already appears in the read-by list.
func (t *Task) HasRead(userID string) bool {
	return slices.Contains(t.ReadBy, userID)
}

// SeenByAnyAssignee reports whether at least one assignee has opened the
// task. Creators use this as the read-receipt indicator; for 1-on-1
// assignments it is exact.
func (t *Task) SeenByAnyAssignee() bool {
	return len(t.ReadBy) > 0
}

// Overdue reports whether the due date has passed while the task is not
// done. Malformed due dates are treated as not overdue.
func (t *Task) Overdue(now time.Time) bool {
	if t.Status == StatusDone {
		return false
	}
	due, err := time.Parse("2006-01-02", t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now.Truncate(24 * time.Hour))
}

// DedupeAssignees returns ids with duplicate entries removed, preserving
// first-occurrence order. Applied at creation time so a task never carries
// the same assignee twice.
func DedupeAssignees(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
