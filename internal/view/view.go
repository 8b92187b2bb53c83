// Package view derives the inbox/outbox partitions, filters and aggregate
// counts the UI renders. Everything here is a pure function of the current
// snapshot: no side effects, recomputed on every state change.
package view

import (
	"math"
	"sort"
	"strings"

	"github.com/teamtask/teamtask/internal/model"
)

// Mode selects which partition of the task set a user is looking at.
type Mode string

const (
	// ModeInbox shows tasks assigned to the user.
	ModeInbox Mode = "inbox"
	// ModeOutbox shows tasks the user created.
	ModeOutbox Mode = "outbox"
)

// StatusAll is the status filter value that matches every status.
const StatusAll = "ALL"

// ViewSet partitions tasks for a user: inbox mode keeps tasks the user is
// assigned to, outbox mode keeps tasks the user created.
func ViewSet(tasks []model.Task, user *model.User, mode Mode) []model.Task {
	if user == nil {
		return nil
	}
	var out []model.Task
	for _, t := range tasks {
		switch mode {
		case ModeInbox:
			if t.IsAssignedTo(user.ID) {
				out = append(out, t)
			}
		case ModeOutbox:
			if t.CreatedBy == user.ID {
				out = append(out, t)
			}
		}
	}
	return out
}

// Stats are the aggregate counts over a view set.
type Stats struct {
	Total      int
	Pending    int // assigned or received
	InProgress int
	Done       int
	// CompletionRate is round(100 * done / total), 0 for an empty set.
	CompletionRate int
}

// ComputeStats derives Stats from a view set.
func ComputeStats(viewSet []model.Task) Stats {
	s := Stats{Total: len(viewSet)}
	for _, t := range viewSet {
		switch t.Status {
		case model.StatusAssigned, model.StatusReceived:
			s.Pending++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusDone:
			s.Done++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(s.Done) / float64(s.Total)))
	}
	return s
}

// Filter narrows a view set by a free-text query and a status filter, then
// orders the result newest first. The query is a case-insensitive substring
// match against title, creator name and description (a hit in any field
// keeps the task). statusFilter must match exactly unless it is StatusAll.
// Ties on creation time are broken by ID so the ordering is deterministic.
func Filter(viewSet []model.Task, query, statusFilter string) []model.Task {
	q := strings.ToLower(query)

	var out []model.Task
	for _, t := range viewSet {
		if q != "" && !matchesQuery(&t, q) {
			continue
		}
		if statusFilter != StatusAll && statusFilter != "" && string(t.Status) != statusFilter {
			continue
		}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// matchesQuery reports whether the lowercased query hits any searchable field.
func matchesQuery(t *model.Task, q string) bool {
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.CreatedByName), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

// PendingCount is the badge number in the header: tasks assigned to the
// user that are not yet done.
func PendingCount(tasks []model.Task, user *model.User) int {
	if user == nil {
		return 0
	}
	n := 0
	for _, t := range tasks {
		if t.IsAssignedTo(user.ID) && t.Status != model.StatusDone {
			n++
		}
	}
	return n
}

// Assignable returns the users that may be assigned a task by the given
// creator: active users other than the creator themselves.
func Assignable(users []model.User, creator *model.User) []model.User {
	if creator == nil {
		return nil
	}
	var out []model.User
	for _, u := range users {
		if u.Status == model.UserActive && u.ID != creator.ID {
			out = append(out, u)
		}
	}
	return out
}

// PendingUsers returns the users awaiting admin approval, oldest first.
func PendingUsers(users []model.User) []model.User {
	var out []model.User
	for _, u := range users {
		if u.Status == model.UserPending {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}
