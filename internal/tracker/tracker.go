// Package tracker applies user actions to tasks: creation, the one-step
// status advance, and read receipts. Local state is updated optimistically
// through the synchronizer before the remote write; a failed write leaves
// the optimistic value in place (the next refresh reconciles it) rather
// than rolling back.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
	tasksync "github.com/teamtask/teamtask/internal/sync"
)

// TaskWriter is the slice of the remote store the tracker needs.
type TaskWriter interface {
	CreateTask(ctx context.Context, task model.Task) error
	UpdateTaskStatus(ctx context.Context, taskID string, status model.TaskStatus) error
	UpdateTaskReadBy(ctx context.Context, taskID string, readBy []string) error
}

var (
	// ErrUnknownTask indicates the task is not in the current snapshot.
	ErrUnknownTask = errors.New("task not found in current snapshot")

	// ErrNotAssignee indicates the current user may not act on this task.
	ErrNotAssignee = errors.New("only an assignee can act on this task")
)

// Tracker performs task mutations on behalf of one authenticated user.
type Tracker struct {
	store TaskWriter
	sync  *tasksync.Synchronizer
	user  *model.User
	log   *logging.Logger

	mu sync.Mutex // guards readAttempted
	// readAttempted records tasks whose mark-as-read already fired this
	// client session, so repeated renders never duplicate the write.
	readAttempted map[string]bool
}

// New creates a Tracker for the authenticated user.
func New(store TaskWriter, syn *tasksync.Synchronizer, user *model.User, log *logging.Logger) *Tracker {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Tracker{
		store:         store,
		sync:          syn,
		user:          user,
		log:           log.WithComponent("tracker").WithUser(user.ID),
		readAttempted: make(map[string]bool),
	}
}

// Create builds and persists a new task assigned by the current user.
// Duplicate assignee IDs are dropped at creation time; an empty assignee
// list is rejected. The created task starts in the assigned status with an
// empty read-by list.
func (t *Tracker) Create(ctx context.Context, title, description string, assignees []string, dueDate string, priority model.TaskPriority) (model.Task, error) {
	if title == "" {
		return model.Task{}, fmt.Errorf("task title is required")
	}
	assignees = model.DedupeAssignees(assignees)
	if len(assignees) == 0 {
		return model.Task{}, fmt.Errorf("at least one assignee is required")
	}
	if _, err := time.Parse("2006-01-02", dueDate); err != nil {
		return model.Task{}, fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
	}
	if priority == "" {
		priority = model.PriorityMedium
	}

	task := model.Task{
		ID:            uuid.New().String(),
		Title:         title,
		Description:   description,
		CreatedBy:     t.user.ID,
		CreatedByName: t.user.Name,
		AssignedTo:    assignees,
		Status:        model.StatusAssigned,
		Priority:      priority,
		DueDate:       dueDate,
		CreatedAt:     time.Now().UnixMilli(),
		ReadBy:        []string{},
	}

	if err := t.store.CreateTask(ctx, task); err != nil {
		return model.Task{}, err
	}

	t.sync.ApplyCreated(task)
	t.log.Info("task created", "task_id", task.ID, "assignees", len(assignees))
	return task, nil
}

// Advance moves a task exactly one step forward in its lifecycle. Only an
// assignee may advance, and a done task never moves: calling Advance on it
// returns the unchanged status with no write.
//
// The cache is updated before the remote write. If the write fails the
// optimistic value stays; the error is returned so interactive callers can
// surface it, and the next refresh re-converges on the server state.
func (t *Tracker) Advance(ctx context.Context, taskID string) (model.TaskStatus, error) {
	task, ok := t.sync.Find(taskID)
	if !ok {
		return "", ErrUnknownTask
	}
	if !task.IsAssignedTo(t.user.ID) {
		return task.Status, ErrNotAssignee
	}

	next, ok := task.Status.Next()
	if !ok {
		return task.Status, nil
	}

	t.sync.ApplyStatus(taskID, next)

	if err := t.store.UpdateTaskStatus(ctx, taskID, next); err != nil {
		t.log.Warn("status update not persisted", "task_id", taskID, "status", next.String(), "error", err)
		return next, err
	}
	return next, nil
}

// MarkRead records the current user in a task's read-by list. It fires at
// most once per task per client session, is a no-op when the user is not
// an assignee or already appears in the list, and performs the
// read-modify-write list replacement the endpoint requires. On failure the
// session guard is released so a later natural trigger retries; there is
// no timer-driven retry.
func (t *Tracker) MarkRead(ctx context.Context, taskID string) error {
	task, ok := t.sync.Find(taskID)
	if !ok {
		return ErrUnknownTask
	}
	if !task.IsAssignedTo(t.user.ID) || task.HasRead(t.user.ID) {
		return nil
	}

	t.mu.Lock()
	if t.readAttempted[taskID] {
		t.mu.Unlock()
		return nil
	}
	t.readAttempted[taskID] = true
	t.mu.Unlock()

	readBy := append(append([]string{}, task.ReadBy...), t.user.ID)
	if err := t.store.UpdateTaskReadBy(ctx, taskID, readBy); err != nil {
		t.mu.Lock()
		delete(t.readAttempted, taskID)
		t.mu.Unlock()
		t.log.Warn("mark-as-read failed", "task_id", taskID, "error", err)
		return err
	}

	t.sync.ApplyReadBy(taskID, readBy)
	return nil
}
