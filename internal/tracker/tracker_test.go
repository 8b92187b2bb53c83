package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/teamtask/teamtask/internal/event"
	"github.com/teamtask/teamtask/internal/model"
	tasksync "github.com/teamtask/teamtask/internal/sync"
)

type fakeWriter struct {
	created      []model.Task
	statusCalls  []string
	readByCalls  [][]string
	createErr    error
	statusErr    error
	readByErr    error
	lastStatus   model.TaskStatus
	lastReadTask string
}

func (f *fakeWriter) CreateTask(_ context.Context, task model.Task) error {
	f.created = append(f.created, task)
	return f.createErr
}

func (f *fakeWriter) UpdateTaskStatus(_ context.Context, taskID string, status model.TaskStatus) error {
	f.statusCalls = append(f.statusCalls, taskID)
	f.lastStatus = status
	return f.statusErr
}

func (f *fakeWriter) UpdateTaskReadBy(_ context.Context, taskID string, readBy []string) error {
	f.lastReadTask = taskID
	f.readByCalls = append(f.readByCalls, readBy)
	return f.readByErr
}

type staticStore struct{ tasks []model.Task }

func (s *staticStore) Tasks(_ context.Context) ([]model.Task, error) {
	return s.tasks, nil
}

func newFixture(t *testing.T, user *model.User, tasks []model.Task) (*Tracker, *fakeWriter, *tasksync.Synchronizer) {
	t.Helper()
	writer := &fakeWriter{}
	syn := tasksync.New(&staticStore{tasks: tasks}, event.NewBus(), user.ID, nil)
	if err := syn.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return New(writer, syn, user, nil), writer, syn
}

var alice = &model.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Role: model.RoleMember, Status: model.UserActive}

func task(id string, status model.TaskStatus, assignees []string, readBy []string) model.Task {
	return model.Task{
		ID:         id,
		Title:      "task " + id,
		CreatedBy:  "u9",
		AssignedTo: assignees,
		Status:     status,
		ReadBy:     readBy,
	}
}

func TestCreateBuildsTask(t *testing.T) {
	tr, writer, syn := newFixture(t, alice, nil)

	created, err := tr.Create(context.Background(), "Ship release", "cut and tag", []string{"u2", "u3", "u2"}, "2026-09-15", model.PriorityHigh)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == "" {
		t.Error("Create() assigned no ID")
	}
	if created.Status != model.StatusAssigned {
		t.Errorf("Status = %v, want %v", created.Status, model.StatusAssigned)
	}
	if got, want := len(created.AssignedTo), 2; got != want {
		t.Errorf("len(AssignedTo) = %d, want %d (duplicates dropped)", got, want)
	}
	if created.ReadBy == nil || len(created.ReadBy) != 0 {
		t.Errorf("ReadBy = %v, want empty non-nil list", created.ReadBy)
	}
	if created.CreatedBy != "u1" || created.CreatedByName != "Alice" {
		t.Errorf("creator = %s/%s, want u1/Alice", created.CreatedBy, created.CreatedByName)
	}
	if created.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}
	if len(writer.created) != 1 {
		t.Fatalf("remote creates = %d, want 1", len(writer.created))
	}
	if _, ok := syn.Find(created.ID); !ok {
		t.Error("created task missing from local cache")
	}
}

func TestCreateValidation(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, nil)

	tests := []struct {
		name      string
		title     string
		assignees []string
		dueDate   string
	}{
		{"empty title", "", []string{"u2"}, "2026-09-15"},
		{"no assignees", "t", nil, "2026-09-15"},
		{"only duplicate empties", "t", []string{}, "2026-09-15"},
		{"bad due date", "t", []string{"u2"}, "15-09-2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tr.Create(context.Background(), tt.title, "", tt.assignees, tt.dueDate, model.PriorityLow); err == nil {
				t.Error("Create() error = nil, want validation error")
			}
		})
	}
	if len(writer.created) != 0 {
		t.Errorf("remote creates = %d, want 0", len(writer.created))
	}
}

func TestCreateRemoteFailure(t *testing.T) {
	tr, writer, syn := newFixture(t, alice, nil)
	writer.createErr = errors.New("endpoint down")

	if _, err := tr.Create(context.Background(), "t", "", []string{"u2"}, "2026-09-15", ""); err == nil {
		t.Fatal("Create() error = nil, want remote error")
	}
	if len(syn.Snapshot()) != 0 {
		t.Error("failed create leaked into local cache")
	}
}

func TestAdvanceStepsForward(t *testing.T) {
	steps := []struct {
		from, to model.TaskStatus
	}{
		{model.StatusAssigned, model.StatusReceived},
		{model.StatusReceived, model.StatusInProgress},
		{model.StatusInProgress, model.StatusDone},
	}
	for _, step := range steps {
		t.Run(step.from.String(), func(t *testing.T) {
			tr, writer, syn := newFixture(t, alice, []model.Task{task("t1", step.from, []string{"u1"}, nil)})

			got, err := tr.Advance(context.Background(), "t1")
			if err != nil {
				t.Fatalf("Advance() error = %v", err)
			}
			if got != step.to {
				t.Errorf("Advance() = %v, want %v", got, step.to)
			}
			if writer.lastStatus != step.to {
				t.Errorf("persisted status = %v, want %v", writer.lastStatus, step.to)
			}
			if cached, _ := syn.Find("t1"); cached.Status != step.to {
				t.Errorf("cached status = %v, want %v", cached.Status, step.to)
			}
		})
	}
}

func TestAdvanceDoneIsNoOp(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, []model.Task{task("t1", model.StatusDone, []string{"u1"}, nil)})

	got, err := tr.Advance(context.Background(), "t1")
	if err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if got != model.StatusDone {
		t.Errorf("Advance() = %v, want %v", got, model.StatusDone)
	}
	if len(writer.statusCalls) != 0 {
		t.Errorf("remote writes = %d, want 0", len(writer.statusCalls))
	}
}

func TestAdvanceRejectsNonAssignee(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u2"}, nil)})

	if _, err := tr.Advance(context.Background(), "t1"); !errors.Is(err, ErrNotAssignee) {
		t.Errorf("Advance() error = %v, want ErrNotAssignee", err)
	}
	if len(writer.statusCalls) != 0 {
		t.Error("non-assignee advance reached the remote store")
	}
}

func TestAdvanceUnknownTask(t *testing.T) {
	tr, _, _ := newFixture(t, alice, nil)

	if _, err := tr.Advance(context.Background(), "nope"); !errors.Is(err, ErrUnknownTask) {
		t.Errorf("Advance() error = %v, want ErrUnknownTask", err)
	}
}

func TestAdvanceKeepsOptimisticValueOnRemoteFailure(t *testing.T) {
	tr, writer, syn := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u1"}, nil)})
	writer.statusErr = errors.New("endpoint down")

	got, err := tr.Advance(context.Background(), "t1")
	if err == nil {
		t.Fatal("Advance() error = nil, want remote error")
	}
	if got != model.StatusReceived {
		t.Errorf("Advance() = %v, want %v", got, model.StatusReceived)
	}
	if cached, _ := syn.Find("t1"); cached.Status != model.StatusReceived {
		t.Errorf("cached status = %v, want optimistic %v kept", cached.Status, model.StatusReceived)
	}
}

func TestMarkReadAppendsCurrentUser(t *testing.T) {
	tr, writer, syn := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u1", "u2"}, []string{"u2"})})

	if err := tr.MarkRead(context.Background(), "t1"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if len(writer.readByCalls) != 1 {
		t.Fatalf("remote writes = %d, want 1", len(writer.readByCalls))
	}
	got := writer.readByCalls[0]
	want := []string{"u2", "u1"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("readBy sent = %v, want %v (whole list, existing entries kept)", got, want)
	}
	if cached, _ := syn.Find("t1"); !cached.HasRead("u1") {
		t.Error("local cache missing read receipt")
	}
}

func TestMarkReadOncePerSession(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u1"}, nil)})

	for i := 0; i < 3; i++ {
		if err := tr.MarkRead(context.Background(), "t1"); err != nil {
			t.Fatalf("MarkRead() #%d error = %v", i, err)
		}
	}
	if len(writer.readByCalls) != 1 {
		t.Errorf("remote writes = %d, want 1", len(writer.readByCalls))
	}
}

func TestMarkReadSkipsAlreadyRead(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u1"}, []string{"u1"})})

	if err := tr.MarkRead(context.Background(), "t1"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if len(writer.readByCalls) != 0 {
		t.Errorf("remote writes = %d, want 0", len(writer.readByCalls))
	}
}

func TestMarkReadSkipsNonAssignee(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u2"}, nil)})

	if err := tr.MarkRead(context.Background(), "t1"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if len(writer.readByCalls) != 0 {
		t.Errorf("remote writes = %d, want 0", len(writer.readByCalls))
	}
}

func TestMarkReadRetriesAfterFailure(t *testing.T) {
	tr, writer, _ := newFixture(t, alice, []model.Task{task("t1", model.StatusAssigned, []string{"u1"}, nil)})
	writer.readByErr = errors.New("endpoint down")

	if err := tr.MarkRead(context.Background(), "t1"); err == nil {
		t.Fatal("MarkRead() error = nil, want remote error")
	}

	// The session guard is released on failure, so the next natural
	// trigger writes again.
	writer.readByErr = nil
	if err := tr.MarkRead(context.Background(), "t1"); err != nil {
		t.Fatalf("retry MarkRead() error = %v", err)
	}
	if len(writer.readByCalls) != 2 {
		t.Errorf("remote writes = %d, want 2", len(writer.readByCalls))
	}
}
