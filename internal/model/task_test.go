package model

import (
	"testing"
	"time"
)

func TestTaskStatusNext(t *testing.T) {
	tests := []struct {
		name     string
		status   TaskStatus
		wantNext TaskStatus
		wantOK   bool
	}{
		{"assigned advances to received", StatusAssigned, StatusReceived, true},
		{"received advances to in_progress", StatusReceived, StatusInProgress, true},
		{"in_progress advances to done", StatusInProgress, StatusDone, true},
		{"done is terminal", StatusDone, StatusDone, false},
		{"unknown status does not advance", TaskStatus("BOGUS"), TaskStatus("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := tt.status.Next()
			if next != tt.wantNext {
				t.Errorf("Next() = %q, want %q", next, tt.wantNext)
			}
			if ok != tt.wantOK {
				t.Errorf("Next() ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestTaskStatusNeverMovesBackward(t *testing.T) {
	// Walk the full lifecycle from assigned and verify each step strictly
	// increases the lifecycle position until done, which never moves.
	s := StatusAssigned
	for i := 0; i < 10; i++ {
		next, ok := s.Next()
		if !ok {
			if s != StatusDone {
				t.Fatalf("lifecycle stalled at %q before done", s)
			}
			if next != StatusDone {
				t.Fatalf("Next() at done = %q, want done unchanged", next)
			}
			return
		}
		if statusOrder[next] != statusOrder[s]+1 {
			t.Fatalf("Next() jumped from %q to %q", s, next)
		}
		s = next
	}
	t.Fatal("lifecycle never reached done")
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{StatusAssigned, StatusReceived, StatusInProgress, StatusDone} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if TaskStatus("NOPE").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestTaskMembership(t *testing.T) {
	task := &Task{
		AssignedTo: []string{"u1", "u2"},
		ReadBy:     []string{"u2"},
	}

	if !task.IsAssignedTo("u1") {
		t.Error("u1 should be an assignee")
	}
	if task.IsAssignedTo("u3") {
		t.Error("u3 should not be an assignee")
	}
	if task.HasRead("u1") {
		t.Error("u1 has not read the task")
	}
	if !task.HasRead("u2") {
		t.Error("u2 has read the task")
	}
	if !task.SeenByAnyAssignee() {
		t.Error("task has a non-empty read-by list")
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due and open", Task{DueDate: "2025-06-10", Status: StatusAssigned}, true},
		{"past due but done", Task{DueDate: "2025-06-10", Status: StatusDone}, false},
		{"due in the future", Task{DueDate: "2025-07-01", Status: StatusInProgress}, false},
		{"malformed due date", Task{DueDate: "soon", Status: StatusAssigned}, false},
		{"empty due date", Task{Status: StatusAssigned}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeAssignees(t *testing.T) {
	got := DedupeAssignees([]string{"a", "b", "a", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("DedupeAssignees() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DedupeAssignees()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if out := DedupeAssignees(nil); out != nil {
		t.Errorf("DedupeAssignees(nil) = %v, want nil", out)
	}
}

func TestUserCanLogin(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{"active member", User{Role: RoleMember, Status: UserActive}, true},
		{"pending member", User{Role: RoleMember, Status: UserPending}, false},
		{"rejected member", User{Role: RoleMember, Status: UserRejected}, false},
		{"admin always passes", User{Role: RoleAdmin, Status: UserPending}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.CanLogin(); got != tt.want {
				t.Errorf("CanLogin() = %v, want %v", got, tt.want)
			}
		})
	}
}
