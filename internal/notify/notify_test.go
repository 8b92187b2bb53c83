package notify

import (
	"strings"
	"testing"

	"github.com/teamtask/teamtask/internal/model"
)

func TestNewAssignmentFormat(t *testing.T) {
	task := model.Task{Title: "file the report", CreatedByName: "Ann"}

	title, body := NewAssignment(task)
	if title == "" {
		t.Error("notification title should not be empty")
	}
	if !strings.Contains(body, "Ann") || !strings.Contains(body, "file the report") {
		t.Errorf("body = %q, want creator name and task title", body)
	}
}

func TestDisabledDesktopIsNoOp(t *testing.T) {
	d := NewDesktop(false, nil)
	if err := d.Notify("title", "body"); err != nil {
		t.Errorf("disabled notifier returned error: %v", err)
	}
}
