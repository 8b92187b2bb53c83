package tui

import (
	"github.com/teamtask/teamtask/internal/model"
)

// snapshotMsg carries a fresh task snapshot from the synchronizer
type snapshotMsg struct {
	tasks  []model.Task
	source string
}

// assignedMsg is sent when a poll found tasks newly assigned to the user
type assignedMsg struct {
	first model.Task
	count int
}

// syncErrMsg is sent when a background poll failed
type syncErrMsg struct {
	err error
}

// errMsg wraps an error from a foreground action for display in the UI
type errMsg struct {
	err error
}

// createdMsg is sent when async task creation completes
type createdMsg struct {
	task model.Task
	err  error
}

// advancedMsg is sent when a status advance completes
type advancedMsg struct {
	taskID string
	status model.TaskStatus
	err    error
}

// markedReadMsg is sent when a read receipt write completes
type markedReadMsg struct {
	taskID string
	err    error
}

// usersMsg carries the fetched Users collection (assignee picker, admin panel)
type usersMsg struct {
	users []model.User
	err   error
}

// decidedMsg is sent when an approve/reject decision completes
type decidedMsg struct {
	userID string
	err    error
}
