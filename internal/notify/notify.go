// Package notify is the best-effort desktop notification side channel.
// Delivery failures are logged and swallowed: a notification is never
// required for correctness and must never halt polling.
package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"

	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
)

// Notifier raises a platform notification with a title and one-line body.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends notifications through the platform notification service.
type Desktop struct {
	log     *logging.Logger
	enabled bool
}

// NewDesktop creates a Desktop notifier. When enabled is false every call
// is a silent no-op, which keeps call sites free of conditionals.
func NewDesktop(enabled bool, log *logging.Logger) *Desktop {
	if log == nil {
		log = logging.NopLogger()
	}
	return &Desktop{log: log.WithComponent("notify"), enabled: enabled}
}

// Notify raises a desktop notification. Errors are returned for logging
// but callers are expected to ignore them.
func (d *Desktop) Notify(title, body string) error {
	if !d.enabled {
		return nil
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		d.log.Warn("notification delivery failed", "title", title, "error", err)
		return err
	}
	return nil
}

// NewAssignment formats the notification raised for a newly assigned task:
// the creator's name and the task title.
func NewAssignment(task model.Task) (title, body string) {
	return "New task assigned", fmt.Sprintf("%s assigned: %s", task.CreatedByName, task.Title)
}
