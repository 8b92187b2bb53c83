// Package event defines event types for decoupling components in teamtask.
// The synchronizer publishes snapshot and assignment events; the TUI and
// the notification side channel subscribe without depending on each other.
package event

import (
	"time"

	"github.com/teamtask/teamtask/internal/model"
)

// Event is the interface that all events must implement.
// It provides a common way to identify and timestamp events.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "snapshot.updated", "task.assigned")
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Snapshot Events
// -----------------------------------------------------------------------------

// SnapshotEvent is emitted after every successful refresh or poll with the
// new authoritative task set. Tasks is an immutable snapshot: subscribers
// must not mutate it.
type SnapshotEvent struct {
	baseEvent
	Tasks  []model.Task // Full task collection as fetched
	Source string       // What produced the snapshot: "refresh", "poll", "local"
}

// NewSnapshotEvent creates a SnapshotEvent.
func NewSnapshotEvent(tasks []model.Task, source string) SnapshotEvent {
	return SnapshotEvent{
		baseEvent: newBaseEvent("snapshot.updated"),
		Tasks:     tasks,
		Source:    source,
	}
}

// -----------------------------------------------------------------------------
// Assignment Events
// -----------------------------------------------------------------------------

// AssignedEvent is emitted when a poll detects tasks assigned to the current
// user that were absent from the previously observed set. At most one is
// published per poll cycle; First is the task the notification summarizes.
type AssignedEvent struct {
	baseEvent
	First model.Task // First newly assigned task
	Count int        // Total newly assigned tasks in this cycle
}

// NewAssignedEvent creates an AssignedEvent.
func NewAssignedEvent(first model.Task, count int) AssignedEvent {
	return AssignedEvent{
		baseEvent: newBaseEvent("task.assigned"),
		First:     first,
		Count:     count,
	}
}

// -----------------------------------------------------------------------------
// Sync Error Events
// -----------------------------------------------------------------------------

// SyncErrorEvent is emitted when a background poll fails. Subscribers may
// surface it as a transient indicator; the poller itself keeps ticking.
type SyncErrorEvent struct {
	baseEvent
	Err error // The poll failure
}

// NewSyncErrorEvent creates a SyncErrorEvent.
func NewSyncErrorEvent(err error) SyncErrorEvent {
	return SyncErrorEvent{
		baseEvent: newBaseEvent("sync.error"),
		Err:       err,
	}
}
