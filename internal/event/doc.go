// Package event provides a pub-sub event bus for decoupled inter-component
// communication in teamtask.
//
// The synchronizer owns the task cache and publishes immutable snapshots;
// the TUI and the notification side channel subscribe without knowing who
// produced the event, and without the synchronizer knowing who listens.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Types
//
//   - [SnapshotEvent] ("snapshot.updated"): a new authoritative task set
//   - [AssignedEvent] ("task.assigned"): newly assigned tasks detected by a poll
//   - [SyncErrorEvent] ("sync.error"): a background poll failed
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously and protected against panics: a panicking handler will not
// prevent other handlers from being called.
package event
