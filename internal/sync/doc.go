// Package sync keeps the client's task cache in step with the remote
// Tasks collection. A single Synchronizer goroutine owns the cache
// exclusively: manual refreshes, timed polls and local optimistic
// mutations all funnel through it, and every change is published to
// subscribers as an immutable snapshot over the event bus. Poll cycles
// are strictly serialized, so two fetches are never in flight at once.
//
// The remote collection always wins: a fetch replaces the cache verbatim
// with no client-side merging. A poll additionally diffs the fetched set
// against the previously observed task identifiers and raises one
// best-effort notification when tasks newly assigned to the current user
// appear.
package sync
