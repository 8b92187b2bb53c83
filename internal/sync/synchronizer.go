package sync

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/teamtask/teamtask/internal/event"
	"github.com/teamtask/teamtask/internal/logging"
	"github.com/teamtask/teamtask/internal/model"
	"github.com/teamtask/teamtask/internal/notify"
)

// DefaultInterval is the default polling cadence.
const DefaultInterval = 10 * time.Second

// TaskStore is the slice of the remote store the synchronizer needs.
type TaskStore interface {
	Tasks(ctx context.Context) ([]model.Task, error)
}

// Synchronizer owns the client-side task cache. All reads and writes go
// through it; subscribers observe changes via SnapshotEvents on the bus.
type Synchronizer struct {
	store    TaskStore
	bus      *event.Bus
	notifier notify.Notifier
	log      *logging.Logger
	userID   string
	interval time.Duration

	mu    sync.Mutex
	tasks []model.Task
	seen  map[string]bool // task IDs present in the last observed set

	wg sync.WaitGroup
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithInterval overrides the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(s *Synchronizer) { s.interval = d }
}

// WithNotifier sets the notifier used for new-assignment notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Synchronizer) { s.notifier = n }
}

// New creates a Synchronizer for the given authenticated user.
func New(store TaskStore, bus *event.Bus, userID string, log *logging.Logger, opts ...Option) *Synchronizer {
	if log == nil {
		log = logging.NopLogger()
	}
	s := &Synchronizer{
		store:    store,
		bus:      bus,
		notifier: notify.NewDesktop(false, nil),
		log:      log.WithComponent("sync").WithUser(userID),
		userID:   userID,
		interval: DefaultInterval,
		seen:     make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs the polling loop until ctx is cancelled. It performs an
// initial refresh, then one poll per interval. Iterations are serialized:
// a slow fetch delays the next tick rather than overlapping it.
func (s *Synchronizer) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if err := s.Refresh(ctx); err != nil {
			s.log.Warn("initial refresh failed", "error", err)
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.log.Debug("synchronizer stopped")
				return
			case <-ticker.C:
				s.Poll(ctx)
			}
		}
	}()
}

// Wait blocks until the polling loop has exited.
func (s *Synchronizer) Wait() {
	s.wg.Wait()
}

// Refresh fetches the full Tasks collection and replaces the cache
// verbatim. No diffing and no notifications: the server set is simply the
// new source of truth.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	fetched, err := s.store.Tasks(ctx)
	if err != nil {
		return err
	}
	s.replace(fetched)
	s.publishSnapshot(fetched, "refresh")
	return nil
}

// Poll runs one poll cycle: fetch, diff against the previously observed
// identifier set, notify for newly assigned tasks, replace the cache.
// Fetch failures are logged, published as SyncErrorEvents and otherwise
// swallowed so the loop keeps its prior good state and ticks on.
func (s *Synchronizer) Poll(ctx context.Context) {
	fetched, err := s.store.Tasks(ctx)
	if err != nil {
		s.log.Warn("poll failed", "error", err)
		if s.bus != nil {
			s.bus.Publish(event.NewSyncErrorEvent(err))
		}
		return
	}

	newlyAssigned := s.diffNewlyAssigned(fetched)

	// Exactly one notification per cycle, summarizing the first new task.
	// Delivery is best-effort; the observed set is replaced regardless.
	if len(newlyAssigned) > 0 {
		first := newlyAssigned[0]
		title, body := notify.NewAssignment(first)
		if err := s.notifier.Notify(title, body); err != nil {
			s.log.Warn("assignment notification failed", "task_id", first.ID, "error", err)
		}
		if s.bus != nil {
			s.bus.Publish(event.NewAssignedEvent(first, len(newlyAssigned)))
		}
	}

	s.replace(fetched)
	s.publishSnapshot(fetched, "poll")
}

// diffNewlyAssigned returns the fetched tasks assigned to the current user
// whose identifiers were absent from the previously observed set.
func (s *Synchronizer) diffNewlyAssigned(fetched []model.Task) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Task
	for _, t := range fetched {
		if t.IsAssignedTo(s.userID) && !s.seen[t.ID] {
			out = append(out, t)
		}
	}
	return out
}

// replace swaps in the fetched set as the authoritative cache and records
// its identifiers as observed.
func (s *Synchronizer) replace(fetched []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = fetched
	s.seen = make(map[string]bool, len(fetched))
	for _, t := range fetched {
		s.seen[t.ID] = true
	}
}

// Snapshot returns a copy of the current task cache.
func (s *Synchronizer) Snapshot() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// ApplyStatus optimistically sets the status of a cached task and
// publishes the resulting snapshot. The remote write happens elsewhere;
// this only keeps the cache the single owner of local state.
func (s *Synchronizer) ApplyStatus(taskID string, status model.TaskStatus) {
	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].Status = status
			break
		}
	}
	tasks := slices.Clone(s.tasks)
	s.mu.Unlock()

	s.publishSnapshot(tasks, "local")
}

// ApplyReadBy optimistically replaces the read-by list of a cached task.
func (s *Synchronizer) ApplyReadBy(taskID string, readBy []string) {
	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			s.tasks[i].ReadBy = readBy
			break
		}
	}
	tasks := slices.Clone(s.tasks)
	s.mu.Unlock()

	s.publishSnapshot(tasks, "local")
}

// ApplyCreated adds a just-created task to the cache and marks it
// observed so the next poll never treats the creator's own task as a new
// assignment.
func (s *Synchronizer) ApplyCreated(task model.Task) {
	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.seen[task.ID] = true
	tasks := slices.Clone(s.tasks)
	s.mu.Unlock()

	s.publishSnapshot(tasks, "local")
}

// Find returns the cached task with the given ID.
func (s *Synchronizer) Find(taskID string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// publishSnapshot publishes an immutable copy of tasks to subscribers.
func (s *Synchronizer) publishSnapshot(tasks []model.Task, source string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.NewSnapshotEvent(slices.Clone(tasks), source))
}
