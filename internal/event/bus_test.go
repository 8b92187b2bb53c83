package event

import (
	"sync"
	"testing"

	"github.com/teamtask/teamtask/internal/model"
)

func TestBusSubscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("snapshot.updated", func(e Event) {
		called = true
	})

	if id == "" {
		t.Error("Subscribe should return a non-empty ID")
	}
	if bus.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", bus.SubscriptionCount())
	}
	if called {
		t.Error("handler should not be called until an event is published")
	}
}

func TestBusPublish(t *testing.T) {
	bus := NewBus()

	var received Event
	bus.Subscribe("snapshot.updated", func(e Event) {
		received = e
	})

	tasks := []model.Task{{ID: "t1"}, {ID: "t2"}}
	bus.Publish(NewSnapshotEvent(tasks, "poll"))

	if received == nil {
		t.Fatal("handler should have received the event")
	}
	snap, ok := received.(SnapshotEvent)
	if !ok {
		t.Fatalf("received %T, want SnapshotEvent", received)
	}
	if len(snap.Tasks) != 2 || snap.Source != "poll" {
		t.Errorf("SnapshotEvent = %+v", snap)
	}
}

func TestBusPublishOnlyMatchingType(t *testing.T) {
	bus := NewBus()

	var snapshots, assigned int
	bus.Subscribe("snapshot.updated", func(Event) { snapshots++ })
	bus.Subscribe("task.assigned", func(Event) { assigned++ })

	bus.Publish(NewSnapshotEvent(nil, "refresh"))
	bus.Publish(NewSnapshotEvent(nil, "poll"))
	bus.Publish(NewAssignedEvent(model.Task{ID: "t1"}, 1))

	if snapshots != 2 {
		t.Errorf("snapshot handler called %d times, want 2", snapshots)
	}
	if assigned != 1 {
		t.Errorf("assigned handler called %d times, want 1", assigned)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	id := bus.Subscribe("sync.error", func(Event) { calls++ })

	bus.Publish(NewSyncErrorEvent(nil))
	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should find the registered subscription")
	}
	bus.Publish(NewSyncErrorEvent(nil))

	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if bus.Unsubscribe(id) {
		t.Error("Unsubscribe of a removed ID should return false")
	}
}

func TestBusHandlerPanicDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()

	secondCalled := false
	bus.Subscribe("snapshot.updated", func(Event) { panic("boom") })
	bus.Subscribe("snapshot.updated", func(Event) { secondCalled = true })

	bus.Publish(NewSnapshotEvent(nil, "poll"))

	if !secondCalled {
		t.Error("panicking handler blocked delivery to the next handler")
	}
}

func TestBusConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("snapshot.updated", func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(NewSnapshotEvent(nil, "poll"))
		}()
	}
	wg.Wait()

	if count != 20 {
		t.Errorf("handler called %d times, want 20", count)
	}
}

func TestBusClear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("snapshot.updated", func(Event) {})
	bus.Subscribe("task.assigned", func(Event) {})

	bus.Clear()
	if bus.SubscriptionCount() != 0 {
		t.Errorf("SubscriptionCount() after Clear = %d, want 0", bus.SubscriptionCount())
	}
}
