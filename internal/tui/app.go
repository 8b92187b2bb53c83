package tui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/teamtask/teamtask/internal/event"
)

// App wraps the Bubbletea program and the background synchronizer.
type App struct {
	program *tea.Program
	model   Model
	bus     *event.Bus
}

// New creates a new TUI application around a prepared model. The bus must
// be the one the model's synchronizer publishes to.
func New(model Model, bus *event.Bus) *App {
	return &App{model: model, bus: bus}
}

// Run starts the synchronizer and the TUI, and blocks until the user
// quits. The synchronizer goroutine is stopped before Run returns.
func (a *App) Run() error {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	// Bridge bus events into the Bubbletea message loop.
	subs := []string{
		a.bus.Subscribe("snapshot.updated", func(e event.Event) {
			if ev, ok := e.(event.SnapshotEvent); ok {
				a.program.Send(snapshotMsg{tasks: ev.Tasks, source: ev.Source})
			}
		}),
		a.bus.Subscribe("task.assigned", func(e event.Event) {
			if ev, ok := e.(event.AssignedEvent); ok {
				a.program.Send(assignedMsg{first: ev.First, count: ev.Count})
			}
		}),
		a.bus.Subscribe("sync.error", func(e event.Event) {
			if ev, ok := e.(event.SyncErrorEvent); ok {
				a.program.Send(syncErrMsg{err: ev.Err})
			}
		}),
	}
	defer func() {
		for _, id := range subs {
			a.bus.Unsubscribe(id)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.model.syn.Start(ctx)

	// Forward termination signals as a clean quit.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		a.program.Send(tea.Quit())
	}()

	_, err := a.program.Run()

	cancel()
	a.model.syn.Wait()
	return err
}
