package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/config"
	"github.com/teamtask/teamtask/internal/event"
	"github.com/teamtask/teamtask/internal/filelock"
	"github.com/teamtask/teamtask/internal/notify"
	"github.com/teamtask/teamtask/internal/session"
	"github.com/teamtask/teamtask/internal/store"
	tasksync "github.com/teamtask/teamtask/internal/sync"
	"github.com/teamtask/teamtask/internal/tracker"
	"github.com/teamtask/teamtask/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive task board",
	Long: `Run opens the interactive board: your inbox and outbox, live-updated
by a background synchronizer that polls the shared sheet. Requires a
configured endpoint ("teamtask setup") and a session ("teamtask login").`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	user, err := app.sessions.Load()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("not logged in; run \"teamtask login\" first")
		}
		return err
	}
	if app.cfg.Endpoint.URL == "" {
		return fmt.Errorf("no endpoint configured; run \"teamtask setup\" first")
	}

	lock, err := filelock.Acquire(config.DataDir())
	if err != nil {
		return err
	}
	defer lock.Release()

	bus := event.NewBus()
	notifier := notify.NewDesktop(app.cfg.Notifications.Enabled, app.log)
	syn := tasksync.New(app.client, bus, user.ID, app.log,
		tasksync.WithInterval(app.cfg.Sync.Interval()),
		tasksync.WithNotifier(notifier),
	)
	tr := tracker.New(app.client, syn, user, app.log)

	// Fail fast on an unreachable endpoint instead of opening a dead board.
	if err := app.client.Probe(cmd.Context()); err != nil {
		var remoteErr *store.RemoteError
		if errors.As(err, &remoteErr) {
			return fmt.Errorf("endpoint unreachable: %w", err)
		}
		return err
	}

	model := tui.NewModel(user, tr, syn, app.client, app.cfg, app.log)
	app.log.Info("board started", "user_id", user.ID)
	return tui.New(model, bus).Run()
}
