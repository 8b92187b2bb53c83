package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/teamtask/teamtask/internal/model"
	tasksync "github.com/teamtask/teamtask/internal/sync"
	"github.com/teamtask/teamtask/internal/tracker"
	"github.com/teamtask/teamtask/internal/view"
)

var (
	listOutbox string
	listStatus string
	listQuery  string

	createTitle       string
	createDescription string
	createAssignees   []string
	createDue         string
	createPriority    string
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and manage tasks from the command line",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your inbox (tasks assigned to you) or outbox (tasks you created)",
	RunE:  runTasksList,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and assign a new task",
	RunE:  runTasksCreate,
}

var tasksAdvanceCmd = &cobra.Command{
	Use:   "advance <task-id>",
	Short: "Move one of your tasks a step forward",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksAdvance,
}

var tasksStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics for your inbox",
	RunE:  runTasksStats,
}

func init() {
	tasksListCmd.Flags().StringVarP(&listOutbox, "box", "b", "inbox", "which box to list: inbox or outbox")
	tasksListCmd.Flags().StringVarP(&listStatus, "status", "s", view.StatusAll, "filter by status: ASSIGNED, RECEIVED, IN_PROGRESS, DONE or ALL")
	tasksListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "substring match on title, creator and description")

	tasksCreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "task title (required)")
	tasksCreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "task description")
	tasksCreateCmd.Flags().StringSliceVarP(&createAssignees, "assign", "a", nil, "assignee user IDs (required, repeatable)")
	tasksCreateCmd.Flags().StringVar(&createDue, "due", "", "due date, YYYY-MM-DD (required)")
	tasksCreateCmd.Flags().StringVarP(&createPriority, "priority", "p", "MEDIUM", "priority: HIGH, MEDIUM or LOW")
	_ = tasksCreateCmd.MarkFlagRequired("title")
	_ = tasksCreateCmd.MarkFlagRequired("assign")
	_ = tasksCreateCmd.MarkFlagRequired("due")

	tasksCmd.AddCommand(tasksListCmd, tasksCreateCmd, tasksAdvanceCmd, tasksStatsCmd)
	rootCmd.AddCommand(tasksCmd)
}

// loadTracker builds a one-shot synchronizer and tracker for CLI use:
// a single refresh instead of the background polling loop.
func loadTracker(cmd *cobra.Command, app *app) (*tracker.Tracker, *tasksync.Synchronizer, *model.User, error) {
	user, err := app.sessions.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	syn := tasksync.New(app.client, nil, user.ID, app.log)
	if err := syn.Refresh(cmd.Context()); err != nil {
		return nil, nil, nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return tracker.New(app.client, syn, user, app.log), syn, user, nil
}

func runTasksList(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	_, syn, user, err := loadTracker(cmd, app)
	if err != nil {
		return err
	}

	mode := view.ModeInbox
	if listOutbox == "outbox" {
		mode = view.ModeOutbox
	}
	tasks := view.Filter(view.ViewSet(syn.Snapshot(), user, mode), listQuery, listStatus)
	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tFROM")
	for _, t := range tasks {
		due := t.DueDate
		if t.Overdue(now) {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, t.Priority, due, t.CreatedByName)
	}
	return w.Flush()
}

func runTasksCreate(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	tr, _, _, err := loadTracker(cmd, app)
	if err != nil {
		return err
	}

	priority := model.TaskPriority(createPriority)
	task, err := tr.Create(cmd.Context(), createTitle, createDescription, createAssignees, createDue, priority)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s (%d assignees)\n", task.ID, task.Title, len(task.AssignedTo))
	return nil
}

func runTasksAdvance(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	tr, _, _, err := loadTracker(cmd, app)
	if err != nil {
		return err
	}

	status, err := tr.Advance(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", args[0], status)
	return nil
}

func runTasksStats(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	_, syn, user, err := loadTracker(cmd, app)
	if err != nil {
		return err
	}

	stats := view.ComputeStats(view.ViewSet(syn.Snapshot(), user, view.ModeInbox))
	fmt.Fprintf(cmd.OutOrStdout(), "Total %d  Pending %d  In progress %d  Done %d  (%d%% complete)\n",
		stats.Total, stats.Pending, stats.InProgress, stats.Done, stats.CompletionRate)
	return nil
}
