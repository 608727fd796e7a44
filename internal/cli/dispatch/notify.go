package dispatch

import (
	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify <title> <message>",
	Short: "Send a notification through the enabled channels",
	Long: `Send a notification through every enabled channel: sound, push, script and
browser. With --project the notification is also sent to the project's ntfy
topic when that project has the relay enabled.

The command returns once every channel has been launched. Delivery failures
are logged, never reported as a failed exit status.`,
	Example: `  # Plain notification
  tasknotify notify "Build done" "All 312 tests passed"

  # Fill script placeholders
  tasknotify notify "Task Complete: login" "done" --event task_completed \
    --task-title login --branch feat/login --executor claude

  # Also push to the project's ntfy topic
  tasknotify notify "Deploy finished" "v1.4.2 is live" --project web`,
	Args: cobra.ExactArgs(2),
	RunE: runNotify,
}

func init() {
	notifyCmd.GroupID = shared.GroupNotifications
	notifyCmd.Flags().String("event", "", "Lifecycle event: task_completed, task_failed or approval_needed")
	notifyCmd.Flags().String("task-title", "", "Task title for the {{task_title}} placeholder")
	notifyCmd.Flags().String("branch", "", "Branch for the {{task_branch}} placeholder")
	notifyCmd.Flags().String("executor", "", "Executor for the {{executor}} placeholder")
	notifyCmd.Flags().String("tool", "", "Tool name for the {{tool_name}} placeholder")
	notifyCmd.Flags().StringP("project", "p", "", "Also send to this project's relay topic")
}

func runNotify(cmd *cobra.Command, args []string) error {
	nctx, err := notificationContext(cmd)
	if err != nil {
		return err
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	projectName, _ := cmd.Flags().GetString("project")
	project, err := lookupProject(cfg, projectName)
	if err != nil {
		return err
	}

	d, closeFn := newDispatcher(cfg)
	defer closeFn()

	n := &relayingNotifier{
		ctx:        cmd.Context(),
		dispatcher: d,
		relay:      relay.NewClient(nil, nil),
		project:    project,
	}
	n.NotifyWithContext(args[0], args[1], nctx)
	n.Wait()
	return nil
}

// notificationContext builds the context from the notify flags.
func notificationContext(cmd *cobra.Command) (notify.NotificationContext, error) {
	eventFlag, _ := cmd.Flags().GetString("event")
	event, err := notify.ParseEvent(eventFlag)
	if err != nil {
		return notify.NotificationContext{}, shared.WithExitCode(err, shared.ExitInvalidArguments)
	}

	taskTitle, _ := cmd.Flags().GetString("task-title")
	branch, _ := cmd.Flags().GetString("branch")
	executor, _ := cmd.Flags().GetString("executor")
	tool, _ := cmd.Flags().GetString("tool")

	return notify.NotificationContext{
		Event:      event,
		TaskTitle:  taskTitle,
		TaskBranch: branch,
		Executor:   executor,
		ToolName:   tool,
	}, nil
}
