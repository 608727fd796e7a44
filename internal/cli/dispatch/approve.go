package dispatch

import (
	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/lifecycle"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/spf13/cobra"
)

var approveCmd = &cobra.Command{
	Use:   "approve <tool>",
	Short: "Notify that a tool is waiting for approval",
	Long: `Send an approval_needed notification for a tool that is blocked on the user.
Meant to be called from an agent's permission hook. The tool name fills the
{{tool_name}} placeholder of the script channel.`,
	Example: `  # From a permission hook
  tasknotify approve Bash --task-title "fix login" --branch feat/login --executor claude

  # Also push to the project's ntfy topic
  tasknotify approve Edit --task-title migrate -p api`,
	Args: cobra.ExactArgs(1),
	RunE: runApprove,
}

func init() {
	approveCmd.GroupID = shared.GroupNotifications
	approveCmd.Flags().String("task-title", "", "Task waiting for approval (default: the tool name)")
	approveCmd.Flags().String("branch", "", "Branch the task runs on")
	approveCmd.Flags().String("executor", "", "Who or what runs the task")
	approveCmd.Flags().StringP("project", "p", "", "Also send to this project's relay topic")
}

func runApprove(cmd *cobra.Command, args []string) error {
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
	lifecycle.RequestApproval(n, approvalTask(cmd, args[0]), args[0])
	n.Wait()
	return nil
}

func approvalTask(cmd *cobra.Command, tool string) lifecycle.Task {
	title, _ := cmd.Flags().GetString("task-title")
	if title == "" {
		title = tool
	}
	branch, _ := cmd.Flags().GetString("branch")
	executor, _ := cmd.Flags().GetString("executor")
	return lifecycle.Task{Title: title, Branch: branch, Executor: executor}
}
