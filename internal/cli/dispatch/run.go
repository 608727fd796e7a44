package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/lifecycle"
	"github.com/ariel-frischer/tasknotify/internal/progress"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Run a command and notify when it completes or fails",
	Long: `Run a command with the terminal attached, then send a task_completed or
task_failed notification. The exit status of the command is passed through.`,
	Example: `  # Notify when the test suite finishes
  tasknotify run --title "unit tests" -- go test ./...

  # Include branch and executor, and relay to the project's ntfy topic
  tasknotify run --title migrate --branch main --executor make --project api -- make migrate`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.GroupID = shared.GroupNotifications
	runCmd.Flags().StringP("title", "t", "", "Task title (default: the command line)")
	runCmd.Flags().String("branch", "", "Branch the task runs on")
	runCmd.Flags().String("executor", "", "Who or what runs the task")
	runCmd.Flags().StringP("project", "p", "", "Also send to this project's relay topic")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	projectName, _ := cmd.Flags().GetString("project")
	project, err := lookupProject(cfg, projectName)
	if err != nil {
		return err
	}

	task := taskFromFlags(cmd, args)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, closeFn := newDispatcher(cfg)
	defer closeFn()

	n := &relayingNotifier{
		ctx:        ctx,
		dispatcher: d,
		relay:      relay.NewClient(nil, nil),
		project:    project,
	}

	runErr := lifecycle.RunWithContext(ctx, n, task, func(ctx context.Context) error {
		return execTask(ctx, cmd, args)
	})
	n.Wait()

	out := cmd.ErrOrStderr()
	display := progress.NewDisplay(progress.DetectTerminalCapabilities(out), out)
	if runErr != nil {
		display.Fail(task.Title+" failed", runErr)
		return taskExitError(runErr)
	}
	display.Succeed(task.Title + " completed")
	return nil
}

func taskFromFlags(cmd *cobra.Command, args []string) lifecycle.Task {
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		title = strings.Join(args, " ")
	}
	branch, _ := cmd.Flags().GetString("branch")
	executor, _ := cmd.Flags().GetString("executor")
	return lifecycle.Task{Title: title, Branch: branch, Executor: executor}
}

func execTask(ctx context.Context, cmd *cobra.Command, args []string) error {
	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}

// taskExitError passes the child's exit status through. A command that
// could not be found maps to ExitMissingDependency.
func taskExitError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return shared.NewExitError(exitErr.ExitCode())
	}
	if errors.Is(err, exec.ErrNotFound) {
		return shared.WithExitCode(fmt.Errorf("running task: %w", err), shared.ExitMissingDependency)
	}
	return fmt.Errorf("running task: %w", err)
}
