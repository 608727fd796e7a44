package dispatch

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/progress"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/spf13/cobra"
)

var (
	errRelayDisabled = errors.New("ntfy relay is not enabled for this project")
	errNoTopic       = errors.New("project has no ntfy_topic")
)

var relayCmd = &cobra.Command{
	Use:   "relay <project> <title> <message>",
	Short: "Send a notification to a project's ntfy topic only",
	Long: `Send a notification to a project's ntfy topic and wait for the server to
accept it. Unlike notify, a failed relay request is reported and exits non-zero,
which makes this command useful for checking a project's relay settings.`,
	Example: `  # Check that the web project's topic works
  tasknotify relay web "Test" "Hello from tasknotify"`,
	Args: cobra.ExactArgs(3),
	RunE: runRelay,
}

func init() {
	relayCmd.GroupID = shared.GroupNotifications
}

func runRelay(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	project, err := lookupProject(cfg, args[0])
	if err != nil {
		return err
	}
	if !project.NtfyEnabled {
		return shared.WithExitCode(fmt.Errorf("%s: %w", project.Name, errRelayDisabled), shared.ExitInvalidArguments)
	}
	if project.NtfyTopic == "" {
		return shared.WithExitCode(fmt.Errorf("%s: %w", project.Name, errNoTopic), shared.ExitInvalidArguments)
	}

	out := cmd.ErrOrStderr()
	display := progress.NewDisplay(progress.DetectTerminalCapabilities(out), out)

	url := relay.TopicURL(project.ServerURL(), project.NtfyTopic)
	_ = display.Start("Sending to " + url)

	client := relay.NewClient(nil, nil)
	if err := client.Send(cmd.Context(), project.ServerURL(), project.NtfyTopic, args[1], args[2]); err != nil {
		display.Fail("Relay failed", err)
		return shared.NewExitError(shared.ExitFailure)
	}
	display.Succeed("Sent to " + url)
	return nil
}
