package config

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/health"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/wsl"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Run health checks for notification delivery (doc)",
	Long: `Run health checks to verify that this host can deliver every enabled channel.

This command checks for:
  - A supported platform (Linux desktop, macOS, Windows or WSL2)
  - A sound player and the configured sound file
  - The native push tool (notify-send, osascript or powershell.exe)
  - The script shell when the script channel is enabled
  - The WSL distribution root under WSL2
  - An ntfy topic for every project with the relay enabled

Each check will display a checkmark if passed or an X with an error message if failed.`,
	Example: `  # Check the current setup
  tasknotify doctor

  # Also list every external tool and whether it is on PATH
  tasknotify doctor --tools`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.GroupID = shared.GroupConfiguration
	doctorCmd.Flags().Bool("tools", false, "List the platform's external tools")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	platform := notify.DetectPlatform()
	opts := health.Options{
		Platform:      platform,
		Notifications: cfg.Notifications,
		Projects:      cfg.Projects,
	}
	if platform == notify.PlatformBridgedHost && runtime.GOOS == "linux" {
		opts.WSLRoot = wsl.Default().Root
	}

	report := health.RunHealthChecks(opts)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, health.FormatReport(report))

	if showTools, _ := cmd.Flags().GetBool("tools"); showTools {
		printToolStatus(cmd, platform.ToolStatus())
	}

	if !report.Passed {
		return shared.NewExitError(shared.ExitMissingDependency)
	}
	return nil
}

func printToolStatus(cmd *cobra.Command, status map[string]bool) {
	colors := shared.NewColors()
	out := cmd.OutOrStdout()

	tools := make([]string, 0, len(status))
	for tool := range status {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Tools:")
	for _, tool := range tools {
		state := colors.Red("missing")
		if status[tool] {
			state = colors.Green("found")
		}
		fmt.Fprintf(out, "  %-16s %s\n", tool, state)
	}
}
