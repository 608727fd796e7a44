// Package cli provides the Cobra-based CLI for tasknotify. It defines the
// notification commands (notify, approve, relay, run), the serve command, and
// configuration and utility commands (config, doctor, version).
package cli

import (
	"github.com/ariel-frischer/tasknotify/internal/cli/config"
	"github.com/ariel-frischer/tasknotify/internal/cli/dispatch"
	"github.com/ariel-frischer/tasknotify/internal/cli/serve"
	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/cli/util"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tasknotify",
	Short: "Task lifecycle notifications",
	Long: `tasknotify delivers task lifecycle notifications (task completed, task failed,
approval needed) through a system sound, a native OS notification, a user
script, a browser event stream and a per-project ntfy relay.

Source: https://github.com/ariel-frischer/tasknotify`,
	Example: `  # Notify now
  tasknotify notify "Build done" "All tests passed"

  # Wrap a command and notify when it completes or fails
  tasknotify run --title "nightly build" -- make release

  # Check what this host can deliver
  tasknotify doctor

  # Serve the HTTP API and browser stream
  tasknotify serve`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupNotifications, Title: "Notifications:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupServices, Title: "Services:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})

	rootCmd.SetHelpCommandGroupID(shared.GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(shared.GroupConfiguration)

	rootCmd.PersistentFlags().StringP("config", "c", shared.DefaultLocalConfig, "Path to project config file")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from a dotenv file first")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	dispatch.Register(rootCmd)
	serve.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)
}
