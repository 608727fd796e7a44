// Package dispatch provides the CLI commands that send notifications:
// notify, approve, relay, and run.
package dispatch

import (
	"github.com/spf13/cobra"
)

// Register adds the notification commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(runCmd)
}
