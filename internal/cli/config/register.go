// Package config provides CLI commands for tasknotify configuration management.
// Includes: config (show, set, keys), doctor
package config

import (
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}
