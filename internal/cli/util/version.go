package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/build"
	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/tasknotify"

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, Go version and notification platform for tasknotify",
	Example: `  # Show version info
  tasknotify version

  # Plain output (for scripts)
  tasknotify version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
	},
}

func init() {
	versionCmd.GroupID = shared.GroupConfiguration
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

type versionField struct {
	label string
	value string
}

func versionFields() []versionField {
	return []versionField{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
		{"Notifier", notify.DetectPlatform().String()},
	}
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	for _, f := range versionFields() {
		fmt.Fprintf(out, "%s: %s\n", strings.ToLower(f.label), f.value)
	}
}

// printPrettyVersion prints a colored, aligned version block
func printPrettyVersion(out io.Writer) {
	colors := shared.NewColors()

	fmt.Fprintln(out)
	fmt.Fprintln(out, colors.Cyan("tasknotify"), colors.Dim("task lifecycle notifications"))
	fmt.Fprintln(out)

	width := shared.GetTerminalWidth()
	for _, f := range versionFields() {
		line := fmt.Sprintf("  %s  %s", colors.Yellow(fmt.Sprintf("%10s", f.label)), colors.White(f.value))
		if width < 24 {
			line = fmt.Sprintf("%s: %s", f.label, f.value)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, colors.Dim("  "+SourceURL))
	fmt.Fprintln(out)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
