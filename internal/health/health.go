// Package health runs the `tasknotify doctor` checks: whether this host can
// deliver each enabled notification channel.
package health

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/ariel-frischer/tasknotify/internal/wsl"
	"github.com/fatih/color"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

func (r *HealthReport) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// Options describe the host and configuration to check.
type Options struct {
	Platform      notify.Platform
	Notifications notify.ChannelConfig
	Projects      map[string]relay.Project

	// LookPath defaults to exec.LookPath
	LookPath func(string) (string, error)
	// WSLRoot is consulted on a bridged Linux host; nil skips the probe check
	WSLRoot func() wsl.Root
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(opts Options) *HealthReport {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}

	report := &HealthReport{Passed: true}
	report.add(CheckPlatform(opts.Platform))
	if opts.Platform == notify.PlatformUnsupported {
		return report
	}

	cfg := opts.Notifications
	if cfg.SoundEnabled {
		report.add(CheckSoundPlayer(opts.Platform, opts.LookPath))
		report.add(CheckSoundFile(opts.Platform, cfg.SoundFile))
	}
	if cfg.PushEnabled {
		report.add(CheckPush(opts.Platform, opts.LookPath))
	}
	if cfg.ScriptEnabled {
		report.add(CheckScriptShell(notify.HostShell(), opts.LookPath))
	}
	if opts.Platform == notify.PlatformBridgedHost && opts.WSLRoot != nil {
		report.add(CheckWSLRoot(opts.WSLRoot))
	}
	for _, c := range CheckProjects(opts.Projects) {
		report.add(c)
	}
	return report
}

// CheckPlatform fails only for hosts with no delivery strategy.
func CheckPlatform(p notify.Platform) CheckResult {
	if p == notify.PlatformUnsupported {
		return CheckResult{Name: "Platform", Passed: false, Message: "no notification strategy for this operating system"}
	}
	return CheckResult{Name: "Platform", Passed: true, Message: p.String()}
}

// CheckSoundPlayer passes when at least one audio player for p is on PATH.
func CheckSoundPlayer(p notify.Platform, lookPath func(string) (string, error)) CheckResult {
	var players []string
	switch p {
	case notify.PlatformPrimaryDesktop:
		players = []string{"paplay", "aplay"}
	case notify.PlatformSecondaryDesktop:
		players = []string{"afplay"}
	case notify.PlatformBridgedHost:
		players = []string{"powershell.exe"}
	}

	for _, player := range players {
		if _, err := lookPath(player); err == nil {
			return CheckResult{Name: "Sound player", Passed: true, Message: player}
		}
	}

	msg := fmt.Sprintf("none of %s found in PATH", strings.Join(players, ", "))
	if p == notify.PlatformPrimaryDesktop {
		// the terminal bell still works
		return CheckResult{Name: "Sound player", Passed: true, Message: msg + "; falling back to terminal bell"}
	}
	return CheckResult{Name: "Sound player", Passed: false, Message: msg}
}

// CheckSoundFile verifies the configured sound or the platform default.
func CheckSoundFile(p notify.Platform, soundFile string) CheckResult {
	if soundFile != "" {
		if notify.ValidateSoundFile(soundFile, nil) != "" {
			return CheckResult{Name: "Sound file", Passed: true, Message: soundFile}
		}
		return CheckResult{
			Name:    "Sound file",
			Passed:  false,
			Message: fmt.Sprintf("%s is missing or not a supported audio file; the default is used", soundFile),
		}
	}

	def := notify.DefaultSoundFile(p)
	if p == notify.PlatformBridgedHost {
		return CheckResult{Name: "Sound file", Passed: true, Message: def + " (host default)"}
	}
	if _, err := os.Stat(def); err != nil {
		return CheckResult{Name: "Sound file", Passed: false, Message: fmt.Sprintf("default sound %s not found", def)}
	}
	return CheckResult{Name: "Sound file", Passed: true, Message: def}
}

// CheckPush verifies the native notification tool for p.
func CheckPush(p notify.Platform, lookPath func(string) (string, error)) CheckResult {
	var tool string
	switch p {
	case notify.PlatformPrimaryDesktop:
		tool = "notify-send"
	case notify.PlatformSecondaryDesktop:
		tool = "osascript"
	case notify.PlatformBridgedHost:
		tool = "powershell.exe"
	default:
		return CheckResult{Name: "Push", Passed: false, Message: "unsupported platform"}
	}

	if _, err := lookPath(tool); err != nil {
		return CheckResult{Name: "Push", Passed: false, Message: tool + " not found in PATH"}
	}
	return CheckResult{Name: "Push", Passed: true, Message: tool}
}

// CheckScriptShell verifies the interpreter used for script commands.
func CheckScriptShell(shell notify.Shell, lookPath func(string) (string, error)) CheckResult {
	name, _ := shell.Interpreter()
	if _, err := lookPath(name); err != nil {
		return CheckResult{Name: "Script shell", Passed: false, Message: name + " not found in PATH"}
	}
	return CheckResult{Name: "Script shell", Passed: true, Message: name}
}

// CheckWSLRoot reports the cached WSL root probe.
func CheckWSLRoot(root func() wsl.Root) CheckResult {
	r := root()
	if !r.Resolved {
		return CheckResult{
			Name:    "WSL root",
			Passed:  false,
			Message: "could not resolve the distribution root; Linux paths are passed to Windows untranslated",
		}
	}
	return CheckResult{Name: "WSL root", Passed: true, Message: r.Path}
}

// CheckProjects flags relay-enabled projects that have no topic.
func CheckProjects(projects map[string]relay.Project) []CheckResult {
	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)

	var results []CheckResult
	for _, name := range names {
		p := projects[name]
		if !p.NtfyEnabled {
			continue
		}
		check := CheckResult{Name: "Relay " + name}
		if p.NtfyTopic == "" {
			check.Message = "ntfy_enabled but ntfy_topic is empty; nothing will be sent"
		} else {
			check.Passed = true
			check.Message = relay.TopicURL(p.ServerURL(), p.NtfyTopic)
		}
		results = append(results, check)
	}
	return results
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	var b strings.Builder
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "%s %s: %s\n", green("✓"), check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "%s %s: %s\n", red("✗"), check.Name, check.Message)
		}
	}
	return b.String()
}
