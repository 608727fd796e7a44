package notify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/sirupsen/logrus"
)

// hostPowerShell is the PowerShell binary used on Windows and from WSL.
const hostPowerShell = "powershell.exe"

// linuxPushTimeoutMs is how long notify-send asks the desktop to show a notification.
const linuxPushTimeoutMs = 10000

// Strategy delivers the platform-specific channels. Implementations launch
// external programs and return once they are spawned.
type Strategy interface {
	Platform() Platform
	PlaySound(file string) error
	Push(title, message string) error
}

// PathTranslator maps a local path to one the host interpreter can open,
// falling back to the untranslated path. Satisfied by *wsl.Translator.
type PathTranslator interface {
	TranslateOrRaw(path string) string
}

// StrategyDeps are the collaborators a Strategy may use.
type StrategyDeps struct {
	Runner      Runner
	Translator  PathTranslator
	ToastScript ToastScriptResolver
	Bell        func() error
	NativeToast func(title, message string) error
	Logger      logrus.FieldLogger
}

// NewStrategy returns the Strategy for p. For unsupported platforms, it
// returns a no-op strategy.
func NewStrategy(p Platform, deps StrategyDeps) Strategy {
	if deps.Logger == nil {
		deps.Logger = logging.Component("notify")
	}
	if deps.Bell == nil {
		deps.Bell = terminalBell
	}

	switch p {
	case PlatformPrimaryDesktop:
		return &linuxDesktop{runner: deps.Runner, bell: deps.Bell, logger: deps.Logger}
	case PlatformSecondaryDesktop:
		return &macDesktop{runner: deps.Runner}
	case PlatformBridgedHost:
		return &bridgedHost{
			runner:      deps.Runner,
			translator:  deps.Translator,
			toastScript: deps.ToastScript,
			nativeToast: deps.NativeToast,
		}
	default:
		return noopStrategy{}
	}
}

// linuxDesktop plays sound through PulseAudio or ALSA and pushes through
// the freedesktop notification service.
type linuxDesktop struct {
	runner Runner
	bell   func() error
	logger logrus.FieldLogger
}

func (s *linuxDesktop) Platform() Platform { return PlatformPrimaryDesktop }

// PlaySound tries paplay, then aplay, then the terminal bell. An empty file
// goes straight to the bell.
func (s *linuxDesktop) PlaySound(file string) error {
	var errs []error
	players := []string{"paplay", "aplay"}
	if file == "" {
		players = nil
	}
	for _, player := range players {
		err := s.runner.Start(player, file)
		if err == nil {
			return nil
		}
		s.logger.WithError(err).WithField("player", player).Debug("Sound player unavailable, trying next")
		errs = append(errs, err)
	}

	if err := s.bell(); err != nil {
		errs = append(errs, err)
		return fmt.Errorf("no sound player succeeded: %w", errors.Join(errs...))
	}
	return nil
}

func (s *linuxDesktop) Push(title, message string) error {
	return s.runner.Start("notify-send",
		"--app-name=tasknotify",
		fmt.Sprintf("--expire-time=%d", linuxPushTimeoutMs),
		"--",
		title,
		message,
	)
}

// macDesktop uses afplay and osascript.
type macDesktop struct {
	runner Runner
}

func (s *macDesktop) Platform() Platform { return PlatformSecondaryDesktop }

func (s *macDesktop) PlaySound(file string) error {
	if file == "" {
		return ErrNoSoundFile
	}
	return s.runner.Start("afplay", file)
}

func (s *macDesktop) Push(title, message string) error {
	script := fmt.Sprintf(`display notification "%s" with title "%s" sound name "Glass"`,
		escapeAppleScript(message), escapeAppleScript(title))
	return s.runner.Start("osascript", "-e", script)
}

// escapeAppleScript escapes a value for an AppleScript double-quoted string.
func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// bridgedHost delivers through powershell.exe. Under WSL every local path is
// translated to the distribution's UNC root first.
type bridgedHost struct {
	runner      Runner
	translator  PathTranslator
	toastScript ToastScriptResolver
	nativeToast func(title, message string) error
}

func (s *bridgedHost) Platform() Platform { return PlatformBridgedHost }

func (s *bridgedHost) hostPath(path string) string {
	if s.translator == nil {
		return path
	}
	return s.translator.TranslateOrRaw(path)
}

func (s *bridgedHost) PlaySound(file string) error {
	if file == "" {
		return ErrNoSoundFile
	}
	script := fmt.Sprintf(`(New-Object Media.SoundPlayer %s).PlaySync()`, quotePowerShell(s.hostPath(file)))
	return s.runner.Start(hostPowerShell, "-c", script)
}

func (s *bridgedHost) Push(title, message string) error {
	if s.nativeToast != nil {
		return s.nativeToast(title, message)
	}
	if s.toastScript == nil {
		return errors.New("no toast script available")
	}

	scriptPath, err := s.toastScript.ToastScriptPath()
	if err != nil {
		return fmt.Errorf("failed to get PowerShell script: %w", err)
	}

	return s.runner.Start(hostPowerShell,
		"-NoProfile",
		"-ExecutionPolicy", "Bypass",
		"-File", s.hostPath(scriptPath),
		"-Title", title,
		"-Message", message,
	)
}

// quotePowerShell single-quotes s, doubling embedded single quotes.
func quotePowerShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// noopStrategy is a strategy that does nothing (for unsupported platforms)
type noopStrategy struct{}

func (noopStrategy) Platform() Platform { return PlatformUnsupported }
func (noopStrategy) PlaySound(string) error { return nil }
func (noopStrategy) Push(string, string) error { return nil }
