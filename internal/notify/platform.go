package notify

import (
	"runtime"

	"github.com/ariel-frischer/tasknotify/internal/wsl"
)

// Platform is the delivery strategy family for the current host.
type Platform int

const (
	// PlatformUnsupported delivers nothing
	PlatformUnsupported Platform = iota
	// PlatformPrimaryDesktop is a Linux desktop
	PlatformPrimaryDesktop
	// PlatformSecondaryDesktop is macOS
	PlatformSecondaryDesktop
	// PlatformBridgedHost is native Windows or a Linux process under WSL2,
	// both delivered through powershell.exe
	PlatformBridgedHost
)

// String returns the platform name used in logs and doctor output.
func (p Platform) String() string {
	switch p {
	case PlatformPrimaryDesktop:
		return "linux-desktop"
	case PlatformSecondaryDesktop:
		return "macos"
	case PlatformBridgedHost:
		if runtime.GOOS == "windows" {
			return "windows"
		}
		return "wsl2"
	default:
		return "unsupported"
	}
}

// DetectPlatform selects the platform for this process.
func DetectPlatform() Platform {
	return platformFor(runtime.GOOS, wsl.IsWSL2())
}

func platformFor(goos string, isWSL bool) Platform {
	switch goos {
	case "linux":
		if isWSL {
			return PlatformBridgedHost
		}
		return PlatformPrimaryDesktop
	case "darwin":
		return PlatformSecondaryDesktop
	case "windows":
		return PlatformBridgedHost
	default:
		return PlatformUnsupported
	}
}

// RequiredTools lists the external programs a platform delivers through.
func (p Platform) RequiredTools() []string {
	switch p {
	case PlatformPrimaryDesktop:
		return []string{"paplay", "aplay", "notify-send"}
	case PlatformSecondaryDesktop:
		return []string{"afplay", "osascript"}
	case PlatformBridgedHost:
		return []string{hostPowerShell}
	default:
		return nil
	}
}

// ToolStatus reports, for every required tool, whether it is on PATH.
func (p Platform) ToolStatus() map[string]bool {
	status := make(map[string]bool)
	for _, tool := range p.RequiredTools() {
		status[tool] = toolAvailable(tool)
	}
	return status
}
