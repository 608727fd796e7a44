package notify

import "fmt"

// NotificationEvent identifies the lifecycle event behind a notification.
type NotificationEvent string

const (
	// EventTaskCompleted is sent when a task finishes successfully
	EventTaskCompleted NotificationEvent = "task_completed"
	// EventTaskFailed is sent when a task fails
	EventTaskFailed NotificationEvent = "task_failed"
	// EventApprovalNeeded is sent when a tool call waits for user approval
	EventApprovalNeeded NotificationEvent = "approval_needed"
)

// String returns the stable identifier used in scripts and payloads.
func (e NotificationEvent) String() string {
	return string(e)
}

// Valid reports whether e is one of the known events.
func (e NotificationEvent) Valid() bool {
	switch e {
	case EventTaskCompleted, EventTaskFailed, EventApprovalNeeded:
		return true
	default:
		return false
	}
}

// ParseEvent converts an identifier into a NotificationEvent. The empty
// string parses to the empty (absent) event.
func ParseEvent(s string) (NotificationEvent, error) {
	if s == "" {
		return "", nil
	}
	e := NotificationEvent(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown notification event %q (valid: %s, %s, %s)",
			s, EventTaskCompleted, EventTaskFailed, EventApprovalNeeded)
	}
	return e, nil
}

// NotificationContext carries optional details about the notification. An
// empty field means the value is absent.
type NotificationContext struct {
	Event      NotificationEvent
	TaskTitle  string
	TaskBranch string
	Executor   string
	ToolName   string
}

// ChannelConfig holds channel enablement and per-channel settings.
// Configuration is loaded from the config hierarchy (env > project > user > defaults).
type ChannelConfig struct {
	// SoundEnabled plays a sound on every notification (default: true)
	SoundEnabled bool `koanf:"sound_enabled" yaml:"sound_enabled" json:"sound_enabled"`

	// SoundFile is an optional custom sound file path; empty uses the platform default
	SoundFile string `koanf:"sound_file" yaml:"sound_file" json:"sound_file"`

	// PushEnabled shows a native OS notification (default: true)
	PushEnabled bool `koanf:"push_enabled" yaml:"push_enabled" json:"push_enabled"`

	// ScriptEnabled runs ScriptCommand on every notification (default: false)
	ScriptEnabled bool `koanf:"script_enabled" yaml:"script_enabled" json:"script_enabled"`

	// ScriptCommand is the user command template with {{placeholder}} variables
	ScriptCommand string `koanf:"script_command" yaml:"script_command" json:"script_command" validate:"required_if=ScriptEnabled true"`

	// BrowserEnabled publishes a browser notification event (default: false)
	BrowserEnabled bool `koanf:"browser_enabled" yaml:"browser_enabled" json:"browser_enabled"`
}

// DefaultChannelConfig returns a ChannelConfig with default values
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		SoundEnabled:   true,
		SoundFile:      "",
		PushEnabled:    true,
		ScriptEnabled:  false,
		ScriptCommand:  "",
		BrowserEnabled: false,
	}
}

// AnyEnabled reports whether at least one channel is enabled.
func (c ChannelConfig) AnyEnabled() bool {
	return c.SoundEnabled || c.PushEnabled || (c.ScriptEnabled && c.ScriptCommand != "") || c.BrowserEnabled
}
