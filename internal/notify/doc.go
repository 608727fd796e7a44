// Package notify delivers task lifecycle notifications for tasknotify.
//
// A Dispatcher reads a snapshot of the channel configuration on every call
// and fans out to the enabled channels, each launched as a detached task:
//
//   - Sound: plays an audio file through a platform player
//   - Push: native OS notification (osascript, notify-send, Windows toast)
//   - Script: a user command template rendered with shell-escaped values
//   - Browser: a structured event published to the push-event bus
//
// Failures inside a channel are logged and swallowed. A channel never
// affects another channel or the caller.
//
// # Platform Support
//
//   - Linux desktop: paplay, then aplay, then the terminal bell; notify-send
//   - macOS: afplay; osascript
//   - Windows and WSL2: powershell.exe for sound and the toast script, with
//     WSL paths translated to the distribution's UNC root first; native
//     Windows push goes through go-toast
//
// # Script placeholders
//
// {{title}}, {{message}}, {{event}}, {{task_title}}, {{task_branch}},
// {{executor}} and {{tool_name}} are replaced in a single pass. Values are
// quoted for the host shell so they cannot add commands.
//
// # Usage
//
//	d := notify.NewDispatcher(store, logger).WithPublisher(bus)
//	d.NotifyWithContext("Task Complete: fix login", "done", notify.NotificationContext{
//		Event:     notify.EventTaskCompleted,
//		TaskTitle: "fix login",
//	})
package notify
