package notify

import (
	"runtime"
	"strings"
)

// Shell selects the quoting rules and interpreter for script commands.
type Shell int

const (
	// ShellPOSIX runs commands with sh -c and single-quotes values
	ShellPOSIX Shell = iota
	// ShellWindows runs commands with cmd /C and double-quotes values
	ShellWindows
)

// HostShell returns the shell of the current operating system.
func HostShell() Shell {
	if runtime.GOOS == "windows" {
		return ShellWindows
	}
	return ShellPOSIX
}

// Interpreter returns the program and flag used to run a command string.
func (s Shell) Interpreter() (name, flag string) {
	if s == ShellWindows {
		return "cmd", "/C"
	}
	return "sh", "-c"
}

// Placeholder tokens recognised in script command templates.
const (
	PlaceholderTitle      = "{{title}}"
	PlaceholderMessage    = "{{message}}"
	PlaceholderEvent      = "{{event}}"
	PlaceholderTaskTitle  = "{{task_title}}"
	PlaceholderTaskBranch = "{{task_branch}}"
	PlaceholderExecutor   = "{{executor}}"
	PlaceholderToolName   = "{{tool_name}}"
)

// IsShellSafe reports whether v can be passed to the shell unquoted: it is
// non-empty and made only of ASCII letters, digits, '_', '-', '.', '/' and,
// for ShellWindows, '\'.
func (s Shell) IsShellSafe(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '-', c == '.', c == '/':
		case c == '\\' && s == ShellWindows:
		default:
			return false
		}
	}
	return true
}

// Escape quotes v for s unless it is already shell-safe.
func (s Shell) Escape(v string) string {
	if s.IsShellSafe(v) {
		return v
	}
	if s == ShellWindows {
		return EscapeWindows(v)
	}
	return EscapePOSIX(v)
}

// EscapePOSIX wraps v in single quotes. Each embedded single quote closes the
// quoting, emits a double-quoted quote and reopens it: it's -> 'it'"'"'s'.
func EscapePOSIX(v string) string {
	if v == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(v, "'", `'"'"'`) + "'"
}

// EscapeWindows wraps v in double quotes for cmd.exe, doubling embedded
// double quotes.
func EscapeWindows(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// templateVars maps every placeholder to its raw value; absent context
// fields map to the empty string.
func templateVars(title, message string, nctx NotificationContext) []string {
	return []string{
		PlaceholderTitle, title,
		PlaceholderMessage, message,
		PlaceholderEvent, nctx.Event.String(),
		PlaceholderTaskTitle, nctx.TaskTitle,
		PlaceholderTaskBranch, nctx.TaskBranch,
		PlaceholderExecutor, nctx.Executor,
		PlaceholderToolName, nctx.ToolName,
	}
}

// RenderScript substitutes every placeholder in command with its escaped
// value. Substitution is a single left-to-right pass, so placeholder text
// inside a value is never expanded again.
func RenderScript(command, title, message string, nctx NotificationContext, shell Shell) string {
	vars := templateVars(title, message, nctx)
	pairs := make([]string, len(vars))
	for i := 0; i < len(vars); i += 2 {
		pairs[i] = vars[i]
		pairs[i+1] = shell.Escape(vars[i+1])
	}
	return strings.NewReplacer(pairs...).Replace(command)
}
