// Package lifecycle wraps task execution with lifecycle notifications. Each
// wrapper runs the task, times it, and reports TaskCompleted or TaskFailed
// to the notifier with the task's context.
//
// The wrappers never wait for notification delivery and never let a
// notifier failure or panic change the task's result.
package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/notify"
)

// Notifier is satisfied by *notify.Dispatcher.
type Notifier interface {
	NotifyWithContext(title, message string, nctx notify.NotificationContext)
}

// Task describes the unit of work being reported on. Empty fields are
// left out of messages.
type Task struct {
	Title    string
	Branch   string
	Executor string
}

func (t Task) context(event notify.NotificationEvent) notify.NotificationContext {
	return notify.NotificationContext{
		Event:      event,
		TaskTitle:  t.Title,
		TaskBranch: t.Branch,
		Executor:   t.Executor,
	}
}

// Run executes fn and notifies its outcome.
// If n is nil, fn is still executed but no notification is sent.
// The original error from fn is always returned unchanged.
func Run(n Notifier, task Task, fn func() error) error {
	start := time.Now()
	fnErr := fn()
	notifyOutcome(n, task, fnErr, time.Since(start))
	return fnErr
}

// RunWithContext wraps context-aware task execution.
// If the context is already cancelled, returns its error immediately
// without executing fn. The failure is still notified.
func RunWithContext(ctx context.Context, n Notifier, task Task, fn func(context.Context) error) error {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		notifyOutcome(n, task, err, time.Since(start))
		return err
	}

	fnErr := fn(ctx)
	notifyOutcome(n, task, fnErr, time.Since(start))
	return fnErr
}

// RequestApproval notifies that toolName is waiting for the user.
func RequestApproval(n Notifier, task Task, toolName string) {
	title, message := ApprovalMessage(task, toolName)
	nctx := task.context(notify.EventApprovalNeeded)
	nctx.ToolName = toolName
	safeNotify(n, title, message, nctx)
}

// CompletedMessage builds the title and body for a successful task.
func CompletedMessage(task Task, duration time.Duration) (title, message string) {
	title = "Task Complete: " + task.Title
	message = fmt.Sprintf("✅ '%s' completed successfully", task.Title)
	return title, message + details(task, duration)
}

// FailedMessage builds the title and body for a failed task.
func FailedMessage(task Task, err error, duration time.Duration) (title, message string) {
	title = "Task Failed: " + task.Title
	message = fmt.Sprintf("❌ '%s' execution failed", task.Title)
	if err != nil {
		message += "\nError: " + firstLine(err.Error())
	}
	return title, message + details(task, duration)
}

// ApprovalMessage builds the title and body for an approval request.
func ApprovalMessage(task Task, toolName string) (title, message string) {
	title = "Approval Needed: " + task.Title
	if toolName == "" {
		toolName = "A tool"
	}
	message = fmt.Sprintf("🔔 %s is waiting for approval", toolName)
	return title, message + details(task, 0)
}

func notifyOutcome(n Notifier, task Task, err error, duration time.Duration) {
	if err == nil {
		title, message := CompletedMessage(task, duration)
		safeNotify(n, title, message, task.context(notify.EventTaskCompleted))
		return
	}
	title, message := FailedMessage(task, err, duration)
	safeNotify(n, title, message, task.context(notify.EventTaskFailed))
}

// safeNotify calls the notifier with panic recovery.
func safeNotify(n Notifier, title, message string, nctx notify.NotificationContext) {
	if n == nil {
		return
	}
	defer func() { _ = recover() }()
	n.NotifyWithContext(title, message, nctx)
}

func details(task Task, duration time.Duration) string {
	var b strings.Builder
	if task.Branch != "" {
		b.WriteString("\nBranch: " + task.Branch)
	}
	if task.Executor != "" {
		b.WriteString("\nExecutor: " + task.Executor)
	}
	if d := duration.Round(time.Second); d > 0 {
		b.WriteString("\nDuration: " + d.String())
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
