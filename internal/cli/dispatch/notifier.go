package dispatch

import (
	"context"
	"fmt"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/ariel-frischer/tasknotify/internal/natsbus"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
)

// localDispatcher is the part of *notify.Dispatcher the commands use.
type localDispatcher interface {
	NotifyWithContext(title, message string, nctx notify.NotificationContext)
	Wait()
}

// projectRelay is satisfied by *relay.Client.
type projectRelay interface {
	NotifyProject(ctx context.Context, project relay.Project, title, message string)
}

// relayingNotifier sends every notification to the local channels and, when
// a project is set, to that project's relay topic. Cancellation of ctx does
// not stop the relay request: the task_failed notice for an interrupted task
// is sent after ctx is done. The relay client's timeout bounds it instead.
type relayingNotifier struct {
	ctx        context.Context
	dispatcher localDispatcher
	relay      projectRelay
	project    *relay.Project
}

// NotifyWithContext implements lifecycle.Notifier.
func (n *relayingNotifier) NotifyWithContext(title, message string, nctx notify.NotificationContext) {
	n.dispatcher.NotifyWithContext(title, message, nctx)
	if n.project != nil && n.relay != nil {
		n.relay.NotifyProject(n.relayContext(), *n.project, title, message)
	}
}

func (n *relayingNotifier) relayContext() context.Context {
	if n.ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(n.ctx)
}

// Wait blocks until the detached local channels have finished.
func (n *relayingNotifier) Wait() {
	n.dispatcher.Wait()
}

// lookupProject resolves --project. An empty name means no relay.
func lookupProject(cfg *config.Configuration, name string) (*relay.Project, error) {
	if name == "" {
		return nil, nil
	}
	p, ok := cfg.Projects[name]
	if !ok {
		return nil, shared.WithExitCode(fmt.Errorf("unknown project %q", name), shared.ExitInvalidArguments)
	}
	return &p, nil
}

// newDispatcher builds the local dispatcher. When the browser channel is on
// and a NATS URL is configured, browser events are published there so a
// running `tasknotify serve` or any other subscriber can pick them up.
func newDispatcher(cfg *config.Configuration) (*notify.Dispatcher, func()) {
	d := notify.NewDispatcher(notify.StaticConfig(cfg.Notifications), logging.Component("notify"))
	if !cfg.Notifications.BrowserEnabled || cfg.NATS.URL == "" {
		return d, func() {}
	}

	pub, err := natsbus.Connect(cfg.NATS.URL, cfg.NATS.Subject, logging.Component("nats"))
	if err != nil {
		logging.Log.WithError(err).Warn("Browser notifications disabled: NATS unavailable")
		return d, func() {}
	}
	return d.WithPublisher(pub), pub.Close
}
