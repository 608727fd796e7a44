package notify

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ariel-frischer/tasknotify/internal/events"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/ariel-frischer/tasknotify/internal/wsl"
	"github.com/sirupsen/logrus"
)

// ConfigSource provides the channel configuration. Snapshot must return a
// copy that later configuration updates cannot change.
type ConfigSource interface {
	Snapshot() ChannelConfig
}

// ConfigFunc adapts a function to ConfigSource.
type ConfigFunc func() ChannelConfig

// Snapshot implements ConfigSource.
func (f ConfigFunc) Snapshot() ChannelConfig { return f() }

// StaticConfig is a ConfigSource that always returns the same configuration.
func StaticConfig(cfg ChannelConfig) ConfigSource {
	return ConfigFunc(func() ChannelConfig { return cfg })
}

// Dispatcher fans notifications out to the enabled channels.
type Dispatcher struct {
	config    ConfigSource
	deps      StrategyDeps
	strategy  Strategy
	runner    Runner
	shell     Shell
	sounds    SoundResolver
	publisher events.Publisher
	logger    logrus.FieldLogger

	inflight sync.WaitGroup
}

// NewDispatcher creates a dispatcher for the current platform.
func NewDispatcher(config ConfigSource, logger logrus.FieldLogger) *Dispatcher {
	if logger == nil {
		logger = logging.Component("notify")
	}

	platform := DetectPlatform()
	runner := ExecRunner{Logger: logger}

	deps := StrategyDeps{
		Runner:      runner,
		NativeToast: nativeToast(),
		Logger:      logger,
	}
	if platform == PlatformBridgedHost && runtime.GOOS == "linux" {
		deps.Translator = wsl.Default()
		deps.ToastScript = NewToastScript(DefaultCacheDir())
	}

	return &Dispatcher{
		config:   config,
		deps:     deps,
		strategy: NewStrategy(platform, deps),
		runner:   runner,
		shell:    HostShell(),
		sounds:   NewPlatformSounds(platform, logger),
		logger:   logger,
	}
}

// WithPublisher attaches the push-event bus used by the browser channel.
func (d *Dispatcher) WithPublisher(p events.Publisher) *Dispatcher {
	d.publisher = p
	return d
}

// WithRunner replaces the process runner for scripts and the platform strategy.
func (d *Dispatcher) WithRunner(r Runner) *Dispatcher {
	d.runner = r
	d.deps.Runner = r
	d.strategy = NewStrategy(d.strategy.Platform(), d.deps)
	return d
}

// WithStrategy replaces the platform strategy.
func (d *Dispatcher) WithStrategy(s Strategy) *Dispatcher {
	d.strategy = s
	return d
}

// WithShell sets the quoting rules and interpreter for scripts.
func (d *Dispatcher) WithShell(s Shell) *Dispatcher {
	d.shell = s
	return d
}

// WithSoundResolver replaces the sound file resolver.
func (d *Dispatcher) WithSoundResolver(r SoundResolver) *Dispatcher {
	d.sounds = r
	return d
}

// Platform returns the platform the dispatcher delivers for.
func (d *Dispatcher) Platform() Platform {
	return d.strategy.Platform()
}

// Notify sends a notification without context.
func (d *Dispatcher) Notify(title, message string) {
	d.NotifyWithContext(title, message, NotificationContext{})
}

// NotifyWithContext launches every enabled channel and returns without
// waiting for them. The configuration is read once per call.
func (d *Dispatcher) NotifyWithContext(title, message string, nctx NotificationContext) {
	cfg := d.config.Snapshot()
	if !cfg.AnyEnabled() {
		d.logger.WithField("title", title).Debug("All notification channels disabled, skipping")
		return
	}

	d.logger.WithFields(logrus.Fields{
		"title": title,
		"event": nctx.Event.String(),
	}).Debug("Dispatching notification")

	if cfg.SoundEnabled {
		soundFile := cfg.SoundFile
		d.detach("sound", func() error { return d.playSound(soundFile) })
	}

	if cfg.PushEnabled {
		d.detach("push", func() error { return d.strategy.Push(title, message) })
	}

	if cfg.ScriptEnabled && cfg.ScriptCommand != "" {
		command := cfg.ScriptCommand
		d.detach("script", func() error { return d.runScript(command, title, message, nctx) })
	}

	if cfg.BrowserEnabled {
		if d.publisher == nil {
			d.logger.Debug("Browser notifications enabled but no event bus attached, skipping")
		} else {
			d.detach("browser", func() error { return d.publishBrowser(title, message, nctx) })
		}
	}
}

// Wait blocks until every channel launched so far has finished. A short-lived
// process calls it before exiting; it must not run concurrently with Notify.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// detach runs fn in its own goroutine. Errors and panics are logged there,
// since nothing observes the goroutine afterwards.
func (d *Dispatcher) detach(channel string, fn func() error) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		logger := d.logger.WithField("channel", channel)
		defer func() {
			if r := recover(); r != nil {
				logger.WithField("panic", r).Error("Notification channel panicked")
			}
		}()

		if err := fn(); err != nil {
			logger.WithError(err).Error("Notification channel failed")
		}
	}()
}

func (d *Dispatcher) playSound(soundFile string) error {
	path, err := d.sounds.ResolveSound(soundFile)
	if err != nil {
		d.logger.WithError(err).Warn("No sound file resolved, falling back to the platform's plain alert")
		path = ""
	}
	return d.strategy.PlaySound(path)
}

func (d *Dispatcher) runScript(command, title, message string, nctx NotificationContext) error {
	vars := templateVars(title, message, nctx)
	fields := make(logrus.Fields, len(vars)/2)
	for i := 0; i < len(vars); i += 2 {
		fields[vars[i]] = vars[i+1]
	}
	d.logger.WithFields(fields).Debug("Rendering script template")

	rendered := RenderScript(command, title, message, nctx, d.shell)
	name, flag := d.shell.Interpreter()
	return d.runner.Start(name, flag, rendered)
}

func (d *Dispatcher) publishBrowser(title, message string, nctx NotificationContext) error {
	event, err := events.NewBrowserNotificationEvent(events.BrowserNotification{
		Title:      title,
		Message:    message,
		Event:      nctx.Event.String(),
		TaskTitle:  nctx.TaskTitle,
		TaskBranch: nctx.TaskBranch,
		Executor:   nctx.Executor,
		ToolName:   nctx.ToolName,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return d.publisher.Publish(event)
}
