// Package serve provides the `tasknotify serve` command: the HTTP API, the
// websocket browser stream, and the optional NATS bridge.
package serve

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	"github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/ariel-frischer/tasknotify/internal/events"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/ariel-frischer/tasknotify/internal/natsbus"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/ariel-frischer/tasknotify/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the notification API and browser event stream",
	Long: `Serve the notification API and the browser event stream.

Endpoints:
  GET  /api/health                  platform, websocket clients and bus subscribers
  POST /api/notify                  dispatch to the enabled local channels
  POST /api/projects/{name}/notify  send to the project's relay topic only
  GET  /api/events/ws               websocket stream of browser notifications

When nats.url is set, or nats.embedded starts an in-process server, browser
notifications are also published on nats.subject.

Send SIGHUP to reload the configuration without restarting.`,
	Example: `  # Listen on the configured address
  tasknotify serve

  # Listen on all interfaces with an embedded NATS server
  TASKNOTIFY_NATS__EMBEDDED=true tasknotify serve --addr 0.0.0.0:7878`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// Register adds the serve command to the root command.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(serveCmd)
}

func init() {
	serveCmd.GroupID = shared.GroupServices
	serveCmd.Flags().String("addr", "", "Listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	store, err := config.LoadStore(shared.ConfigOptions(cmd))
	if err != nil {
		return err
	}
	cfg := store.Config()
	shared.InitLogging(cmd, cfg.LogLevel, cfg.LogFormat)

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, store, ln, logging.Component("serve"))
}

// serve wires the bus, the optional NATS bridge, the dispatcher, and the HTTP
// server, and blocks until ctx is cancelled.
func serve(ctx context.Context, store *config.Store, ln net.Listener, logger logrus.FieldLogger) error {
	bus := events.NewBus()

	bridge, err := startBridge(store.Config().NATS, logger)
	if err != nil {
		ln.Close()
		return err
	}
	defer bridge.Close()

	var publisher events.Publisher = bus
	if bridge.publisher != nil {
		publisher = events.Fanout{bus, bridge.publisher}
	}

	dispatcher := notify.NewDispatcher(store, logging.Component("notify")).WithPublisher(publisher)
	defer dispatcher.Wait()

	srv := server.New(server.Deps{
		Bus:      bus,
		Notifier: dispatcher,
		Projects: store,
		Relay:    relay.NewClient(nil, logging.Component("relay")),
		Platform: dispatcher.Platform(),
		Logger:   logging.Component("server"),
	})

	go reloadOnHangup(ctx, store, logger)

	return srv.Serve(ctx, ln)
}

// bridge is the NATS side of the browser channel. Both fields are nil when
// NATS is not configured.
type bridge struct {
	embedded  *natsbus.EmbeddedServer
	publisher *natsbus.Publisher
}

func startBridge(cfg config.NATSConfig, logger logrus.FieldLogger) (*bridge, error) {
	b := &bridge{}
	url := cfg.URL

	if cfg.Embedded {
		b.embedded = natsbus.NewEmbeddedServer(natsbus.EmbeddedServerConfig{Port: cfg.Port})
		if err := b.embedded.Start(); err != nil {
			return nil, fmt.Errorf("starting embedded NATS: %w", err)
		}
		url = b.embedded.URL()
		logger.WithField("url", url).Info("Embedded NATS server started")
	}

	if url == "" {
		return b, nil
	}

	pub, err := natsbus.Connect(url, cfg.Subject, logging.Component("nats"))
	if err != nil {
		b.Close()
		return nil, err
	}
	b.publisher = pub
	logger.WithFields(logrus.Fields{"url": url, "subject": pub.Subject()}).Info("Publishing browser notifications to NATS")
	return b, nil
}

// Close closes the connection, then stops the embedded server.
func (b *bridge) Close() {
	if b.publisher != nil {
		b.publisher.Close()
	}
	if b.embedded != nil {
		b.embedded.Shutdown()
	}
}

// reloadOnHangup reloads store on every SIGHUP until ctx is done. A failed
// reload keeps the previous configuration.
func reloadOnHangup(ctx context.Context, store *config.Store, logger logrus.FieldLogger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := store.Reload(); err != nil {
				logger.WithError(err).Error("Config reload failed, keeping previous configuration")
				continue
			}
			logger.Info("Configuration reloaded")
		}
	}
}
