package natsbus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/events"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	nc "github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// DefaultSubject is the subject browser notification events are published on.
const DefaultSubject = "tasknotify.events"

// closeTimeout bounds how long Close waits for buffered events to reach the server.
const closeTimeout = 2 * time.Second

// Publisher publishes bus events as JSON on a NATS subject. It implements
// events.Publisher.
type Publisher struct {
	conn    *nc.Conn
	subject string
	logger  logrus.FieldLogger
	closed  chan struct{}
}

// Connect dials url with reconnect handling and returns a publisher for subject.
func Connect(url, subject string, logger logrus.FieldLogger) (*Publisher, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = logging.Component("nats")
	}

	closed := make(chan struct{})
	opts := []nc.Option{
		nc.Name("tasknotify"),
		nc.DrainTimeout(closeTimeout),
		nc.ClosedHandler(func(*nc.Conn) {
			close(closed)
		}),
		nc.ReconnectWait(2 * time.Second),
		nc.MaxReconnects(-1),
		nc.DisconnectErrHandler(func(_ *nc.Conn, err error) {
			if err != nil {
				logger.WithError(err).Warn("NATS disconnected")
			}
		}),
		nc.ReconnectHandler(func(conn *nc.Conn) {
			logger.WithField("url", conn.ConnectedUrl()).Info("NATS reconnected")
		}),
	}

	conn, err := nc.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{conn: conn, subject: subject, logger: logger, closed: closed}, nil
}

// Publish implements events.Publisher.
func (p *Publisher) Publish(event *events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.subject, err)
	}
	return nil
}

// Subject returns the subject events are published on.
func (p *Publisher) Subject() string {
	return p.subject
}

// Conn exposes the underlying connection.
func (p *Publisher) Conn() *nc.Conn {
	return p.conn
}

// Close flushes pending events, drains the connection and waits until it is
// closed, so events published just before a short-lived process exits are
// not lost.
func (p *Publisher) Close() {
	if p.conn == nil || p.conn.IsClosed() {
		return
	}
	if err := p.conn.FlushTimeout(closeTimeout); err != nil {
		p.logger.WithError(err).Warn("Failed to flush NATS connection")
	}
	if err := p.conn.Drain(); err != nil {
		p.logger.WithError(err).Warn("Failed to drain NATS connection")
		p.conn.Close()
		return
	}

	select {
	case <-p.closed:
	case <-time.After(closeTimeout + time.Second):
		p.logger.Warn("Timed out waiting for NATS connection to close")
		p.conn.Close()
	}
}
