// Package server exposes the notification dispatcher over HTTP and streams
// browser notification events to websocket clients.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/events"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// Notifier dispatches a notification to the local channels.
type Notifier interface {
	NotifyWithContext(title, message string, nctx notify.NotificationContext)
}

// ProjectSource looks up per-project relay settings.
type ProjectSource interface {
	Project(name string) (relay.Project, bool)
}

// Relay sends a notification to a project's relay topic.
type Relay interface {
	NotifyProject(ctx context.Context, project relay.Project, title, message string)
}

// Deps are the collaborators the server routes requests to.
type Deps struct {
	Bus      *events.Bus
	Notifier Notifier
	Projects ProjectSource
	Relay    Relay
	Platform notify.Platform
	Logger   logrus.FieldLogger
}

// Server is the HTTP API and websocket event stream.
type Server struct {
	deps     Deps
	router   *mux.Router
	hub      *Hub
	validate *validator.Validate
	logger   logrus.FieldLogger
}

// New creates a server and registers its routes.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.Component("server")
	}
	if deps.Bus == nil {
		deps.Bus = events.NewBus()
	}

	s := &Server{
		deps:     deps,
		hub:      NewHub(deps.Logger),
		validate: validator.New(),
		logger:   deps.Logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/notify", s.handleNotify).Methods(http.MethodPost)
	api.HandleFunc("/projects/{name}/notify", s.handleProjectNotify).Methods(http.MethodPost)
	api.HandleFunc("/events/ws", s.handleWebSocket)
}

// Handler returns the HTTP handler. RunHub must be running for websocket
// clients to receive events.
func (s *Server) Handler() http.Handler {
	return s.router
}

// RunHub starts the websocket hub and forwards browser notification events
// from the bus to it. Both stop when ctx is cancelled.
func (s *Server) RunHub(ctx context.Context) {
	go s.hub.Run(ctx)

	ch, cancel := s.deps.Bus.Subscribe(events.EventBrowserNotification)
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				s.hub.BroadcastJSON(event)
			}
		}
	}()
}

// Serve runs the hub and the HTTP server on ln until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.RunHub(ctx)

	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("HTTP server shutdown incomplete")
		}
	}()

	s.logger.WithField("addr", ln.Addr().String()).Info("Server listening")
	if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
