package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NotifyRequest is the body of POST /api/notify.
type NotifyRequest struct {
	Title      string `json:"title" validate:"required"`
	Message    string `json:"message" validate:"required"`
	Event      string `json:"event,omitempty"`
	TaskTitle  string `json:"task_title,omitempty"`
	TaskBranch string `json:"task_branch,omitempty"`
	Executor   string `json:"executor,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`
}

// RelayRequest is the body of POST /api/projects/{name}/notify.
type RelayRequest struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status      string `json:"status"`
	Platform    string `json:"platform"`
	Clients     int    `json:"clients"`
	Subscribers int    `json:"subscribers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Platform:    s.deps.Platform.String(),
		Clients:     s.hub.ClientCount(),
		Subscribers: s.deps.Bus.SubscriberCount(),
	})
}

// handleNotify dispatches to the local channels and returns without waiting
// for them.
func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	if s.deps.Notifier == nil {
		s.respondError(w, http.StatusServiceUnavailable, "notifier not configured")
		return
	}

	var req NotifyRequest
	if err := s.decode(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := notify.ParseEvent(req.Event)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.deps.Notifier.NotifyWithContext(req.Title, req.Message, notify.NotificationContext{
		Event:      event,
		TaskTitle:  req.TaskTitle,
		TaskBranch: req.TaskBranch,
		Executor:   req.Executor,
		ToolName:   req.ToolName,
	})
	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched"})
}

// handleProjectNotify sends to the project's relay and waits for it. Relay
// failures are logged by the relay client and do not change the response.
func (s *Server) handleProjectNotify(w http.ResponseWriter, r *http.Request) {
	if s.deps.Projects == nil || s.deps.Relay == nil {
		s.respondError(w, http.StatusServiceUnavailable, "relay not configured")
		return
	}

	name := mux.Vars(r)["name"]
	project, ok := s.deps.Projects.Project(name)
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown project %q", name))
		return
	}

	var req RelayRequest
	if err := s.decode(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.deps.Relay.NotifyProject(r.Context(), project, req.Title, req.Message)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"project":       name,
		"relay_enabled": project.NtfyEnabled && project.NtfyTopic != "",
	})
}

// handleWebSocket upgrades to WebSocket and registers the browser with the hub
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, WebSocketBufferSize),
	}
	if !s.hub.Register(client) {
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("field %s failed %q validation", verrs[0].Field(), verrs[0].Tag())
		}
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Debug("Failed to write response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
