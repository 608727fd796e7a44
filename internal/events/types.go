// Package events is the in-process push-event bus that carries browser
// notifications to connected clients.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of event
type EventType string

// Event type constants
const (
	EventBrowserNotification EventType = "browser_notification"
)

// Event represents a system event that can be published and subscribed to
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// BrowserNotification is the payload pushed to browsers for every dispatched
// notification. Event is the event identifier, empty when the notification
// carried none.
type BrowserNotification struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	Event      string `json:"event"`
	TaskTitle  string `json:"task_title,omitempty"`
	TaskBranch string `json:"task_branch,omitempty"`
	Executor   string `json:"executor,omitempty"`
	ToolName   string `json:"tool_name,omitempty"`
}

// NewEvent creates a new event with auto-generated ID and timestamp
func NewEvent(eventType EventType, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", eventType, err)
	}
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   data,
		CreatedAt: time.Now(),
	}, nil
}

// NewBrowserNotificationEvent wraps n in a browser_notification event.
func NewBrowserNotificationEvent(n BrowserNotification) (*Event, error) {
	return NewEvent(EventBrowserNotification, n)
}

// DecodeBrowserNotification extracts the payload of a browser_notification event.
func DecodeBrowserNotification(e Event) (BrowserNotification, error) {
	var n BrowserNotification
	if e.Type != EventBrowserNotification {
		return n, fmt.Errorf("unexpected event type %q", e.Type)
	}
	if err := json.Unmarshal(e.Payload, &n); err != nil {
		return n, fmt.Errorf("decoding browser notification: %w", err)
	}
	return n, nil
}
