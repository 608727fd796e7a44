// Package relay sends per-project notifications to an ntfy-compatible
// topic-based push relay.
package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultServerURL is the public relay used when a project sets no URL.
	DefaultServerURL = "https://ntfy.sh"

	// DefaultHTTPTimeout bounds a single relay request.
	DefaultHTTPTimeout = 10 * time.Second
)

var (
	// ErrRequest means the request could not be built or sent.
	ErrRequest = errors.New("request failed")
	// ErrResponse means the relay answered with a non-2xx status.
	ErrResponse = errors.New("response error")
)

// Project carries the relay settings of one project.
type Project struct {
	Name        string `koanf:"-" json:"name" yaml:"-"`
	NtfyEnabled bool   `koanf:"ntfy_enabled" json:"ntfy_enabled" yaml:"ntfy_enabled"`
	NtfyTopic   string `koanf:"ntfy_topic" json:"ntfy_topic,omitempty" yaml:"ntfy_topic,omitempty"`
	NtfyURL     string `koanf:"ntfy_url" json:"ntfy_url,omitempty" yaml:"ntfy_url,omitempty" validate:"omitempty,url"`
}

// ServerURL returns the configured relay server or DefaultServerURL.
func (p Project) ServerURL() string {
	if p.NtfyURL == "" {
		return DefaultServerURL
	}
	return p.NtfyURL
}

// Client posts notifications to relay servers.
type Client struct {
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// NewClient creates a relay client. A nil httpClient gets DefaultHTTPTimeout.
func NewClient(httpClient *http.Client, logger logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if logger == nil {
		logger = logging.Component("relay")
	}
	return &Client{httpClient: httpClient, logger: logger}
}

// NotifyProject sends title and message to the project's relay topic if the
// project has the relay enabled and a topic set. Failures are logged, never
// returned.
func (c *Client) NotifyProject(ctx context.Context, project Project, title, message string) {
	if !project.NtfyEnabled {
		return
	}

	if project.NtfyTopic == "" {
		c.logger.WithField("project", project.Name).Debug("ntfy notifications enabled but no topic configured")
		return
	}

	if err := c.Send(ctx, project.ServerURL(), project.NtfyTopic, title, message); err != nil {
		c.logger.WithError(err).WithField("project", project.Name).Error("Failed to send ntfy notification")
	}
}

// TopicURL joins serverURL and topic, trimming trailing slashes from serverURL.
func TopicURL(serverURL, topic string) string {
	return strings.TrimRight(serverURL, "/") + "/" + topic
}

// Send posts message to {serverURL}/{topic} with a Title header.
func (c *Client) Send(ctx context.Context, serverURL, topic, title, message string) error {
	url := TopicURL(serverURL, topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	req.Header.Set("Title", title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: ntfy server returned status: %s", ErrResponse, resp.Status)
	}

	c.logger.WithFields(logrus.Fields{"url": url, "title": title}).Info("Sent ntfy notification")
	return nil
}
