package dispatch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

type dispatchCall struct {
	Title   string
	Message string
	Context notify.NotificationContext
}

// MockDispatcher records local dispatches.
type MockDispatcher struct {
	mu     sync.Mutex
	Calls  []dispatchCall
	Waited int
}

func (m *MockDispatcher) NotifyWithContext(title, message string, nctx notify.NotificationContext) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, dispatchCall{Title: title, Message: message, Context: nctx})
}

func (m *MockDispatcher) Wait() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Waited++
}

type relayCall struct {
	Project relay.Project
	Title   string
	Message string
}

// MockRelay records relay requests.
type MockRelay struct {
	mu    sync.Mutex
	Calls []relayCall
}

func (m *MockRelay) NotifyProject(_ context.Context, project relay.Project, title, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, relayCall{Project: project, Title: title, Message: message})
}

type ntfyRequest struct {
	Path  string
	Title string
	Body  string
}

// ntfyServer is an httptest relay server that records what it receives.
type ntfyServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []ntfyRequest
}

func newNtfyServer(t *testing.T, status int) *ntfyServer {
	t.Helper()
	s := &ntfyServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, ntfyRequest{Path: r.URL.Path, Title: r.Header.Get("Title"), Body: string(body)})
		s.mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *ntfyServer) Requests() []ntfyRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ntfyRequest(nil), s.requests...)
}

// newTestCommand returns a command carrying the root's persistent flags,
// pointed at a config file holding content. HOME is isolated so the
// developer's global config is never read.
func newTestCommand(t *testing.T, content string) (*cobra.Command, *bytesBuffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", path, "")
	cmd.Flags().String("env-file", "", "")
	cmd.Flags().Bool("debug", false, "")
	cmd.SetContext(context.Background())

	out := &bytesBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	return cmd, out
}

// bytesBuffer is a goroutine-safe output sink.
type bytesBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *bytesBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *bytesBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}

// silentChannels disables every local channel so tests never play sounds or
// raise desktop notifications.
const silentChannels = `
notifications:
  sound_enabled: false
  push_enabled: false
  script_enabled: false
  browser_enabled: false
`
