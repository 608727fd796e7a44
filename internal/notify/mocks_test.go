// Package notify_test provides recording mocks for dispatcher and strategy tests.
// Related: internal/notify/runner.go, internal/notify/strategy.go
// Tags: notify, mocks, testing

package notify

import (
	"errors"
	"strings"
	"sync"

	"github.com/ariel-frischer/tasknotify/internal/events"
)

// MockRunner records every Start call and returns configured errors.
type MockRunner struct {
	mu sync.Mutex

	// Errors maps a program name to the error Start returns for it
	Errors map[string]error

	Calls [][]string
}

// NewMockRunner creates a runner where every program starts successfully.
func NewMockRunner() *MockRunner {
	return &MockRunner{Errors: make(map[string]error)}
}

// WithError makes Start fail for the named program.
func (m *MockRunner) WithError(name string, err error) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[name] = err
	return m
}

// Start implements Runner.
func (m *MockRunner) Start(name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, append([]string{name}, args...))
	return m.Errors[name]
}

// CallCount returns the number of recorded Start calls.
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Programs returns the program names started, in call order.
func (m *MockRunner) Programs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		names = append(names, c[0])
	}
	return names
}

// CallFor returns the first call to the named program.
func (m *MockRunner) CallFor(name string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Calls {
		if c[0] == name {
			return c, true
		}
	}
	return nil, false
}

// MockPublisher records published events.
type MockPublisher struct {
	mu     sync.Mutex
	Err    error
	Events []*events.Event
}

// Publish implements events.Publisher.
func (m *MockPublisher) Publish(e *events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, e)
	return m.Err
}

// Count returns the number of published events.
func (m *MockPublisher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// stubSounds resolves every sound to a fixed path.
type stubSounds struct {
	path string
	err  error
}

func (s stubSounds) ResolveSound(string) (string, error) {
	return s.path, s.err
}

// stubTranslator prefixes absolute paths with a fixed root.
type stubTranslator struct {
	root string
}

func (s stubTranslator) TranslateOrRaw(path string) string {
	if s.root == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	return s.root + path
}

// stubToastScript returns a fixed script path.
type stubToastScript struct {
	path string
	err  error
}

func (s stubToastScript) ToastScriptPath() (string, error) {
	return s.path, s.err
}

// Common test errors
var (
	ErrMockSpawn = errors.New("mock spawn error")
	ErrMockBell  = errors.New("mock bell error")
)
