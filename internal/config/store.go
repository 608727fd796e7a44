package config

import (
	"maps"
	"sync"

	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
)

// Store holds the live configuration shared by long-running components.
// Readers take copies under the read lock; no lock is held while a caller
// acts on what it read.
type Store struct {
	mu   sync.RWMutex
	cfg  Configuration
	opts Options
}

// NewStore wraps cfg. The store keeps its own copy.
func NewStore(cfg *Configuration) *Store {
	return &Store{cfg: cloneConfig(*cfg)}
}

// LoadStore loads configuration with opts and remembers them for Reload.
func LoadStore(opts Options) (*Store, error) {
	cfg, err := Load(opts)
	if err != nil {
		return nil, err
	}
	s := NewStore(cfg)
	s.opts = opts
	return s, nil
}

// Snapshot implements notify.ConfigSource.
func (s *Store) Snapshot() notify.ChannelConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Notifications
}

// Config returns a copy of the whole configuration.
func (s *Store) Config() Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneConfig(s.cfg)
}

// Project returns the relay settings of the named project.
func (s *Store) Project(name string) (relay.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.cfg.Projects[name]
	return p, ok
}

// Update applies fn to a copy of the configuration and stores the result if
// it validates.
func (s *Store) Update(fn func(*Configuration)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneConfig(s.cfg)
	fn(&next)
	if err := Validate(&next); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// Reload re-reads every source with the options the store was loaded with.
// On error the current configuration is kept.
func (s *Store) Reload() error {
	cfg, err := Load(s.opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cloneConfig(*cfg)
	return nil
}

func cloneConfig(c Configuration) Configuration {
	c.Projects = maps.Clone(c.Projects)
	return c
}
