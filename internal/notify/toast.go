package notify

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

//go:embed assets/toast-notification.ps1
var toastScript []byte

// ToastScriptName is the file name the toast script is written under.
const ToastScriptName = "toast-notification.ps1"

// ToastScriptResolver returns a local path to the PowerShell toast script.
type ToastScriptResolver interface {
	ToastScriptPath() (string, error)
}

// ToastScript writes the embedded toast script into a cache directory on
// first use and returns its path afterwards. A failed write is retried on
// the next call.
type ToastScript struct {
	dir  string
	mu   sync.Mutex
	path string
}

// NewToastScript creates a resolver that writes into dir.
func NewToastScript(dir string) *ToastScript {
	return &ToastScript{dir: dir}
}

// DefaultCacheDir returns the per-user cache directory for tasknotify assets.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tasknotify")
	}
	return filepath.Join(dir, "tasknotify")
}

// ToastScriptPath implements ToastScriptResolver.
func (t *ToastScript) ToastScriptPath() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.path != "" {
		return t.path, nil
	}

	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}

	path := filepath.Join(t.dir, ToastScriptName)
	existing, err := os.ReadFile(path)
	if err != nil || !bytes.Equal(existing, toastScript) {
		if err := os.WriteFile(path, toastScript, 0o644); err != nil {
			return "", fmt.Errorf("writing toast script: %w", err)
		}
	}

	t.path = path
	return path, nil
}
