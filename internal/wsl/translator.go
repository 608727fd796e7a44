package wsl

import (
	"context"
	"strings"
	"sync"

	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/sirupsen/logrus"
)

// Translator converts paths inside a WSL distribution into paths that
// Windows-side interpreters such as powershell.exe can open.
type Translator struct {
	runner Runner
	root   *Cell[Root]
	logger logrus.FieldLogger
}

// NewTranslator creates a translator with its own probe cache.
func NewTranslator(runner Runner, logger logrus.FieldLogger) *Translator {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = logging.Component("wsl")
	}
	return &Translator{
		runner: runner,
		root:   NewCell[Root](),
		logger: logger,
	}
}

var defaultTranslator = sync.OnceValue(func() *Translator {
	return NewTranslator(ExecRunner{}, logging.Component("wsl"))
})

// Default returns the process-wide translator. Its root probe runs at most
// once per process.
func Default() *Translator {
	return defaultTranslator()
}

// Root returns the cached WSL root, probing on first use. A failed probe is
// cached as unresolved and never retried.
func (t *Translator) Root() Root {
	return t.root.Get(func() Root {
		path, err := ProbeRoot(context.Background(), t.runner)
		if err != nil {
			t.logger.WithError(err).Error("Failed to determine WSL root path")
			return Root{}
		}
		t.logger.WithField("root", path).Info("WSL root path detected")
		return Root{Path: path, Resolved: true}
	})
}

// Translate maps path to its host-side form. Relative paths are returned
// unchanged. Absolute paths are prefixed with the WSL root; ok is false when
// the root is unresolved.
func (t *Translator) Translate(path string) (translated string, ok bool) {
	if !strings.HasPrefix(path, "/") {
		t.logger.WithField("path", path).Debug("Using relative path as-is")
		return path, true
	}

	root := t.Root()
	if !root.Resolved {
		t.logger.WithField("path", path).Error("Failed to determine WSL root path for conversion")
		return "", false
	}

	translated = root.Path + path
	t.logger.WithFields(logrus.Fields{"from": path, "to": translated}).Debug("WSL path converted")
	return translated, true
}

// TranslateOrRaw is Translate with a fallback to the untranslated path.
func (t *Translator) TranslateOrRaw(path string) string {
	if translated, ok := t.Translate(path); ok {
		return translated
	}
	return path
}
