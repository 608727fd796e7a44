// Package logging holds the process-wide logrus logger used by every tasknotify component.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetLevel(logrus.InfoLevel)
}

// Options controls logger level and output format.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Init configures the global logger. An unknown level falls back to info.
func Init(opts Options) {
	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	}

	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		if opts.Level != "" {
			Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", opts.Level, err)
		}
		Log.SetLevel(logrus.InfoLevel)
	} else {
		Log.SetLevel(level)
	}

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
}

// Component returns a logger tagged with the given component name.
func Component(name string) logrus.FieldLogger {
	return Log.WithField("component", name)
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
