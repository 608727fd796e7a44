package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := map[string]struct {
		opts      Options
		wantLevel logrus.Level
		wantJSON  bool
	}{
		"debug text": {
			opts:      Options{Level: "debug", Format: "text"},
			wantLevel: logrus.DebugLevel,
		},
		"error json": {
			opts:      Options{Level: "ERROR", Format: "json"},
			wantLevel: logrus.ErrorLevel,
			wantJSON:  true,
		},
		"invalid level falls back to info": {
			opts:      Options{Level: "loud"},
			wantLevel: logrus.InfoLevel,
		},
		"empty level is info": {
			opts:      Options{},
			wantLevel: logrus.InfoLevel,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.opts.Output = &buf
			Init(tt.opts)

			assert.Equal(t, tt.wantLevel, Log.GetLevel())
			_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Format: "json", Output: &buf})

	Component("relay").Info("sent")

	assert.Contains(t, buf.String(), `"component":"relay"`)
	assert.Contains(t, buf.String(), `"msg":"sent"`)
}
