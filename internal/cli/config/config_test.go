// Package config tests CLI configuration commands for tasknotify.
// Related: internal/cli/config/config.go, internal/cli/config/doctor.go
// Tags: config, cli, doctor, health, set, show

package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// newTestCommand isolates HOME and returns a command whose --config points
// at a project file under a temp dir.
func newTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	projectPath := filepath.Join(t.TempDir(), ".tasknotify", "config.yml")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("config", projectPath, "")
	cmd.Flags().String("env-file", "", "")
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().Bool("project", false, "")
	cmd.Flags().Bool("json", false, "")
	cmd.Flags().Bool("tools", false, "")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	return cmd, &out, projectPath
}

func TestRegister(t *testing.T) {
	root := &cobra.Command{Use: "test"}
	require.NotPanics(t, func() { Register(root) })

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["config"], "Should have 'config' command")
	assert.True(t, names["doctor"], "Should have 'doctor' command")

	for _, sub := range []string{"show", "set", "keys"} {
		found, _, err := root.Find([]string{"config", sub})
		require.NoError(t, err)
		assert.Equal(t, sub, found.Name())
	}
}

func TestDoctorCmd_Structure(t *testing.T) {
	assert.Equal(t, "doctor", doctorCmd.Use)
	assert.Contains(t, doctorCmd.Aliases, "doc")
	assert.Equal(t, "configuration", doctorCmd.GroupID)
	assert.NotNil(t, doctorCmd.RunE)
	assert.NotNil(t, doctorCmd.Flags().Lookup("tools"))
}

func TestRunConfigSet(t *testing.T) {
	tests := map[string]struct {
		key       string
		value     string
		project   bool
		wantScope string
		wantCode  int
	}{
		"bool in user config": {
			key:       "notifications.sound_enabled",
			value:     "false",
			wantScope: "user",
		},
		"script command in project config": {
			key:       "notifications.script_command",
			value:     "say {{title}}",
			project:   true,
			wantScope: "project",
		},
		"project relay topic": {
			key:       "projects.web.ntfy_topic",
			value:     "web-builds",
			wantScope: "user",
		},
		"unknown key": {
			key:      "notifications.volume",
			value:    "11",
			wantCode: shared.ExitInvalidArguments,
		},
		"invalid bool": {
			key:      "notifications.push_enabled",
			value:    "maybe",
			wantCode: shared.ExitFailure,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, out, projectPath := newTestCommand(t)
			if tt.project {
				require.NoError(t, cmd.Flags().Set("project", "true"))
			}

			err := runConfigSet(cmd, []string{tt.key, tt.value})
			assert.Equal(t, tt.wantCode, shared.ExitCode(err))
			if tt.wantCode != 0 {
				return
			}
			assert.Contains(t, out.String(), "in "+tt.wantScope+" config")

			path := projectPath
			if !tt.project {
				userPath, err := cfgpkg.UserConfigPath()
				require.NoError(t, err)
				path = userPath
			}
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.value)
		})
	}
}

func TestRunConfigSet_ThenShow(t *testing.T) {
	cmd, out, _ := newTestCommand(t)

	require.NoError(t, runConfigSet(cmd, []string{"notifications.push_enabled", "false"}))
	require.NoError(t, runConfigSet(cmd, []string{"projects.web.ntfy_enabled", "true"}))
	out.Reset()

	require.NoError(t, runConfigShow(cmd, nil))

	var shown cfgpkg.Configuration
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &shown))
	assert.False(t, shown.Notifications.PushEnabled)
	assert.True(t, shown.Notifications.SoundEnabled)
	assert.True(t, shown.Projects["web"].NtfyEnabled)
}

func TestRunConfigShow_JSON(t *testing.T) {
	cmd, out, _ := newTestCommand(t)
	require.NoError(t, cmd.Flags().Set("json", "true"))

	require.NoError(t, runConfigShow(cmd, nil))

	var shown map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, "info", shown["log_level"])
	assert.Contains(t, shown, "notifications")
}

func TestRunConfigKeys(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "keys"}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runConfigKeys(cmd, nil))

	output := out.String()
	for _, key := range cfgpkg.SortedKeys() {
		assert.Contains(t, output, key)
	}
	assert.Contains(t, output, "projects.<name>.ntfy_topic")
	assert.Contains(t, output, "enum (text, json)")
}

func TestRunDoctor(t *testing.T) {
	if p := notify.DetectPlatform(); p == notify.PlatformUnsupported || p == notify.PlatformBridgedHost {
		t.Skip("checks depend on host tools")
	}

	tests := map[string]struct {
		content  string
		wantCode int
		wantOut  []string
	}{
		"no channels enabled": {
			content: `
notifications:
  sound_enabled: false
  push_enabled: false
`,
			wantOut: []string{"Platform"},
		},
		"relay project without topic": {
			content: `
notifications:
  sound_enabled: false
  push_enabled: false
projects:
  api:
    ntfy_enabled: true
`,
			wantCode: shared.ExitMissingDependency,
			wantOut:  []string{"Relay api", "ntfy_topic is empty"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, out, projectPath := newTestCommand(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(projectPath), 0o755))
			require.NoError(t, os.WriteFile(projectPath, []byte(tt.content), 0o644))
			require.NoError(t, cmd.Flags().Set("tools", "true"))

			err := runDoctor(cmd, nil)
			assert.Equal(t, tt.wantCode, shared.ExitCode(err))
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			assert.Contains(t, out.String(), "Tools:")
		})
	}
}
