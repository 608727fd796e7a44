// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go
// Tags: config, loading, merging, env-vars, yaml, json, precedence
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/tasknotify/internal/natsbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolatedOptions points the global config at a file that does not exist so
// the developer's real ~/.tasknotify is never read.
func isolatedOptions(t *testing.T, local string) Options {
	t.Helper()
	return Options{
		ConfigPath: local,
		GlobalPath: filepath.Join(t.TempDir(), "missing.yml"),
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(isolatedOptions(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.Notifications.SoundEnabled)
	assert.True(t, cfg.Notifications.PushEnabled)
	assert.False(t, cfg.Notifications.ScriptEnabled)
	assert.False(t, cfg.Notifications.BrowserEnabled)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
	assert.Equal(t, natsbus.DefaultSubject, cfg.NATS.Subject)
	assert.Equal(t, natsbus.DefaultPort, cfg.NATS.Port)
	assert.Empty(t, cfg.Projects)
}

func TestLoad_LocalYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "tasknotify.yml", `
log_level: debug
notifications:
  sound_enabled: false
  script_enabled: true
  script_command: "notify-me {{title}} {{message}}"
projects:
  web:
    ntfy_enabled: true
    ntfy_topic: web-builds
  api:
    ntfy_enabled: false
    ntfy_url: https://ntfy.example.com/
`)

	cfg, err := Load(isolatedOptions(t, path))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Notifications.SoundEnabled)
	assert.True(t, cfg.Notifications.PushEnabled, "unset keys keep defaults")
	assert.Equal(t, "notify-me {{title}} {{message}}", cfg.Notifications.ScriptCommand)

	require.Len(t, cfg.Projects, 2)
	web := cfg.Projects["web"]
	assert.Equal(t, "web", web.Name)
	assert.True(t, web.NtfyEnabled)
	assert.Equal(t, "web-builds", web.NtfyTopic)
	assert.Equal(t, "https://ntfy.example.com/", cfg.Projects["api"].NtfyURL)
}

func TestLoad_LocalJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.json", `{
		"log_format": "json",
		"notifications": {"browser_enabled": true},
		"server": {"addr": ":9090"}
	}`)

	cfg, err := Load(isolatedOptions(t, path))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.Notifications.BrowserEnabled)
	assert.Equal(t, ":9090", cfg.Server.Addr)
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	global := writeFile(t, dir, "global.yml", "log_level: warn\nlog_format: json\n")
	local := writeFile(t, dir, "local.yml", "log_level: error\n")

	cfg, err := Load(Options{ConfigPath: local, GlobalPath: global})
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingLocalFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(isolatedOptions(t, filepath.Join(t.TempDir(), "nope.yml")))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverride(t *testing.T) {
	// t.Setenv forbids t.Parallel
	t.Setenv("TASKNOTIFY_LOG_LEVEL", "error")
	t.Setenv("TASKNOTIFY_NOTIFICATIONS__PUSH_ENABLED", "false")
	t.Setenv("TASKNOTIFY_PROJECTS__WEB__NTFY_ENABLED", "true")
	t.Setenv("TASKNOTIFY_PROJECTS__WEB__NTFY_TOPIC", "from-env")

	path := writeFile(t, t.TempDir(), "local.yml", "log_level: debug\n")

	cfg, err := Load(isolatedOptions(t, path))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel, "env beats local file")
	assert.False(t, cfg.Notifications.PushEnabled)
	assert.True(t, cfg.Projects["web"].NtfyEnabled)
	assert.Equal(t, "from-env", cfg.Projects["web"].NtfyTopic)
}

func TestLoad_EnvFile(t *testing.T) {
	// Register restore-to-unset, then clear so the dotenv file can set it.
	t.Setenv("TASKNOTIFY_LOG_FORMAT", "")
	require.NoError(t, os.Unsetenv("TASKNOTIFY_LOG_FORMAT"))

	envFile := writeFile(t, t.TempDir(), ".env", "TASKNOTIFY_LOG_FORMAT=json\n")

	opts := isolatedOptions(t, "")
	opts.EnvFile = envFile
	cfg, err := Load(opts)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t, "")
	opts.EnvFile = filepath.Join(t.TempDir(), "absent.env")
	_, err := Load(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env file")
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content   string
		wantField string
	}{
		"script enabled without command": {
			content:   "notifications:\n  script_enabled: true\n",
			wantField: "notifications.script_command",
		},
		"invalid relay url": {
			content:   "projects:\n  web:\n    ntfy_url: not a url\n",
			wantField: "ntfy_url",
		},
		"invalid log level": {
			content:   "log_level: verbose\n",
			wantField: "log_level",
		},
		"invalid server addr": {
			content:   "server:\n  addr: localhost\n",
			wantField: "server.addr",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "config.yml", tt.content)
			_, err := Load(isolatedOptions(t, path))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Field, tt.wantField)
		})
	}
}

func TestLoad_InvalidYAMLSyntax(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yml", "notifications:\n  sound_enabled: [true\n")
	_, err := Load(isolatedOptions(t, path))
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, path, verr.FilePath)
}

func TestLoad_ExpandsHomeInSoundFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "config.yml", "notifications:\n  sound_file: ~/sounds/done.wav\n")
	cfg, err := Load(isolatedOptions(t, path))
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sounds", "done.wav"), cfg.Notifications.SoundFile)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"TASKNOTIFY_LOG_LEVEL":                   "log_level",
		"TASKNOTIFY_NOTIFICATIONS__SOUND_ENABLED": "notifications.sound_enabled",
		"TASKNOTIFY_PROJECTS__WEB__NTFY_TOPIC":    "projects.web.ntfy_topic",
	}
	for in, want := range tests {
		assert.Equal(t, want, envTransform(in), in)
	}
}

func TestUserConfigPath(t *testing.T) {
	t.Parallel()

	path, err := UserConfigPath()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join(".tasknotify", "config.yml")), path)
}
