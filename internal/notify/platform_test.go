package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatformFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		goos  string
		isWSL bool
		want  Platform
	}{
		"linux desktop": {goos: "linux", want: PlatformPrimaryDesktop},
		"wsl2":          {goos: "linux", isWSL: true, want: PlatformBridgedHost},
		"macos":         {goos: "darwin", want: PlatformSecondaryDesktop},
		"windows":       {goos: "windows", want: PlatformBridgedHost},
		"freebsd":       {goos: "freebsd", want: PlatformUnsupported},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, platformFor(tt.goos, tt.isWSL))
		})
	}
}

func TestPlatform_RequiredTools(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"paplay", "aplay", "notify-send"}, PlatformPrimaryDesktop.RequiredTools())
	assert.Equal(t, []string{"afplay", "osascript"}, PlatformSecondaryDesktop.RequiredTools())
	assert.Equal(t, []string{"powershell.exe"}, PlatformBridgedHost.RequiredTools())
	assert.Empty(t, PlatformUnsupported.RequiredTools())
}

func TestPlatform_ToolStatus(t *testing.T) {
	t.Parallel()

	status := PlatformPrimaryDesktop.ToolStatus()
	assert.Len(t, status, 3)
	for _, tool := range PlatformPrimaryDesktop.RequiredTools() {
		_, ok := status[tool]
		assert.True(t, ok, "missing status for %s", tool)
	}
	assert.Empty(t, PlatformUnsupported.ToolStatus())
}

func TestPlatform_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "linux-desktop", PlatformPrimaryDesktop.String())
	assert.Equal(t, "macos", PlatformSecondaryDesktop.String())
	assert.Equal(t, "unsupported", PlatformUnsupported.String())
	assert.Contains(t, []string{"wsl2", "windows"}, PlatformBridgedHost.String())
}
