package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSoundFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wav := filepath.Join(dir, "done.wav")
	upper := filepath.Join(dir, "DONE.OGA")
	txt := filepath.Join(dir, "notes.txt")
	for _, f := range []string{wav, upper, txt} {
		require.NoError(t, os.WriteFile(f, []byte("data"), 0o644))
	}

	tests := map[string]struct {
		soundFile string
		want      string
	}{
		"empty":                 {soundFile: "", want: ""},
		"valid wav":             {soundFile: wav, want: wav},
		"uppercase extension":   {soundFile: upper, want: upper},
		"unsupported extension": {soundFile: txt, want: ""},
		"missing file":          {soundFile: filepath.Join(dir, "nope.wav"), want: ""},
		"directory":             {soundFile: dir, want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateSoundFile(tt.soundFile, logging.Discard()))
		})
	}
}

func TestValidateSoundFile_NilLogger(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		assert.Empty(t, ValidateSoundFile("/does/not/exist.wav", nil))
	})
}

func TestPlatformSounds_ResolveSound(t *testing.T) {
	t.Parallel()

	custom := filepath.Join(t.TempDir(), "custom.mp3")
	require.NoError(t, os.WriteFile(custom, []byte("data"), 0o644))

	t.Run("custom file wins", func(t *testing.T) {
		t.Parallel()
		r := NewPlatformSounds(PlatformPrimaryDesktop, logging.Discard())
		got, err := r.ResolveSound(custom)
		require.NoError(t, err)
		assert.Equal(t, custom, got)
	})

	t.Run("bridged host falls back without stat", func(t *testing.T) {
		t.Parallel()
		r := NewPlatformSounds(PlatformBridgedHost, logging.Discard())
		got, err := r.ResolveSound("/missing.wav")
		require.NoError(t, err)
		assert.Equal(t, DefaultWindowsSound, got)
	})

	t.Run("unsupported platform has no default", func(t *testing.T) {
		t.Parallel()
		r := NewPlatformSounds(PlatformUnsupported, logging.Discard())
		_, err := r.ResolveSound("")
		assert.Error(t, err)
	})
}

func TestDefaultSoundFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultLinuxSound, DefaultSoundFile(PlatformPrimaryDesktop))
	assert.Equal(t, DefaultMacOSSound, DefaultSoundFile(PlatformSecondaryDesktop))
	assert.Equal(t, DefaultWindowsSound, DefaultSoundFile(PlatformBridgedHost))
	assert.Empty(t, DefaultSoundFile(PlatformUnsupported))
}
